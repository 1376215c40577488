package model

// DeceptionCategory identifies which deception pattern a detector recognizes
type DeceptionCategory string

const (
	CategoryUserCorrection DeceptionCategory = "user_correction"              // Explicit user contradiction of a prior claim
	CategoryFacade         DeceptionCategory = "facade_of_competence"         // Perfect self-reported metrics or reassuring language
	CategoryUnverified     DeceptionCategory = "unverified_claim"             // URLs or deployment claims without verification
	CategoryInsistence     DeceptionCategory = "insistence_despite_evidence"  // Completion assertions against contradictory evidence
	CategoryReassertion    DeceptionCategory = "reassertion_after_correction" // Restating a disputed claim in new wording
	CategoryDistraction    DeceptionCategory = "distraction"                  // Shifting to meta-work instead of the disputed claim
)

// DetectionOutcome is the result of one detector invocation.
// Created fresh per call and never mutated afterwards.
type DetectionOutcome struct {
	Detected       bool              `json:"detected"`
	Category       DeceptionCategory `json:"deception_type"`
	Probability    float64           `json:"probability"` // Always in [0.0, 1.0], discrete per-category levels
	MatchedSignals []string          `json:"matched_signals"`
	Details        map[string]any    `json:"details,omitempty"`
}

// ExternalValidation carries an independent check of self-reported metrics
type ExternalValidation struct {
	Confirms    bool `json:"confirms"`
	Contradicts bool `json:"contradicts"`
}

// DetectionContext bundles the optional inputs the aggregator fans out to
// individual detectors. Each detector ignores fields it does not need.
type DetectionContext struct {
	Metrics            map[string]float64  `json:"metrics,omitempty"`
	ExternalValidation *ExternalValidation `json:"external_validation,omitempty"`
	PreviousText       string              `json:"previous_text,omitempty"`
	Evidence           map[string]bool     `json:"evidence,omitempty"`
	ContextNote        string              `json:"context,omitempty"`
}
