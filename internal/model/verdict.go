package model

// CoherenceStatus classifies a statement by its confidence score alone
type CoherenceStatus string

const (
	StatusCoherent   CoherenceStatus = "coherent"   // confidence >= 0.8
	StatusSuspicious CoherenceStatus = "suspicious" // confidence in [0.5, 0.8)
	StatusNoise      CoherenceStatus = "noise"      // confidence < 0.5
)

// Confidence thresholds for status classification. Status is a pure function
// of confidence; no other verdict field may override it.
const (
	CoherentThreshold   = 0.8
	SuspiciousThreshold = 0.5
)

// StatusForConfidence maps a confidence score to its status
func StatusForConfidence(confidence float64) CoherenceStatus {
	switch {
	case confidence >= CoherentThreshold:
		return StatusCoherent
	case confidence >= SuspiciousThreshold:
		return StatusSuspicious
	default:
		return StatusNoise
	}
}

// CoherenceVerdict is the quality validator's output for one statement
type CoherenceVerdict struct {
	SubjectID  string          `json:"subject_id"`
	Status     CoherenceStatus `json:"status"`
	Confidence float64         `json:"confidence"` // in [0.0, 1.0]
	Findings   []string        `json:"findings"`
	Metadata   map[string]any  `json:"metadata,omitempty"`
}

// ValidationSummary aggregates verdicts produced by a validator
type ValidationSummary struct {
	TotalValidated    int     `json:"total_validated"`
	Coherent          int     `json:"coherent"`
	Suspicious        int     `json:"suspicious"`
	Noise             int     `json:"noise"`
	AverageConfidence float64 `json:"average_confidence"`
	CoherenceRate     float64 `json:"coherence_rate"` // percent of coherent over total
}

// TextReport is the combined result of ad-hoc text validation: detector
// outcomes plus a coherence verdict over an ephemeral statement.
type TextReport struct {
	ValidationPassed  bool               `json:"validation_passed"`
	Status            CoherenceStatus    `json:"status"`
	Confidence        float64            `json:"confidence"`
	Findings          []string           `json:"findings"`
	DeceptionDetected bool               `json:"deception_detected"`
	DeceptionType     DeceptionCategory  `json:"deception_type,omitempty"`
	Probability       float64            `json:"probability"`
	Outcomes          []DetectionOutcome `json:"outcomes"`
}

// RegistryReport summarizes the statement registry contents
type RegistryReport struct {
	TotalStatements    int            `json:"total_statements"`
	VerifiedStatements int            `json:"verified_statements"`
	Categories         int            `json:"categories"`
	CategoryBreakdown  map[string]int `json:"category_breakdown"`
}
