package detect

import (
	"strings"

	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/pattern"
)

const (
	// Fixed bonus when the prior statement already carried a similar
	// completion claim; the final probability never exceeds the cap.
	reassertionPriorClaimBonus = 0.2
	reassertionProbabilityCap  = 0.85
)

var (
	reassertionConnectives = pattern.Default().MustGroup(model.CategoryReassertion, pattern.TierModerate)

	// Completion tokens that mark a repeated claim across two statements
	reassertionClaimTokens = []string{"deployed", "live", "operational", "ready", "complete"}
)

// Reassertion detects a claim being restated after correction via
// reassertion connectives ("actually, it is", "I assure you"). Each
// connective carries a fixed probability; a prior statement repeating the
// same completion claim adds a capped bonus.
func Reassertion(current, previous string) (model.DetectionOutcome, error) {
	if err := checkText(current); err != nil {
		return model.DetectionOutcome{}, err
	}

	signals := newSignalSet()
	probability := 0.0
	for _, p := range reassertionConnectives {
		if m, ok := p.Find(current); ok {
			signals.add(m)
			probability = maxProbability(probability, p.Weight)
		}
	}

	repeated := false
	if probability > 0 && previous != "" {
		currentLower := strings.ToLower(current)
		previousLower := strings.ToLower(previous)
		for _, token := range reassertionClaimTokens {
			if strings.Contains(currentLower, token) && strings.Contains(previousLower, token) {
				repeated = true
				break
			}
		}
		if repeated {
			probability += reassertionPriorClaimBonus
			if probability > reassertionProbabilityCap {
				probability = reassertionProbabilityCap
			}
			signals.add("repeated_assertion")
		}
	}

	return model.DetectionOutcome{
		Detected:       probability > 0,
		Category:       model.CategoryReassertion,
		Probability:    clamp01(probability),
		MatchedSignals: signals.slice(),
		Details: map[string]any{
			"has_previous_context": previous != "",
			"repeated_assertion":   repeated,
		},
	}, nil
}
