package detect

import (
	"sort"

	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/pattern"
)

// Probability levels for insistence despite evidence. Evidence flags only
// matter when a strong assertion is present; flags alone are not insistence.
const (
	insistenceBareProbability      = 0.6  // strong assertion, no evidence flags
	insistenceOneFlagProbability   = 0.9  // assertion contradicted by one flag
	insistenceBothFlagsProbability = 0.95 // assertion contradicted by two or more flags
)

var insistenceAssertions = pattern.Default().MustGroup(model.CategoryInsistence, pattern.TierStrong)

// Insistence detects strong completion or operational-status assertions made
// in the face of contradictory evidence flags (e.g. "has_404",
// "missing_files"). Flag keys with false values are ignored.
func Insistence(text string, evidence map[string]bool) (model.DetectionOutcome, error) {
	if err := checkText(text); err != nil {
		return model.DetectionOutcome{}, err
	}

	signals := newSignalSet()
	assertionCount := 0
	for _, p := range insistenceAssertions {
		if m, ok := p.Find(text); ok {
			signals.add(m)
			assertionCount++
		}
	}

	flagged := make([]string, 0, len(evidence))
	for key, set := range evidence {
		if set {
			flagged = append(flagged, key)
		}
	}
	sort.Strings(flagged)

	probability := 0.0
	if assertionCount > 0 {
		switch {
		case len(flagged) >= 2:
			probability = insistenceBothFlagsProbability
		case len(flagged) == 1:
			probability = insistenceOneFlagProbability
		default:
			probability = insistenceBareProbability
		}
		for _, key := range flagged {
			signals.add("contradicts_" + key)
		}
	}

	return model.DetectionOutcome{
		Detected:       probability > 0,
		Category:       model.CategoryInsistence,
		Probability:    clamp01(probability),
		MatchedSignals: signals.slice(),
		Details: map[string]any{
			"assertion_count": assertionCount,
			"evidence_flags":  len(flagged),
			"has_evidence":    len(evidence) > 0,
		},
	}, nil
}
