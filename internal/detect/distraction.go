package detect

import (
	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/pattern"
)

// Probability levels for distraction, keyed by the number of distinct
// meta-work phrases found.
const (
	distractionSingleProbability   = 0.3
	distractionMultipleProbability = 0.4
)

var distractionPhrases = pattern.Default().MustGroup(model.CategoryDistraction, pattern.TierWeak)

// Distraction detects discussion shifting toward meta-level implementation
// detail ("test coverage", "enhanced detection") instead of addressing the
// substantive claim.
func Distraction(text string) (model.DetectionOutcome, error) {
	if err := checkText(text); err != nil {
		return model.DetectionOutcome{}, err
	}

	signals := newSignalSet()
	count := 0
	for _, p := range distractionPhrases {
		if m, ok := p.Find(text); ok {
			signals.add(m)
			count++
		}
	}

	probability := 0.0
	switch {
	case count >= 2:
		probability = distractionMultipleProbability
	case count == 1:
		probability = distractionSingleProbability
	}

	return model.DetectionOutcome{
		Detected:       probability > 0,
		Category:       model.CategoryDistraction,
		Probability:    clamp01(probability),
		MatchedSignals: signals.slice(),
		Details: map[string]any{
			"pattern_count": count,
		},
	}, nil
}
