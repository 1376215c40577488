package detect

import (
	"strings"

	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/pattern"
)

// Probability tiers for user corrections. When several tiers match, the
// highest wins; lower-tier signals stay in MatchedSignals.
const (
	correctionStrongProbability        = 0.9 // explicit lexical correction markers
	correctionContradictionProbability = 0.8 // specific falsifiable contradictions
	correctionDenialProbability        = 0.7 // bare leading denial with no other support
)

var (
	correctionStrong   = pattern.Default().MustGroup(model.CategoryUserCorrection, pattern.TierStrong)
	correctionModerate = pattern.Default().MustGroup(model.CategoryUserCorrection, pattern.TierModerate)
	correctionWeak     = pattern.Default().MustGroup(model.CategoryUserCorrection, pattern.TierWeak)
)

// UserCorrection detects explicit user contradictions of a prior claim:
// correction markers ("wrong", "incorrect"), falsifiable contradictions
// ("not deployed", an HTTP-error style token) and standalone leading denials.
func UserCorrection(text, contextNote string) (model.DetectionOutcome, error) {
	if err := checkText(text); err != nil {
		return model.DetectionOutcome{}, err
	}

	signals := newSignalSet()
	probability := 0.0

	for _, p := range correctionStrong {
		if m, ok := p.Find(text); ok {
			signals.add(m)
			probability = maxProbability(probability, correctionStrongProbability)
		}
	}
	for _, p := range correctionModerate {
		if m, ok := p.Find(text); ok {
			signals.add(m)
			probability = maxProbability(probability, correctionContradictionProbability)
		}
	}
	for _, p := range correctionWeak {
		if m, ok := p.Find(text); ok {
			signals.add(strings.TrimRight(m, ",.! \t"))
			probability = maxProbability(probability, correctionDenialProbability)
		}
	}

	return model.DetectionOutcome{
		Detected:       probability > 0,
		Category:       model.CategoryUserCorrection,
		Probability:    clamp01(probability),
		MatchedSignals: signals.slice(),
		Details: map[string]any{
			"text_length":      len(text),
			"pattern_count":    len(signals.slice()),
			"context_provided": contextNote != "",
		},
	}, nil
}
