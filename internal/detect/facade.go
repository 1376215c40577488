package detect

import (
	"fmt"
	"sort"

	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/pattern"
)

// Probability levels for the facade detector's two evidence paths
const (
	facadePerfectMetricsProbability = 0.8  // perfect numbers, no outside check
	facadeContradictedProbability   = 0.95 // external validation contradicts the metrics
	facadeConfirmedProbability      = 0.2  // external validation confirms the metrics
	facadeTextProbability           = 0.75 // politeness paired with a completion claim

	// A metric counts as perfect at or above this value after normalization
	perfectMetricThreshold = 0.995
)

var (
	facadePoliteness = pattern.Default().MustGroup(model.CategoryFacade, pattern.TierWeak)
	facadeCompletion = pattern.Default().MustGroup(model.CategoryFacade, pattern.TierStrong)
)

// FacadeInput carries the optional inputs of the facade detector. At least
// one of Metrics or Text should be supplied for a meaningful result.
type FacadeInput struct {
	Metrics            map[string]float64
	ExternalValidation *model.ExternalValidation
	Text               string
}

// FacadeOfCompetence detects a facade of competence via two independent
// evidence paths: self-reported metrics that are all perfect, and reassuring
// politeness language paired with a completion claim. When both paths fire
// the higher probability wins and signals from both are merged.
func FacadeOfCompetence(in FacadeInput) (model.DetectionOutcome, error) {
	if err := checkText(in.Text); err != nil {
		return model.DetectionOutcome{}, err
	}

	signals := newSignalSet()
	probability := 0.0
	metricsFired := false
	textFired := false
	metricsCapped := false
	perfectCount := 0

	if len(in.Metrics) > 0 {
		names := make([]string, 0, len(in.Metrics))
		for name := range in.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)

		allPerfect := true
		perfect := make([]string, 0, len(names))
		for _, name := range names {
			value := in.Metrics[name]
			normalized := value
			if value > 100 {
				normalized = 1.0
				metricsCapped = true
			} else if value > 1 {
				// 0-100 scale
				normalized = value / 100.0
			}
			if normalized >= perfectMetricThreshold {
				perfect = append(perfect, fmt.Sprintf("%s=%g", name, value))
			} else {
				allPerfect = false
			}
		}

		if len(perfect) > 0 && allPerfect {
			metricsFired = true
			perfectCount = len(perfect)
			switch {
			case in.ExternalValidation == nil:
				probability = maxProbability(probability, facadePerfectMetricsProbability)
			case in.ExternalValidation.Contradicts:
				probability = maxProbability(probability, facadeContradictedProbability)
			default:
				probability = maxProbability(probability, facadeConfirmedProbability)
			}
			for _, s := range perfect {
				signals.add(s)
			}
		}
	}

	politenessHits := 0
	completionHits := 0
	if in.Text != "" {
		var polite, completion []string
		for _, p := range facadePoliteness {
			if m, ok := p.Find(in.Text); ok {
				polite = append(polite, m)
			}
		}
		for _, p := range facadeCompletion {
			if m, ok := p.Find(in.Text); ok {
				completion = append(completion, m)
			}
		}
		politenessHits = len(polite)
		completionHits = len(completion)

		// The text path needs the co-occurrence; either token class alone is
		// not a facade signal.
		if politenessHits > 0 && completionHits > 0 {
			textFired = true
			probability = maxProbability(probability, facadeTextProbability)
			for _, s := range polite {
				signals.add(s)
			}
			for _, s := range completion {
				signals.add(s)
			}
		}
	}

	return model.DetectionOutcome{
		Detected:       metricsFired || textFired,
		Category:       model.CategoryFacade,
		Probability:    clamp01(probability),
		MatchedSignals: signals.slice(),
		Details: map[string]any{
			"perfect_metric_count":    perfectCount,
			"has_external_validation": in.ExternalValidation != nil,
			"metrics_capped":          metricsCapped,
			"text_present":            in.Text != "",
			"politeness_hits":         politenessHits,
			"completion_hits":         completionHits,
		},
	}, nil
}
