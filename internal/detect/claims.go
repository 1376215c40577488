package detect

import (
	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/pattern"
)

// Probability levels for unverified claims. Only the single highest-matching
// combination is reported; all distinct matched signals are still listed.
const (
	claimURLWithDeploymentProbability = 0.85
	claimURLProbability               = 0.7
	claimDeploymentProbability        = 0.65
	claimCompletionProbability        = 0.6
)

var (
	claimURLs       = pattern.Default().MustGroup(model.CategoryUnverified, pattern.TierStrong)
	claimDeployment = pattern.Default().MustGroup(model.CategoryUnverified, pattern.TierModerate)
	claimCompletion = pattern.Default().MustGroup(model.CategoryUnverified, pattern.TierWeak)
)

// UnverifiedClaims detects URL-shaped tokens and deployment or completion
// assertions presented without verification.
func UnverifiedClaims(text string) (model.DetectionOutcome, error) {
	if err := checkText(text); err != nil {
		return model.DetectionOutcome{}, err
	}

	signals := newSignalSet()
	urlCount := 0
	deploymentPresent := false
	completionPresent := false

	for _, p := range claimURLs {
		for _, m := range p.FindAll(text) {
			signals.add(m)
			urlCount++
		}
	}
	for _, p := range claimDeployment {
		if m, ok := p.Find(text); ok {
			signals.add(m)
			deploymentPresent = true
		}
	}
	for _, p := range claimCompletion {
		if m, ok := p.Find(text); ok {
			signals.add(m)
			completionPresent = true
		}
	}

	probability := 0.0
	switch {
	case urlCount > 0 && deploymentPresent:
		probability = claimURLWithDeploymentProbability
	case urlCount > 0:
		probability = claimURLProbability
	case deploymentPresent:
		probability = claimDeploymentProbability
	case completionPresent:
		probability = claimCompletionProbability
	}

	return model.DetectionOutcome{
		Detected:       probability > 0,
		Category:       model.CategoryUnverified,
		Probability:    clamp01(probability),
		MatchedSignals: signals.slice(),
		Details: map[string]any{
			"url_count":                urlCount,
			"deployment_claim_present": deploymentPresent,
			"completion_claim_present": completionPresent,
			"text_length":              len(text),
		},
	}, nil
}
