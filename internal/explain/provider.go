// Package explain generates an optional natural-language narrative of a
// validation run. The narrative is presentation only: it is produced after
// scoring and never feeds back into any probability or confidence.
package explain

import (
	"context"
	"fmt"
	"strings"

	"github.com/veridict/veridict/internal/model"
)

// Provider is an LLM backend able to narrate a validation run
type Provider interface {
	// Name returns the provider name
	Name() string

	// Narrate generates a Markdown narrative for the request
	Narrate(ctx context.Context, req NarrateRequest) (*NarrateResponse, error)

	// IsAvailable checks whether the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// NarrateRequest carries the scored material the narrative may describe
type NarrateRequest struct {
	Summary   model.ValidationSummary
	Verdicts  []model.CoherenceVerdict
	Model     string
	MaxTokens int
}

// NarrateResponse is the generated narrative
type NarrateResponse struct {
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	NarrativeM string `json:"narrative_md"`
}

// buildPrompt renders the verdicts into a prompt. Only material already in
// the verdicts goes in; the model is told not to invent findings.
func buildPrompt(req NarrateRequest) string {
	var b strings.Builder
	b.WriteString("You are summarizing the output of a rule-based statement validator.\n")
	b.WriteString("Describe the results below in plain language. Do not invent findings,\n")
	b.WriteString("do not speculate about statements not listed, and do not change any numbers.\n\n")

	fmt.Fprintf(&b, "Totals: %d validated, %d coherent, %d suspicious, %d noise. ",
		req.Summary.TotalValidated, req.Summary.Coherent, req.Summary.Suspicious, req.Summary.Noise)
	fmt.Fprintf(&b, "Average confidence %.3f, coherence rate %.2f%%.\n\n", req.Summary.AverageConfidence, req.Summary.CoherenceRate)

	for _, verdict := range req.Verdicts {
		fmt.Fprintf(&b, "- %s: %s (confidence %.2f)\n", verdict.SubjectID, verdict.Status, verdict.Confidence)
		for _, finding := range verdict.Findings {
			fmt.Fprintf(&b, "    finding: %s\n", finding)
		}
	}
	return b.String()
}
