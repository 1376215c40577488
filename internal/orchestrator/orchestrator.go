// Package orchestrator is the façade tying the registry, the deception
// detectors and the coherence validator into one surface for the CLI and
// the HTTP API.
package orchestrator

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/veridict/veridict/internal/coherence"
	"github.com/veridict/veridict/internal/detect"
	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/registry"
)

// Orchestrator owns the registry and validator instances and sequences
// register-then-validate flows. The scoring core only borrows references.
type Orchestrator struct {
	Registry  *registry.Registry
	Validator *coherence.Validator
}

// New creates an orchestrator with a fresh registry and validator
func New(cfg *model.Config) *Orchestrator {
	reg := registry.New()
	return &Orchestrator{
		Registry:  reg,
		Validator: coherence.New(reg, cfg.Cache),
	}
}

// Seed loads foundational statements into an empty registry
func (o *Orchestrator) Seed() error {
	now := time.Now().UTC()
	seeds := []model.Statement{
		{
			ID:        "stmt_001",
			Category:  "architecture",
			Text:      "Centralized statement scoring keeps verdicts reproducible across callers",
			Verified:  true,
			Timestamp: now,
			Tags:      []string{"architecture", "scoring"},
		},
		{
			ID:        "stmt_002",
			Category:  "architecture",
			Text:      "The pattern table is compiled once at process start and shared by every detector call",
			Verified:  true,
			Timestamp: now,
			Tags:      []string{"architecture", "patterns"},
		},
		{
			ID:        "stmt_003",
			Category:  "validation",
			Text:      "Coherence verdicts derive their status from confidence alone",
			Verified:  true,
			Timestamp: now,
			Tags:      []string{"validation", "coherence"},
		},
		{
			ID:        "stmt_004",
			Category:  "validation",
			Text:      "Rule failures lower confidence instead of raising errors",
			Verified:  true,
			Timestamp: now,
			Tags:      []string{"validation", "rules"},
		},
	}
	for _, st := range seeds {
		if _, err := o.Registry.Register(st); err != nil {
			return fmt.Errorf("seed registry: %w", err)
		}
	}
	return nil
}

// RegisterAndValidate registers a statement and immediately evaluates its
// coherence. The returned verdict reflects the statement as stored.
func (o *Orchestrator) RegisterAndValidate(st model.Statement) (model.CoherenceVerdict, error) {
	id, err := o.Registry.Register(st)
	if err != nil {
		return model.CoherenceVerdict{}, err
	}
	stored, _ := o.Registry.Get(id)
	return o.Validator.EvaluateCoherence(stored), nil
}

// ValidateText scores ad-hoc free text: it runs all six detectors, wraps the
// text in an ephemeral statement and applies the coherence rules to it. The
// ephemeral statement is never stored.
func (o *Orchestrator) ValidateText(text string, dctx *model.DetectionContext) (model.TextReport, error) {
	outcomes, err := detect.RunAll(text, dctx)
	if err != nil {
		return model.TextReport{}, err
	}

	category := "adhoc"
	if dctx != nil && dctx.ContextNote != "" {
		category = dctx.ContextNote
	}
	ephemeral := model.Statement{
		ID:        "adhoc-" + uuid.NewString(),
		Category:  category,
		Text:      text,
		Timestamp: time.Now().UTC(),
		Tags:      []string{category},
	}
	verdict := o.Validator.EvaluateCoherence(ephemeral)

	report := model.TextReport{
		ValidationPassed: verdict.Status != model.StatusNoise,
		Status:           verdict.Status,
		Confidence:       verdict.Confidence,
		Findings:         verdict.Findings,
		Outcomes:         outcomes,
	}
	for _, outcome := range outcomes {
		if !outcome.Detected {
			continue
		}
		if outcome.Probability > report.Probability {
			report.Probability = outcome.Probability
			report.DeceptionType = outcome.Category
		}
		if outcome.Probability >= 0.5 {
			report.DeceptionDetected = true
		}
	}
	return report, nil
}

// SystemStatus reports the registry contents and validation statistics
func (o *Orchestrator) SystemStatus() map[string]any {
	return map[string]any{
		"statements":  o.Registry.Report(),
		"validations": o.Validator.Summary(),
	}
}
