// Package coherence scores recorded statements for data quality.
//
// The validator is a five-phase pipeline: Investigate, CheckRecords,
// EvaluateRules, ClassifyCoherence, then Score & Classify. Malformed input
// is a rule failure reflected in the confidence, never an error; the only
// "not found" condition is reported as data.
package coherence

import (
	"fmt"
	"math"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/veridict/veridict/internal/detect"
	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/registry"
)

// correctionDamping scales how hard a detected user correction in the
// statement text pulls confidence down: confidence *= 1 - p*damping.
const correctionDamping = 0.5

// Validator evaluates statements against the registry they live in.
// Verdicts are retained in a TTL cache to back Summary.
type Validator struct {
	registry *registry.Registry
	verdicts *gocache.Cache
}

// New creates a validator over the given registry
func New(reg *registry.Registry, cfg model.CacheConfig) *Validator {
	ttl := cfg.VerdictTTL
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	cleanup := cfg.CleanupInterval
	if cleanup <= 0 {
		cleanup = time.Hour
	}
	return &Validator{
		registry: reg,
		verdicts: gocache.New(ttl, cleanup),
	}
}

// Investigate inspects the statement's own fields and asks the registry how
// many sibling statements share its category. Pure inspection: nothing here
// fails, missing fields simply show up as false/zero.
func (v *Validator) Investigate(st model.Statement) map[string]any {
	timestamp := ""
	if !st.Timestamp.IsZero() {
		timestamp = st.Timestamp.Format(time.RFC3339)
	}
	return map[string]any{
		"statement_id":     st.ID,
		"category":         st.Category,
		"statement_length": len(st.Text),
		"tag_count":        len(st.Tags),
		"verified":         st.Verified,
		"tag_coherence":    tagCoherenceScore(st),
		"has_metadata":     len(st.Metadata) > 0,
		"has_category":     st.Category != "",
		"has_timestamp":    !st.Timestamp.IsZero(),
		"timestamp":        timestamp,
		"sibling_count":    v.siblingCount(st),
	}
}

// CheckRecords re-derives the structural booleans directly against the
// stored record to catch drift between the store and the model. An unknown
// identifier yields found:false, not an error.
func (v *Validator) CheckRecords(id string) map[string]any {
	st, ok := v.registry.Get(id)
	if !ok {
		return map[string]any{
			"found": false,
			"error": fmt.Sprintf("statement %q not found in registry", id),
		}
	}
	return map[string]any{
		"found":               true,
		"statement_id":        st.ID,
		"has_valid_id":        st.ID != "",
		"has_valid_statement": len(st.Text) >= model.StatementMinLength,
		"has_category":        st.Category != "",
		"timestamp_present":   !st.Timestamp.IsZero(),
		"tags_present":        len(st.Tags) > 0,
		"verified":            st.Verified,
		"record_complete":     st.ID != "" && st.Category != "" && st.Text != "" && !st.Timestamp.IsZero(),
	}
}

// EvaluateCoherence runs the full five-phase pipeline over one statement
// and returns its verdict. The status is derived from the confidence alone.
func (v *Validator) EvaluateCoherence(st model.Statement) model.CoherenceVerdict {
	// Phase 1: investigate
	investigation := v.Investigate(st)

	// Phase 2: check stored records (informational when st is ephemeral)
	records := v.CheckRecords(st.ID)

	// Phase 3: evaluate rules
	siblings, _ := investigation["sibling_count"].(int)
	rules := evaluateRules(st, siblings)

	// Phase 4: classify coherence as a product of triggered multipliers
	confidence := 1.0
	var findings []string
	ruleNames := make([]string, 0, len(rules))
	for _, rule := range rules {
		ruleNames = append(ruleNames, rule.Name)
		if !rule.Passed {
			confidence *= rule.Multiplier
			findings = append(findings, rule.Message)
		}
	}

	// Deception signal sources: a detected user correction lowers
	// confidence, unverified claims only surface as a finding.
	if correction, err := detect.UserCorrection(st.Text, ""); err == nil && correction.Detected {
		confidence *= 1 - correction.Probability*correctionDamping
		findings = append(findings, fmt.Sprintf("deception pattern detected: %s (p=%.2f)",
			correction.Category, correction.Probability))
	}
	if claims, err := detect.UnverifiedClaims(st.Text); err == nil && claims.Detected {
		findings = append(findings, "unverified claims require external validation")
	}

	confidence = math.Max(0.0, math.Min(1.0, confidence))

	// Phase 5: score and classify
	status := model.StatusForConfidence(confidence)
	if len(findings) == 0 {
		findings = []string{"statement passes all coherence checks"}
	}

	verdict := model.CoherenceVerdict{
		SubjectID:  st.ID,
		Status:     status,
		Confidence: confidence,
		Findings:   findings,
		Metadata: map[string]any{
			"investigation":     investigation,
			"records":           records,
			"rules_evaluated":   ruleNames,
			"deception_checked": true,
		},
	}
	v.verdicts.SetDefault(st.ID, verdict)
	return verdict
}

// ValidateAll runs the pipeline over every statement in the registry
func (v *Validator) ValidateAll() []model.CoherenceVerdict {
	statements := v.registry.All()
	verdicts := make([]model.CoherenceVerdict, 0, len(statements))
	for _, st := range statements {
		verdicts = append(verdicts, v.EvaluateCoherence(st))
	}
	return verdicts
}

// Verdict returns the retained verdict for a statement, if present
func (v *Validator) Verdict(id string) (model.CoherenceVerdict, bool) {
	if cached, ok := v.verdicts.Get(id); ok {
		verdict, ok := cached.(model.CoherenceVerdict)
		return verdict, ok
	}
	return model.CoherenceVerdict{}, false
}

// Summary reduces all retained verdicts into aggregate statistics
func (v *Validator) Summary() model.ValidationSummary {
	items := v.verdicts.Items()
	summary := model.ValidationSummary{}
	if len(items) == 0 {
		return summary
	}

	var totalConfidence float64
	for _, item := range items {
		verdict, ok := item.Object.(model.CoherenceVerdict)
		if !ok {
			continue
		}
		summary.TotalValidated++
		totalConfidence += verdict.Confidence
		switch verdict.Status {
		case model.StatusCoherent:
			summary.Coherent++
		case model.StatusSuspicious:
			summary.Suspicious++
		case model.StatusNoise:
			summary.Noise++
		}
	}
	if summary.TotalValidated > 0 {
		summary.AverageConfidence = round(totalConfidence/float64(summary.TotalValidated), 3)
		summary.CoherenceRate = round(float64(summary.Coherent)/float64(summary.TotalValidated)*100, 2)
	}
	return summary
}

func (v *Validator) siblingCount(st model.Statement) int {
	if st.Category == "" {
		return 0
	}
	count := 0
	for _, sibling := range v.registry.ByCategory(st.Category) {
		if sibling.ID != st.ID {
			count++
		}
	}
	return count
}

func round(x float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(x*factor) / factor
}
