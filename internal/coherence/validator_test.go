package coherence

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/registry"
)

func newTestValidator(t *testing.T) (*registry.Registry, *Validator) {
	t.Helper()
	reg := registry.New()
	return reg, New(reg, model.CacheConfig{})
}

func register(t *testing.T, reg *registry.Registry, st model.Statement) model.Statement {
	t.Helper()
	id, err := reg.Register(st)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	stored, _ := reg.Get(id)
	return stored
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEvaluateCoherence_WellFormedStatement(t *testing.T) {
	reg, v := newTestValidator(t)

	register(t, reg, model.Statement{
		ID:        "stmt_sibling",
		Category:  "auth",
		Text:      "Session cookies carry the SameSite attribute",
		Timestamp: time.Now().UTC(),
		Tags:      []string{"auth"},
	})
	st := register(t, reg, model.Statement{
		ID:        "stmt_good",
		Category:  "auth",
		Text:      "Session tokens rotate on every refresh",
		Timestamp: time.Now().UTC(),
		Tags:      []string{"auth", "security"},
	})

	verdict := v.EvaluateCoherence(st)

	if verdict.Status != model.StatusCoherent {
		t.Errorf("Expected coherent, got %s", verdict.Status)
	}
	if verdict.Confidence != 1.0 {
		t.Errorf("Expected confidence 1.0, got %v", verdict.Confidence)
	}
	if len(verdict.Findings) != 1 || verdict.Findings[0] != "statement passes all coherence checks" {
		t.Errorf("Expected the pass finding, got %v", verdict.Findings)
	}
}

func TestEvaluateCoherence_DegradedStatement(t *testing.T) {
	_, v := newTestValidator(t)

	// Short text, no category, no tags; only the timestamp is present.
	verdict := v.EvaluateCoherence(model.Statement{
		ID:        "stmt_bad",
		Text:      "smol",
		Timestamp: time.Now().UTC(),
	})

	// 0.5 (short) * 0.6 (no category) * 0.9 (no tags) * 0.95 (isolated)
	want := 0.5 * 0.6 * 0.9 * 0.95
	if !almostEqual(verdict.Confidence, want) {
		t.Errorf("Expected confidence %v, got %v", want, verdict.Confidence)
	}
	if verdict.Status != model.StatusNoise {
		t.Errorf("Expected noise, got %s", verdict.Status)
	}
	if len(verdict.Findings) != 4 {
		t.Errorf("Expected one finding per failed rule, got %v", verdict.Findings)
	}
}

func TestEvaluateCoherence_HalfCoherentTagsPass(t *testing.T) {
	reg, v := newTestValidator(t)

	register(t, reg, model.Statement{
		ID:        "stmt_sibling",
		Category:  "auth",
		Text:      "Password hashes use a per-user salt",
		Timestamp: time.Now().UTC(),
		Tags:      []string{"auth"},
	})
	st := register(t, reg, model.Statement{
		ID:        "stmt_half",
		Category:  "auth",
		Text:      "Refresh tokens are bound to a device",
		Timestamp: time.Now().UTC(),
		Tags:      []string{"auth", "security"},
	})

	// Exactly half the tags share a token with the category: no penalty.
	verdict := v.EvaluateCoherence(st)
	if verdict.Confidence != 1.0 {
		t.Errorf("Expected no tag penalty at the coherence floor, got %v", verdict.Confidence)
	}
}

func TestEvaluateCoherence_TagPenalties(t *testing.T) {
	_, v := newTestValidator(t)

	verdict := v.EvaluateCoherence(model.Statement{
		ID:        "stmt_tags",
		Category:  "auth",
		Text:      "Tokens are revoked when a session ends",
		Timestamp: time.Now().UTC(),
		Tags:      []string{"auth", "auth", ""},
	})

	// duplicate tag 0.8, empty tag 0.5, isolated category 0.95; two of three
	// tags still share a token with the category so coherence passes
	want := 0.8 * 0.5 * 0.95
	if !almostEqual(verdict.Confidence, want) {
		t.Errorf("Expected confidence %v, got %v", want, verdict.Confidence)
	}
}

func TestEvaluateCoherence_CorrectionLowersConfidence(t *testing.T) {
	reg, v := newTestValidator(t)

	register(t, reg, model.Statement{
		ID:        "stmt_sibling",
		Category:  "deploy",
		Text:      "Deployments roll out region by region",
		Timestamp: time.Now().UTC(),
		Tags:      []string{"deploy"},
	})
	st := register(t, reg, model.Statement{
		ID:        "stmt_corrected",
		Category:  "deploy",
		Text:      "That's wrong, the service is not deployed",
		Timestamp: time.Now().UTC(),
		Tags:      []string{"deploy"},
	})

	verdict := v.EvaluateCoherence(st)

	// All rules pass; the detected correction damps 1.0 by 1 - 0.9*0.5
	if !almostEqual(verdict.Confidence, 0.55) {
		t.Errorf("Expected confidence 0.55, got %v", verdict.Confidence)
	}
	if verdict.Status != model.StatusSuspicious {
		t.Errorf("Expected suspicious, got %s", verdict.Status)
	}

	hasDeception := false
	hasUnverified := false
	for _, finding := range verdict.Findings {
		if strings.HasPrefix(finding, "deception pattern detected") {
			hasDeception = true
		}
		if finding == "unverified claims require external validation" {
			hasUnverified = true
		}
	}
	if !hasDeception {
		t.Errorf("Expected a deception finding, got %v", verdict.Findings)
	}
	if !hasUnverified {
		t.Errorf("Expected an unverified-claims finding, got %v", verdict.Findings)
	}
}

func TestEvaluateCoherence_UnverifiedClaimsAreFindingOnly(t *testing.T) {
	reg, v := newTestValidator(t)

	register(t, reg, model.Statement{
		ID:        "stmt_sibling",
		Category:  "deploy",
		Text:      "Deployments roll out region by region",
		Timestamp: time.Now().UTC(),
		Tags:      []string{"deploy"},
	})
	st := register(t, reg, model.Statement{
		ID:        "stmt_claim",
		Category:  "deploy",
		Text:      "The dashboard is hosted at an internal address",
		Timestamp: time.Now().UTC(),
		Tags:      []string{"deploy"},
	})

	verdict := v.EvaluateCoherence(st)

	// "hosted at" is an unverified claim: a finding appears but confidence
	// stays untouched.
	if verdict.Confidence != 1.0 {
		t.Errorf("Expected confidence 1.0, got %v", verdict.Confidence)
	}
	if len(verdict.Findings) != 1 || verdict.Findings[0] != "unverified claims require external validation" {
		t.Errorf("Expected only the unverified-claims finding, got %v", verdict.Findings)
	}
}

func TestEvaluateCoherence_MetadataPhases(t *testing.T) {
	reg, v := newTestValidator(t)

	st := register(t, reg, model.Statement{
		ID:        "stmt_meta",
		Category:  "auth",
		Text:      "Access tokens are short lived",
		Timestamp: time.Now().UTC(),
		Tags:      []string{"auth"},
	})

	verdict := v.EvaluateCoherence(st)

	if _, ok := verdict.Metadata["investigation"]; !ok {
		t.Error("Expected investigation metadata")
	}
	records, ok := verdict.Metadata["records"].(map[string]any)
	if !ok {
		t.Fatal("Expected records metadata")
	}
	if found, _ := records["found"].(bool); !found {
		t.Error("Expected the stored record to be found")
	}
	if checked, _ := verdict.Metadata["deception_checked"].(bool); !checked {
		t.Error("Expected deception_checked to be true")
	}
}

func TestCheckRecords_UnknownID(t *testing.T) {
	_, v := newTestValidator(t)

	records := v.CheckRecords("missing")
	if found, _ := records["found"].(bool); found {
		t.Error("Expected found=false for an unknown id")
	}
	if _, ok := records["error"]; !ok {
		t.Error("Expected an error message, not a Go error")
	}
}

func TestCheckRecords_CompleteRecord(t *testing.T) {
	reg, v := newTestValidator(t)

	register(t, reg, model.Statement{
		ID:        "stmt_ok",
		Category:  "auth",
		Text:      "Login attempts are rate limited",
		Timestamp: time.Now().UTC(),
		Tags:      []string{"auth"},
	})

	records := v.CheckRecords("stmt_ok")
	if complete, _ := records["record_complete"].(bool); !complete {
		t.Errorf("Expected a complete record, got %v", records)
	}
	if valid, _ := records["has_valid_statement"].(bool); !valid {
		t.Error("Expected has_valid_statement for text above the minimum length")
	}
}

func TestValidateAll_SummaryAggregates(t *testing.T) {
	reg, v := newTestValidator(t)

	register(t, reg, model.Statement{
		ID:        "stmt_a",
		Category:  "auth",
		Text:      "Sessions are invalidated on logout",
		Timestamp: time.Now().UTC(),
		Tags:      []string{"auth"},
	})
	register(t, reg, model.Statement{
		ID:        "stmt_b",
		Category:  "auth",
		Text:      "Tokens expire after one hour",
		Timestamp: time.Now().UTC(),
		Tags:      []string{"auth"},
	})
	register(t, reg, model.Statement{
		ID:        "stmt_c",
		Category:  "misc",
		Text:      "tiny",
		Timestamp: time.Now().UTC(),
	})

	verdicts := v.ValidateAll()
	if len(verdicts) != 3 {
		t.Fatalf("Expected 3 verdicts, got %d", len(verdicts))
	}

	summary := v.Summary()
	if summary.TotalValidated != 3 {
		t.Errorf("Expected 3 validated, got %d", summary.TotalValidated)
	}
	if summary.Coherent != 2 {
		t.Errorf("Expected 2 coherent, got %d", summary.Coherent)
	}
	if summary.Noise != 1 {
		t.Errorf("Expected 1 noise, got %d", summary.Noise)
	}
	if summary.CoherenceRate != 66.67 {
		t.Errorf("Expected coherence rate 66.67, got %v", summary.CoherenceRate)
	}
}

func TestVerdict_RetainedAfterEvaluation(t *testing.T) {
	reg, v := newTestValidator(t)

	st := register(t, reg, model.Statement{
		ID:        "stmt_cached",
		Category:  "auth",
		Text:      "Credentials are never logged",
		Timestamp: time.Now().UTC(),
		Tags:      []string{"auth"},
	})

	if _, ok := v.Verdict("stmt_cached"); ok {
		t.Error("Expected no verdict before evaluation")
	}
	want := v.EvaluateCoherence(st)
	got, ok := v.Verdict("stmt_cached")
	if !ok {
		t.Fatal("Expected a retained verdict after evaluation")
	}
	if got.Confidence != want.Confidence || got.Status != want.Status {
		t.Error("Expected the retained verdict to match the returned one")
	}
}
