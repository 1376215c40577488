package coherence

import (
	"strings"
	"testing"
	"time"

	"github.com/veridict/veridict/internal/model"
)

func TestTagCoherenceScore(t *testing.T) {
	cases := []struct {
		name     string
		category string
		tags     []string
		want     float64
	}{
		{"no tags", "auth", nil, 1.0},
		{"empty category", "", []string{"auth"}, 1.0},
		{"all matching", "auth", []string{"auth", "auth-tokens"}, 1.0},
		{"none matching", "auth", []string{"billing", "ops"}, 0.0},
		{"half matching", "auth", []string{"auth", "security"}, 0.5},
	}

	for _, c := range cases {
		st := model.Statement{Category: c.category, Tags: c.tags}
		if got := tagCoherenceScore(st); got != c.want {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}

func TestCheckStatementLength_Bounds(t *testing.T) {
	short := model.Statement{Text: "abcd"}
	if r := checkStatementLength(short); r.Passed || r.Multiplier != 0.5 {
		t.Errorf("Expected short-statement failure with multiplier 0.5, got %+v", r)
	}

	exact := model.Statement{Text: "abcde"}
	if r := checkStatementLength(exact); !r.Passed {
		t.Error("Expected a 5-character statement to pass")
	}

	long := model.Statement{Text: strings.Repeat("a", model.StatementMaxLength+1)}
	if r := checkStatementLength(long); r.Passed || r.Multiplier != 0.8 {
		t.Errorf("Expected long-statement failure with multiplier 0.8, got %+v", r)
	}
}

func TestEvaluateRules_OneFindingPerFailure(t *testing.T) {
	st := model.Statement{
		Text:      "abc",
		Timestamp: time.Time{},
	}

	failures := 0
	for _, r := range evaluateRules(st, 0) {
		if !r.Passed {
			failures++
			if r.Message == "" {
				t.Errorf("Failed rule %s carries no message", r.Name)
			}
			if r.Multiplier <= 0 || r.Multiplier >= 1 {
				t.Errorf("Failed rule %s carries multiplier %v outside (0,1)", r.Name, r.Multiplier)
			}
		}
	}
	// short text, blank category, no tags, missing timestamp, isolation
	if failures != 5 {
		t.Errorf("Expected 5 failed rules, got %d", failures)
	}
}
