package detect

import (
	"testing"
)

func TestUserCorrection_ExplicitCorrection(t *testing.T) {
	outcome, err := UserCorrection("That's wrong, it's not deployed", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !outcome.Detected {
		t.Error("Expected detection for an explicit correction")
	}
	if outcome.Probability != 0.9 {
		t.Errorf("Expected probability 0.9, got %v", outcome.Probability)
	}

	found := false
	for _, s := range outcome.MatchedSignals {
		if s == "not deployed" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected 'not deployed' among signals, got %v", outcome.MatchedSignals)
	}
}

func TestUserCorrection_ContradictionOnly(t *testing.T) {
	outcome, err := UserCorrection("The page returns a 404 and the service is not deployed", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !outcome.Detected {
		t.Error("Expected detection for falsifiable contradictions")
	}
	if outcome.Probability != 0.8 {
		t.Errorf("Expected probability 0.8, got %v", outcome.Probability)
	}
}

func TestUserCorrection_LeadingDenial(t *testing.T) {
	outcome, err := UserCorrection("No, I disagree entirely", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !outcome.Detected {
		t.Error("Expected detection for a leading denial")
	}
	if outcome.Probability != 0.7 {
		t.Errorf("Expected probability 0.7, got %v", outcome.Probability)
	}
	// The trailing comma is trimmed from the denial signal
	if len(outcome.MatchedSignals) != 1 || outcome.MatchedSignals[0] != "No" {
		t.Errorf("Expected trimmed signal [No], got %v", outcome.MatchedSignals)
	}
}

func TestUserCorrection_HighestTierWins(t *testing.T) {
	outcome, err := UserCorrection("No, that's incorrect, it returns a 500", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if outcome.Probability != 0.9 {
		t.Errorf("Expected highest tier 0.9 to win, got %v", outcome.Probability)
	}
	if len(outcome.MatchedSignals) < 3 {
		t.Errorf("Expected signals from all tiers retained, got %v", outcome.MatchedSignals)
	}
}

func TestUserCorrection_NeutralText(t *testing.T) {
	outcome, err := UserCorrection("Everything looks fine so far", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if outcome.Detected {
		t.Error("Expected no detection for neutral text")
	}
	if outcome.Probability != 0 {
		t.Errorf("Expected probability 0, got %v", outcome.Probability)
	}
	if outcome.MatchedSignals == nil {
		t.Error("Expected empty non-nil signal list")
	}
	if len(outcome.MatchedSignals) != 0 {
		t.Errorf("Expected no signals, got %v", outcome.MatchedSignals)
	}
}

func TestUserCorrection_ContextNoteRecorded(t *testing.T) {
	outcome, err := UserCorrection("That's wrong", "deployment discussion")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if provided, _ := outcome.Details["context_provided"].(bool); !provided {
		t.Error("Expected context_provided detail to be true")
	}
}

func TestUserCorrection_InvalidUTF8(t *testing.T) {
	if _, err := UserCorrection("bad \xff\xfe text", ""); err == nil {
		t.Error("Expected error for invalid UTF-8")
	}
}
