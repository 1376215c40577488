package util

import (
	"strings"
	"testing"
)

func TestFormatReport_SortedKeys(t *testing.T) {
	out := FormatReport(map[string]any{
		"total_validated": 3,
		"coherent":        2,
		"noise":           1,
	}, "Validation Summary")

	if !strings.Contains(out, "Validation Summary") {
		t.Error("Expected the title in the output")
	}

	coherentIdx := strings.Index(out, "coherent")
	noiseIdx := strings.Index(out, "noise")
	totalIdx := strings.Index(out, "total validated")
	if coherentIdx < 0 || noiseIdx < 0 || totalIdx < 0 {
		t.Fatalf("Expected all keys rendered, got:\n%s", out)
	}
	if !(coherentIdx < noiseIdx && noiseIdx < totalIdx) {
		t.Errorf("Expected keys in sorted order, got:\n%s", out)
	}
}

func TestFormatReport_UnderscoresBecomeSpaces(t *testing.T) {
	out := FormatReport(map[string]any{"average_confidence": 0.85}, "Report")
	if strings.Contains(out, "average_confidence") {
		t.Errorf("Expected underscores replaced, got:\n%s", out)
	}
	if !strings.Contains(out, "average confidence") {
		t.Errorf("Expected a spaced label, got:\n%s", out)
	}
}
