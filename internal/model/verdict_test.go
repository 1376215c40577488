package model

import "testing"

func TestStatusForConfidence(t *testing.T) {
	cases := []struct {
		confidence float64
		want       CoherenceStatus
	}{
		{1.0, StatusCoherent},
		{0.8, StatusCoherent},
		{0.79999, StatusSuspicious},
		{0.5, StatusSuspicious},
		{0.49999, StatusNoise},
		{0.0, StatusNoise},
	}

	for _, c := range cases {
		if got := StatusForConfidence(c.confidence); got != c.want {
			t.Errorf("Confidence %v: expected %s, got %s", c.confidence, c.want, got)
		}
	}
}
