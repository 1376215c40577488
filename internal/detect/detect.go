// Package detect implements the deception pattern detectors.
//
// Each detector is a pure function over a statement (and optional auxiliary
// context) returning a single DetectionOutcome with a bounded probability.
// A "not detected" outcome is a normal result, never an error; the only
// failure mode is text that is not valid UTF-8.
package detect

import (
	"errors"
	"unicode/utf8"

	"github.com/veridict/veridict/internal/model"
)

// ErrInvalidText is returned when the primary text argument is not valid
// UTF-8. Every other malformed input is scored, not rejected.
var ErrInvalidText = errors.New("detect: text is not valid UTF-8")

func checkText(text string) error {
	if !utf8.ValidString(text) {
		return ErrInvalidText
	}
	return nil
}

// RunAll invokes all six detectors over text in a fixed order and returns
// their outcomes as an ordered sequence of exactly six entries, detected or
// not. The shared text precondition is checked once before any detector
// runs; no individual detector can abort the batch.
func RunAll(text string, dctx *model.DetectionContext) ([]model.DetectionOutcome, error) {
	if err := checkText(text); err != nil {
		return nil, err
	}
	if dctx == nil {
		dctx = &model.DetectionContext{}
	}

	outcomes := make([]model.DetectionOutcome, 0, 6)

	correction, _ := UserCorrection(text, dctx.ContextNote)
	outcomes = append(outcomes, correction)

	facade, _ := FacadeOfCompetence(FacadeInput{
		Metrics:            dctx.Metrics,
		ExternalValidation: dctx.ExternalValidation,
		Text:               text,
	})
	outcomes = append(outcomes, facade)

	unverified, _ := UnverifiedClaims(text)
	outcomes = append(outcomes, unverified)

	insistence, _ := Insistence(text, dctx.Evidence)
	outcomes = append(outcomes, insistence)

	reassertion, _ := Reassertion(text, dctx.PreviousText)
	outcomes = append(outcomes, reassertion)

	distraction, _ := Distraction(text)
	outcomes = append(outcomes, distraction)

	return outcomes, nil
}

// signalSet collects matched signals deduplicated with insertion order kept
type signalSet struct {
	seen map[string]struct{}
	list []string
}

func newSignalSet() *signalSet {
	return &signalSet{seen: make(map[string]struct{}), list: []string{}}
}

func (s *signalSet) add(signal string) {
	if signal == "" {
		return
	}
	if _, ok := s.seen[signal]; ok {
		return
	}
	s.seen[signal] = struct{}{}
	s.list = append(s.list, signal)
}

func (s *signalSet) slice() []string {
	return s.list
}

func clamp01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func maxProbability(current, candidate float64) float64 {
	if candidate > current {
		return candidate
	}
	return current
}
