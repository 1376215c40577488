package model

import (
	"fmt"
	"time"
)

// Statement length bounds for a record to be considered well-formed
const (
	StatementMinLength = 5
	StatementMaxLength = 1000
)

// Statement is a recorded statement held by the registry. The scoring core
// consumes it read-only; only the registry mutates it.
type Statement struct {
	ID        string         `json:"id"`
	Category  string         `json:"category"`
	Text      string         `json:"statement"`
	Verified  bool           `json:"verified"`
	Timestamp time.Time      `json:"timestamp"`
	Tags      []string       `json:"tags"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Validate checks the structural fields a statement must carry to enter the
// registry. Quality concerns (length bounds, tag hygiene) are scored by the
// coherence validator instead, not rejected here.
func (s *Statement) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("statement must have an id")
	}
	if s.Text == "" {
		return fmt.Errorf("statement %s must have text", s.ID)
	}
	if s.Category == "" {
		return fmt.Errorf("statement %s must have a category", s.ID)
	}
	return nil
}

// WellFormed reports whether the statement text falls inside the trusted
// length bounds.
func (s *Statement) WellFormed() bool {
	n := len(s.Text)
	return n >= StatementMinLength && n <= StatementMaxLength
}
