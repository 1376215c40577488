// Package registry is the in-memory store for recorded statements.
//
// The store is an explicit instance passed by reference to whoever needs it;
// there is no process-wide singleton. Identifiers are unique within a store.
// The scoring core only reads from it; all mutation happens here.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/veridict/veridict/internal/model"
)

// Registry holds statements keyed by identifier with a category index
type Registry struct {
	mu         sync.RWMutex
	statements map[string]model.Statement
	byCategory map[string][]string
	order      []string
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		statements: make(map[string]model.Statement),
		byCategory: make(map[string][]string),
	}
}

// Register adds a statement. A statement without an id gets a generated one.
// Registering a duplicate id is an error.
func (r *Registry) Register(st model.Statement) (string, error) {
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	if err := st.Validate(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.statements[st.ID]; exists {
		return "", fmt.Errorf("statement %s already exists", st.ID)
	}
	r.statements[st.ID] = st
	r.byCategory[st.Category] = append(r.byCategory[st.Category], st.ID)
	r.order = append(r.order, st.ID)
	return st.ID, nil
}

// Get returns a copy of the statement with the given id
func (r *Registry) Get(id string) (model.Statement, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.statements[id]
	return st, ok
}

// ByCategory returns all statements in a category, in registration order
func (r *Registry) ByCategory(category string) []model.Statement {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.byCategory[category]
	out := make([]model.Statement, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.statements[id])
	}
	return out
}

// Verified returns all verified statements, in registration order
func (r *Registry) Verified() []model.Statement {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Statement
	for _, id := range r.order {
		if st := r.statements[id]; st.Verified {
			out = append(out, st)
		}
	}
	return out
}

// All returns every statement, in registration order
func (r *Registry) All() []model.Statement {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Statement, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.statements[id])
	}
	return out
}

// Count returns the number of stored statements
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.statements)
}

// Update applies fn to the stored statement with the given id. The id and
// category of a statement cannot change through Update.
func (r *Registry) Update(id string, fn func(*model.Statement)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.statements[id]
	if !ok {
		return fmt.Errorf("statement %s not found", id)
	}
	keepID, keepCategory := st.ID, st.Category
	fn(&st)
	st.ID, st.Category = keepID, keepCategory
	r.statements[id] = st
	return nil
}

// Report summarizes the registry contents
func (r *Registry) Report() model.RegistryReport {
	r.mu.RLock()
	defer r.mu.RUnlock()

	breakdown := make(map[string]int)
	verified := 0
	for _, st := range r.statements {
		breakdown[st.Category]++
		if st.Verified {
			verified++
		}
	}
	return model.RegistryReport{
		TotalStatements:    len(r.statements),
		VerifiedStatements: verified,
		Categories:         len(breakdown),
		CategoryBreakdown:  breakdown,
	}
}

// Categories returns the sorted list of categories present in the registry
func (r *Registry) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.byCategory))
	for category, ids := range r.byCategory {
		if len(ids) > 0 {
			out = append(out, category)
		}
	}
	sort.Strings(out)
	return out
}
