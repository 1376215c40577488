package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/veridict/veridict/internal/model"
)

// Export writes all statements to a JSON file keyed by identifier
func (r *Registry) Export(path string) error {
	r.mu.RLock()
	data := make(map[string]model.Statement, len(r.statements))
	for id, st := range r.statements {
		data[id] = st
	}
	r.mu.RUnlock()

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode statements: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Import loads statements from a JSON file previously written by Export.
// Existing entries with the same id are replaced.
func (r *Registry) Import(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	var data map[string]model.Statement
	if err := json.Unmarshal(raw, &data); err != nil {
		return 0, fmt.Errorf("decode %s: %w", path, err)
	}

	// Deterministic load order for a stable registry walk afterwards
	ids := make([]string, 0, len(data))
	for id := range data {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		st := data[id]
		if st.ID == "" {
			st.ID = id
		}
		if _, exists := r.statements[id]; !exists {
			r.order = append(r.order, id)
			r.byCategory[st.Category] = append(r.byCategory[st.Category], id)
		}
		r.statements[id] = st
	}
	return len(data), nil
}
