// internal/form/admin.go
//
// Partido – Forms subsystem: back-office schema editing.
//
// Context
//   The admin editor loads a schema, rearranges fields in memory, and saves
//   the whole list back.  Cross-field consistency lives here, above the
//   store: duplicate submission keys and choice fields without options are
//   rejected with a structured error naming every offender, and nothing is
//   persisted.  The store's own shape checks still run afterwards.
//
//------------------------------------------------------------------------------

package form

import (
	"context"
	"fmt"
)

// Admin orchestrates schema edits.
type Admin struct {
	store *Store
}

// NewAdmin returns the editing facade over store.
func NewAdmin(store *Store) *Admin { return &Admin{store: store} }

// LoadSchema is the editor's read path; identical to Store.Load.
func (a *Admin) LoadSchema(ctx context.Context, formID string) (*Schema, error) {
	return a.store.Load(ctx, formID)
}

// SaveSchema validates cross-field rules and persists the full field list.
// Violations return a *SchemaError listing every offending field; the prior
// schema stays untouched.
func (a *Admin) SaveSchema(ctx context.Context, formID string, fields []FieldSpec) error {
	if !KnownForm(formID) {
		return fmt.Errorf("%w: %q", ErrUnknownForm, formID)
	}

	var probs []SchemaProblem
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name != "" && seen[f.Name] {
			probs = append(probs, SchemaProblem{Field: f.Name, Reason: "duplicate name"})
		}
		seen[f.Name] = true

		if f.Type.IsChoice() && len(f.Options) == 0 {
			probs = append(probs, SchemaProblem{Field: f.Name, Reason: "choice field without options"})
		}
	}
	if len(probs) > 0 {
		return &SchemaError{Problems: probs}
	}

	return a.store.Save(ctx, formID, fields)
}
