// internal/form/store.go
//
// Partido – Forms subsystem: schema persistence.
//
// Context
//   One row per form id in `form_schema`, with the field list as a JSON
//   document.  Load returns the stored schema sorted by display order, seeding
//   the built-in default on first touch.  Save replaces the field list
//   wholesale; there is no per-field update and no optimistic concurrency
//   token, so the last admin to press save wins.  That behavior is documented
//   and deliberate.
//
// Workflow
//   •  Seeding uses INSERT IGNORE followed by a re-read, so two concurrent
//      first-loads cannot double-seed and both observe the winner's row.
//   •  Save runs the basic shape checks only (non-empty name and label, type
//      in the closed set).  Cross-field rules live in Admin.SaveSchema.
//
//------------------------------------------------------------------------------

package form

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/votoclaro/partido-web/internal/metrics"
)

// Store persists form schemas.  Safe for concurrent use; it holds only the
// shared *sqlx.DB pool.
type Store struct {
	db *sqlx.DB
}

// NewStore returns a Store bound to db.
func NewStore(db *sqlx.DB) *Store { return &Store{db: db} }

// Load returns the schema for formID with fields sorted by order ascending.
// When no row exists it seeds the built-in default and returns that.  A form
// id without a default fails with ErrUnknownForm; infrastructure failures
// wrap ErrStorage.
func (s *Store) Load(ctx context.Context, formID string) (*Schema, error) {
	const q = `SELECT fields FROM form_schema WHERE form_id = ?`

	var raw []byte
	err := s.db.GetContext(ctx, &raw, q, formID)
	if errors.Is(err, sql.ErrNoRows) {
		return s.seed(ctx, formID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load schema %q: %v", ErrStorage, formID, err)
	}
	return decodeSchema(formID, raw)
}

// Save replaces formID's field list wholesale.  Shape violations return a
// *SchemaError and write nothing.
func (s *Store) Save(ctx context.Context, formID string, fields []FieldSpec) error {
	if err := checkShape(fields); err != nil {
		return err
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("%w: encode schema %q: %v", ErrStorage, formID, err)
	}

	const q = `
        INSERT INTO form_schema (form_id, fields)
        VALUES (?, ?)
        ON DUPLICATE KEY UPDATE fields = VALUES(fields)`
	if _, err := s.db.ExecContext(ctx, q, formID, raw); err != nil {
		return fmt.Errorf("%w: save schema %q: %v", ErrStorage, formID, err)
	}

	metrics.SchemaSaveTotal.Inc()
	return nil
}

// seed writes the built-in default with a conditional insert and re-reads the
// row, so a racing seeder is harmless: exactly one insert lands, and every
// caller returns whatever the table now holds.
func (s *Store) seed(ctx context.Context, formID string) (*Schema, error) {
	def, ok := DefaultSchema(formID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownForm, formID)
	}

	raw, err := json.Marshal(def.Fields)
	if err != nil {
		return nil, fmt.Errorf("%w: encode default %q: %v", ErrStorage, formID, err)
	}

	const ins = `INSERT IGNORE INTO form_schema (form_id, fields) VALUES (?, ?)`
	res, err := s.db.ExecContext(ctx, ins, formID, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: seed schema %q: %v", ErrStorage, formID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		metrics.SchemaSeedTotal.Inc()
	}

	const sel = `SELECT fields FROM form_schema WHERE form_id = ?`
	var stored []byte
	if err := s.db.GetContext(ctx, &stored, sel, formID); err != nil {
		return nil, fmt.Errorf("%w: reread seeded schema %q: %v", ErrStorage, formID, err)
	}
	return decodeSchema(formID, stored)
}

func decodeSchema(formID string, raw []byte) (*Schema, error) {
	var fields []FieldSpec
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: decode schema %q: %v", ErrStorage, formID, err)
	}
	SortFields(fields)
	return &Schema{ID: formID, Fields: fields}, nil
}

// checkShape enforces the store-level rules only: every field needs a name, a
// label, and a type from the closed set.
func checkShape(fields []FieldSpec) error {
	var probs []SchemaProblem
	for _, f := range fields {
		switch {
		case f.Name == "":
			probs = append(probs, SchemaProblem{Field: f.Label, Reason: "missing name"})
		case f.Label == "":
			probs = append(probs, SchemaProblem{Field: f.Name, Reason: "missing label"})
		case !f.Type.Valid():
			probs = append(probs, SchemaProblem{Field: f.Name, Reason: "unknown type " + string(f.Type)})
		}
	}
	if len(probs) > 0 {
		return &SchemaError{Problems: probs}
	}
	return nil
}
