// internal/form/errors.go
//
// Partido – Forms subsystem: error taxonomy.
//
// Context
//   Two very different failure families meet in this package.  Field errors
//   are expected, user-correctable conditions: they are plain values collected
//   into a batch and rendered next to the offending inputs, never returned as
//   Go errors.  Schema and storage problems are operator conditions: they are
//   real errors, distinguishable with errors.Is / errors.As, and the web layer
//   maps them to a generic "try again later" page instead of a field message.
//
//------------------------------------------------------------------------------

package form

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a single field failure.
type ErrorKind string

const (
	// ErrorRequired marks a required field that was absent or empty, or a
	// required checkbox left unchecked.
	ErrorRequired ErrorKind = "required"
	// ErrorFormat marks a regex mismatch or a malformed email address.
	ErrorFormat ErrorKind = "format"
	// ErrorChoice marks a radio/select value outside the option list.
	ErrorChoice ErrorKind = "choice"
)

// FieldError is one user-visible validation failure.  Message is already in
// the site locale and safe to show verbatim next to the input.
type FieldError struct {
	Field   string    `json:"field"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// Sentinels for the non-user failure families.  Wrap with %w so callers can
// test with errors.Is.
var (
	// ErrUnknownForm means the form id has no stored schema and no built-in
	// default.  This is a caller bug, not end-user input.
	ErrUnknownForm = errors.New("form: unknown form id")

	// ErrStorage wraps any backing-store failure so the web layer never
	// confuses an outage with bad user input.
	ErrStorage = errors.New("form: storage failure")
)

// SchemaProblem names one field that violates a schema rule.
type SchemaProblem struct {
	Field  string `json:"field"`  // offending field name (may repeat for dups)
	Reason string `json:"reason"` // short machine-stable reason
}

// SchemaError reports that a field list failed shape or consistency checks.
// It is returned by Store.Save (basic shape) and Admin.SaveSchema (duplicate
// names, empty option lists).  Nothing is persisted when it is returned.
type SchemaError struct {
	Problems []SchemaProblem
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, fmt.Sprintf("%s: %s", p.Field, p.Reason))
	}
	return "form: invalid schema (" + strings.Join(parts, "; ") + ")"
}

// AsSchemaError unwraps err into a *SchemaError when possible.
func AsSchemaError(err error) (*SchemaError, bool) {
	var se *SchemaError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
