// internal/form/field.go
//
// Partido – Forms subsystem: field and schema models.
//
// Context
//   Every public form on the site (afiliación, fiscalización, contacto) is
//   described by data, not code.  An administrator edits the field list from
//   the back-office; the stored list drives both widget rendering and
//   server-side validation.  These structs are the single shape shared by the
//   store, the validator builder, and the HTTP components.
//
// Notes
//   •  JSON tags match the persisted document layout, so a stored field list
//      round-trips byte-for-byte through the admin editor.
//   •  Oxford commas, two spaces after periods.
//
//------------------------------------------------------------------------------

package form

import "sort"

// FieldType is the closed set of input kinds a field may declare.  The type
// decides coercion and which constraints apply; anything outside the set is
// rejected at save time.
type FieldType string

const (
	TypeText     FieldType = "text"
	TypeEmail    FieldType = "email"
	TypeTel      FieldType = "tel"
	TypeNumber   FieldType = "number"
	TypeTextarea FieldType = "textarea"
	TypeCheckbox FieldType = "checkbox"
	TypeRadio    FieldType = "radio"
	TypeSelect   FieldType = "select"
)

// Valid reports whether t belongs to the closed set.
func (t FieldType) Valid() bool {
	switch t {
	case TypeText, TypeEmail, TypeTel, TypeNumber, TypeTextarea,
		TypeCheckbox, TypeRadio, TypeSelect:
		return true
	}
	return false
}

// IsChoice reports whether the field value must be one of Options.
func (t FieldType) IsChoice() bool { return t == TypeRadio || t == TypeSelect }

// IsPattern reports whether a validationRegex applies to this type.  Email has
// its own base rule, and choice/checkbox values never match free-form
// patterns, so only the plain string kinds qualify.
func (t FieldType) IsPattern() bool {
	switch t {
	case TypeText, TypeTel, TypeNumber, TypeTextarea:
		return true
	}
	return false
}

// FieldSpec describes a single input control.  The admin editor manipulates
// these wholesale; the engine treats them as read-only once loaded.
//
// Name is the submission key.  Renaming a field after submissions exist
// orphans the historical values stored under the old name; the back-office
// warns about this but the engine does not police it.
type FieldSpec struct {
	ID                string    `json:"id,omitempty"`                // stable handle for editor diffing
	Name              string    `json:"name"`                       // submission key, unique per schema
	Label             string    `json:"label"`                      // display string
	Type              FieldType `json:"type"`                       // closed set, see FieldType
	Required          bool      `json:"required"`                   //
	Options           []string  `json:"options,omitempty"`          // radio/select only
	Order             int       `json:"order"`                      // ascending display order
	ValidationRegex   string    `json:"validationRegex,omitempty"`  // string kinds only
	ValidationMessage string    `json:"validationMessage,omitempty"`
}

// Schema is one form's ordered field list, keyed by the form id used across
// persistence and routing ("afiliacion", "fiscalizacion", ...).
type Schema struct {
	ID     string      `json:"id"`
	Fields []FieldSpec `json:"fields"`
}

// SortFields orders fields by Order ascending.  The sort is stable, so fields
// sharing an Order value keep their stored relative position.
func SortFields(fields []FieldSpec) {
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Order < fields[j].Order
	})
}
