// internal/form/validator.go
//
// Partido – Forms subsystem: schema-driven validator.
//
// Context
//   Form shapes are edited at runtime, so validation rules cannot live in
//   structs and tags.  Build compiles a stored field list into a Validator
//   whose only prepared artifact is the per-field regexp; everything else is a
//   small closed set of checks (presence, pattern, option membership) applied
//   in a fixed order at validate time.  No admin-supplied content is ever
//   evaluated as code.
//
// Workflow
//   •  Build runs once per request that needs validation.  An invalid admin
//      pattern is logged and dropped so one typo never takes a live form
//      offline; the field simply loses its extra constraint.
//   •  Validate walks the schema fields, never the input keys, so unknown
//      input is silently dropped.  Every field is checked even after earlier
//      ones fail, and the full error batch is returned together.
//   •  Go's regexp is RE2: linear-time matching, so a hostile pattern cannot
//      stall the worker.
//
// Notes
//   •  User-facing messages are Spanish; the public site renders them as-is.
//   •  Oxford commas, two spaces after periods.
//
//------------------------------------------------------------------------------

package form

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// compiledField pairs a FieldSpec with its prepared pattern.  re is nil when
// the field declares none, the type does not take one, or compilation failed.
type compiledField struct {
	spec FieldSpec
	re   *regexp.Regexp
}

// Validator checks raw submissions against one compiled schema.  It is cheap
// to build and is rebuilt per call on purpose: admin edits must take effect on
// the very next submission, so nothing here is cached across requests.
type Validator struct {
	fields []compiledField
}

// Build compiles fields into a Validator.  It never fails: a field whose
// validationRegex does not compile keeps its other rules and logs a warning.
func Build(fields []FieldSpec) *Validator {
	v := &Validator{fields: make([]compiledField, 0, len(fields))}
	for _, f := range fields {
		cf := compiledField{spec: f}
		if f.Type.IsPattern() && f.ValidationRegex != "" {
			re, err := regexp.Compile(f.ValidationRegex)
			if err != nil {
				zap.S().Warnw("field pattern does not compile, constraint skipped",
					"field", f.Name, "pattern", f.ValidationRegex, "err", err)
			} else {
				cf.re = re
			}
		}
		v.fields = append(v.fields, cf)
	}
	return v
}

// Validate checks input against the compiled schema.
//
// On success it returns a record holding exactly the schema's fields: string
// values for string kinds, bool for checkboxes, and optional empty fields
// omitted (checkboxes default to false instead).  On failure it returns a nil
// record and one FieldError per offending field, in schema order.
func (v *Validator) Validate(input map[string]any) (map[string]any, []FieldError) {
	record := make(map[string]any, len(v.fields))
	var errs []FieldError

	for _, cf := range v.fields {
		f := cf.spec
		raw := input[f.Name]

		if f.Type == TypeCheckbox {
			checked := coerceBool(raw)
			if f.Required && !checked {
				errs = append(errs, requiredError(f))
				continue
			}
			record[f.Name] = checked
			continue
		}

		// Choice membership is exact: no trimming, no case folding.  The
		// trimmed form only decides presence and feeds the string rules.
		exact := coerceString(raw)
		val := strings.TrimSpace(exact)

		// Presence first; it short-circuits the rest of this field's rules.
		if val == "" {
			if f.Required {
				errs = append(errs, requiredError(f))
			}
			continue
		}

		if f.Type == TypeEmail {
			if _, err := mail.ParseAddress(val); err != nil {
				errs = append(errs, FieldError{
					Field:   f.Name,
					Kind:    ErrorFormat,
					Message: fmt.Sprintf("Ingresá un correo electrónico válido en %q.", f.Label),
				})
				continue
			}
		}

		if cf.re != nil && !cf.re.MatchString(val) {
			errs = append(errs, FieldError{
				Field:   f.Name,
				Kind:    ErrorFormat,
				Message: formatMessage(f),
			})
			continue
		}

		if f.Type.IsChoice() {
			if !optionAllowed(f.Options, exact) {
				errs = append(errs, FieldError{
					Field:   f.Name,
					Kind:    ErrorChoice,
					Message: fmt.Sprintf("El valor de %q no es una opción válida.", f.Label),
				})
				continue
			}
			record[f.Name] = exact
			continue
		}

		record[f.Name] = val
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return record, nil
}

// -----------------------------------------------------------------------------
// Coercion helpers
// -----------------------------------------------------------------------------

// coerceString flattens the loosely-typed values a JSON or form post can carry
// into the string the schema expects.  Numbers arrive as float64 from
// encoding/json; "number" fields stay strings on purpose, matching how the
// site has always stored them.  Structured values coerce to empty and fall
// under the presence rule.
func coerceString(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		// Avoid the %v exponent form for large integers.
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case int:
		return fmt.Sprintf("%d", v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// coerceBool accepts the shapes a checkbox reaches the server as: a JSON
// bool, or the "on"/"true"/"1" strings an HTML post produces.  Anything else,
// including absence, is unchecked.
func coerceBool(raw any) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "on", "true", "1":
			return true
		}
	}
	return false
}

func optionAllowed(opts []string, val string) bool {
	for _, o := range opts {
		if o == val {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------
// Message helpers
// -----------------------------------------------------------------------------

func requiredError(f FieldSpec) FieldError {
	return FieldError{
		Field:   f.Name,
		Kind:    ErrorRequired,
		Message: fmt.Sprintf("El campo %q es obligatorio.", f.Label),
	}
}

func formatMessage(f FieldSpec) string {
	if f.ValidationMessage != "" {
		return f.ValidationMessage
	}
	return fmt.Sprintf("El formato de %q no es válido.", f.Label)
}
