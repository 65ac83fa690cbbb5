// internal/form/defaults.go
//
// Built-in default schemas.
//
// The store seeds these the first time a form id is loaded with nothing
// persisted, so a fresh database serves working forms immediately.  The
// back-office edits the stored copy afterwards; these literals are never
// consulted again once a row exists.

package form

// defaults maps form id → seed field list.  A form id absent from this map is
// unknown to the engine.
var defaults = map[string][]FieldSpec{
	"afiliacion": {
		{ID: "af-nombre", Name: "nombre", Label: "Nombre", Type: TypeText, Required: true, Order: 1},
		{ID: "af-apellido", Name: "apellido", Label: "Apellido", Type: TypeText, Required: true, Order: 2},
		{ID: "af-dni", Name: "dni", Label: "DNI", Type: TypeNumber, Required: true, Order: 3,
			ValidationRegex:   `^\d{7,8}$`,
			ValidationMessage: "Ingresá tu DNI sin puntos, de 7 u 8 cifras."},
		{ID: "af-email", Name: "email", Label: "Correo electrónico", Type: TypeEmail, Required: true, Order: 4},
		{ID: "af-telefono", Name: "telefono", Label: "Teléfono", Type: TypeTel, Required: false, Order: 5,
			ValidationRegex:   `^\+?\d[\d\s-]{6,14}$`,
			ValidationMessage: "Ingresá un teléfono válido, con código de área."},
		{ID: "af-localidad", Name: "localidad", Label: "Localidad", Type: TypeText, Required: true, Order: 6},
		{ID: "af-acepta", Name: "acepta", Label: "Acepto la carta de principios del partido", Type: TypeCheckbox, Required: true, Order: 7},
	},
	"fiscalizacion": {
		{ID: "fi-nombre", Name: "nombre", Label: "Nombre y apellido", Type: TypeText, Required: true, Order: 1},
		{ID: "fi-dni", Name: "dni", Label: "DNI", Type: TypeNumber, Required: true, Order: 2,
			ValidationRegex:   `^\d{7,8}$`,
			ValidationMessage: "Ingresá tu DNI sin puntos, de 7 u 8 cifras."},
		{ID: "fi-email", Name: "email", Label: "Correo electrónico", Type: TypeEmail, Required: true, Order: 3},
		{ID: "fi-telefono", Name: "telefono", Label: "Teléfono", Type: TypeTel, Required: true, Order: 4},
		{ID: "fi-disponibilidad", Name: "disponibilidad", Label: "Disponibilidad horaria", Type: TypeRadio, Required: true, Order: 5,
			Options: []string{"completa", "parcial", "indistinta"}},
		{ID: "fi-experiencia", Name: "experiencia", Label: "¿Fiscalizaste antes?", Type: TypeSelect, Required: true, Order: 6,
			Options: []string{"si", "no"}},
		{ID: "fi-comentario", Name: "comentario", Label: "Comentarios", Type: TypeTextarea, Required: false, Order: 7},
	},
	"contacto": {
		{ID: "co-nombre", Name: "nombre", Label: "Nombre", Type: TypeText, Required: true, Order: 1},
		{ID: "co-email", Name: "email", Label: "Correo electrónico", Type: TypeEmail, Required: true, Order: 2},
		{ID: "co-mensaje", Name: "mensaje", Label: "Mensaje", Type: TypeTextarea, Required: true, Order: 3},
	},
}

// DefaultSchema returns a copy of the built-in schema for formID.  The copy is
// deep enough that callers may mutate fields and options freely.
func DefaultSchema(formID string) (*Schema, bool) {
	src, ok := defaults[formID]
	if !ok {
		return nil, false
	}
	fields := make([]FieldSpec, len(src))
	copy(fields, src)
	for i := range fields {
		if len(fields[i].Options) > 0 {
			fields[i].Options = append([]string(nil), fields[i].Options...)
		}
	}
	return &Schema{ID: formID, Fields: fields}, true
}

// KnownForm reports whether formID has a built-in default.
func KnownForm(formID string) bool {
	_, ok := defaults[formID]
	return ok
}
