// components/forms/forms.go
//
// Public forms component.
//
// Context
//   Serves the two endpoints the public pages need: the current field list
//   for a form (to render widgets) and the submission endpoint.  Validation
//   failures come back as a per-field batch the page renders inline; storage
//   problems are collapsed to one generic Spanish message so visitors never
//   see infrastructure details.
//
//------------------------------------------------------------------------------

package forms

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/votoclaro/partido-web/internal/form"
	"github.com/votoclaro/partido-web/internal/requestinfo"
)

const genericErrMsg = "Ocurrió un error. Intentá nuevamente más tarde."

// Comp wires the form engine to HTTP.
type Comp struct {
	store *form.Store
	svc   *form.SubmissionService
}

// New builds the component over the shared pool.
func New(db *sqlx.DB) *Comp {
	store := form.NewStore(db)
	return &Comp{store: store, svc: form.NewSubmissionService(store, db)}
}

func (c *Comp) Name() string  { return "forms" }
func (c *Comp) Mount() string { return "/api/forms" }

func (c *Comp) Migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS form_schema (
            form_id    VARCHAR(64) PRIMARY KEY,
            fields     JSON        NOT NULL,
            updated_at TIMESTAMP   NOT NULL DEFAULT CURRENT_TIMESTAMP
                       ON UPDATE CURRENT_TIMESTAMP
        )`,
		`CREATE TABLE IF NOT EXISTS form_submission (
            id           CHAR(24)     PRIMARY KEY,
            form_id      VARCHAR(64)  NOT NULL,
            submitted_at TIMESTAMP    NOT NULL,
            data         JSON         NOT NULL,
            user_agent   VARCHAR(512) NOT NULL DEFAULT '',
            browser      VARCHAR(64)  NOT NULL DEFAULT '',
            os           VARCHAR(64)  NOT NULL DEFAULT '',
            device       VARCHAR(32)  NOT NULL DEFAULT '',
            is_bot       BOOLEAN      NOT NULL DEFAULT FALSE,
            client_ip    VARCHAR(45)  NOT NULL DEFAULT '',
            KEY idx_form_submitted (form_id, submitted_at)
        )`,
	}
}

func (c *Comp) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{formID}", c.getSchema)
	r.Post("/{formID}", c.postSubmission)
	return r
}

// -----------------------------------------------------------------------------
// Handlers
// -----------------------------------------------------------------------------

// getSchema returns the current field list, seeding the default on first hit.
func (c *Comp) getSchema(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formID")

	schema, err := c.store.Load(r.Context(), formID)
	if err != nil {
		writeLoadError(w, formID, err)
		return
	}
	writeJSON(w, http.StatusOK, schema)
}

// postSubmission accepts a JSON object or a classic form post, validates it
// against the live schema, and stores the record.
func (c *Comp) postSubmission(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formID")

	raw, err := decodeInput(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false, "message": "Cuerpo de la solicitud inválido.",
		})
		return
	}

	meta := form.Meta{UserAgent: r.UserAgent()}
	if ri := requestinfo.FromContext(r.Context()); ri != nil {
		meta = form.Meta{
			UserAgent: ri.UA.Raw,
			Browser:   ri.UA.Browser,
			OS:        ri.UA.OS,
			Device:    ri.UA.Device,
			IsBot:     ri.UA.IsBot,
			IP:        ri.IP,
		}
	}

	id, ferrs, err := c.svc.Submit(r.Context(), formID, raw, meta)
	switch {
	case err != nil:
		writeLoadError(w, formID, err)
	case len(ferrs) > 0:
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success": false, "errors": ferrs,
		})
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true, "id": id,
		})
	}
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// decodeInput accepts application/json bodies from the SPA pages and falls
// back to url-encoded posts for no-script rendering.
func decodeInput(r *http.Request) (map[string]any, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			return nil, err
		}
		return raw, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	raw := make(map[string]any, len(r.PostForm))
	for k, vs := range r.PostForm {
		if len(vs) > 0 {
			raw[k] = vs[0]
		}
	}
	return raw, nil
}

func writeLoadError(w http.ResponseWriter, formID string, err error) {
	switch {
	case errors.Is(err, form.ErrUnknownForm):
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success": false, "message": "Formulario desconocido.",
		})
	default:
		zap.S().Errorw("form storage failure", "form", formID, "err", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"success": false, "message": genericErrMsg,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
