// components/admin/admin.go
//
// Back-office component.
//
// Context
//   Mutating endpoints for everything the editors manage: form schemas, news
//   posts, homepage sections, and the site configuration.  Schema saves run
//   the full consistency checks (duplicate names, choice fields without
//   options) and answer 422 with the offending fields so the editor can
//   highlight them.  Authentication is terminated upstream by the reverse
//   proxy; this component never sees credentials.
//
//------------------------------------------------------------------------------

package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/votoclaro/partido-web/internal/content"
	"github.com/votoclaro/partido-web/internal/form"
)

// Comp serves /api/admin.
type Comp struct {
	admin *form.Admin
	repo  *content.Repository
}

func New(db *sqlx.DB) *Comp {
	return &Comp{
		admin: form.NewAdmin(form.NewStore(db)),
		repo:  content.NewRepository(db),
	}
}

func (c *Comp) Name() string  { return "admin" }
func (c *Comp) Mount() string { return "/api/admin" }

// Migrations: none; the tables belong to the forms and content components.
func (c *Comp) Migrations() []string { return nil }

func (c *Comp) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/forms/{formID}", c.getSchema)
	r.Put("/forms/{formID}", c.putSchema)

	r.Get("/news", c.listNews)
	r.Post("/news", c.postNews)
	r.Put("/news/{id}", c.putNews)
	r.Delete("/news/{id}", c.deleteNews)

	r.Put("/sections/{name}", c.putSection)
	r.Put("/config", c.putConfig)
	return r
}

// -----------------------------------------------------------------------------
// Form schema editing
// -----------------------------------------------------------------------------

func (c *Comp) getSchema(w http.ResponseWriter, r *http.Request) {
	schema, err := c.admin.LoadSchema(r.Context(), chi.URLParam(r, "formID"))
	if err != nil {
		c.schemaError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schema)
}

func (c *Comp) putSchema(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Fields []form.FieldSpec `json:"fields"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	err := c.admin.SaveSchema(r.Context(), chi.URLParam(r, "formID"), body.Fields)
	if err != nil {
		c.schemaError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// schemaError maps engine errors onto admin-facing responses.  Unlike the
// public side, editors do see the structured problem list.
func (c *Comp) schemaError(w http.ResponseWriter, err error) {
	if se, ok := form.AsSchemaError(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error": "invalid schema", "problems": se.Problems,
		})
		return
	}
	if errors.Is(err, form.ErrUnknownForm) {
		http.Error(w, "unknown form id", http.StatusNotFound)
		return
	}
	zap.S().Errorw("admin schema operation failed", "err", err)
	http.Error(w, "storage failure", http.StatusServiceUnavailable)
}

// -----------------------------------------------------------------------------
// News editing
// -----------------------------------------------------------------------------

func (c *Comp) listNews(w http.ResponseWriter, r *http.Request) {
	rows, err := c.repo.AllNews(r.Context())
	if err != nil {
		storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (c *Comp) postNews(w http.ResponseWriter, r *http.Request) {
	var n content.News
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	id, err := c.repo.InsertNews(r.Context(), &n)
	if err != nil {
		storageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "slug": n.Slug})
}

func (c *Comp) putNews(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var n content.News
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	n.ID = id

	switch err := c.repo.UpdateNews(r.Context(), &n); {
	case errors.Is(err, content.ErrNotFound):
		http.NotFound(w, r)
	case err != nil:
		storageError(w, err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (c *Comp) deleteNews(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	switch err := c.repo.DeleteNews(r.Context(), id); {
	case errors.Is(err, content.ErrNotFound):
		http.NotFound(w, r)
	case err != nil:
		storageError(w, err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// -----------------------------------------------------------------------------
// Sections and site configuration
// -----------------------------------------------------------------------------

func (c *Comp) putSection(w http.ResponseWriter, r *http.Request) {
	var s content.Section
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	s.Name = chi.URLParam(r, "name")

	if err := c.repo.SaveSection(r.Context(), &s); err != nil {
		storageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *Comp) putConfig(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := c.repo.SaveSiteConfig(r.Context(), body.Data); err != nil {
		storageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func storageError(w http.ResponseWriter, err error) {
	zap.S().Errorw("admin storage failure", "err", err)
	http.Error(w, "storage failure", http.StatusServiceUnavailable)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
