// components/content/content.go
//
// Public content component: news listing and detail, homepage sections, and
// the site configuration document.  Read-only; the mutating endpoints live in
// the admin component.

package content

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/votoclaro/partido-web/internal/content"
)

// Comp serves the public read endpoints.
type Comp struct {
	repo *content.Repository
}

func New(db *sqlx.DB) *Comp { return &Comp{repo: content.NewRepository(db)} }

func (c *Comp) Name() string  { return "content" }
func (c *Comp) Mount() string { return "/api" }

func (c *Comp) Migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS news (
            id           BIGINT       PRIMARY KEY AUTO_INCREMENT,
            slug         VARCHAR(120) NOT NULL UNIQUE,
            title        VARCHAR(255) NOT NULL,
            summary      TEXT         NOT NULL,
            body         MEDIUMTEXT   NOT NULL,
            published    BOOLEAN      NOT NULL DEFAULT FALSE,
            published_at TIMESTAMP    NULL,
            created_at   TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at   TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP
                         ON UPDATE CURRENT_TIMESTAMP
        )`,
		`CREATE TABLE IF NOT EXISTS site_section (
            name       VARCHAR(64) PRIMARY KEY,
            position   INT         NOT NULL DEFAULT 0,
            data       JSON        NOT NULL,
            updated_at TIMESTAMP   NOT NULL DEFAULT CURRENT_TIMESTAMP
                       ON UPDATE CURRENT_TIMESTAMP
        )`,
		`CREATE TABLE IF NOT EXISTS site_config (
            id         TINYINT   PRIMARY KEY,
            data       JSON      NOT NULL,
            updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
                       ON UPDATE CURRENT_TIMESTAMP
        )`,
	}
}

func (c *Comp) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/news", c.listNews)
	r.Get("/news/{slug}", c.getNews)
	r.Get("/sections", c.listSections)
	r.Get("/config", c.getConfig)
	return r
}

func (c *Comp) listNews(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := c.repo.PublishedNews(r.Context(), limit)
	if err != nil {
		serverError(w, "news list", err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (c *Comp) getNews(w http.ResponseWriter, r *http.Request) {
	n, err := c.repo.NewsBySlug(r.Context(), chi.URLParam(r, "slug"))
	if errors.Is(err, content.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		serverError(w, "news detail", err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (c *Comp) listSections(w http.ResponseWriter, r *http.Request) {
	rows, err := c.repo.Sections(r.Context())
	if err != nil {
		serverError(w, "sections", err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (c *Comp) getConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := c.repo.SiteConfig(r.Context())
	if errors.Is(err, content.ErrNotFound) {
		// An unconfigured site answers with an empty document, not a 404,
		// so the front end renders with defaults.
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{}})
		return
	}
	if err != nil {
		serverError(w, "site config", err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func serverError(w http.ResponseWriter, what string, err error) {
	zap.S().Errorw("content query failed", "what", what, "err", err)
	http.Error(w, "error interno", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
