// internal/content/repository.go
//
// sqlx repository for news, homepage sections, and the site configuration.
// Queries follow the usual house pattern: a const q per method, context-aware
// sqlx calls, and no caching; the admin edits must be visible on the next
// public read.

package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a slug or id matches nothing.
var ErrNotFound = errors.New("content: not found")

// Repository bundles the content queries over one shared pool.
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository { return &Repository{db: db} }

// -----------------------------------------------------------------------------
// News
// -----------------------------------------------------------------------------

// PublishedNews returns published posts, newest first.  limit <= 0 means a
// default page of 20.
func (r *Repository) PublishedNews(ctx context.Context, limit int) ([]News, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
        SELECT id, slug, title, summary, body, published, published_at, created_at, updated_at
        FROM   news
        WHERE  published = TRUE
        ORDER  BY published_at DESC
        LIMIT  ?`
	var rows []News
	if err := r.db.SelectContext(ctx, &rows, q, limit); err != nil {
		return nil, err
	}
	return rows, nil
}

// AllNews returns every post for the back-office list, newest first.
func (r *Repository) AllNews(ctx context.Context) ([]News, error) {
	const q = `
        SELECT id, slug, title, summary, body, published, published_at, created_at, updated_at
        FROM   news
        ORDER  BY created_at DESC`
	var rows []News
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// NewsBySlug fetches a single post.
func (r *Repository) NewsBySlug(ctx context.Context, slug string) (*News, error) {
	const q = `
        SELECT id, slug, title, summary, body, published, published_at, created_at, updated_at
        FROM   news
        WHERE  slug = ?
        LIMIT  1`
	var n News
	err := r.db.GetContext(ctx, &n, q, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// InsertNews stores a new post and returns its id.  An empty slug is derived
// from the title.
func (r *Repository) InsertNews(ctx context.Context, n *News) (int64, error) {
	if n.Slug == "" {
		n.Slug = MakeSlug(n.Title)
	}
	const q = `
        INSERT INTO news (slug, title, summary, body, published, published_at)
        VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		n.Slug, n.Title, n.Summary, n.Body, n.Published, n.PublishedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateNews overwrites a post wholesale, mirroring how the editor saves.
func (r *Repository) UpdateNews(ctx context.Context, n *News) error {
	const q = `
        UPDATE news
        SET    slug = ?, title = ?, summary = ?, body = ?, published = ?, published_at = ?
        WHERE  id = ?`
	res, err := r.db.ExecContext(ctx, q,
		n.Slug, n.Title, n.Summary, n.Body, n.Published, n.PublishedAt, n.ID)
	if err != nil {
		return err
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteNews removes a post by id.
func (r *Repository) DeleteNews(ctx context.Context, id int64) error {
	const q = `DELETE FROM news WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

// -----------------------------------------------------------------------------
// Homepage sections
// -----------------------------------------------------------------------------

// Sections returns every homepage block ordered by position.
func (r *Repository) Sections(ctx context.Context) ([]Section, error) {
	const q = `
        SELECT name, position, data, updated_at
        FROM   site_section
        ORDER  BY position ASC`
	var rows []Section
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// SaveSection upserts one block wholesale.
func (r *Repository) SaveSection(ctx context.Context, s *Section) error {
	if !json.Valid(s.Data) {
		return fmt.Errorf("section %q: payload is not valid JSON", s.Name)
	}
	const q = `
        INSERT INTO site_section (name, position, data)
        VALUES (?, ?, ?)
        ON DUPLICATE KEY UPDATE position = VALUES(position), data = VALUES(data)`
	_, err := r.db.ExecContext(ctx, q, s.Name, s.Position, s.Data)
	return err
}

// -----------------------------------------------------------------------------
// Site configuration (singleton)
// -----------------------------------------------------------------------------

// SiteConfig returns the configuration document, or ErrNotFound before the
// first save.
func (r *Repository) SiteConfig(ctx context.Context) (*SiteConfig, error) {
	const q = `SELECT data, updated_at FROM site_config WHERE id = 1`
	var c SiteConfig
	err := r.db.GetContext(ctx, &c, q)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// SaveSiteConfig upserts the singleton row.
func (r *Repository) SaveSiteConfig(ctx context.Context, data json.RawMessage) error {
	if !json.Valid(data) {
		return errors.New("site config: payload is not valid JSON")
	}
	const q = `
        INSERT INTO site_config (id, data)
        VALUES (1, ?)
        ON DUPLICATE KEY UPDATE data = VALUES(data)`
	_, err := r.db.ExecContext(ctx, q, data)
	return err
}
