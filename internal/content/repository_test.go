// internal/content/repository_test.go
//
// Repository tests over sqlmock.  Focus: not-found mapping, auto-slugging on
// insert, the JSON-validity guard on the document writes, and the upsert
// statements the admin depends on.

package content

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

var newsCols = []string{
	"id", "slug", "title", "summary", "body", "published",
	"published_at", "created_at", "updated_at",
}

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestPublishedNews_DefaultLimit(t *testing.T) {
	repo, mock := newRepo(t)

	now := time.Now()
	rows := sqlmock.NewRows(newsCols).
		AddRow(1, "acto-de-cierre", "Acto de cierre", "", "cuerpo", true, now, now, now)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, slug, title, summary, body, published, published_at, created_at, updated_at FROM news WHERE published = TRUE ORDER BY published_at DESC LIMIT ?`)).
		WithArgs(20).
		WillReturnRows(rows)

	list, err := repo.PublishedNews(context.Background(), 0)
	if err != nil {
		t.Fatalf("PublishedNews: %v", err)
	}
	if len(list) != 1 || list[0].Slug != "acto-de-cierre" {
		t.Fatalf("list = %+v", list)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestNewsBySlug_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, slug, title, summary, body, published, published_at, created_at, updated_at FROM news WHERE slug = ? LIMIT 1`)).
		WithArgs("no-existe").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.NewsBySlug(context.Background(), "no-existe")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInsertNews_AutoSlug(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO news (slug, title, summary, body, published, published_at) VALUES (?, ?, ?, ?, ?, ?)`)).
		WithArgs("nueva-sede-en-cordoba", "Nueva sede en Córdoba", "", "cuerpo", false, nil).
		WillReturnResult(sqlmock.NewResult(7, 1))

	n := &News{Title: "Nueva sede en Córdoba", Body: "cuerpo"}
	id, err := repo.InsertNews(context.Background(), n)
	if err != nil {
		t.Fatalf("InsertNews: %v", err)
	}
	if id != 7 {
		t.Fatalf("id = %d", id)
	}
	if n.Slug != "nueva-sede-en-cordoba" {
		t.Fatalf("slug = %q", n.Slug)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestUpdateNews_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE news SET slug = ?, title = ?, summary = ?, body = ?, published = ?, published_at = ? WHERE id = ?`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateNews(context.Background(), &News{ID: 99, Slug: "x", Title: "X"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteNews_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM news WHERE id = ?`)).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteNews(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveSection_RejectsBadJSON(t *testing.T) {
	repo, mock := newRepo(t)

	err := repo.SaveSection(context.Background(), &Section{Name: "hero", Data: []byte("{oops")})
	if err == nil {
		t.Fatal("expected error for invalid JSON payload")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("invalid payload reached the database: %v", err)
	}
}

func TestSaveSection_Upserts(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO site_section (name, position, data) VALUES (?, ?, ?) ON DUPLICATE KEY UPDATE position = VALUES(position), data = VALUES(data)`)).
		WithArgs("hero", 1, []byte(`{"titulo":"Sumate"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveSection(context.Background(), &Section{
		Name: "hero", Position: 1, Data: []byte(`{"titulo":"Sumate"}`),
	})
	if err != nil {
		t.Fatalf("SaveSection: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSiteConfig_NotFoundBeforeFirstSave(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT data, updated_at FROM site_config WHERE id = 1`)).
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.SiteConfig(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveSiteConfig_Upserts(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO site_config (id, data) VALUES (1, ?) ON DUPLICATE KEY UPDATE data = VALUES(data)`)).
		WithArgs([]byte(`{"partido":"Voto Claro"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SaveSiteConfig(context.Background(), []byte(`{"partido":"Voto Claro"}`)); err != nil {
		t.Fatalf("SaveSiteConfig: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
