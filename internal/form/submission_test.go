// internal/form/submission_test.go
//
// Unit-tests for the submission pipeline using sqlmock.  The clock and id
// generator are injected so the insert arguments are fully deterministic.

package form

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

const insSubmission = `INSERT INTO form_submission (id, form_id, submitted_at, data, user_agent, browser, os, device, is_bot, client_ip) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func newService(t *testing.T) (*SubmissionService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	sdb := sqlx.NewDb(db, "sqlmock")
	svc := NewSubmissionService(NewStore(sdb), sdb)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	svc.newID = func() string { return "test000000000000000000id" }
	return svc, mock
}

func expectSchema(t *testing.T, mock sqlmock.Sqlmock, formID string, fields []FieldSpec) {
	t.Helper()
	mock.ExpectQuery(regexp.QuoteMeta(selSchema)).
		WithArgs(formID).
		WillReturnRows(sqlmock.NewRows([]string{"fields"}).AddRow(mustJSON(t, fields)))
}

func TestSubmit_Accepted(t *testing.T) {
	svc, mock := newService(t)

	fields := []FieldSpec{
		{Name: "nombre", Label: "Nombre", Type: TypeText, Required: true, Order: 1},
	}
	expectSchema(t, mock, "contacto", fields)

	wantData, _ := json.Marshal(map[string]any{"nombre": "Ana"})
	mock.ExpectExec(regexp.QuoteMeta(insSubmission)).
		WithArgs("test000000000000000000id", "contacto",
			time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), wantData,
			"Mozilla/5.0", "", "", "", false, "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, ferrs, err := svc.Submit(context.Background(), "contacto",
		map[string]any{"nombre": "Ana"}, Meta{UserAgent: "Mozilla/5.0"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(ferrs) != 0 {
		t.Fatalf("unexpected field errors: %v", ferrs)
	}
	if id != "test000000000000000000id" {
		t.Fatalf("id = %q", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSubmit_ValidationFailureWritesNothing(t *testing.T) {
	svc, mock := newService(t)

	fields := []FieldSpec{
		{Name: "nombre", Label: "Nombre", Type: TypeText, Required: true, Order: 1},
		{Name: "email", Label: "Email", Type: TypeEmail, Required: true, Order: 2},
	}
	expectSchema(t, mock, "contacto", fields)

	id, ferrs, err := svc.Submit(context.Background(), "contacto",
		map[string]any{}, Meta{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if id != "" {
		t.Fatalf("id returned on failure: %q", id)
	}
	if len(ferrs) != 2 {
		t.Fatalf("expected 2 field errors, got %v", ferrs)
	}
	// The schema SELECT is the only statement allowed; any insert would be
	// an unmet expectation here.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("validation failure produced SQL: %v", err)
	}
}

func TestSubmit_UsesFreshSchemaPerCall(t *testing.T) {
	svc, mock := newService(t)

	// First call: nombre required, so the empty input fails.
	expectSchema(t, mock, "contacto", []FieldSpec{
		{Name: "nombre", Label: "Nombre", Type: TypeText, Required: true, Order: 1},
	})
	_, ferrs, err := svc.Submit(context.Background(), "contacto", map[string]any{}, Meta{})
	if err != nil || len(ferrs) != 1 {
		t.Fatalf("first call: ferrs=%v err=%v", ferrs, err)
	}

	// Admin relaxed the field between calls; the same input now passes.
	expectSchema(t, mock, "contacto", []FieldSpec{
		{Name: "nombre", Label: "Nombre", Type: TypeText, Required: false, Order: 1},
	})
	wantData, _ := json.Marshal(map[string]any{})
	mock.ExpectExec(regexp.QuoteMeta(insSubmission)).
		WithArgs("test000000000000000000id", "contacto",
			time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), wantData,
			"", "", "", "", false, "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if _, ferrs, err = svc.Submit(context.Background(), "contacto", map[string]any{}, Meta{}); err != nil || len(ferrs) != 0 {
		t.Fatalf("second call: ferrs=%v err=%v", ferrs, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSubmit_PersistsRequestMetadata(t *testing.T) {
	svc, mock := newService(t)

	expectSchema(t, mock, "contacto", []FieldSpec{
		{Name: "nombre", Label: "Nombre", Type: TypeText, Required: true, Order: 1},
	})

	wantData, _ := json.Marshal(map[string]any{"nombre": "Ana"})
	mock.ExpectExec(regexp.QuoteMeta(insSubmission)).
		WithArgs("test000000000000000000id", "contacto",
			time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), wantData,
			"Mozilla/5.0 Chrome/120", "Chrome", "Windows", "Computer", false, "203.0.113.9").
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, ferrs, err := svc.Submit(context.Background(), "contacto",
		map[string]any{"nombre": "Ana"}, Meta{
			UserAgent: "Mozilla/5.0 Chrome/120",
			Browser:   "Chrome",
			OS:        "Windows",
			Device:    "Computer",
			IP:        "203.0.113.9",
		})
	if err != nil || len(ferrs) != 0 {
		t.Fatalf("Submit: ferrs=%v err=%v", ferrs, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSubmit_StorageFailureDistinct(t *testing.T) {
	svc, mock := newService(t)

	expectSchema(t, mock, "contacto", []FieldSpec{
		{Name: "nombre", Label: "Nombre", Type: TypeText, Required: true, Order: 1},
	})
	mock.ExpectExec(regexp.QuoteMeta(insSubmission)).
		WillReturnError(errors.New("server has gone away"))

	_, ferrs, err := svc.Submit(context.Background(), "contacto",
		map[string]any{"nombre": "Ana"}, Meta{})
	if len(ferrs) != 0 {
		t.Fatalf("storage failure must not surface as field errors: %v", ferrs)
	}
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

func TestSubmit_UnknownForm(t *testing.T) {
	svc, mock := newService(t)

	mock.ExpectQuery(regexp.QuoteMeta(selSchema)).
		WithArgs("inexistente").
		WillReturnRows(sqlmock.NewRows([]string{"fields"})) // no rows

	_, _, err := svc.Submit(context.Background(), "inexistente", map[string]any{}, Meta{})
	if !errors.Is(err, ErrUnknownForm) {
		t.Fatalf("expected ErrUnknownForm, got %v", err)
	}
}

func TestNewSubmissionID_Shape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := newSubmissionID()
		if len(id) != 24 {
			t.Fatalf("id length = %d", len(id))
		}
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}
