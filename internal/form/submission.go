// internal/form/submission.go
//
// Partido – Forms subsystem: submission pipeline.
//
// Context
//   One call does the whole public-form flow: fresh schema load, validator
//   build, validation, and a single insert into `form_submission`.  The
//   schema is re-read on every call so an admin edit applies to the very next
//   submission.  Validation failure returns the field batch and writes
//   nothing; only a fully-validated record ever reaches the table.
//
// Notes
//   •  The service does not deduplicate.  A retry after a storage failure may
//      insert twice; callers that care need their own dedup key.
//
//------------------------------------------------------------------------------

package form

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/votoclaro/partido-web/internal/metrics"
)

// Meta carries request metadata persisted alongside the record for the
// back-office submission list.  It never participates in validation.
type Meta struct {
	UserAgent string // raw User-Agent header
	Browser   string // parsed family: "Chrome", "Firefox", ...
	OS        string // "Windows", "Android", ...
	Device    string // "Computer", "Phone", "Tablet", ...
	IsBot     bool
	IP        string // client address, port stripped
}

// SubmissionService validates and stores public form submissions.
type SubmissionService struct {
	store *Store
	db    *sqlx.DB

	// Injectable for tests.
	now   func() time.Time
	newID func() string
}

// NewSubmissionService wires the service to a schema store and the shared DB
// pool used for the submission table.
func NewSubmissionService(store *Store, db *sqlx.DB) *SubmissionService {
	return &SubmissionService{
		store: store,
		db:    db,
		now:   func() time.Time { return time.Now().UTC() },
		newID: newSubmissionID,
	}
}

// Submit runs the full pipeline for formID.
//
// Return shape:
//   - accepted:           id, nil, nil
//   - validation failed:  "", errs, nil    (nothing written)
//   - anything else:      "", nil, err     (ErrUnknownForm or ErrStorage)
func (s *SubmissionService) Submit(ctx context.Context, formID string, raw map[string]any, meta Meta) (string, []FieldError, error) {
	schema, err := s.store.Load(ctx, formID)
	if err != nil {
		metrics.SubmissionTotal.WithLabelValues(formID, "error").Inc()
		return "", nil, err
	}

	record, ferrs := Build(schema.Fields).Validate(raw)
	if len(ferrs) > 0 {
		metrics.SubmissionTotal.WithLabelValues(formID, "rejected").Inc()
		return "", ferrs, nil
	}

	data, err := json.Marshal(record)
	if err != nil {
		metrics.SubmissionTotal.WithLabelValues(formID, "error").Inc()
		return "", nil, fmt.Errorf("%w: encode submission: %v", ErrStorage, err)
	}

	id := s.newID()
	const q = `
        INSERT INTO form_submission (id, form_id, submitted_at, data, user_agent, browser, os, device, is_bot, client_ip)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q, id, formID, s.now(), data,
		meta.UserAgent, meta.Browser, meta.OS, meta.Device, meta.IsBot, meta.IP); err != nil {
		metrics.SubmissionTotal.WithLabelValues(formID, "error").Inc()
		return "", nil, fmt.Errorf("%w: insert submission: %v", ErrStorage, err)
	}

	metrics.SubmissionTotal.WithLabelValues(formID, "accepted").Inc()
	return id, nil, nil
}

// idAlphabet matches the ids the site has always handed out: 24 characters of
// mixed-case alphanumerics.
const idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func newSubmissionID() string {
	b := make([]byte, 24)
	for i := range b {
		b[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return string(b)
}
