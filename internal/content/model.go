// internal/content/model.go
//
// Models for the editorial side of the site: news posts, homepage sections,
// and the singleton site-configuration document.  Sections and the config are
// schemaless JSON documents; the admin UI owns their inner shape.

package content

import (
	"encoding/json"
	"time"
)

// News mirrors one row in the `news` table.
type News struct {
	ID          int64      `db:"id"           json:"id"`
	Slug        string     `db:"slug"         json:"slug"`
	Title       string     `db:"title"        json:"title"`
	Summary     string     `db:"summary"      json:"summary"`
	Body        string     `db:"body"         json:"body"`
	Published   bool       `db:"published"    json:"published"`
	PublishedAt *time.Time `db:"published_at" json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `db:"created_at"   json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at"   json:"updatedAt"`
}

// Section is one named homepage block (hero, propuestas, referentes, ...).
// Position orders blocks top to bottom; Data is the block's own document.
type Section struct {
	Name      string          `db:"name"       json:"name"`
	Position  int             `db:"position"   json:"position"`
	Data      json.RawMessage `db:"data"       json:"data"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

// SiteConfig is the singleton configuration document: party name, contact
// addresses, social links.  Stored as a single JSON row.
type SiteConfig struct {
	Data      json.RawMessage `db:"data"       json:"data"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}
