// Package database centralises the sqlx connection helpers.  The site runs on
// MySQL (MariaDB works unchanged); schemas and submission records live in
// JSON columns, so no other driver features are assumed.
//
// Both helpers Ping before returning so a bad DSN fails at boot, not on the
// first request.
package database

import (
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// Open returns a pool with defaults sized for one small site: 10 open, 4
// idle, 30-minute connection lifetime.
func Open(dsn string) (*sqlx.DB, error) {
	return OpenWithOptions(dsn, 10, 4)
}

// OpenWithOptions lets callers tune pool sizes, mainly for tests and tools.
func OpenWithOptions(dsn string, maxOpen, maxIdle int) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}
