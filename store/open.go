// Copyright (c) 2026 Creator Hub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/creatorhub/pulse/cliparse"
)

// Open selects and opens a Store from configuration, so callers never
// hard-wire a storage backend.
func Open(cfg cliparse.Config) (Store, error) {
	switch cfg.StoreDriver {
	case cliparse.DriverMemory:
		return NewMemory(), nil

	case cliparse.DriverSQLite:
		db, err := sql.Open("sqlite", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// modernc's in-memory databases live per connection; a pool of
		// one keeps every query on the same database.
		db.SetMaxOpenConns(1)
		if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
		s, err := NewSQL(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		return s, nil

	case cliparse.DriverPostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: ping postgres: %v", ErrUnavailable, err)
		}
		s, err := NewSQL(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		return s, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
