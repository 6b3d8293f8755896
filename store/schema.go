// Copyright (c) 2026 Creator Hub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed by the SQL store.
// Safe to call multiple times - uses IF NOT EXISTS. Statements are
// executed one at a time so the same schema works on both PostgreSQL
// and SQLite.
func CreateSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

var schema = []string{
	// Polls. Timestamps are always written by the application, never
	// defaulted by the database, so both engines behave identically.
	`CREATE TABLE IF NOT EXISTS polls (
		id TEXT PRIMARY KEY,
		slug TEXT NOT NULL,
		question TEXT NOT NULL,
		allow_multiple BOOLEAN NOT NULL,
		results_policy TEXT NOT NULL,
		opens_at TIMESTAMP,
		closes_at TIMESTAMP,
		closed BOOLEAN NOT NULL,
		closed_at TIMESTAMP,
		created_by TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,

	// Choices, exclusively owned by their poll
	`CREATE TABLE IF NOT EXISTS choices (
		id TEXT PRIMARY KEY,
		poll_id TEXT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
		label TEXT NOT NULL,
		position INTEGER NOT NULL,
		UNIQUE (poll_id, position)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_choices_poll_id ON choices(poll_id)`,

	// Votes. The UNIQUE constraint is the one-vote-per-user guarantee:
	// racing duplicate casts resolve here, not in application locks.
	`CREATE TABLE IF NOT EXISTS votes (
		id TEXT PRIMARY KEY,
		poll_id TEXT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		UNIQUE (poll_id, user_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_votes_poll_id ON votes(poll_id)`,

	// Selected choices per vote, written in the same transaction as
	// the vote row
	`CREATE TABLE IF NOT EXISTS vote_choices (
		vote_id TEXT NOT NULL REFERENCES votes(id) ON DELETE CASCADE,
		choice_id TEXT NOT NULL REFERENCES choices(id) ON DELETE CASCADE,
		PRIMARY KEY (vote_id, choice_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_vote_choices_choice_id ON vote_choices(choice_id)`,
}
