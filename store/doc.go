// Copyright (c) 2026 Creator Hub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists polls, choices, and votes behind a small
repository interface.

# Implementations

Three implementations, selected by configuration via Open:

  - Memory: in-process maps, for tests and prototyping
  - SQL over SQLite (modernc.org/sqlite): single-file or in-memory
  - SQL over PostgreSQL (github.com/lib/pq)

	cfg, _ := cliparse.Load(os.Args[1:])
	st, err := store.Open(cfg)

# One Vote Per User

The one-vote-per-(poll, user) invariant is enforced by the store, not
by callers: a UNIQUE constraint on votes(poll_id, user_id) (a plain map
key in Memory). InsertVoteIfAbsent returns ErrDuplicateVote when the
row already exists, including when two submissions race - the loser's
insert fails at the constraint, never producing a second row.

# Tables

  - polls: definition, window, manual-close flag
  - choices: owned options, unique contiguous positions per poll
  - votes: one row per (poll, user)
  - vote_choices: selected choice ids per vote, written in the same
    transaction as the vote row

# Errors

ErrNotFound, ErrDuplicateVote, and ErrUnavailable are sentinels checked
with errors.Is; ErrUnavailable wraps the driver error for transient
infrastructure failures.
*/
package store
