// Copyright (c) 2026 Creator Hub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"time"

	"github.com/creatorhub/pulse/models"
)

var (
	// ErrNotFound is returned when a poll or vote does not exist.
	ErrNotFound = errors.New("not found in store")
	// ErrDuplicateVote is returned when a vote already exists for the
	// same (poll, user) pair. Callers treat it as "already voted".
	ErrDuplicateVote = errors.New("vote already recorded for this poll and user")
	// ErrUnavailable wraps transient infrastructure failures.
	ErrUnavailable = errors.New("store unavailable")
)

// Store is the persistence boundary for polls, choices, and votes.
// Choices travel inside their poll: they are exclusively owned, and
// deleting a poll deletes its choices and votes.
//
// InsertVoteIfAbsent must be atomic: two racing inserts for the same
// (poll, user) produce exactly one row, and the loser sees
// ErrDuplicateVote.
type Store interface {
	CreatePoll(ctx context.Context, poll models.Poll) error
	GetPoll(ctx context.Context, id string) (models.Poll, error)
	ListPolls(ctx context.Context) ([]models.Poll, error)
	ClosePoll(ctx context.Context, id string, at time.Time) error
	DeletePoll(ctx context.Context, id string) error

	InsertVoteIfAbsent(ctx context.Context, vote models.Vote) error
	GetVote(ctx context.Context, pollID, userID string) (models.Vote, error)
	ListVotes(ctx context.Context, pollID string) ([]models.Vote, error)

	Close() error
}
