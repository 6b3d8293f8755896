// Copyright (c) 2026 Creator Hub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pulse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/creatorhub/pulse/identity"
	"github.com/creatorhub/pulse/lifecycle"
	"github.com/creatorhub/pulse/models"
	"github.com/creatorhub/pulse/store"
)

// Manager is the poll lifecycle manager: every screen that needs to
// know what polls are open, cast a vote, or show results goes through
// it, so the lifecycle rules apply identically everywhere.
//
// All preconditions are checked before any write; a failed operation
// never partially applies. Nothing is retried automatically.
type Manager struct {
	store store.Store
	clock clockwork.Clock
	log   *slog.Logger
}

// New creates a Manager. A nil clock means wall time; a nil logger
// means slog.Default(). Tests pass a fake clock to sit on either side
// of a close deadline deterministically.
func New(st store.Store, clock clockwork.Clock, log *slog.Logger) *Manager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Manager{store: st, clock: clock, log: log}
}

// CreatePoll fills ids, positions, and the creation timestamp on
// draft, validates it, and persists it. The choice-count bounds (2-6)
// are enforced here, not just in authoring UIs.
func (m *Manager) CreatePoll(ctx context.Context, actor identity.Actor, draft models.Poll) (models.Poll, error) {
	if actor.IsAnonymous() {
		return models.Poll{}, ErrUnauthenticated
	}

	draft.ID = uuid.NewString()
	draft.CreatedBy = actor.UserID
	draft.CreatedAt = m.clock.Now().UTC()
	draft.Closed = false
	draft.ClosedAt = nil
	if draft.ResultsPolicy == "" {
		draft.ResultsPolicy = models.RevealAfterVote
	}
	for i := range draft.Choices {
		draft.Choices[i].ID = uuid.NewString()
		draft.Choices[i].PollID = draft.ID
		draft.Choices[i].Position = i
	}

	if err := lifecycle.ValidatePoll(draft); err != nil {
		return models.Poll{}, fmt.Errorf("%w: %v", ErrInvalidPoll, err)
	}

	if err := m.store.CreatePoll(ctx, draft); err != nil {
		return models.Poll{}, err
	}

	m.log.Info("poll created",
		"poll_id", draft.ID,
		"created_by", draft.CreatedBy,
		"choices", len(draft.Choices),
		"window", lifecycle.Describe(draft, m.clock.Now()),
	)
	return draft, nil
}

// ClosePoll closes a poll by explicit admin action, independent of its
// deadline. Closing an already closed poll is a no-op that keeps the
// original close time.
func (m *Manager) ClosePoll(ctx context.Context, actor identity.Actor, pollID string) (models.Poll, error) {
	if actor.IsAnonymous() {
		return models.Poll{}, ErrUnauthenticated
	}

	p, err := m.store.GetPoll(ctx, pollID)
	if err != nil {
		return models.Poll{}, err
	}
	if p.Closed {
		return p, nil
	}

	now := m.clock.Now().UTC()
	if err := m.store.ClosePoll(ctx, pollID, now); err != nil {
		return models.Poll{}, err
	}
	p.Closed = true
	p.ClosedAt = &now

	m.log.Info("poll closed", "poll_id", pollID, "closed_by", actor.UserID)
	return p, nil
}

// DeletePoll removes a poll together with its choices and votes.
func (m *Manager) DeletePoll(ctx context.Context, actor identity.Actor, pollID string) error {
	if actor.IsAnonymous() {
		return ErrUnauthenticated
	}
	if err := m.store.DeletePoll(ctx, pollID); err != nil {
		return err
	}
	m.log.Info("poll deleted", "poll_id", pollID, "deleted_by", actor.UserID)
	return nil
}

// Poll returns a single poll with its choices.
func (m *Manager) Poll(ctx context.Context, pollID string) (models.Poll, error) {
	return m.store.GetPoll(ctx, pollID)
}

// ListActive returns the open polls, soonest-to-close first.
func (m *Manager) ListActive(ctx context.Context) ([]models.Poll, error) {
	polls, err := m.store.ListPolls(ctx)
	if err != nil {
		return nil, err
	}
	return lifecycle.ListActive(polls, m.clock.Now()), nil
}

// ListClosed returns the closed polls, most recently closed first.
func (m *Manager) ListClosed(ctx context.Context) ([]models.Poll, error) {
	polls, err := m.store.ListPolls(ctx)
	if err != nil {
		return nil, err
	}
	return lifecycle.ListClosed(polls, m.clock.Now()), nil
}

// ListUpcoming returns the polls whose window has not opened yet.
func (m *Manager) ListUpcoming(ctx context.Context) ([]models.Poll, error) {
	polls, err := m.store.ListPolls(ctx)
	if err != nil {
		return nil, err
	}
	return lifecycle.ListUpcoming(polls, m.clock.Now()), nil
}

// CastVote records actor's selection on a poll. Preconditions, in
// order: authenticated actor, poll exists, poll open, selection valid,
// no existing vote. The insert itself is atomic; if a concurrent
// duplicate slips past the pre-check, the store's uniqueness constraint
// resolves it and the loser gets ErrAlreadyVoted, never a second row.
func (m *Manager) CastVote(ctx context.Context, actor identity.Actor, pollID string, choiceIDs []string) (models.Vote, error) {
	if actor.IsAnonymous() {
		return models.Vote{}, ErrUnauthenticated
	}

	p, err := m.store.GetPoll(ctx, pollID)
	if err != nil {
		return models.Vote{}, err
	}

	now := m.clock.Now()
	if !lifecycle.IsOpen(p, now) {
		return models.Vote{}, ErrPollClosed
	}

	if err := lifecycle.ValidateSelection(p, choiceIDs); err != nil {
		return models.Vote{}, fmt.Errorf("%w: %v", ErrInvalidChoice, err)
	}

	if _, err := m.store.GetVote(ctx, pollID, actor.UserID); err == nil {
		return models.Vote{}, ErrAlreadyVoted
	} else if !errors.Is(err, store.ErrNotFound) {
		return models.Vote{}, err
	}

	vote := models.Vote{
		ID:        uuid.NewString(),
		PollID:    pollID,
		UserID:    actor.UserID,
		ChoiceIDs: choiceIDs,
		CreatedAt: now.UTC(),
	}
	if err := m.store.InsertVoteIfAbsent(ctx, vote); err != nil {
		if errors.Is(err, store.ErrDuplicateVote) {
			return models.Vote{}, ErrAlreadyVoted
		}
		return models.Vote{}, err
	}

	m.log.Info("vote cast",
		"poll_id", pollID,
		"user_id", actor.UserID,
		"selections", len(choiceIDs),
		"window", lifecycle.Describe(p, now),
	)
	return vote, nil
}

// HasVoted reports whether actor has a recorded vote on the poll.
// Anonymous actors have never voted.
func (m *Manager) HasVoted(ctx context.Context, actor identity.Actor, pollID string) (bool, error) {
	if actor.IsAnonymous() {
		return false, nil
	}
	_, err := m.store.GetVote(ctx, pollID, actor.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CanSeeResults applies the poll's visibility policy to viewer.
func (m *Manager) CanSeeResults(ctx context.Context, viewer identity.Actor, pollID string) (bool, error) {
	p, err := m.store.GetPoll(ctx, pollID)
	if err != nil {
		return false, err
	}
	voted, err := m.HasVoted(ctx, viewer, pollID)
	if err != nil {
		return false, err
	}
	return lifecycle.CanSeeResults(p, voted, m.clock.Now()), nil
}

// Results returns the tally for a poll, or ErrResultsHidden when the
// visibility policy says viewer may not see it yet.
func (m *Manager) Results(ctx context.Context, viewer identity.Actor, pollID string) (models.Tally, error) {
	p, err := m.store.GetPoll(ctx, pollID)
	if err != nil {
		return models.Tally{}, err
	}
	voted, err := m.HasVoted(ctx, viewer, pollID)
	if err != nil {
		return models.Tally{}, err
	}
	if !lifecycle.CanSeeResults(p, voted, m.clock.Now()) {
		return models.Tally{}, ErrResultsHidden
	}

	votes, err := m.store.ListVotes(ctx, pollID)
	if err != nil {
		return models.Tally{}, err
	}
	return lifecycle.Tally(p, votes), nil
}
