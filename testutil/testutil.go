// Copyright (c) 2026 Creator Hub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package testutil provides shared fixtures for the module's tests:
// deterministic clocks, poll builders, and store seeding helpers.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/creatorhub/pulse/models"
	"github.com/creatorhub/pulse/store"
)

// Epoch is the base instant for fake clocks, so tests agree on "now".
var Epoch = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

// NewFakeClock returns a fake clock frozen at Epoch.
func NewFakeClock() *clockwork.FakeClock {
	return clockwork.NewFakeClockAt(Epoch)
}

// TimePtr returns a pointer to t, for the optional window fields.
func TimePtr(t time.Time) *time.Time {
	return &t
}

// Poll builds a valid single-select poll with one choice per label,
// created at Epoch with the after-vote policy. mutate, if non-nil, can
// adjust the poll before it is returned.
func Poll(question string, labels []string, mutate func(*models.Poll)) models.Poll {
	p := models.Poll{
		ID:            uuid.NewString(),
		Question:      question,
		ResultsPolicy: models.RevealAfterVote,
		CreatedBy:     "test-admin",
		CreatedAt:     Epoch,
	}
	for i, label := range labels {
		p.Choices = append(p.Choices, models.Choice{
			ID:       uuid.NewString(),
			PollID:   p.ID,
			Label:    label,
			Position: i,
		})
	}
	if mutate != nil {
		mutate(&p)
	}
	return p
}

// CreateTestPoll builds a poll with Poll and persists it.
func CreateTestPoll(t *testing.T, st store.Store, question string, labels []string, mutate func(*models.Poll)) models.Poll {
	t.Helper()

	p := Poll(question, labels, mutate)
	if err := st.CreatePoll(context.Background(), p); err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return p
}

// CastTestVote inserts a vote directly into the store, bypassing the
// manager's preconditions.
func CastTestVote(t *testing.T, st store.Store, pollID, userID string, choiceIDs ...string) models.Vote {
	t.Helper()

	v := models.Vote{
		ID:        uuid.NewString(),
		PollID:    pollID,
		UserID:    userID,
		ChoiceIDs: choiceIDs,
		CreatedAt: Epoch,
	}
	if err := st.InsertVoteIfAbsent(context.Background(), v); err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}
	return v
}
