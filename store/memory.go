// Copyright (c) 2026 Creator Hub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sync"
	"time"

	"golang.org/x/exp/slices"

	"github.com/creatorhub/pulse/models"
)

// Memory is an in-process Store for tests and prototyping. All reads
// return copies, so callers can't alias internal state.
type Memory struct {
	mu    sync.RWMutex
	polls map[string]models.Poll
	votes map[string]map[string]models.Vote // poll id -> user id -> vote
}

func NewMemory() *Memory {
	return &Memory{
		polls: make(map[string]models.Poll),
		votes: make(map[string]map[string]models.Vote),
	}
}

func clonePoll(p models.Poll) models.Poll {
	p.Choices = slices.Clone(p.Choices)
	if p.OpensAt != nil {
		t := *p.OpensAt
		p.OpensAt = &t
	}
	if p.ClosesAt != nil {
		t := *p.ClosesAt
		p.ClosesAt = &t
	}
	if p.ClosedAt != nil {
		t := *p.ClosedAt
		p.ClosedAt = &t
	}
	return p
}

func cloneVote(v models.Vote) models.Vote {
	v.ChoiceIDs = slices.Clone(v.ChoiceIDs)
	return v
}

func (m *Memory) CreatePoll(ctx context.Context, poll models.Poll) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.polls[poll.ID] = clonePoll(poll)
	return nil
}

func (m *Memory) GetPoll(ctx context.Context, id string) (models.Poll, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.polls[id]
	if !ok {
		return models.Poll{}, ErrNotFound
	}
	return clonePoll(p), nil
}

func (m *Memory) ListPolls(ctx context.Context) ([]models.Poll, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	polls := make([]models.Poll, 0, len(m.polls))
	for _, p := range m.polls {
		polls = append(polls, clonePoll(p))
	}
	slices.SortStableFunc(polls, func(a, b models.Poll) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmpString(a.ID, b.ID)
	})
	return polls, nil
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (m *Memory) ClosePoll(ctx context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.polls[id]
	if !ok {
		return ErrNotFound
	}
	if p.Closed {
		return nil
	}
	p.Closed = true
	p.ClosedAt = &at
	m.polls[id] = p
	return nil
}

func (m *Memory) DeletePoll(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.polls[id]; !ok {
		return ErrNotFound
	}
	delete(m.polls, id)
	delete(m.votes, id)
	return nil
}

func (m *Memory) InsertVoteIfAbsent(ctx context.Context, vote models.Vote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.polls[vote.PollID]; !ok {
		return ErrNotFound
	}
	byUser, ok := m.votes[vote.PollID]
	if !ok {
		byUser = make(map[string]models.Vote)
		m.votes[vote.PollID] = byUser
	}
	if _, ok := byUser[vote.UserID]; ok {
		return ErrDuplicateVote
	}
	byUser[vote.UserID] = cloneVote(vote)
	return nil
}

func (m *Memory) GetVote(ctx context.Context, pollID, userID string) (models.Vote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.votes[pollID][userID]
	if !ok {
		return models.Vote{}, ErrNotFound
	}
	return cloneVote(v), nil
}

func (m *Memory) ListVotes(ctx context.Context, pollID string) ([]models.Vote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byUser := m.votes[pollID]
	votes := make([]models.Vote, 0, len(byUser))
	for _, v := range byUser {
		votes = append(votes, cloneVote(v))
	}
	slices.SortStableFunc(votes, func(a, b models.Vote) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmpString(a.ID, b.ID)
	})
	return votes, nil
}

func (m *Memory) Close() error { return nil }
