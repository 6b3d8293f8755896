// Copyright (c) 2026 Creator Hub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/exp/slices"

	"github.com/creatorhub/pulse/models"
)

// IsOpen reports whether votes may be cast on p at instant now.
// A poll is open iff it is not manually closed, its opening time (if
// any) has been reached, and its closing time (if any) has not.
// The closing instant is exclusive: IsOpen is false exactly at ClosesAt.
func IsOpen(p models.Poll, now time.Time) bool {
	if p.Closed {
		return false
	}
	if p.OpensAt != nil && now.Before(*p.OpensAt) {
		return false
	}
	if p.ClosesAt != nil && !now.Before(*p.ClosesAt) {
		return false
	}
	return true
}

// Status derives the observer-visible state of p at instant now.
// Transitions are monotonic: upcoming, then active, then closed.
func Status(p models.Poll, now time.Time) string {
	if p.Closed {
		return models.StateClosed
	}
	if p.OpensAt != nil && now.Before(*p.OpensAt) {
		return models.StateUpcoming
	}
	if p.ClosesAt != nil && !now.Before(*p.ClosesAt) {
		return models.StateClosed
	}
	return models.StateActive
}

// CanSeeResults reports whether a viewer may see the tally for p at
// instant now. Under "after-close" the viewer's own vote is irrelevant;
// under "after-vote" voting early buys early visibility. Closed polls
// always reveal. Unrecognized policies fall back to "after-vote".
func CanSeeResults(p models.Poll, hasVoted bool, now time.Time) bool {
	if p.ResultsPolicy == models.RevealAfterClose {
		return !IsOpen(p, now)
	}
	return hasVoted || !IsOpen(p, now)
}

// closedTime is the instant a closed poll stopped accepting votes: the
// manual close time when an admin closed it, otherwise the deadline.
func closedTime(p models.Poll) time.Time {
	if p.ClosedAt != nil {
		return *p.ClosedAt
	}
	if p.ClosesAt != nil {
		return *p.ClosesAt
	}
	return p.CreatedAt
}

// ListActive returns the polls open at now, soonest-to-close first.
// Polls with no deadline sort last; ties break by creation time
// ascending. The input slice is not modified.
func ListActive(polls []models.Poll, now time.Time) []models.Poll {
	var active []models.Poll
	for _, p := range polls {
		if IsOpen(p, now) {
			active = append(active, p)
		}
	}
	slices.SortStableFunc(active, func(a, b models.Poll) int {
		switch {
		case a.ClosesAt == nil && b.ClosesAt == nil:
			return a.CreatedAt.Compare(b.CreatedAt)
		case a.ClosesAt == nil:
			return 1
		case b.ClosesAt == nil:
			return -1
		}
		if c := a.ClosesAt.Compare(*b.ClosesAt); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return active
}

// ListClosed returns the polls closed at now, most recently closed
// first. Polls that have not yet opened appear in neither ListActive
// nor ListClosed; see ListUpcoming.
func ListClosed(polls []models.Poll, now time.Time) []models.Poll {
	var closed []models.Poll
	for _, p := range polls {
		if Status(p, now) == models.StateClosed {
			closed = append(closed, p)
		}
	}
	slices.SortStableFunc(closed, func(a, b models.Poll) int {
		if c := closedTime(b).Compare(closedTime(a)); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return closed
}

// ListUpcoming returns the polls whose window has not opened at now,
// soonest-to-open first.
func ListUpcoming(polls []models.Poll, now time.Time) []models.Poll {
	var upcoming []models.Poll
	for _, p := range polls {
		if Status(p, now) == models.StateUpcoming {
			upcoming = append(upcoming, p)
		}
	}
	slices.SortStableFunc(upcoming, func(a, b models.Poll) int {
		if c := a.OpensAt.Compare(*b.OpensAt); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return upcoming
}

// ValidatePoll checks the structural invariants of a poll definition:
// a non-empty question, between models.MinChoices and models.MaxChoices
// labeled choices with unique contiguous positions, a known results
// policy, and a coherent voting window.
func ValidatePoll(p models.Poll) error {
	if p.Question == "" {
		return errors.New("question is required")
	}
	if len(p.Choices) < models.MinChoices || len(p.Choices) > models.MaxChoices {
		return fmt.Errorf("poll must have between %d and %d choices, got %d",
			models.MinChoices, models.MaxChoices, len(p.Choices))
	}
	seen := make(map[string]bool, len(p.Choices))
	for i, c := range p.Choices {
		if c.Label == "" {
			return fmt.Errorf("choice %d has an empty label", i)
		}
		if c.ID == "" {
			return fmt.Errorf("choice %d has an empty id", i)
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate choice id %q", c.ID)
		}
		seen[c.ID] = true
		if c.Position != i {
			return fmt.Errorf("choice positions must be contiguous from 0, got %d at index %d", c.Position, i)
		}
	}
	switch p.ResultsPolicy {
	case models.RevealAfterVote, models.RevealAfterClose:
	default:
		return fmt.Errorf("unknown results policy %q", p.ResultsPolicy)
	}
	if p.OpensAt != nil && p.ClosesAt != nil && !p.ClosesAt.After(*p.OpensAt) {
		return errors.New("closing time must be after opening time")
	}
	return nil
}

// ValidateSelection checks choiceIDs against the poll's select mode and
// choice set: non-empty, no duplicates, exactly one entry for
// single-select polls, and every id owned by the poll.
func ValidateSelection(p models.Poll, choiceIDs []string) error {
	if len(choiceIDs) == 0 {
		return errors.New("no choice selected")
	}
	if !p.AllowMultiple && len(choiceIDs) > 1 {
		return fmt.Errorf("poll allows a single choice, got %d", len(choiceIDs))
	}
	known := make(map[string]bool, len(p.Choices))
	for _, c := range p.Choices {
		known[c.ID] = true
	}
	seen := make(map[string]bool, len(choiceIDs))
	for _, id := range choiceIDs {
		if !known[id] {
			return fmt.Errorf("choice %q does not belong to this poll", id)
		}
		if seen[id] {
			return fmt.Errorf("choice %q selected twice", id)
		}
		seen[id] = true
	}
	return nil
}

// Describe renders the poll's window as a short human-readable phrase
// relative to now, for log lines and status badges.
func Describe(p models.Poll, now time.Time) string {
	switch Status(p, now) {
	case models.StateUpcoming:
		return "opens " + humanize.RelTime(*p.OpensAt, now, "ago", "from now")
	case models.StateClosed:
		return "closed " + humanize.RelTime(closedTime(p), now, "ago", "from now")
	default:
		if p.ClosesAt == nil {
			return "open indefinitely"
		}
		return "closes " + humanize.RelTime(*p.ClosesAt, now, "ago", "from now")
	}
}
