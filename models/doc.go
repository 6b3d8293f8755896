// Copyright (c) 2026 Creator Hub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain types shared across the module.

# Domain Types

  - Poll: question, owned choices, voting window, visibility policy
  - Choice: one selectable option, exclusively owned by its poll
  - Vote: one user's selections for a poll (at most one per poll/user)
  - Tally, ChoiceResult: derived counts and percentages

# Constants

Results-visibility policies:

	RevealAfterVote  = "after-vote"
	RevealAfterClose = "after-close"

Derived states (computed, never stored):

	StateUpcoming = "upcoming"
	StateActive   = "active"
	StateClosed   = "closed"

Choice bounds:

	MinChoices = 2
	MaxChoices = 6

# Optional Fields

OpensAt and ClosesAt are pointers: a nil OpensAt means the poll opens
immediately, a nil ClosesAt means it stays open until manually closed.
ClosedAt is set only when a poll is closed by an explicit admin action.
*/
package models
