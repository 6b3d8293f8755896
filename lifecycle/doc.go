// Copyright (c) 2026 Creator Hub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package lifecycle holds the canonical poll lifecycle policy: pure
functions over models types, with no storage, clock, or UI dependencies.
Every caller that needs to know whether a poll is open, what its derived
state is, or whether results may be shown goes through this package, so
the rules exist exactly once.

# Predicates

	IsOpen(poll, now)                    // may votes be cast right now
	Status(poll, now)                    // upcoming | active | closed
	CanSeeResults(poll, hasVoted, now)   // visibility policy applied

The closing boundary is exclusive: IsOpen(p, closesAt) == false, and a
manually closed poll is closed regardless of its timestamps.

# List Views

	ListActive(polls, now)    // open polls, soonest-to-close first
	ListClosed(polls, now)    // closed polls, most recently closed first
	ListUpcoming(polls, now)  // not-yet-open polls, soonest-to-open first

All three recompute on every call; poll counts are small.

# Validation

	ValidatePoll(poll)                 // structural invariants (2-6 choices, window, policy)
	ValidateSelection(poll, choiceIDs) // select-mode and membership rules

# Results

	Tally(poll, votes)

Counts and percentages per choice, computed against the number of
voters (vote records), not the number of selections. Zero votes yields
zero percentages, never a divide-by-zero.
*/
package lifecycle
