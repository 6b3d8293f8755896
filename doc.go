// Copyright (c) 2026 Creator Hub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pulse is a poll lifecycle manager for community applications: a
library component that owns poll definitions, choice options, vote
records, and the rules for when results become visible. UI event
handlers call it directly; it exposes no wire protocol and no CLI.

# Getting Started

	cfg, err := cliparse.Load(os.Args[1:])
	st, err := store.Open(cfg)
	m := pulse.New(st, nil, nil) // wall clock, default logger

	actor := identity.Actor{UserID: "u-123"}
	poll, err := m.CreatePoll(ctx, actor, models.Poll{
		Question:      "Which engine do you build in?",
		Choices:       []models.Choice{{Label: "Unity"}, {Label: "Unreal"}},
		ResultsPolicy: models.RevealAfterVote,
	})

	vote, err := m.CastVote(ctx, actor, poll.ID, []string{poll.Choices[0].ID})
	tally, err := m.Results(ctx, actor, poll.ID)

# Architecture

The module separates policy from plumbing:

  - lifecycle: the canonical open/closed/visibility rules, pure functions
  - store: repository interface with memory, SQLite, and PostgreSQL backends
  - identity: explicit actor identity and HMAC token verification
  - cliparse: configuration (flags, env, .env)
  - models: shared domain types

Manager wires them together with an injectable clockwork.Clock, so
tests can stand two minutes before or after a deadline without waiting.

# Voting Rules

One vote per (poll, user), enforced by the store's uniqueness
constraint: a racing double-submission never produces two rows, and the
loser receives ErrAlreadyVoted, which UIs treat as a silent no-op.
Votes are never changed or deleted.

# Results Visibility

Two policies: "after-vote" reveals the tally to voters immediately and
to everyone once the poll closes; "after-close" reveals to no one until
the poll closes. Results reads return ErrResultsHidden until the policy
allows the viewer in.

# Errors

All failures are typed sentinels (ErrUnauthenticated, ErrPollClosed,
ErrAlreadyVoted, ErrInvalidChoice, ErrInvalidPoll, ErrResultsHidden,
ErrNotFound, ErrStoreUnavailable) checked with errors.Is. User-facing
messaging is the caller's job.
*/
package pulse
