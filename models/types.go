package models

import "time"

// Results-visibility policies
const (
	RevealAfterVote  = "after-vote"
	RevealAfterClose = "after-close"
)

// Derived poll states. Never stored: always computed from the poll's
// window and closed flag (see the lifecycle package).
const (
	StateUpcoming = "upcoming"
	StateActive   = "active"
	StateClosed   = "closed"
)

// Choice-count bounds enforced at poll creation.
const (
	MinChoices = 2
	MaxChoices = 6
)

// Domain types

type Poll struct {
	ID            string     `json:"id"`
	Slug          string     `json:"slug,omitempty"`
	Question      string     `json:"question"`
	Choices       []Choice   `json:"choices"`
	AllowMultiple bool       `json:"allow_multiple"`
	ResultsPolicy string     `json:"results_policy"`
	OpensAt       *time.Time `json:"opens_at,omitempty"`  // nil means open immediately
	ClosesAt      *time.Time `json:"closes_at,omitempty"` // nil means open indefinitely
	Closed        bool       `json:"closed"`              // manual override, independent of the window
	ClosedAt      *time.Time `json:"closed_at,omitempty"`
	CreatedBy     string     `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
}

type Choice struct {
	ID       string `json:"id"`
	PollID   string `json:"poll_id"`
	Label    string `json:"label"`
	Position int    `json:"position"`
}

// Vote is one user's recorded selection(s) for a poll. At most one per
// (poll, user); single-select polls carry exactly one choice id.
type Vote struct {
	ID        string    `json:"id"`
	PollID    string    `json:"poll_id"`
	UserID    string    `json:"-"` // Never expose in JSON
	ChoiceIDs []string  `json:"choice_ids"`
	CreatedAt time.Time `json:"created_at"`
}

// Derived result types

type ChoiceResult struct {
	ChoiceID   string  `json:"choice_id"`
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Tally is recomputed from the vote set on demand; it is never the
// source of truth. TotalVoters counts vote records, not selections, so
// on a multi-select poll the per-choice percentages may sum past 100.
type Tally struct {
	PollID      string                  `json:"poll_id"`
	TotalVoters int                     `json:"total_voters"`
	Results     map[string]ChoiceResult `json:"results"`
}
