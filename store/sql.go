// Copyright (c) 2026 Creator Hub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/creatorhub/pulse/models"
)

// SQL is a Store backed by database/sql. The same implementation serves
// PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite): both accept $n
// placeholders, and the schema avoids engine-specific defaults.
type SQL struct {
	db *sql.DB
}

// NewSQL wraps an open database handle and ensures the schema exists.
func NewSQL(db *sql.DB) (*SQL, error) {
	if err := CreateSchema(db); err != nil {
		return nil, err
	}
	return &SQL{db: db}, nil
}

// isDuplicate matches the unique-violation messages of both engines.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}

func (s *SQL) CreatePoll(ctx context.Context, poll models.Poll) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin create poll", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO polls (id, slug, question, allow_multiple, results_policy,
		                   opens_at, closes_at, closed, closed_at, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, poll.ID, poll.Slug, poll.Question, poll.AllowMultiple, poll.ResultsPolicy,
		poll.OpensAt, poll.ClosesAt, poll.Closed, poll.ClosedAt, poll.CreatedBy, poll.CreatedAt)
	if err != nil {
		return unavailable("insert poll", err)
	}

	for _, c := range poll.Choices {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO choices (id, poll_id, label, position)
			VALUES ($1, $2, $3, $4)
		`, c.ID, poll.ID, c.Label, c.Position)
		if err != nil {
			return unavailable("insert choice", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return unavailable("commit create poll", err)
	}
	return nil
}

func (s *SQL) scanPoll(row *sql.Row) (models.Poll, error) {
	var p models.Poll
	err := row.Scan(
		&p.ID, &p.Slug, &p.Question, &p.AllowMultiple, &p.ResultsPolicy,
		&p.OpensAt, &p.ClosesAt, &p.Closed, &p.ClosedAt, &p.CreatedBy, &p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Poll{}, ErrNotFound
	}
	if err != nil {
		return models.Poll{}, unavailable("scan poll", err)
	}
	return p, nil
}

func (s *SQL) loadChoices(ctx context.Context, pollID string) ([]models.Choice, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, poll_id, label, position
		FROM choices
		WHERE poll_id = $1
		ORDER BY position
	`, pollID)
	if err != nil {
		return nil, unavailable("query choices", err)
	}
	defer rows.Close()

	var choices []models.Choice
	for rows.Next() {
		var c models.Choice
		if err := rows.Scan(&c.ID, &c.PollID, &c.Label, &c.Position); err != nil {
			return nil, unavailable("scan choice", err)
		}
		choices = append(choices, c)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate choices", err)
	}
	return choices, nil
}

func (s *SQL) GetPoll(ctx context.Context, id string) (models.Poll, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, slug, question, allow_multiple, results_policy,
		       opens_at, closes_at, closed, closed_at, created_by, created_at
		FROM polls
		WHERE id = $1
	`, id)
	p, err := s.scanPoll(row)
	if err != nil {
		return models.Poll{}, err
	}
	p.Choices, err = s.loadChoices(ctx, p.ID)
	if err != nil {
		return models.Poll{}, err
	}
	return p, nil
}

func (s *SQL) ListPolls(ctx context.Context) ([]models.Poll, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, slug, question, allow_multiple, results_policy,
		       opens_at, closes_at, closed, closed_at, created_by, created_at
		FROM polls
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, unavailable("query polls", err)
	}
	defer rows.Close()

	var polls []models.Poll
	for rows.Next() {
		var p models.Poll
		err := rows.Scan(
			&p.ID, &p.Slug, &p.Question, &p.AllowMultiple, &p.ResultsPolicy,
			&p.OpensAt, &p.ClosesAt, &p.Closed, &p.ClosedAt, &p.CreatedBy, &p.CreatedAt,
		)
		if err != nil {
			return nil, unavailable("scan poll", err)
		}
		polls = append(polls, p)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate polls", err)
	}

	for i := range polls {
		polls[i].Choices, err = s.loadChoices(ctx, polls[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return polls, nil
}

func (s *SQL) ClosePoll(ctx context.Context, id string, at time.Time) error {
	var closed bool
	err := s.db.QueryRowContext(ctx, `SELECT closed FROM polls WHERE id = $1`, id).Scan(&closed)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return unavailable("query poll", err)
	}
	if closed {
		// keep the original close time
		return nil
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE polls SET closed = $1, closed_at = $2 WHERE id = $3
	`, true, at, id)
	if err != nil {
		return unavailable("close poll", err)
	}
	return nil
}

func (s *SQL) DeletePoll(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin delete poll", err)
	}
	defer tx.Rollback()

	// Delete dependents explicitly rather than leaning on cascades:
	// SQLite only enforces foreign keys when the pragma is on for the
	// connection, and the pool hands out many connections.
	_, err = tx.ExecContext(ctx, `
		DELETE FROM vote_choices WHERE vote_id IN (SELECT id FROM votes WHERE poll_id = $1)
	`, id)
	if err != nil {
		return unavailable("delete vote choices", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM votes WHERE poll_id = $1`, id); err != nil {
		return unavailable("delete votes", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM choices WHERE poll_id = $1`, id); err != nil {
		return unavailable("delete choices", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM polls WHERE id = $1`, id)
	if err != nil {
		return unavailable("delete poll", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return unavailable("delete poll", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return unavailable("commit delete poll", err)
	}
	return nil
}

func (s *SQL) InsertVoteIfAbsent(ctx context.Context, vote models.Vote) error {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM polls WHERE id = $1)
	`, vote.PollID).Scan(&exists)
	if err != nil {
		return unavailable("query poll", err)
	}
	if !exists {
		return ErrNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin insert vote", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO votes (id, poll_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, vote.ID, vote.PollID, vote.UserID, vote.CreatedAt)
	if isDuplicate(err) {
		return ErrDuplicateVote
	}
	if err != nil {
		return unavailable("insert vote", err)
	}

	for _, choiceID := range vote.ChoiceIDs {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO vote_choices (vote_id, choice_id)
			VALUES ($1, $2)
		`, vote.ID, choiceID)
		if err != nil {
			return unavailable("insert vote choice", err)
		}
	}

	if err := tx.Commit(); err != nil {
		if isDuplicate(err) {
			return ErrDuplicateVote
		}
		return unavailable("commit insert vote", err)
	}
	return nil
}

func (s *SQL) loadVoteChoices(ctx context.Context, voteID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT vc.choice_id
		FROM vote_choices vc
		JOIN choices c ON c.id = vc.choice_id
		WHERE vc.vote_id = $1
		ORDER BY c.position
	`, voteID)
	if err != nil {
		return nil, unavailable("query vote choices", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, unavailable("scan vote choice", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate vote choices", err)
	}
	return ids, nil
}

func (s *SQL) GetVote(ctx context.Context, pollID, userID string) (models.Vote, error) {
	var v models.Vote
	err := s.db.QueryRowContext(ctx, `
		SELECT id, poll_id, user_id, created_at
		FROM votes
		WHERE poll_id = $1 AND user_id = $2
	`, pollID, userID).Scan(&v.ID, &v.PollID, &v.UserID, &v.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Vote{}, ErrNotFound
	}
	if err != nil {
		return models.Vote{}, unavailable("query vote", err)
	}
	v.ChoiceIDs, err = s.loadVoteChoices(ctx, v.ID)
	if err != nil {
		return models.Vote{}, err
	}
	return v, nil
}

func (s *SQL) ListVotes(ctx context.Context, pollID string) ([]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, poll_id, user_id, created_at
		FROM votes
		WHERE poll_id = $1
		ORDER BY created_at, id
	`, pollID)
	if err != nil {
		return nil, unavailable("query votes", err)
	}
	defer rows.Close()

	var votes []models.Vote
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.PollID, &v.UserID, &v.CreatedAt); err != nil {
			return nil, unavailable("scan vote", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate votes", err)
	}

	for i := range votes {
		votes[i].ChoiceIDs, err = s.loadVoteChoices(ctx, votes[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return votes, nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}
