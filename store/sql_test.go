package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// newSQLiteStore opens an in-memory SQLite database so the SQL store
// runs in tests without an external server. A pool of one connection
// keeps every query on the same in-memory database.
func newSQLiteStore(t *testing.T) *SQL {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)

	s, err := NewSQL(db)
	if err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLPollCRUD(t *testing.T) {
	exercisePollCRUD(t, newSQLiteStore(t))
}

func TestSQLVotes(t *testing.T) {
	exerciseVotes(t, newSQLiteStore(t))
}

func TestSQLWindowRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newSQLiteStore(t)

	opens := testEpoch.Add(-time.Minute)
	closes := testEpoch.Add(7 * 24 * time.Hour)

	p := makePoll("pw", "A", "B")
	p.AllowMultiple = true
	p.OpensAt = &opens
	p.ClosesAt = &closes
	if err := st.CreatePoll(ctx, p); err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}

	got, err := st.GetPoll(ctx, "pw")
	if err != nil {
		t.Fatalf("GetPoll failed: %v", err)
	}
	if !got.AllowMultiple {
		t.Error("AllowMultiple did not round-trip")
	}
	if got.OpensAt == nil || !got.OpensAt.Equal(opens) {
		t.Errorf("OpensAt = %v, want %v", got.OpensAt, opens)
	}
	if got.ClosesAt == nil || !got.ClosesAt.Equal(closes) {
		t.Errorf("ClosesAt = %v, want %v", got.ClosesAt, closes)
	}
	if got.ClosedAt != nil {
		t.Errorf("ClosedAt = %v, want nil", got.ClosedAt)
	}
}

func TestSQLVoteChoicesOrderedByPosition(t *testing.T) {
	ctx := context.Background()
	st := newSQLiteStore(t)

	p := makePoll("po", "A", "B", "C")
	if err := st.CreatePoll(ctx, p); err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}

	// Insert selections out of position order
	v := makeVote("vo", "po", "carol", "po-c2", "po-c0")
	if err := st.InsertVoteIfAbsent(ctx, v); err != nil {
		t.Fatalf("InsertVoteIfAbsent failed: %v", err)
	}

	got, err := st.GetVote(ctx, "po", "carol")
	if err != nil {
		t.Fatalf("GetVote failed: %v", err)
	}
	if len(got.ChoiceIDs) != 2 || got.ChoiceIDs[0] != "po-c0" || got.ChoiceIDs[1] != "po-c2" {
		t.Errorf("ChoiceIDs = %v, want [po-c0 po-c2] ordered by position", got.ChoiceIDs)
	}
}

func TestSQLConcurrentDuplicateVotes(t *testing.T) {
	ctx := context.Background()
	st := newSQLiteStore(t)

	p := makePoll("pc", "A", "B")
	if err := st.CreatePoll(ctx, p); err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}

	attempts := 10
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			v := makeVote(fmt.Sprintf("dup-%d", n), "pc", "alice", "pc-c0")
			err := st.InsertVoteIfAbsent(ctx, v)
			if err == nil {
				successCount.Add(1)
			} else if !errors.Is(err, ErrDuplicateVote) {
				t.Errorf("Unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful insert, got %d", successCount.Load())
	}
	votes, err := st.ListVotes(ctx, "pc")
	if err != nil {
		t.Fatalf("ListVotes failed: %v", err)
	}
	if len(votes) != 1 {
		t.Errorf("Expected exactly 1 stored vote, got %d", len(votes))
	}
}
