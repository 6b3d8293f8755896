package pulse

import (
	"errors"

	"github.com/creatorhub/pulse/store"
)

// Sentinel errors returned by Manager operations, checked with
// errors.Is. The UI layer owns the messaging: ErrAlreadyVoted is benign
// (double-click, second tab) and should not surface as a failure;
// ErrStoreUnavailable is the only retryable one.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrPollClosed      = errors.New("poll is not open for voting")
	ErrAlreadyVoted    = errors.New("vote already cast for this poll")
	ErrInvalidChoice   = errors.New("invalid choice selection")
	ErrInvalidPoll     = errors.New("invalid poll definition")
	ErrResultsHidden   = errors.New("results are not visible yet")

	ErrNotFound         = store.ErrNotFound
	ErrStoreUnavailable = store.ErrUnavailable
)
