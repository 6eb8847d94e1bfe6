package ports

import (
	"context"
	"time"

	"github.com/voteflow/poll-system/internal/core/domain"
)

// PollSummary is the list view of a poll. It intentionally has no ballot
// field: the list endpoint only ever exposes aggregate option counts, never
// who voted for what.
type PollSummary struct {
	ID          string
	Title       string
	Description string
	CreatedAt   time.Time
	Creator     string
	Options     []domain.Option
	Multiple    bool
}

// CreatePollInput carries all data needed to create a new poll.
// Creator is the authenticated username; Options are display texts.
type CreatePollInput struct {
	Creator     string
	Title       string
	Description string
	Options     []string
	Multiple    bool
}

// VoteInput carries a user's new selection for a poll. The selection fully
// replaces any previously recorded ballot by the same user.
type VoteInput struct {
	PollID    string
	Username  string
	OptionIDs []string
}

// PollService defines use-case operations for polls.
type PollService interface {
	List(ctx context.Context) ([]PollSummary, error)
	Get(ctx context.Context, id string) (*domain.Poll, error)
	Create(ctx context.Context, input CreatePollInput) (*domain.Poll, error)
	Vote(ctx context.Context, input VoteInput) error
	Delete(ctx context.Context, pollID, username string) error
}
