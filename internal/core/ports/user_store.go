package ports

import (
	"context"

	"github.com/voteflow/poll-system/internal/core/domain"
)

// UserStore persists the full set of user records as a single document,
// with the same wholesale and serialization semantics as PollStore.
// Lookups are linear scans performed by the caller.
type UserStore interface {
	Load(ctx context.Context) ([]domain.User, error)
	Save(ctx context.Context, users []domain.User) error
	Update(ctx context.Context, fn func(users []domain.User) ([]domain.User, error)) error
}
