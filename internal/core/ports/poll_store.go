package ports

import (
	"context"

	"github.com/voteflow/poll-system/internal/core/domain"
)

// PollStore persists the full poll collection as a single document.
// Load returns an empty slice when the backing document does not exist yet.
// Save overwrites the document wholesale. Update serializes a complete
// load-mutate-save cycle; when fn returns an error nothing is written.
type PollStore interface {
	Load(ctx context.Context) ([]domain.Poll, error)
	Save(ctx context.Context, polls []domain.Poll) error
	Update(ctx context.Context, fn func(polls []domain.Poll) ([]domain.Poll, error)) error
}
