package ports

import (
	"context"

	"github.com/voteflow/poll-system/internal/core/domain"
)

// RegisterInput carries a registration request. AvatarURL is optional.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	AvatarURL string
}

// AuthService implements account registration and login. Registration never
// issues a token; the caller must log in separately. Token verification is a
// pure signature/expiry check and lives in the HTTP auth middleware.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
