package service

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/voteflow/poll-system/internal/core/domain"
	"github.com/voteflow/poll-system/internal/core/ports"
	"github.com/voteflow/poll-system/internal/pkg/sanitize"
)

const (
	maxUsernameLen = 12
	minPasswordLen = 12
)

// AuthService implements registration and login against the credential store.
type AuthService struct {
	users     ports.UserStore
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users ports.UserStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 2 * time.Hour
	}
	return &AuthService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register validates the new account and appends it to the credential store.
// Validation order is contractual: username shape, then password strength,
// then email uniqueness, then username uniqueness.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if err := validateUsername(in.Username); err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		Username:     sanitize.HTML(in.Username),
		Email:        in.Email,
		PasswordHash: string(hash),
		AvatarURL:    in.AvatarURL,
	}

	err = s.users.Update(ctx, func(users []domain.User) ([]domain.User, error) {
		for _, u := range users {
			if u.Email == in.Email {
				return nil, domain.ErrEmailTaken
			}
		}
		for _, u := range users {
			if u.Username == user.Username {
				return nil, domain.ErrUsernameTaken
			}
		}
		return append(users, user), nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login looks the account up by exact email match and compares the password
// hash. Unknown email and wrong password yield the same generic error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	users, err := s.users.Load(ctx)
	if err != nil {
		return "", nil, err
	}

	var user *domain.User
	for i := range users {
		if users[i].Email == email {
			user = &users[i]
			break
		}
	}
	if user == nil {
		return "", nil, domain.ErrAuthFailed
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrAuthFailed
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"username": user.Username,
		"email":    user.Email,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func validateUsername(username string) error {
	if username == "" || len(username) > maxUsernameLen {
		return domain.ErrInvalidUsername
	}
	if strings.ContainsFunc(username, unicode.IsSpace) {
		return domain.ErrInvalidUsername
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return domain.ErrWeakPassword
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return domain.ErrWeakPassword
	}
	return nil
}
