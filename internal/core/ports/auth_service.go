package ports

import (
	"context"
	"time"

	"github.com/jaidev3/notebook-llm/internal/core/domain"
)

// AuthService orchestrates registration and login.
type AuthService interface {
	// Register validates the password against the policy, checks username and
	// email availability, and persists a new account with a hashed password.
	Register(ctx context.Context, username, email, password string) (*domain.Account, error)

	// Login verifies credentials and issues a bearer token carrying the
	// account's current role. Unknown username and wrong password produce the
	// same domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (token string, expiresIn time.Duration, err error)
}
