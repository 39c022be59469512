package service

import (
	"context"
	"errors"
	"time"

	"github.com/jaidev3/notebook-llm/internal/core/domain"
	"github.com/jaidev3/notebook-llm/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens}
}

// Register creates a new account. Checks run cheapest-first: password policy
// before any store I/O, then username availability, then email availability.
// The store's unique indexes remain the authoritative guard, so a concurrent
// duplicate insert still comes back as the taken-error, not a generic failure.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.Account, error) {
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}

	return s.repo.Insert(ctx, account)
}

// Login authenticates username/password and issues a bearer token carrying
// the account's current role. Unknown username and wrong password both yield
// ErrInvalidCredentials so responses do not reveal which usernames exist. An
// inactive account with a correct password yields ErrAccountInactive; at that
// point the caller has already proven knowledge of the password, so the
// distinct error leaks nothing new.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Duration, error) {
	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", 0, domain.ErrInvalidCredentials
		}
		return "", 0, err
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return "", 0, domain.ErrInvalidCredentials
	}

	if !account.Active {
		return "", 0, domain.ErrAccountInactive
	}

	token, expiresAt, err := s.tokens.Issue(account.Username, account.Role)
	if err != nil {
		return "", 0, err
	}
	return token, time.Until(expiresAt), nil
}
