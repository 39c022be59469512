package service

import (
	"context"

	"github.com/jaidev3/notebook-llm/internal/core/domain"
	"github.com/jaidev3/notebook-llm/internal/core/ports"
)

// UserService implements the admin-only account management operations.
type UserService struct {
	repo  ports.UserRepository
	cache ports.AccountCache
}

func NewUserService(repo ports.UserRepository, cache ports.AccountCache) *UserService {
	return &UserService{repo: repo, cache: cache}
}

func (s *UserService) List(ctx context.Context) ([]domain.Account, error) {
	return s.repo.List(ctx)
}

// UpdateRole changes the target account's role. The self-modification guard
// runs before the target lookup, so targeting your own id fails the same way
// whether or not the payload is otherwise valid.
func (s *UserService) UpdateRole(ctx context.Context, actorID, targetID, role string) (*domain.Account, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	if actorID == targetID {
		return nil, domain.ErrSelfModification
	}

	account, err := s.repo.UpdateRole(ctx, targetID, role)
	if err != nil {
		return nil, err
	}
	s.dropCached(ctx, account.Username)
	return account, nil
}

// Deactivate flips the target account inactive. Outstanding tokens for the
// account stop working as soon as the cached lookup expires or is dropped.
func (s *UserService) Deactivate(ctx context.Context, actorID, targetID string) (*domain.Account, error) {
	if actorID == targetID {
		return nil, domain.ErrSelfModification
	}

	account, err := s.repo.SetActive(ctx, targetID, false)
	if err != nil {
		return nil, err
	}
	s.dropCached(ctx, account.Username)
	return account, nil
}

// Delete removes the target account permanently.
func (s *UserService) Delete(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return domain.ErrSelfModification
	}

	account, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, targetID); err != nil {
		return err
	}
	s.dropCached(ctx, account.Username)
	return nil
}

// dropCached is best effort: a failed invalidation only delays the change
// until the cache entry's TTL runs out.
func (s *UserService) dropCached(ctx context.Context, username string) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, username)
	}
}
