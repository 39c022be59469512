package ports

import (
	"context"

	"github.com/jaidev3/notebook-llm/internal/core/domain"
)

// UserService exposes the admin-only account management operations. Every
// mutating operation takes the acting account's id and rejects attempts to
// target the actor's own account with domain.ErrSelfModification before any
// lookup, so the guard never leaks whether other accounts exist.
type UserService interface {
	List(ctx context.Context) ([]domain.Account, error)
	UpdateRole(ctx context.Context, actorID, targetID, role string) (*domain.Account, error)
	Deactivate(ctx context.Context, actorID, targetID string) (*domain.Account, error)
	Delete(ctx context.Context, actorID, targetID string) error
}
