package ports

import (
	"context"

	"github.com/jaidev3/notebook-llm/internal/core/domain"
)

// UserRepository defines the persistence contract for accounts. The storage
// layer enforces username and email uniqueness; Insert translates a
// storage-level duplicate into domain.ErrUsernameTaken or domain.ErrEmailTaken
// so a concurrent duplicate registration never surfaces as a generic failure.
type UserRepository interface {
	Insert(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	UpdateRole(ctx context.Context, id, role string) (*domain.Account, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.Account, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Account, error)
}
