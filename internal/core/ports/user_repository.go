package ports

import (
	"context"
	"time"

	"github.com/mercato/sales-api/internal/core/domain"
)

// UpdateUserInput carries a partial user update. Nil fields are left
// untouched; Roles replaces the whole set when non-nil.
type UpdateUserInput struct {
	Name         *string
	PasswordHash *string
	Roles        []string
	IsActive     *bool
}

// UserRepository defines persistence for users and for the single piece of
// per-user session state, the stored refresh-token hash.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error

	// SetRefreshHash stores a new refresh-token hash and stamps last login.
	SetRefreshHash(ctx context.Context, id, hash string, lastLogin time.Time) error
	// SwapRefreshHash atomically replaces the stored hash only when it still
	// equals oldHash. Returns domain.ErrAccessDenied when the precondition
	// fails (the session was rotated or cleared concurrently).
	SwapRefreshHash(ctx context.Context, id, oldHash, newHash string) error
	// ClearRefreshHash removes the stored hash. Clearing an absent hash is a
	// no-op success.
	ClearRefreshHash(ctx context.Context, id string) error
}
