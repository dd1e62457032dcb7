package ports

import (
	"context"

	"github.com/mercato/sales-api/internal/core/domain"
)

// CreateUserInput carries the data needed to create a user account.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	// Roles defaults to [user] when empty.
	Roles []string
}

// UpdateUserRequest is the service-level partial update; the plaintext
// password (if any) is hashed by the service before it reaches storage.
type UpdateUserRequest struct {
	Name     *string
	Password *string
	Roles    []string
	IsActive *bool
}

// UserService defines account management use-cases.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserRequest) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
