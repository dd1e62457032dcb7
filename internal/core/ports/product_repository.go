package ports

import (
	"context"

	"github.com/mercato/sales-api/internal/core/domain"
)

// PageFilter carries pagination parameters for list queries.
type PageFilter struct {
	Page  int // 1-based
	Limit int // rows per page, capped by the service
}

// UpdateProductInput is a partial product update; nil fields are untouched.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int64
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// List returns a page of products and the total count.
	List(ctx context.Context, filter PageFilter) ([]*domain.Product, int64, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
