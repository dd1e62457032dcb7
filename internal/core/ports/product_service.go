package ports

import (
	"context"

	"github.com/mercato/sales-api/internal/core/domain"
)

// CreateProductInput carries the data needed to create a product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int64
}

// ListResult is the generic paginated envelope returned by list use-cases.
type ListResult[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProductService defines catalogue use-cases.
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter PageFilter) (*ListResult[*domain.Product], error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
