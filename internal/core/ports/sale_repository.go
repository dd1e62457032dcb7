package ports

import (
	"context"

	"github.com/mercato/sales-api/internal/core/domain"
)

// ListSalesFilter carries query parameters for listing sales.
type ListSalesFilter struct {
	Status   string // optional: filter by sale status
	SellerID string // optional: filter by seller
	Page     int    // 1-based
	Limit    int    // rows per page, capped by the service
}

// SaleRepository defines persistence operations for sale records.
type SaleRepository interface {
	Create(ctx context.Context, s *domain.Sale) (*domain.Sale, error)
	FindByID(ctx context.Context, id string) (*domain.Sale, error)
	// List returns a page of sales matching filter and the total count.
	List(ctx context.Context, filter ListSalesFilter) ([]*domain.Sale, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.SaleStatus) (*domain.Sale, error)
	Delete(ctx context.Context, id string) error
}
