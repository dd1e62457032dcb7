package ports

import (
	"context"

	"github.com/mercato/sales-api/internal/core/domain"
)

// CreateSaleInput carries the data needed to record a sale. SellerID is the
// authenticated caller, not client input.
type CreateSaleInput struct {
	ProductID     string
	Quantity      int64
	CustomerEmail string
	SellerID      string
}

// SaleService defines sale record use-cases.
type SaleService interface {
	Create(ctx context.Context, input CreateSaleInput) (*domain.Sale, error)
	Get(ctx context.Context, id string) (*domain.Sale, error)
	List(ctx context.Context, filter ListSalesFilter) (*ListResult[*domain.Sale], error)
	UpdateStatus(ctx context.Context, id string, status string) (*domain.Sale, error)
	Delete(ctx context.Context, id string) error
}
