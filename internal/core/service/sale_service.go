package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mercato/sales-api/internal/core/domain"
	"github.com/mercato/sales-api/internal/core/ports"
)

// SaleService implements sale record use-cases. The unit price is resolved
// from the product at creation time so the recorded total survives later
// price changes.
type SaleService struct {
	repo     ports.SaleRepository
	products ports.ProductRepository
	logger   zerolog.Logger
}

func NewSaleService(repo ports.SaleRepository, products ports.ProductRepository, logger zerolog.Logger) *SaleService {
	return &SaleService{repo: repo, products: products, logger: logger}
}

func (s *SaleService) Create(ctx context.Context, input ports.CreateSaleInput) (*domain.Sale, error) {
	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	sale := &domain.Sale{
		ProductID:     product.ID,
		ProductName:   product.Name,
		Quantity:      input.Quantity,
		TotalPrice:    product.Price * float64(input.Quantity),
		CustomerEmail: input.CustomerEmail,
		SellerID:      input.SellerID,
		Status:        domain.SalePending,
	}

	created, err := s.repo.Create(ctx, sale)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("sale_id", created.ID).
		Str("product_id", created.ProductID).
		Str("seller_id", created.SellerID).
		Msg("sale recorded")
	return created, nil
}

func (s *SaleService) Get(ctx context.Context, id string) (*domain.Sale, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *SaleService) List(ctx context.Context, filter ports.ListSalesFilter) (*ports.ListResult[*domain.Sale], error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	if filter.Status != "" && !domain.SaleStatus(filter.Status).Valid() {
		return nil, domain.ErrInvalidSaleStatus
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListResult[*domain.Sale]{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *SaleService) UpdateStatus(ctx context.Context, id string, status string) (*domain.Sale, error) {
	next := domain.SaleStatus(status)
	if !next.Valid() {
		return nil, domain.ErrInvalidSaleStatus
	}

	updated, err := s.repo.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("sale_id", id).Str("status", status).Msg("sale status updated")
	return updated, nil
}

func (s *SaleService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("sale_id", id).Msg("sale deleted")
	return nil
}
