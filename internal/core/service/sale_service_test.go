package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mercato/sales-api/internal/core/domain"
	"github.com/mercato/sales-api/internal/core/ports"
)

type stubSaleRepo struct {
	sales  map[string]*domain.Sale
	nextID int
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[string]*domain.Sale)}
}

func (r *stubSaleRepo) Create(_ context.Context, s *domain.Sale) (*domain.Sale, error) {
	r.nextID++
	created := *s
	created.ID = "sale_" + strconv.Itoa(r.nextID)
	r.sales[created.ID] = &created
	out := created
	return &out, nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id string) (*domain.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, domain.ErrSaleNotFound
	}
	out := *s
	return &out, nil
}

func (r *stubSaleRepo) List(_ context.Context, filter ports.ListSalesFilter) ([]*domain.Sale, int64, error) {
	items := make([]*domain.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		if filter.Status != "" && string(s.Status) != filter.Status {
			continue
		}
		if filter.SellerID != "" && s.SellerID != filter.SellerID {
			continue
		}
		out := *s
		items = append(items, &out)
	}
	return items, int64(len(items)), nil
}

func (r *stubSaleRepo) UpdateStatus(_ context.Context, id string, status domain.SaleStatus) (*domain.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, domain.ErrSaleNotFound
	}
	s.Status = status
	out := *s
	return &out, nil
}

func (r *stubSaleRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.sales[id]; !ok {
		return domain.ErrSaleNotFound
	}
	delete(r.sales, id)
	return nil
}

func saleServiceFixture(t *testing.T) (*SaleService, *stubSaleRepo, *domain.Product) {
	t.Helper()

	products := newStubProductRepo()
	product, err := products.Create(context.Background(), &domain.Product{Name: "Monitor", Price: 120.50, Stock: 4})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}

	sales := newStubSaleRepo()
	return NewSaleService(sales, products, zerolog.Nop()), sales, product
}

func TestSaleService_Create_ResolvesPriceFromProduct(t *testing.T) {
	svc, _, product := saleServiceFixture(t)

	sale, err := svc.Create(context.Background(), ports.CreateSaleInput{
		ProductID:     product.ID,
		Quantity:      3,
		CustomerEmail: "buyer@x.com",
		SellerID:      "user_1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if sale.TotalPrice != 120.50*3 {
		t.Fatalf("total = %v, want %v", sale.TotalPrice, 120.50*3)
	}
	if sale.ProductName != "Monitor" {
		t.Fatalf("product name = %q, want Monitor", sale.ProductName)
	}
	if sale.Status != domain.SalePending {
		t.Fatalf("status = %q, want pending", sale.Status)
	}
}

func TestSaleService_Create_UnknownProduct(t *testing.T) {
	svc, _, _ := saleServiceFixture(t)

	_, err := svc.Create(context.Background(), ports.CreateSaleInput{ProductID: "nope", Quantity: 1})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestSaleService_List_RejectsUnknownStatus(t *testing.T) {
	svc, _, _ := saleServiceFixture(t)

	_, err := svc.List(context.Background(), ports.ListSalesFilter{Status: "refunded"})
	if !errors.Is(err, domain.ErrInvalidSaleStatus) {
		t.Fatalf("expected ErrInvalidSaleStatus, got %v", err)
	}
}

func TestSaleService_List_FiltersByStatus(t *testing.T) {
	svc, _, product := saleServiceFixture(t)

	first, err := svc.Create(context.Background(), ports.CreateSaleInput{ProductID: product.ID, Quantity: 1, SellerID: "user_1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.CreateSaleInput{ProductID: product.ID, Quantity: 2, SellerID: "user_1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), first.ID, string(domain.SaleCompleted)); err != nil {
		t.Fatalf("update status: %v", err)
	}

	result, err := svc.List(context.Background(), ports.ListSalesFilter{Status: string(domain.SaleCompleted)})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Total != 1 || len(result.Items) != 1 {
		t.Fatalf("expected exactly one completed sale, got total=%d items=%d", result.Total, len(result.Items))
	}
	if result.Items[0].ID != first.ID {
		t.Fatalf("listed wrong sale: %q", result.Items[0].ID)
	}
}

func TestSaleService_List_FiltersBySeller(t *testing.T) {
	svc, _, product := saleServiceFixture(t)

	mine, err := svc.Create(context.Background(), ports.CreateSaleInput{ProductID: product.ID, Quantity: 1, SellerID: "user_1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.CreateSaleInput{ProductID: product.ID, Quantity: 2, SellerID: "user_2"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	result, err := svc.List(context.Background(), ports.ListSalesFilter{SellerID: "user_1"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Total != 1 || len(result.Items) != 1 {
		t.Fatalf("expected exactly one sale for user_1, got total=%d items=%d", result.Total, len(result.Items))
	}
	if result.Items[0].ID != mine.ID {
		t.Fatalf("listed wrong sale: %q", result.Items[0].ID)
	}

	// Unknown seller: an empty page, not an error.
	empty, err := svc.List(context.Background(), ports.ListSalesFilter{SellerID: "ghost"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if empty.Total != 0 {
		t.Fatalf("expected no sales for unknown seller, got %d", empty.Total)
	}
}

func TestSaleService_UpdateStatus_RejectsUnknown(t *testing.T) {
	svc, _, product := saleServiceFixture(t)

	sale, err := svc.Create(context.Background(), ports.CreateSaleInput{ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), sale.ID, "shipped"); !errors.Is(err, domain.ErrInvalidSaleStatus) {
		t.Fatalf("expected ErrInvalidSaleStatus, got %v", err)
	}

	updated, err := svc.UpdateStatus(context.Background(), sale.ID, string(domain.SaleCancelled))
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != domain.SaleCancelled {
		t.Fatalf("status = %q, want cancelled", updated.Status)
	}
}

func TestSaleService_Delete(t *testing.T) {
	svc, _, product := saleServiceFixture(t)

	sale, err := svc.Create(context.Background(), ports.CreateSaleInput{ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), sale.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), sale.ID); !errors.Is(err, domain.ErrSaleNotFound) {
		t.Fatalf("expected ErrSaleNotFound, got %v", err)
	}
}
