package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mercato/sales-api/internal/core/domain"
	"github.com/mercato/sales-api/internal/core/ports"
)

const collectionSales = "sales"

type SaleRepository struct {
	col *mongo.Collection
}

func NewSaleRepository(db *mongo.Database) *SaleRepository {
	return &SaleRepository{col: db.Collection(collectionSales)}
}

type saleDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ProductID     string             `bson:"product_id"`
	ProductName   string             `bson:"product_name"`
	Quantity      int64              `bson:"quantity"`
	TotalPrice    float64            `bson:"total_price"`
	CustomerEmail string             `bson:"customer_email"`
	SellerID      string             `bson:"seller_id"`
	Status        string             `bson:"status"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (d *saleDoc) toDomain() *domain.Sale {
	return &domain.Sale{
		ID:            d.ID.Hex(),
		ProductID:     d.ProductID,
		ProductName:   d.ProductName,
		Quantity:      d.Quantity,
		TotalPrice:    d.TotalPrice,
		CustomerEmail: d.CustomerEmail,
		SellerID:      d.SellerID,
		Status:        domain.SaleStatus(d.Status),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (r *SaleRepository) Create(ctx context.Context, s *domain.Sale) (*domain.Sale, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := saleDoc{
		ProductID:     s.ProductID,
		ProductName:   s.ProductName,
		Quantity:      s.Quantity,
		TotalPrice:    s.TotalPrice,
		CustomerEmail: s.CustomerEmail,
		SellerID:      s.SellerID,
		Status:        string(s.Status),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert sale: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *SaleRepository) FindByID(ctx context.Context, id string) (*domain.Sale, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSaleNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc saleDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSaleNotFound
		}
		return nil, fmt.Errorf("find sale: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *SaleRepository) List(ctx context.Context, filter ports.ListSalesFilter) ([]*domain.Sale, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.SellerID != "" {
		query["seller_id"] = filter.SellerID
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	defer cursor.Close(ctx)

	var sales []*domain.Sale
	for cursor.Next(ctx) {
		var doc saleDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode sale: %w", err)
		}
		sales = append(sales, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	return sales, total, nil
}

func (r *SaleRepository) UpdateStatus(ctx context.Context, id string, status domain.SaleStatus) (*domain.Sale, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSaleNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc saleDoc
	err = r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSaleNotFound
		}
		return nil, fmt.Errorf("update sale status: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *SaleRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSaleNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

// EnsureIndexes creates supporting indexes on the sales collection.
func (r *SaleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "seller_id", Value: 1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create sale indexes: %w", err)
	}
	return nil
}
