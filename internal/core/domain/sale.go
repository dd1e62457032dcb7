package domain

import (
	"errors"
	"time"
)

// SaleStatus represents the lifecycle state of a sale record.
type SaleStatus string

const (
	SalePending   SaleStatus = "pending"
	SaleCompleted SaleStatus = "completed"
	SaleCancelled SaleStatus = "cancelled"
)

var ErrSaleNotFound = errors.New("sale not found")
var ErrInvalidSaleStatus = errors.New("invalid sale status")

// Valid reports whether s is a known sale status.
func (s SaleStatus) Valid() bool {
	switch s {
	case SalePending, SaleCompleted, SaleCancelled:
		return true
	}
	return false
}

// Sale records a single sale of a product by a seller.
type Sale struct {
	ID            string     `json:"id"`
	ProductID     string     `json:"product_id"`
	ProductName   string     `json:"product_name"`
	Quantity      int64      `json:"quantity"`
	TotalPrice    float64    `json:"total_price"`
	CustomerEmail string     `json:"customer_email"`
	SellerID      string     `json:"seller_id"`
	Status        SaleStatus `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
