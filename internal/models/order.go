package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a customer order over a set of products. TotalAmount is
// computed once at creation from the member products' prices and never
// recomputed; there is no order update path.
type Order struct {
	ID          int64           `json:"id"`
	CustomerID  int64           `json:"customer_id"`
	ProductIDs  []int64         `json:"product_ids"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OrderDate   time.Time       `json:"order_date"`
}

// OrderFilter holds filtering and ordering options for listing orders.
// PageSize 0 means the full collection is returned.
type OrderFilter struct {
	CustomerID int64
	OrderBy    string
	Page       int
	PageSize   int
}

// IsZero reports whether the filter requests the plain unfiltered listing
func (f OrderFilter) IsZero() bool {
	return f == OrderFilter{}
}
