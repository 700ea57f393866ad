package models

import "github.com/shopspring/decimal"

// Product represents a product in the catalog
type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// ProductFilter holds filtering and ordering options for listing products.
// PageSize 0 means the full collection is returned.
type ProductFilter struct {
	Name     string
	OrderBy  string
	Page     int
	PageSize int
}

// IsZero reports whether the filter requests the plain unfiltered listing
func (f ProductFilter) IsZero() bool {
	return f == ProductFilter{}
}

// Validate performs field validation on product data
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrRequiredField("name is required")
	}
	if !p.Price.IsPositive() {
		return ErrRange("price must be positive")
	}
	if p.Stock < 0 {
		return ErrRange("stock cannot be negative")
	}
	return nil
}
