package service

import (
	"github.com/shopspring/decimal"

	"github.com/Raymond9734/crm-backend/internal/models"
)

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Validate performs validation on the create customer request
func (r *CreateCustomerRequest) Validate() error {
	if r.Name == "" {
		return models.ErrRequiredField("name is required")
	}
	if r.Email == "" {
		return models.ErrRequiredField("email is required")
	}
	return models.ValidatePhone(r.Phone)
}

// CreateCustomerResult represents the result of creating a customer
type CreateCustomerResult struct {
	Customer *models.Customer `json:"customer"`
	Message  string           `json:"message"`
}

// BulkCreateCustomersRequest represents a request to create several
// customers in one call
type BulkCreateCustomersRequest struct {
	Customers []CreateCustomerRequest `json:"customers"`
}

// BulkCreateCustomersResult holds the customers that were created and the
// per-entry error messages, both in input order
type BulkCreateCustomersResult struct {
	Customers []*models.Customer `json:"customers"`
	Errors    []string           `json:"errors"`
}

// CreateProductRequest represents a request to create a product. Stock
// defaults to 0 when absent.
type CreateProductRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// CreateOrderRequest represents a request to create an order
type CreateOrderRequest struct {
	CustomerID int64   `json:"customer_id"`
	ProductIDs []int64 `json:"product_ids"`
}

// CustomerListResult represents a customer list response. Pagination is nil
// when the full collection was returned.
type CustomerListResult struct {
	Data       []*models.Customer       `json:"data"`
	Pagination *models.PaginationResult `json:"pagination,omitempty"`
}

// ProductListResult represents a product list response
type ProductListResult struct {
	Data       []*models.Product        `json:"data"`
	Pagination *models.PaginationResult `json:"pagination,omitempty"`
}

// OrderListResult represents an order list response
type OrderListResult struct {
	Data       []*models.Order          `json:"data"`
	Pagination *models.PaginationResult `json:"pagination,omitempty"`
}
