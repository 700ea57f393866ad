package models

import (
	"fmt"
	"regexp"
)

// phoneRegex accepts an optional leading + followed by 10-15 digits, or the
// dashed form NNN-NNN-NNNN.
var phoneRegex = regexp.MustCompile(`^(\+?\d{10,15}|\d{3}-\d{3}-\d{4})$`)

// Customer represents a customer in the system
type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// CustomerFilter holds filtering and ordering options for listing customers.
// PageSize 0 means the full collection is returned.
type CustomerFilter struct {
	Email    string
	Name     string
	OrderBy  string
	Page     int
	PageSize int
}

// IsZero reports whether the filter requests the plain unfiltered listing
func (f CustomerFilter) IsZero() bool {
	return f == CustomerFilter{}
}

// Validate performs field validation on customer data
func (c *Customer) Validate() error {
	if c.Name == "" {
		return ErrRequiredField("name is required")
	}
	if c.Email == "" {
		return ErrRequiredField("email is required")
	}
	if err := ValidatePhone(c.Phone); err != nil {
		return err
	}
	return nil
}

// ValidatePhone checks the phone format. An empty phone is allowed since the
// field is optional.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if !phoneRegex.MatchString(phone) {
		return ErrFormat(fmt.Sprintf("invalid phone format: %s", phone))
	}
	return nil
}
