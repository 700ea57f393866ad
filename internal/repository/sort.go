package repository

import (
	"fmt"
	"strings"

	"github.com/Raymond9734/crm-backend/internal/models"
)

// Explicit column maps per entity. Only fields listed here can be used in
// order_by; anything else is rejected before it reaches SQL.
var (
	customerSortColumns = map[string]string{
		"id":    "id",
		"name":  "name",
		"email": "email",
	}
	productSortColumns = map[string]string{
		"id":    "id",
		"name":  "name",
		"price": "price",
		"stock": "stock",
	}
	orderSortColumns = map[string]string{
		"id":           "o.id",
		"customer_id":  "o.customer_id",
		"total_amount": "o.total_amount",
		"order_date":   "o.order_date",
	}
)

// buildOrderClause translates an order_by value ("name" or "-name") into an
// ORDER BY expression using the entity's column map. An empty value falls
// back to the given default clause.
func buildOrderClause(orderBy, defaultClause string, columns map[string]string) (string, error) {
	if orderBy == "" {
		return defaultClause, nil
	}

	field := orderBy
	direction := "ASC"
	if strings.HasPrefix(orderBy, "-") {
		field = orderBy[1:]
		direction = "DESC"
	}

	column, ok := columns[field]
	if !ok {
		return "", models.ErrInvalidInput(fmt.Sprintf("unsupported order_by field: %s", field))
	}

	return fmt.Sprintf("%s %s", column, direction), nil
}
