package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/Raymond9734/crm-backend/internal/models"
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, int64, error)
}

// orderRepository implements OrderRepository using PostgreSQL
type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts an order and its product associations in one transaction,
// so a partially associated order can never be observed.
func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Rollback is safe to call even after Commit
	}()

	query := `
		INSERT INTO orders (customer_id, total_amount, order_date)
		VALUES ($1, $2, $3)
		RETURNING id`

	err = tx.QueryRowContext(
		ctx,
		query,
		order.CustomerID,
		order.TotalAmount,
		order.OrderDate,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO order_products (order_id, product_id)
		VALUES ($1, $2)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, productID := range order.ProductIDs {
		if _, err := stmt.ExecContext(ctx, order.ID, productID); err != nil {
			return fmt.Errorf("failed to associate product %d: %w", productID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByID retrieves an order with its product IDs
func (r *orderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	query := `
		SELECT o.id, o.customer_id, o.total_amount, o.order_date,
		       ARRAY_REMOVE(ARRAY_AGG(op.product_id ORDER BY op.product_id), NULL)
		FROM orders o
		LEFT JOIN order_products op ON op.order_id = o.id
		WHERE o.id = $1
		GROUP BY o.id`

	order := &models.Order{}
	var productIDs pq.Int64Array
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.CustomerID,
		&order.TotalAmount,
		&order.OrderDate,
		&productIDs,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("order with ID %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	order.ProductIDs = productIDs
	return order, nil
}

// List retrieves orders with optional filtering, ordering and pagination.
// Without pagination parameters the full collection is returned in id order.
func (r *orderRepository) List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, int64, error) {
	models.NormalizePagination(&filter.Page, &filter.PageSize)

	q := newListQuery(`
		SELECT o.id, o.customer_id, o.total_amount, o.order_date,
		       ARRAY_REMOVE(ARRAY_AGG(op.product_id ORDER BY op.product_id), NULL)
		FROM orders o
		LEFT JOIN order_products op ON op.order_id = o.id
		WHERE 1=1`,
		`SELECT COUNT(*) FROM orders o WHERE 1=1`)

	if filter.CustomerID > 0 {
		q.Filter("o.customer_id = $%d", filter.CustomerID)
	}

	var totalCount int64
	err := r.db.QueryRowContext(ctx, q.countQuery, q.args...).Scan(&totalCount)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	q.GroupBy("o.id")

	orderClause, err := buildOrderClause(filter.OrderBy, "o.id ASC", orderSortColumns)
	if err != nil {
		return nil, 0, err
	}
	q.OrderBy(orderClause)
	q.Paginate(filter.Page, filter.PageSize)

	rows, err := r.db.QueryContext(ctx, q.query, q.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*models.Order{}
	for rows.Next() {
		order := &models.Order{}
		var productIDs pq.Int64Array
		err := rows.Scan(
			&order.ID,
			&order.CustomerID,
			&order.TotalAmount,
			&order.OrderDate,
			&productIDs,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		order.ProductIDs = productIDs
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, totalCount, nil
}
