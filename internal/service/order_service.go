package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Raymond9734/crm-backend/internal/cache"
	"github.com/Raymond9734/crm-backend/internal/models"
	"github.com/Raymond9734/crm-backend/internal/repository"
)

// OrderService handles order business logic
type OrderService interface {
	Create(ctx context.Context, req *CreateOrderRequest) (*models.Order, error)
	List(ctx context.Context, filter models.OrderFilter) (*OrderListResult, error)
}

type orderService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	cache        cache.Cache
	logger       *slog.Logger
}

// NewOrderService creates a new order service. The cache may be nil.
func NewOrderService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	listCache cache.Cache,
	logger *slog.Logger,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		cache:        listCache,
		logger:       logger,
	}
}

// Create resolves the customer, requires a non-empty product list, resolves
// all products, then persists the order with its total computed as the exact
// decimal sum of the resolved products' prices. The checks run in that order
// and the first failure short-circuits the rest.
func (s *orderService) Create(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	customer, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	if len(req.ProductIDs) == 0 {
		return nil, models.ErrRequiredField("product_ids cannot be empty")
	}

	products, err := s.productRepo.GetByIDs(ctx, req.ProductIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}
	if len(products) < len(req.ProductIDs) {
		return nil, models.ErrReferenceWithMsg("one or more product IDs do not exist")
	}

	total := decimal.Zero
	productIDs := make([]int64, 0, len(products))
	for _, p := range products {
		total = total.Add(p.Price)
		productIDs = append(productIDs, p.ID)
	}

	order := &models.Order{
		CustomerID:  customer.ID,
		ProductIDs:  productIDs,
		TotalAmount: total,
		OrderDate:   time.Now().UTC(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.logger.Error("failed to create order",
			slog.Int64("customer_id", customer.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.OrderListKey)
	}

	s.logger.Info("order created",
		slog.Int64("order_id", order.ID),
		slog.Int64("customer_id", order.CustomerID),
		slog.Int("products", len(order.ProductIDs)),
		slog.String("total_amount", order.TotalAmount.String()),
	)

	return order, nil
}

// List retrieves orders. The unfiltered full listing is served from the
// cache when one is configured.
func (s *orderService) List(ctx context.Context, filter models.OrderFilter) (*OrderListResult, error) {
	// Captured before pagination normalization mutates the filter
	unfiltered := filter.IsZero()

	if s.cache != nil && unfiltered {
		if data, ok := s.cache.Get(ctx, cache.OrderListKey); ok {
			var orders []*models.Order
			if err := json.Unmarshal(data, &orders); err == nil {
				return &OrderListResult{Data: orders}, nil
			}
		}
	}

	orders, totalCount, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	result := &OrderListResult{Data: orders}

	models.NormalizePagination(&filter.Page, &filter.PageSize)
	if filter.PageSize > 0 {
		pagination := models.NewPaginationResult(filter.Page, filter.PageSize, totalCount)
		result.Pagination = &pagination
	}

	if s.cache != nil && unfiltered {
		if data, err := json.Marshal(orders); err == nil {
			s.cache.Set(ctx, cache.OrderListKey, data)
		}
	}

	return result, nil
}
