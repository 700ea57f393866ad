package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Raymond9734/crm-backend/internal/cache"
	"github.com/Raymond9734/crm-backend/internal/models"
	"github.com/Raymond9734/crm-backend/internal/repository"
)

// ProductService handles product business logic
type ProductService interface {
	Create(ctx context.Context, req *CreateProductRequest) (*models.Product, error)
	List(ctx context.Context, filter models.ProductFilter) (*ProductListResult, error)
}

type productService struct {
	productRepo repository.ProductRepository
	cache       cache.Cache
	logger      *slog.Logger
}

// NewProductService creates a new product service. The cache may be nil.
func NewProductService(
	productRepo repository.ProductRepository,
	listCache cache.Cache,
	logger *slog.Logger,
) ProductService {
	return &productService{
		productRepo: productRepo,
		cache:       listCache,
		logger:      logger,
	}
}

// Create validates and persists a new product. Product names are not unique;
// only the price and stock bounds are checked.
func (s *productService) Create(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error("failed to create product",
			slog.String("name", product.Name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.ProductListKey)
	}

	s.logger.Info("product created",
		slog.Int64("product_id", product.ID),
		slog.String("name", product.Name),
		slog.String("price", product.Price.String()),
	)

	return product, nil
}

// List retrieves products. The unfiltered full listing is served from the
// cache when one is configured.
func (s *productService) List(ctx context.Context, filter models.ProductFilter) (*ProductListResult, error) {
	// Captured before pagination normalization mutates the filter
	unfiltered := filter.IsZero()

	if s.cache != nil && unfiltered {
		if data, ok := s.cache.Get(ctx, cache.ProductListKey); ok {
			var products []*models.Product
			if err := json.Unmarshal(data, &products); err == nil {
				return &ProductListResult{Data: products}, nil
			}
		}
	}

	products, totalCount, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	result := &ProductListResult{Data: products}

	models.NormalizePagination(&filter.Page, &filter.PageSize)
	if filter.PageSize > 0 {
		pagination := models.NewPaginationResult(filter.Page, filter.PageSize, totalCount)
		result.Pagination = &pagination
	}

	if s.cache != nil && unfiltered {
		if data, err := json.Marshal(products); err == nil {
			s.cache.Set(ctx, cache.ProductListKey, data)
		}
	}

	return result, nil
}
