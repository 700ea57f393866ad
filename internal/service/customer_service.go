package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Raymond9734/crm-backend/internal/cache"
	"github.com/Raymond9734/crm-backend/internal/models"
	"github.com/Raymond9734/crm-backend/internal/repository"
)

// CustomerService handles customer business logic
type CustomerService interface {
	Create(ctx context.Context, req *CreateCustomerRequest) (*CreateCustomerResult, error)
	BulkCreate(ctx context.Context, req *BulkCreateCustomersRequest) (*BulkCreateCustomersResult, error)
	List(ctx context.Context, filter models.CustomerFilter) (*CustomerListResult, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
	cache        cache.Cache
	logger       *slog.Logger
}

// NewCustomerService creates a new customer service. The cache may be nil,
// in which case every read goes to the repository.
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	listCache cache.Cache,
	logger *slog.Logger,
) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		cache:        listCache,
		logger:       logger,
	}
}

// Create validates and persists a new customer. Validation runs before any
// write, so a failing request leaves the store unchanged.
func (s *customerService) Create(ctx context.Context, req *CreateCustomerRequest) (*CreateCustomerResult, error) {
	customer, err := s.createOne(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("customer created",
		slog.Int64("customer_id", customer.ID),
		slog.String("email", customer.Email),
	)

	return &CreateCustomerResult{
		Customer: customer,
		Message:  "Customer created successfully",
	}, nil
}

// BulkCreate processes each entry independently in input order: a failing
// entry contributes an error message and does not stop the rest. Entries are
// committed one by one (best-effort mode); there is no outer transaction, so
// earlier successes survive later failures.
func (s *customerService) BulkCreate(ctx context.Context, req *BulkCreateCustomersRequest) (*BulkCreateCustomersResult, error) {
	result := &BulkCreateCustomersResult{
		Customers: []*models.Customer{},
		Errors:    []string{},
	}

	for i := range req.Customers {
		customer, err := s.createOne(ctx, &req.Customers[i])
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("entry %d (%s): %s", i, req.Customers[i].Email, err.Error()),
			)
			continue
		}
		result.Customers = append(result.Customers, customer)
	}

	s.logger.Info("bulk customer create finished",
		slog.Int("requested", len(req.Customers)),
		slog.Int("created", len(result.Customers)),
		slog.Int("failed", len(result.Errors)),
	)

	return result, nil
}

// createOne validates and inserts a single customer, invalidating the list
// cache on success. The email pre-check gives a friendly duplicate error;
// the unique constraint in the repository settles races.
func (s *customerService) createOne(ctx context.Context, req *CreateCustomerRequest) (*models.Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.customerRepo.GetByEmail(ctx, req.Email)
	if err == nil && existing != nil {
		return nil, models.ErrDuplicateWithMsg(
			fmt.Sprintf("customer with email %s already exists", req.Email),
		)
	}
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}

	customer := &models.Customer{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.CustomerListKey)
	}

	return customer, nil
}

// List retrieves customers. The unfiltered full listing is served from the
// cache when one is configured.
func (s *customerService) List(ctx context.Context, filter models.CustomerFilter) (*CustomerListResult, error) {
	// Captured before pagination normalization mutates the filter
	unfiltered := filter.IsZero()

	if s.cache != nil && unfiltered {
		if data, ok := s.cache.Get(ctx, cache.CustomerListKey); ok {
			var customers []*models.Customer
			if err := json.Unmarshal(data, &customers); err == nil {
				return &CustomerListResult{Data: customers}, nil
			}
		}
	}

	customers, totalCount, err := s.customerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	result := &CustomerListResult{Data: customers}

	models.NormalizePagination(&filter.Page, &filter.PageSize)
	if filter.PageSize > 0 {
		pagination := models.NewPaginationResult(filter.Page, filter.PageSize, totalCount)
		result.Pagination = &pagination
	}

	if s.cache != nil && unfiltered {
		if data, err := json.Marshal(customers); err == nil {
			s.cache.Set(ctx, cache.CustomerListKey, data)
		}
	}

	return result, nil
}
