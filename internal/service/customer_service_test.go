package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/Raymond9734/crm-backend/internal/models"
)

// mockCustomerRepository is an in-memory CustomerRepository. Like the real
// table, it enforces email uniqueness on insert. getByEmailErr, when set, is
// returned from GetByEmail to simulate a failing store.
type mockCustomerRepository struct {
	customers     []*models.Customer
	getByEmailErr error
}

func (m *mockCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	for _, c := range m.customers {
		if c.Email == customer.Email {
			return models.ErrDuplicateWithMsg(
				fmt.Sprintf("customer with email %s already exists", customer.Email),
			)
		}
	}
	customer.ID = int64(len(m.customers) + 1)
	m.customers = append(m.customers, customer)
	return nil
}

func (m *mockCustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	for _, c := range m.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %d not found", id))
}

func (m *mockCustomerRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	if m.getByEmailErr != nil {
		return nil, m.getByEmailErr
	}
	for _, c := range m.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("customer with email %s not found", email))
}

func (m *mockCustomerRepository) List(ctx context.Context, filter models.CustomerFilter) ([]*models.Customer, int64, error) {
	return m.customers, int64(len(m.customers)), nil
}

// mockCache records cached values and invalidations
type mockCache struct {
	store       map[string][]byte
	invalidated []string
}

func newMockCache() *mockCache {
	return &mockCache{store: map[string][]byte{}}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, ok := m.store[key]
	return data, ok
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte) {
	m.store[key] = value
}

func (m *mockCache) Invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		delete(m.store, key)
		m.invalidated = append(m.invalidated, key)
	}
}

func (m *mockCache) Close() error                     { return nil }
func (m *mockCache) Health(ctx context.Context) error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error = %v, want *AppError", err)
	}
	return appErr.Code
}

func TestCustomerService_Create(t *testing.T) {
	tests := []struct {
		name     string
		existing []*models.Customer
		req      CreateCustomerRequest
		wantCode string
	}{
		{
			name: "success",
			req:  CreateCustomerRequest{Name: "Alice", Email: "alice@example.com", Phone: "+12025550101"},
		},
		{
			name: "success without phone",
			req:  CreateCustomerRequest{Name: "Alice", Email: "alice@example.com"},
		},
		{
			name: "duplicate email",
			existing: []*models.Customer{
				{ID: 1, Name: "Alice", Email: "alice@example.com"},
			},
			req:      CreateCustomerRequest{Name: "Alicia", Email: "alice@example.com"},
			wantCode: models.CodeDuplicate,
		},
		{
			name:     "bad phone format",
			req:      CreateCustomerRequest{Name: "Alice", Email: "alice@example.com", Phone: "12345"},
			wantCode: models.CodeFormat,
		},
		{
			name:     "missing name",
			req:      CreateCustomerRequest{Email: "alice@example.com"},
			wantCode: models.CodeRequiredField,
		},
		{
			name:     "missing email",
			req:      CreateCustomerRequest{Name: "Alice"},
			wantCode: models.CodeRequiredField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mockCustomerRepository{customers: tt.existing}
			before := len(mockRepo.customers)

			svc := NewCustomerService(mockRepo, nil, testLogger())

			result, err := svc.Create(context.Background(), &tt.req)
			if tt.wantCode != "" {
				if err == nil {
					t.Fatalf("Create() error = nil, want code %s", tt.wantCode)
				}
				if code := errorCode(t, err); code != tt.wantCode {
					t.Errorf("Create() code = %s, want %s", code, tt.wantCode)
				}
				// Failed creates must leave the store unchanged
				if len(mockRepo.customers) != before {
					t.Errorf("store size = %d after failure, want %d", len(mockRepo.customers), before)
				}
				return
			}

			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if result.Customer.ID == 0 {
				t.Error("Create() did not assign an ID")
			}
			if result.Message == "" {
				t.Error("Create() returned empty confirmation message")
			}
			if len(mockRepo.customers) != before+1 {
				t.Errorf("store size = %d, want %d", len(mockRepo.customers), before+1)
			}
		})
	}
}

// A failing email lookup must abort the create rather than being mistaken
// for "email not taken" and proceeding to insert.
func TestCustomerService_Create_EmailLookupFailure(t *testing.T) {
	mockRepo := &mockCustomerRepository{
		getByEmailErr: errors.New("connection reset by peer"),
	}
	svc := NewCustomerService(mockRepo, nil, testLogger())

	_, err := svc.Create(context.Background(), &CreateCustomerRequest{
		Name:  "Alice",
		Email: "alice@example.com",
	})
	if err == nil {
		t.Fatal("Create() error = nil, want lookup failure")
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		t.Errorf("Create() returned validation kind %s, want plain error", appErr.Code)
	}
	if len(mockRepo.customers) != 0 {
		t.Errorf("store size = %d after lookup failure, want 0", len(mockRepo.customers))
	}
}

func TestCustomerService_BulkCreate(t *testing.T) {
	tests := []struct {
		name        string
		reqs        []CreateCustomerRequest
		wantCreated int
		wantErrors  int
	}{
		{
			name: "all valid",
			reqs: []CreateCustomerRequest{
				{Name: "Alice", Email: "alice@example.com"},
				{Name: "Bob", Email: "bob@example.com"},
			},
			wantCreated: 2,
			wantErrors:  0,
		},
		{
			name: "partial failure continues",
			reqs: []CreateCustomerRequest{
				{Name: "Alice", Email: "alice@example.com"},
				{Name: "Eve", Email: "alice@example.com"},       // duplicate of first
				{Name: "", Email: "noname@example.com"},         // missing name
				{Name: "Mallory", Email: "m@example.com", Phone: "12"}, // bad phone
				{Name: "Bob", Email: "bob@example.com"},
			},
			wantCreated: 2,
			wantErrors:  3,
		},
		{
			name: "all invalid",
			reqs: []CreateCustomerRequest{
				{Name: "", Email: ""},
				{Name: "Bob", Email: ""},
			},
			wantCreated: 0,
			wantErrors:  2,
		},
		{
			name:        "empty input",
			reqs:        []CreateCustomerRequest{},
			wantCreated: 0,
			wantErrors:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mockCustomerRepository{}
			svc := NewCustomerService(mockRepo, nil, testLogger())

			result, err := svc.BulkCreate(context.Background(), &BulkCreateCustomersRequest{Customers: tt.reqs})
			if err != nil {
				t.Fatalf("BulkCreate() error = %v", err)
			}

			if len(result.Customers) != tt.wantCreated {
				t.Errorf("BulkCreate() created %d customers, want %d", len(result.Customers), tt.wantCreated)
			}
			if len(result.Errors) != tt.wantErrors {
				t.Errorf("BulkCreate() returned %d errors, want %d", len(result.Errors), tt.wantErrors)
			}

			// Best-effort mode: valid entries persist despite later failures
			if len(mockRepo.customers) != tt.wantCreated {
				t.Errorf("store size = %d, want %d", len(mockRepo.customers), tt.wantCreated)
			}
		})
	}
}

func TestCustomerService_BulkCreate_PreservesInputOrder(t *testing.T) {
	mockRepo := &mockCustomerRepository{}
	svc := NewCustomerService(mockRepo, nil, testLogger())

	result, err := svc.BulkCreate(context.Background(), &BulkCreateCustomersRequest{
		Customers: []CreateCustomerRequest{
			{Name: "Bob", Email: "bob@example.com"},
			{Name: "Alice", Email: "alice@example.com"},
		},
	})
	if err != nil {
		t.Fatalf("BulkCreate() error = %v", err)
	}

	if result.Customers[0].Name != "Bob" || result.Customers[1].Name != "Alice" {
		t.Errorf("BulkCreate() reordered results: got %s, %s",
			result.Customers[0].Name, result.Customers[1].Name)
	}
}

func TestCustomerService_List_CacheRoundTrip(t *testing.T) {
	mockRepo := &mockCustomerRepository{
		customers: []*models.Customer{
			{ID: 1, Name: "Alice", Email: "alice@example.com"},
		},
	}
	listCache := newMockCache()
	svc := NewCustomerService(mockRepo, listCache, testLogger())

	// First unfiltered listing populates the cache
	result, err := svc.List(context.Background(), models.CustomerFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(result.Data) != 1 {
		t.Fatalf("List() returned %d customers, want 1", len(result.Data))
	}
	if _, ok := listCache.store["crm:customers:all"]; !ok {
		t.Error("List() did not populate the cache")
	}

	// A create invalidates the cached listing
	_, err = svc.Create(context.Background(), &CreateCustomerRequest{
		Name: "Bob", Email: "bob@example.com",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, ok := listCache.store["crm:customers:all"]; ok {
		t.Error("Create() did not invalidate the cached listing")
	}

	// Filtered listings bypass the cache entirely
	_, err = svc.List(context.Background(), models.CustomerFilter{Name: "Bob"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if _, ok := listCache.store["crm:customers:all"]; ok {
		t.Error("filtered List() should not populate the full-listing cache")
	}
}
