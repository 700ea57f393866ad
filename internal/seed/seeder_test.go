package seed

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Raymond9734/crm-backend/internal/models"
)

// In-memory repositories backing the seeder tests

type memCustomerRepo struct {
	customers []*models.Customer
}

func (m *memCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	customer.ID = int64(len(m.customers) + 1)
	m.customers = append(m.customers, customer)
	return nil
}

func (m *memCustomerRepo) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	for _, c := range m.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %d not found", id))
}

func (m *memCustomerRepo) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	for _, c := range m.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("customer with email %s not found", email))
}

func (m *memCustomerRepo) List(ctx context.Context, filter models.CustomerFilter) ([]*models.Customer, int64, error) {
	return m.customers, int64(len(m.customers)), nil
}

type memProductRepo struct {
	products []*models.Product
}

func (m *memProductRepo) Create(ctx context.Context, product *models.Product) error {
	product.ID = int64(len(m.products) + 1)
	m.products = append(m.products, product)
	return nil
}

func (m *memProductRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("product with ID %d not found", id))
}

func (m *memProductRepo) GetByName(ctx context.Context, name string) (*models.Product, error) {
	for _, p := range m.products {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("product with name %s not found", name))
}

func (m *memProductRepo) GetByIDs(ctx context.Context, ids []int64) ([]*models.Product, error) {
	resolved := []*models.Product{}
	for _, p := range m.products {
		for _, id := range ids {
			if p.ID == id {
				resolved = append(resolved, p)
				break
			}
		}
	}
	return resolved, nil
}

func (m *memProductRepo) List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int64, error) {
	return m.products, int64(len(m.products)), nil
}

type memOrderRepo struct {
	orders []*models.Order
}

func (m *memOrderRepo) Create(ctx context.Context, order *models.Order) error {
	order.ID = int64(len(m.orders) + 1)
	m.orders = append(m.orders, order)
	return nil
}

func (m *memOrderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	for _, o := range m.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("order with ID %d not found", id))
}

func (m *memOrderRepo) List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, int64, error) {
	return m.orders, int64(len(m.orders)), nil
}

func TestSeeder_Run(t *testing.T) {
	customerRepo := &memCustomerRepo{}
	productRepo := &memProductRepo{}
	orderRepo := &memOrderRepo{}

	var out bytes.Buffer
	seeder := NewSeeder(customerRepo, productRepo, orderRepo, &out)

	if err := seeder.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(customerRepo.customers) != 3 {
		t.Errorf("customers = %d, want 3", len(customerRepo.customers))
	}
	if len(productRepo.products) != 3 {
		t.Errorf("products = %d, want 3", len(productRepo.products))
	}
	if len(orderRepo.orders) != 1 {
		t.Fatalf("orders = %d, want 1", len(orderRepo.orders))
	}

	// The sample order covers the first customer and the first two products
	order := orderRepo.orders[0]
	if order.CustomerID != customerRepo.customers[0].ID {
		t.Errorf("order customer = %d, want %d", order.CustomerID, customerRepo.customers[0].ID)
	}
	if len(order.ProductIDs) != 2 {
		t.Errorf("order products = %d, want 2", len(order.ProductIDs))
	}
	wantTotal := decimal.RequireFromString("1350.00") // Laptop 850.00 + Phone 500.00
	if !order.TotalAmount.Equal(wantTotal) {
		t.Errorf("order total = %s, want %s", order.TotalAmount, wantTotal)
	}

	for _, line := range []string{
		"Seeding database...",
		"Created customer: Alice",
		"Created customer: Bob",
		"Created customer: Charlie",
		"Created product: Laptop",
		"Created product: Phone",
		"Created product: Headphones",
		"Created order for Alice with 2 products.",
		"Done seeding!",
	} {
		if !strings.Contains(out.String(), line) {
			t.Errorf("output missing %q\noutput:\n%s", line, out.String())
		}
	}
}

// Entity seeding is idempotent by natural key; order seeding is not and
// appends one sample order per run.
func TestSeeder_Run_Twice(t *testing.T) {
	customerRepo := &memCustomerRepo{}
	productRepo := &memProductRepo{}
	orderRepo := &memOrderRepo{}

	seeder := NewSeeder(customerRepo, productRepo, orderRepo, &bytes.Buffer{})
	if err := seeder.Run(context.Background()); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}

	var out bytes.Buffer
	seeder = NewSeeder(customerRepo, productRepo, orderRepo, &out)
	if err := seeder.Run(context.Background()); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if len(customerRepo.customers) != 3 {
		t.Errorf("customers = %d after two runs, want 3", len(customerRepo.customers))
	}
	if len(productRepo.products) != 3 {
		t.Errorf("products = %d after two runs, want 3", len(productRepo.products))
	}
	if len(orderRepo.orders) != 2 {
		t.Errorf("orders = %d after two runs, want 2", len(orderRepo.orders))
	}

	for _, line := range []string{
		"Customer already exists: Alice",
		"Customer already exists: Bob",
		"Customer already exists: Charlie",
		"Product already exists: Laptop",
		"Product already exists: Phone",
		"Product already exists: Headphones",
	} {
		if !strings.Contains(out.String(), line) {
			t.Errorf("output missing %q\noutput:\n%s", line, out.String())
		}
	}
}
