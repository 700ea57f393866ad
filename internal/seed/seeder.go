package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Raymond9734/crm-backend/internal/models"
	"github.com/Raymond9734/crm-backend/internal/repository"
)

// Sample data. Customers are keyed by email, products by name; running the
// seeder repeatedly never duplicates them. Orders have no natural key, so a
// fresh sample order is created on every run.
var (
	sampleCustomers = []models.Customer{
		{Name: "Alice", Email: "alice@example.com", Phone: "+12025550101"},
		{Name: "Bob", Email: "bob@example.com", Phone: "+12025550102"},
		{Name: "Charlie", Email: "charlie@example.com", Phone: "202-555-0103"},
	}
	sampleProducts = []models.Product{
		{Name: "Laptop", Price: decimal.RequireFromString("850.00"), Stock: 10},
		{Name: "Phone", Price: decimal.RequireFromString("500.00"), Stock: 20},
		{Name: "Headphones", Price: decimal.RequireFromString("75.00"), Stock: 50},
	}
)

// Seeder populates the store with sample data, reporting progress lines to
// the given writer.
type Seeder struct {
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	out          io.Writer
}

// NewSeeder creates a new seeder writing progress to out
func NewSeeder(
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	out io.Writer,
) *Seeder {
	return &Seeder{
		customerRepo: customerRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		out:          out,
	}
}

// Run seeds customers, products and one sample order
func (s *Seeder) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Seeding database...")

	if err := s.seedCustomers(ctx); err != nil {
		return err
	}
	if err := s.seedProducts(ctx); err != nil {
		return err
	}
	if err := s.seedOrder(ctx); err != nil {
		return err
	}

	fmt.Fprintln(s.out, "Done seeding!")
	return nil
}

// seedCustomers get-or-creates each sample customer by email
func (s *Seeder) seedCustomers(ctx context.Context) error {
	for _, data := range sampleCustomers {
		existing, err := s.customerRepo.GetByEmail(ctx, data.Email)
		if err == nil {
			fmt.Fprintf(s.out, "Customer already exists: %s\n", existing.Name)
			continue
		}
		if !errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("failed to look up customer %s: %w", data.Email, err)
		}

		customer := data
		if err := s.customerRepo.Create(ctx, &customer); err != nil {
			return fmt.Errorf("failed to seed customer %s: %w", data.Email, err)
		}
		fmt.Fprintf(s.out, "Created customer: %s\n", customer.Name)
	}
	return nil
}

// seedProducts get-or-creates each sample product by name
func (s *Seeder) seedProducts(ctx context.Context) error {
	for _, data := range sampleProducts {
		existing, err := s.productRepo.GetByName(ctx, data.Name)
		if err == nil {
			fmt.Fprintf(s.out, "Product already exists: %s\n", existing.Name)
			continue
		}
		if !errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("failed to look up product %s: %w", data.Name, err)
		}

		product := data
		if err := s.productRepo.Create(ctx, &product); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", data.Name, err)
		}
		fmt.Fprintf(s.out, "Created product: %s\n", product.Name)
	}
	return nil
}

// seedOrder creates one sample order from the first customer and the first
// two products in store order. Runs after entity seeding, so both exist
// unless the store was emptied out from under us.
func (s *Seeder) seedOrder(ctx context.Context) error {
	customers, _, err := s.customerRepo.List(ctx, models.CustomerFilter{})
	if err != nil {
		return fmt.Errorf("failed to list customers: %w", err)
	}

	products, _, err := s.productRepo.List(ctx, models.ProductFilter{})
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	if len(customers) == 0 || len(products) == 0 {
		fmt.Fprintln(s.out, "Cannot create orders: customers or products missing.")
		return nil
	}

	customer := customers[0]
	if len(products) > 2 {
		products = products[:2]
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
		return fmt.Errorf("failed to seed order: %w", err)
	}

	fmt.Fprintf(s.out, "Created order for %s with %d products.\n", customer.Name, len(productIDs))
	return nil
}
