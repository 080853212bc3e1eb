package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for products.
type Repository interface {
	// Create persists a new product.
	Create(ctx context.Context, p *Product) error

	// GetByID retrieves a product by UUID.
	GetByID(ctx context.Context, id string) (*Product, error)

	// ListAvailable returns active products with stock on hand.
	ListAvailable(ctx context.Context) ([]*MenuItem, error)

	// ListWithStock returns every product joined to its stock row, newest first.
	ListWithStock(ctx context.Context) ([]*ProductWithStock, error)

	// ListPopularAvailable returns sellable products whose trailing-month
	// purchases exceed minMonthly, most popular first.
	ListPopularAvailable(ctx context.Context, minMonthly, limit int) ([]*MenuItem, error)

	// ListRecentAvailable returns the newest sellable products, skipping the
	// given ids.
	ListRecentAvailable(ctx context.Context, exclude []uuid.UUID, limit int) ([]*MenuItem, error)

	// Update rewrites an existing product.
	Update(ctx context.Context, p *Product) error

	// Delete removes a product and its stock row.
	Delete(ctx context.Context, id string) error
}
