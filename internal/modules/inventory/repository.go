package inventory

import "context"

// Repository defines data access for stock rows.
type Repository interface {
	// GetByProduct retrieves the stock row for a product.
	GetByProduct(ctx context.Context, productID string) (*Stock, error)

	// Upsert writes the stock row for a product, creating it when absent.
	// Callers must have derived Status from Quantity already.
	Upsert(ctx context.Context, s *Stock) error
}
