package stats

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for purchase statistics.
type Repository interface {
	// GetByProduct retrieves the stats row for a product.
	GetByProduct(ctx context.Context, productID uuid.UUID) (*PurchaseStats, error)

	// Save writes a stats row, creating it when absent.
	Save(ctx context.Context, ps *PurchaseStats) error
}
