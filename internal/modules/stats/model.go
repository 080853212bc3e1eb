package stats

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no stats row exists for a product.
var ErrNotFound = errors.New("purchase stats not found")

// PurchaseStats tracks how often a product is bought. LastMonthPurchases is
// a trailing counter: it resets to zero once LastMonthReset is more than one
// calendar month in the past, then accumulates again.
type PurchaseStats struct {
	ID                 uuid.UUID  `json:"id"`
	ProductID          uuid.UUID  `json:"product_id"`
	TotalPurchases     int        `json:"total_purchases"`
	LastMonthPurchases int        `json:"last_month_purchases"`
	LastPurchase       *time.Time `json:"last_purchase,omitempty"`
	LastMonthReset     time.Time  `json:"last_month_reset"`
}
