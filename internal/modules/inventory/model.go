package inventory

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a stock lookup matches nothing.
var ErrNotFound = errors.New("stock not found")

// StockStatus is the derived availability bucket for a stock row.
type StockStatus string

const (
	StatusInStock    StockStatus = "In Stock"
	StatusLowStock   StockStatus = "Low Stock"
	StatusOutOfStock StockStatus = "Out of Stock"
)

// lowStockThreshold is fixed; there is no per-product override.
const lowStockThreshold = 10

// StatusForQuantity derives the stock status from the quantity alone.
// It is recomputed on every write, with no hysteresis.
func StatusForQuantity(quantity int) StockStatus {
	switch {
	case quantity == 0:
		return StatusOutOfStock
	case quantity < lowStockThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// Stock is the one-to-one stock record for a product.
type Stock struct {
	ID        uuid.UUID   `json:"id"`
	ProductID uuid.UUID   `json:"product_id"`
	Quantity  int         `json:"quantity"`
	Unit      string      `json:"unit"`
	Expiry    *time.Time  `json:"expiry,omitempty"`
	Status    StockStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// SaveItemRequest carries the multipart form fields for creating or
// updating a product together with its stock.
type SaveItemRequest struct {
	Name        string
	Price       float64
	Description string
	Category    string
	Quantity    int
	Unit        string
	Expiry      *time.Time
	RemoveImage bool
}

// ImageUpload is an optional image attached to a save request.
type ImageUpload struct {
	Data     []byte
	Filename string
}
