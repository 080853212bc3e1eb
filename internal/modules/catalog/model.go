package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a product lookup matches nothing.
var ErrNotFound = errors.New("product not found")

// Product is a bakery menu item. Price and name are copied into order lines
// at checkout, so later edits never rewrite order history.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Image       string    `json:"image,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MenuItem is a product enriched with its sellable quantity, as shown to
// customers and cashiers.
type MenuItem struct {
	Product
	Quantity int  `json:"quantity"`
	InStock  bool `json:"in_stock"`
}

// StockInfo is the stock summary embedded in the manager product view.
type StockInfo struct {
	ID       uuid.UUID  `json:"id"`
	Quantity int        `json:"quantity"`
	Unit     string     `json:"unit"`
	Expiry   *time.Time `json:"expiry,omitempty"`
	Status   string     `json:"status"`
}

// ProductWithStock pairs a product with its stock row, which may be absent.
type ProductWithStock struct {
	Product
	Stock *StockInfo `json:"stock"`
}

// SaveProductRequest holds the data for creating or updating a product.
type SaveProductRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	IsActive    *bool   `json:"is_active,omitempty"`
}
