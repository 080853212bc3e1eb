package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order. The intended forward
// progression is Pending → Preparing → Ready → Picked Up → Out for
// Delivery → Delivered, but adjacency is deliberately not enforced:
// roles are limited to a value set, and management may skip or reverse
// states for corrections.
type OrderStatus string

const (
	StatusPending        OrderStatus = "Pending"
	StatusPreparing      OrderStatus = "Preparing"
	StatusReady          OrderStatus = "Ready"
	StatusPickedUp       OrderStatus = "Picked Up"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusDelivered      OrderStatus = "Delivered"
)

// Valid reports whether s is a known status value.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady,
		StatusPickedUp, StatusOutForDelivery, StatusDelivered:
		return true
	}
	return false
}

// StatusScope identifies which part of the pipeline is writing a status.
type StatusScope int

const (
	ScopeKitchen StatusScope = iota
	ScopeDelivery
	ScopeManagement
)

var scopeStatuses = map[StatusScope][]OrderStatus{
	ScopeKitchen:  {StatusPending, StatusPreparing, StatusReady},
	ScopeDelivery: {StatusPickedUp, StatusOutForDelivery, StatusDelivered},
}

// Allows reports whether the scope may write the given status.
// Management may write any valid status.
func (sc StatusScope) Allows(s OrderStatus) bool {
	if sc == ScopeManagement {
		return s.Valid()
	}
	for _, allowed := range scopeStatuses[sc] {
		if allowed == s {
			return true
		}
	}
	return false
}

var (
	// ErrNotFound is returned when an order lookup matches nothing.
	ErrNotFound = errors.New("order not found")

	// ErrInvalidStatus is returned for a status value outside the enum.
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrInsufficientQuantity is returned by the guarded stock decrement
	// when the remaining quantity would go negative.
	ErrInsufficientQuantity = errors.New("insufficient stock quantity")
)

// InsufficientStockError rejects a checkout naming the offending product.
type InsufficientStockError struct {
	Product string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s", e.Product)
}

// StatusNotAllowedError rejects a status write outside the caller's scope.
type StatusNotAllowedError struct {
	Status  OrderStatus
	Allowed []OrderStatus
}

func (e *StatusNotAllowedError) Error() string {
	names := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		names[i] = string(s)
	}
	return fmt.Sprintf("status %q not allowed, may only set: %s", e.Status, strings.Join(names, ", "))
}

// Line is a single product entry within an order. Name and price are
// snapshots taken at order time and never change afterwards, even if the
// product is edited later.
type Line struct {
	ID        uuid.UUID  `json:"id"`
	OrderID   uuid.UUID  `json:"order_id"`
	ProductID *uuid.UUID `json:"product_id,omitempty"` // nil for off-menu lines
	Name      string     `json:"name"`
	Price     float64    `json:"price"`
	Qty       int        `json:"qty"`
}

// Shipping holds the fulfillment details captured at checkout.
type Shipping struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Addr1  string `json:"addr1"`
	Addr2  string `json:"addr2"`
	City   string `json:"city"`
	Postal string `json:"postal"`
	Method string `json:"shipping"`
	Notes  string `json:"notes"`
}

// Order represents a customer's bakery order.
type Order struct {
	ID               uuid.UUID   `json:"id"`
	OrderNumber      string      `json:"order_number"`
	CustomerID       *uuid.UUID  `json:"customer_id,omitempty"` // nil for guest or in-store orders
	Lines            []*Line     `json:"items"`
	Shipping         Shipping    `json:"shipping"`
	Total            float64     `json:"total"`
	Status           OrderStatus `json:"status"`
	PaymentCollected bool        `json:"payment_collected"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// LineRequest describes one requested line at checkout.
type LineRequest struct {
	ProductID string  `json:"product_id,omitempty"`
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	Qty       int     `json:"qty" validate:"gt=0"`
}

// PlaceOrderRequest is the checkout payload. Total is stored as submitted;
// the server does not recompute it from the lines.
type PlaceOrderRequest struct {
	CustomerID       string        `json:"customer_id,omitempty"`
	Items            []LineRequest `json:"items" validate:"required,min=1,dive"`
	Shipping         Shipping      `json:"shipping"`
	Total            float64       `json:"total" validate:"gte=0"`
	PaymentCollected bool          `json:"payment_collected,omitempty"`
}

// UpdateStatusRequest is the payload for a status write.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ReplaceOrderRequest is the management payload for rewriting an order.
type ReplaceOrderRequest struct {
	Items            []LineRequest `json:"items"`
	Shipping         Shipping      `json:"shipping"`
	Total            float64       `json:"total"`
	Status           string        `json:"status"`
	PaymentCollected bool          `json:"payment_collected"`
}
