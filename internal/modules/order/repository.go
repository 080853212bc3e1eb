package order

import (
	"context"
	"time"
)

// ListFilter narrows and orders an order listing.
type ListFilter struct {
	Statuses      []OrderStatus
	From          *time.Time
	To            *time.Time
	Limit         int
	OldestFirst   bool
	SortByUpdated bool
}

// Repository defines data access for orders, including the stock side
// effects of checkout (the stock tables belong to the same store).
type Repository interface {
	// CreateOrder persists a new order and its lines atomically in a transaction.
	CreateOrder(ctx context.Context, o *Order) error

	// GetOrderByID retrieves an order with its lines by UUID.
	GetOrderByID(ctx context.Context, id string) (*Order, error)

	// ListOrders returns orders matching the filter.
	ListOrders(ctx context.Context, f ListFilter) ([]*Order, error)

	// ListOrdersByCustomer returns a customer's orders, newest first.
	ListOrdersByCustomer(ctx context.Context, customerID string, limit int) ([]*Order, error)

	// UpdateStatus writes a new status. Returns ErrNotFound for a missing order.
	UpdateStatus(ctx context.Context, id string, status OrderStatus) error

	// ReplaceOrder rewrites an order and its lines in a transaction.
	ReplaceOrder(ctx context.Context, o *Order) error

	// DeleteOrder removes an order and its lines.
	DeleteOrder(ctx context.Context, id string) error

	// CountByStatus counts orders currently in the given status.
	CountByStatus(ctx context.Context, status OrderStatus) (int, error)

	// GetStock returns the product name and available quantity for a
	// product, quantity zero when no stock row exists.
	GetStock(ctx context.Context, productID string) (quantity int, productName string, err error)

	// DeductStock atomically decrements stock by qty, failing with
	// ErrInsufficientQuantity when qty exceeds what is available. The
	// derived stock status is recomputed in the same statement.
	DeductStock(ctx context.Context, productID string, qty int) (remaining int, err error)

	// DeactivateProduct clears the product's active flag.
	DeactivateProduct(ctx context.Context, productID string) error
}
