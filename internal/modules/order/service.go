package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/sweetbite/sweetbite-backend/internal/modules/user"
	"github.com/sweetbite/sweetbite-backend/pkg/logger"
)

// PurchaseRecorder tracks product purchase counts. Satisfied by the stats
// service.
type PurchaseRecorder interface {
	Record(ctx context.Context, productID uuid.UUID, qty int) error
}

// Service defines the order management business logic.
type Service interface {
	// PlaceOrder runs the checkout workflow: stock precheck, order insert,
	// then per-line stock deduction, product deactivation at zero and
	// purchase-stat recording. Side-effect failures after the insert are
	// logged, not surfaced; the order is still reported as created.
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error)

	// GetOrder retrieves a full order with its lines.
	GetOrder(ctx context.Context, id string) (*Order, error)

	// ListForRequester returns the caller's own orders for customers and
	// every order for staff, newest first.
	ListForRequester(ctx context.Context, userID string, role user.Role) ([]*Order, error)

	// ListOrders returns orders matching the filter.
	ListOrders(ctx context.Context, f ListFilter) ([]*Order, error)

	// UpdateStatus writes a status on behalf of a pipeline scope. Values
	// outside the scope's set are rejected; adjacency from the current
	// status is deliberately not checked.
	UpdateStatus(ctx context.Context, scope StatusScope, id string, status OrderStatus) (*Order, error)

	// ReplaceOrder rewrites an order wholesale. Management correction tool.
	ReplaceOrder(ctx context.Context, id string, req ReplaceOrderRequest) (*Order, error)

	// DeleteOrder removes an order. Management correction tool.
	DeleteOrder(ctx context.Context, id string) error

	// StatusCounts counts orders per status for dashboard tiles.
	StatusCounts(ctx context.Context, statuses ...OrderStatus) (map[OrderStatus]int, error)
}

type service struct {
	repo     Repository
	stats    PurchaseRecorder
	validate *validator.Validate
	log      logger.Logger
}

// NewService creates a new order service.
func NewService(repo Repository, stats PurchaseRecorder, log logger.Logger) Service {
	return &service{
		repo:     repo,
		stats:    stats,
		validate: validator.New(),
		log:      log,
	}
}

func (s *service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	// Friendly precheck so the rejection can name the product. The guarded
	// decrement below is what actually prevents overselling.
	for _, item := range req.Items {
		if item.ProductID == "" {
			continue
		}
		quantity, name, err := s.repo.GetStock(ctx, item.ProductID)
		if errors.Is(err, ErrNotFound) {
			return nil, &InsufficientStockError{Product: "product"}
		}
		if err != nil {
			s.log.Error("stock lookup failed", "product", item.ProductID, "err", err)
			return nil, fmt.Errorf("stock lookup failed: %w", err)
		}
		if quantity < item.Qty {
			return nil, &InsufficientStockError{Product: name}
		}
	}

	o := &Order{
		ID:               uuid.New(),
		OrderNumber:      generateOrderNumber(),
		Shipping:         req.Shipping,
		Total:            req.Total, // stored as submitted, never recomputed
		Status:           StatusPending,
		PaymentCollected: req.PaymentCollected,
	}
	if req.CustomerID != "" {
		uid, err := uuid.Parse(req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("invalid customer_id: %w", err)
		}
		o.CustomerID = &uid
	}
	for _, item := range req.Items {
		line := &Line{
			ID:      uuid.New(),
			OrderID: o.ID,
			Name:    item.Name,
			Price:   item.Price,
			Qty:     item.Qty,
		}
		if item.ProductID != "" {
			pid, err := uuid.Parse(item.ProductID)
			if err != nil {
				return nil, fmt.Errorf("invalid product_id: %w", err)
			}
			line.ProductID = &pid
		}
		o.Lines = append(o.Lines, line)
	}

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	// Stock and stat updates happen after the insert. A failure here leaves
	// the order created; it is logged and never surfaced to the caller.
	for _, line := range o.Lines {
		if line.ProductID == nil {
			continue
		}
		pid := line.ProductID.String()

		remaining, err := s.repo.DeductStock(ctx, pid, line.Qty)
		if err != nil {
			s.log.Error("stock deduction failed",
				"order", o.OrderNumber, "product", pid, "qty", line.Qty, "err", err)
			continue
		}
		if remaining == 0 {
			if err := s.repo.DeactivateProduct(ctx, pid); err != nil {
				s.log.Error("product deactivation failed",
					"order", o.OrderNumber, "product", pid, "err", err)
			}
		}
		if err := s.stats.Record(ctx, *line.ProductID, line.Qty); err != nil {
			s.log.Error("purchase stat update failed",
				"order", o.OrderNumber, "product", pid, "err", err)
		}
	}

	return o, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

func (s *service) ListForRequester(ctx context.Context, userID string, role user.Role) ([]*Order, error) {
	if role == user.RoleCustomer {
		return s.repo.ListOrdersByCustomer(ctx, userID, 0)
	}
	return s.repo.ListOrders(ctx, ListFilter{})
}

func (s *service) ListOrders(ctx context.Context, f ListFilter) ([]*Order, error) {
	return s.repo.ListOrders(ctx, f)
}

func (s *service) UpdateStatus(ctx context.Context, scope StatusScope, id string, status OrderStatus) (*Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if !scope.Allows(status) {
		return nil, &StatusNotAllowedError{Status: status, Allowed: scopeStatuses[scope]}
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetOrderByID(ctx, id)
}

func (s *service) ReplaceOrder(ctx context.Context, id string, req ReplaceOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order must have at least one item")
	}
	status := OrderStatus(req.Status)
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	o.Lines = nil
	for _, item := range req.Items {
		line := &Line{
			ID:      uuid.New(),
			OrderID: o.ID,
			Name:    item.Name,
			Price:   item.Price,
			Qty:     item.Qty,
		}
		if item.ProductID != "" {
			pid, err := uuid.Parse(item.ProductID)
			if err != nil {
				return nil, fmt.Errorf("invalid product_id: %w", err)
			}
			line.ProductID = &pid
		}
		o.Lines = append(o.Lines, line)
	}
	o.Shipping = req.Shipping
	o.Total = req.Total
	o.Status = status
	o.PaymentCollected = req.PaymentCollected

	if err := s.repo.ReplaceOrder(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) DeleteOrder(ctx context.Context, id string) error {
	return s.repo.DeleteOrder(ctx, id)
}

func (s *service) StatusCounts(ctx context.Context, statuses ...OrderStatus) (map[OrderStatus]int, error) {
	counts := make(map[OrderStatus]int, len(statuses))
	for _, status := range statuses {
		n, err := s.repo.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, nil
}

// generateOrderNumber creates a human-readable, time-derived order number:
// ORD followed by the last six digits of the current unix millisecond clock.
func generateOrderNumber() string {
	return fmt.Sprintf("ORD%06d", time.Now().UnixMilli()%1_000_000)
}
