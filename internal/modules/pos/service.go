package pos

import (
	"context"
	"fmt"

	"github.com/sweetbite/sweetbite-backend/internal/modules/catalog"
	"github.com/sweetbite/sweetbite-backend/internal/modules/order"
	"github.com/sweetbite/sweetbite-backend/internal/modules/user"
)

const (
	profileOrderCount = 10
	recentOrderCount  = 50
)

// CounterOrderRequest is the checkout payload taken at the register. The
// fulfillment details are synthesized server-side since the customer is
// standing at the counter.
type CounterOrderRequest struct {
	CustomerID       string              `json:"customer_id,omitempty"`
	Items            []order.LineRequest `json:"items"`
	Total            float64             `json:"total"`
	PaymentMethod    string              `json:"payment_method,omitempty"`
	PaymentCollected bool                `json:"payment_collected"`
}

// CustomerProfile pairs an account with its recent order history.
type CustomerProfile struct {
	Customer *user.User     `json:"customer"`
	Orders   []*order.Order `json:"orders"`
}

// Service is the point-of-sale surface used by cashiers. It composes the
// user, catalog and order modules rather than owning storage of its own.
type Service interface {
	SearchCustomers(ctx context.Context, query string) ([]*user.User, error)
	CustomerProfile(ctx context.Context, id string) (*CustomerProfile, error)
	RegisterCustomer(ctx context.Context, req user.CreateCustomerRequest) (*user.User, error)
	Menu(ctx context.Context) ([]*catalog.MenuItem, error)
	PlaceCounterOrder(ctx context.Context, req CounterOrderRequest) (*order.Order, error)
	RecentOrders(ctx context.Context) ([]*order.Order, error)
}

type service struct {
	users   user.Service
	catalog catalog.Service
	orders  order.Service
	history order.Repository
}

// NewService creates a new point-of-sale service.
func NewService(users user.Service, cat catalog.Service, orders order.Service, history order.Repository) Service {
	return &service{users: users, catalog: cat, orders: orders, history: history}
}

func (s *service) SearchCustomers(ctx context.Context, query string) ([]*user.User, error) {
	return s.users.SearchCustomers(ctx, query)
}

func (s *service) CustomerProfile(ctx context.Context, id string) (*CustomerProfile, error) {
	customer, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	orders, err := s.history.ListOrdersByCustomer(ctx, id, profileOrderCount)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*order.Order{}
	}
	return &CustomerProfile{Customer: customer, Orders: orders}, nil
}

func (s *service) RegisterCustomer(ctx context.Context, req user.CreateCustomerRequest) (*user.User, error) {
	return s.users.CreateCustomer(ctx, req)
}

func (s *service) Menu(ctx context.Context) ([]*catalog.MenuItem, error) {
	return s.catalog.ListMenu(ctx)
}

func (s *service) PlaceCounterOrder(ctx context.Context, req CounterOrderRequest) (*order.Order, error) {
	shipping := order.Shipping{
		Name:   "Walk-in customer",
		Addr1:  "In-store pickup",
		Method: "pickup",
	}
	if req.CustomerID != "" {
		customer, err := s.users.GetUser(ctx, req.CustomerID)
		if err != nil {
			return nil, err
		}
		shipping.Name = customer.Name
		shipping.Phone = customer.Phone
	}
	if req.PaymentMethod != "" {
		shipping.Notes = fmt.Sprintf("Paid by %s", req.PaymentMethod)
	}

	return s.orders.PlaceOrder(ctx, order.PlaceOrderRequest{
		CustomerID:       req.CustomerID,
		Items:            req.Items,
		Shipping:         shipping,
		Total:            req.Total,
		PaymentCollected: req.PaymentCollected,
	})
}

func (s *service) RecentOrders(ctx context.Context) ([]*order.Order, error) {
	return s.history.ListOrders(ctx, order.ListFilter{Limit: recentOrderCount})
}
