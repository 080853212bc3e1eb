package pos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/sweetbite/sweetbite-backend/internal/modules/order"
	"github.com/sweetbite/sweetbite-backend/internal/modules/user"
)

// The fakes embed the interfaces they stand in for; only the methods the
// point-of-sale service actually calls are implemented.

type fakeUsers struct {
	user.Service
	customer *user.User
}

func (f *fakeUsers) GetUser(_ context.Context, id string) (*user.User, error) {
	if f.customer == nil || f.customer.ID.String() != id {
		return nil, user.ErrNotFound
	}
	return f.customer, nil
}

type fakeOrders struct {
	order.Service
	last order.PlaceOrderRequest
}

func (f *fakeOrders) PlaceOrder(_ context.Context, req order.PlaceOrderRequest) (*order.Order, error) {
	f.last = req
	return &order.Order{ID: uuid.New(), Status: order.StatusPending}, nil
}

type fakeHistory struct {
	order.Repository
	lastLimit int
}

func (f *fakeHistory) ListOrdersByCustomer(_ context.Context, _ string, limit int) ([]*order.Order, error) {
	f.lastLimit = limit
	return nil, nil
}

func TestPlaceCounterOrderSynthesizesPickupShipping(t *testing.T) {
	customer := &user.User{ID: uuid.New(), Name: "Amina Banda", Phone: "0977000001"}
	orders := &fakeOrders{}
	svc := NewService(&fakeUsers{customer: customer}, nil, orders, nil)

	_, err := svc.PlaceCounterOrder(context.Background(), CounterOrderRequest{
		CustomerID:       customer.ID.String(),
		Items:            []order.LineRequest{{Name: "Scone", Price: 3, Qty: 2}},
		Total:            6,
		PaymentMethod:    "cash",
		PaymentCollected: true,
	})
	if err != nil {
		t.Fatalf("PlaceCounterOrder: %v", err)
	}

	shipping := orders.last.Shipping
	if shipping.Name != "Amina Banda" || shipping.Phone != "0977000001" {
		t.Errorf("shipping contact = %q/%q, want the customer's details", shipping.Name, shipping.Phone)
	}
	if shipping.Method != "pickup" || shipping.Addr1 != "In-store pickup" {
		t.Errorf("shipping = %+v, want an in-store pickup", shipping)
	}
	if shipping.Notes != "Paid by cash" {
		t.Errorf("notes = %q, want the payment note", shipping.Notes)
	}
	if !orders.last.PaymentCollected {
		t.Error("payment collected flag not forwarded")
	}
}

func TestPlaceCounterOrderHandlesWalkIn(t *testing.T) {
	orders := &fakeOrders{}
	svc := NewService(&fakeUsers{}, nil, orders, nil)

	_, err := svc.PlaceCounterOrder(context.Background(), CounterOrderRequest{
		Items: []order.LineRequest{{Name: "Scone", Price: 3, Qty: 1}},
		Total: 3,
	})
	if err != nil {
		t.Fatalf("PlaceCounterOrder: %v", err)
	}
	if orders.last.Shipping.Name != "Walk-in customer" {
		t.Errorf("shipping name = %q, want the walk-in placeholder", orders.last.Shipping.Name)
	}
	if orders.last.CustomerID != "" {
		t.Errorf("customer id = %q, want empty for a walk-in", orders.last.CustomerID)
	}
}

func TestCustomerProfileLimitsHistory(t *testing.T) {
	customer := &user.User{ID: uuid.New(), Name: "Amina Banda"}
	history := &fakeHistory{}
	svc := NewService(&fakeUsers{customer: customer}, nil, nil, history)

	profile, err := svc.CustomerProfile(context.Background(), customer.ID.String())
	if err != nil {
		t.Fatalf("CustomerProfile: %v", err)
	}
	if history.lastLimit != profileOrderCount {
		t.Errorf("history limit = %d, want %d", history.lastLimit, profileOrderCount)
	}
	if profile.Orders == nil {
		t.Error("orders should be an empty slice, not nil")
	}
}
