package order

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/sweetbite/sweetbite-backend/pkg/logger"
)

type stockEntry struct {
	name string
	qty  int
}

type fakeRepo struct {
	stock       map[string]*stockEntry
	stockErr    error
	orders      map[string]*Order
	created     []*Order
	deducted    map[string]int
	deactivated []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		stock:    make(map[string]*stockEntry),
		orders:   make(map[string]*Order),
		deducted: make(map[string]int),
	}
}

func (f *fakeRepo) CreateOrder(_ context.Context, o *Order) error {
	f.created = append(f.created, o)
	f.orders[o.ID.String()] = o
	return nil
}

func (f *fakeRepo) GetOrderByID(_ context.Context, id string) (*Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return o, nil
}

func (f *fakeRepo) ListOrders(_ context.Context, _ ListFilter) ([]*Order, error) { return nil, nil }

func (f *fakeRepo) ListOrdersByCustomer(_ context.Context, _ string, _ int) ([]*Order, error) {
	return nil, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id string, status OrderStatus) error {
	o, ok := f.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	return nil
}

func (f *fakeRepo) ReplaceOrder(_ context.Context, o *Order) error {
	if _, ok := f.orders[o.ID.String()]; !ok {
		return ErrNotFound
	}
	f.orders[o.ID.String()] = o
	return nil
}

func (f *fakeRepo) DeleteOrder(_ context.Context, id string) error {
	if _, ok := f.orders[id]; !ok {
		return ErrNotFound
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeRepo) CountByStatus(_ context.Context, status OrderStatus) (int, error) {
	n := 0
	for _, o := range f.orders {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) GetStock(_ context.Context, productID string) (int, string, error) {
	if f.stockErr != nil {
		return 0, "", f.stockErr
	}
	entry, ok := f.stock[productID]
	if !ok {
		return 0, "", ErrNotFound
	}
	return entry.qty, entry.name, nil
}

func (f *fakeRepo) DeductStock(_ context.Context, productID string, qty int) (int, error) {
	entry, ok := f.stock[productID]
	if !ok || entry.qty < qty {
		return 0, ErrInsufficientQuantity
	}
	entry.qty -= qty
	f.deducted[productID] += qty
	return entry.qty, nil
}

func (f *fakeRepo) DeactivateProduct(_ context.Context, productID string) error {
	f.deactivated = append(f.deactivated, productID)
	return nil
}

type fakeRecorder struct {
	recorded map[uuid.UUID]int
}

func (f *fakeRecorder) Record(_ context.Context, productID uuid.UUID, qty int) error {
	if f.recorded == nil {
		f.recorded = make(map[uuid.UUID]int)
	}
	f.recorded[productID] += qty
	return nil
}

func checkoutRequest(productID string, qty int, total float64) PlaceOrderRequest {
	return PlaceOrderRequest{
		Items: []LineRequest{
			{ProductID: productID, Name: "Chocolate Croissant", Price: 4.5, Qty: qty},
		},
		Shipping: Shipping{Name: "Amina Banda", Phone: "0977000001", Addr1: "12 Cairo Rd", City: "Lusaka"},
		Total:    total,
	}
}

func TestPlaceOrderRejectsInsufficientStock(t *testing.T) {
	repo := newFakeRepo()
	pid := uuid.New().String()
	repo.stock[pid] = &stockEntry{name: "Chocolate Croissant", qty: 2}

	svc := NewService(repo, &fakeRecorder{}, logger.Nop())
	_, err := svc.PlaceOrder(context.Background(), checkoutRequest(pid, 3, 13.5))

	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if stockErr.Product != "Chocolate Croissant" {
		t.Errorf("error names %q, want the product name", stockErr.Product)
	}
	if len(repo.created) != 0 {
		t.Error("order was created despite insufficient stock")
	}
	if len(repo.deducted) != 0 {
		t.Error("stock was deducted despite insufficient stock")
	}
}

func TestPlaceOrderRejectsUnknownProduct(t *testing.T) {
	repo := newFakeRepo()

	svc := NewService(repo, &fakeRecorder{}, logger.Nop())
	_, err := svc.PlaceOrder(context.Background(), checkoutRequest(uuid.New().String(), 1, 4.5))

	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if stockErr.Product != "product" {
		t.Errorf("error names %q, want the generic fallback for an unknown product", stockErr.Product)
	}
}

func TestPlaceOrderSurfacesStockLookupFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.stockErr = errors.New("pq: connection refused")

	svc := NewService(repo, &fakeRecorder{}, logger.Nop())
	_, err := svc.PlaceOrder(context.Background(), checkoutRequest(uuid.New().String(), 1, 4.5))
	if err == nil {
		t.Fatal("expected error from failing stock lookup")
	}

	// A store failure is not a stock rejection; it must keep its identity so
	// the handler answers 500, not 400.
	var stockErr *InsufficientStockError
	if errors.As(err, &stockErr) {
		t.Fatalf("store failure reported as insufficient stock: %v", err)
	}
	if !errors.Is(err, repo.stockErr) {
		t.Errorf("err = %v, want the lookup failure wrapped", err)
	}
	if len(repo.created) != 0 {
		t.Error("order was created despite the failed lookup")
	}
}

func TestPlaceOrderDeductsStockAndDeactivatesAtZero(t *testing.T) {
	repo := newFakeRepo()
	recorder := &fakeRecorder{}
	pid := uuid.New()
	repo.stock[pid.String()] = &stockEntry{name: "Chocolate Croissant", qty: 3}

	svc := NewService(repo, recorder, logger.Nop())
	o, err := svc.PlaceOrder(context.Background(), checkoutRequest(pid.String(), 3, 13.5))
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if o.Status != StatusPending {
		t.Errorf("status = %q, want %q", o.Status, StatusPending)
	}
	if !strings.HasPrefix(o.OrderNumber, "ORD") || len(o.OrderNumber) != 9 {
		t.Errorf("order number = %q, want ORD followed by six digits", o.OrderNumber)
	}
	if repo.deducted[pid.String()] != 3 {
		t.Errorf("deducted %d, want 3", repo.deducted[pid.String()])
	}
	if len(repo.deactivated) != 1 || repo.deactivated[0] != pid.String() {
		t.Errorf("deactivated = %v, want the sold-out product", repo.deactivated)
	}
	if recorder.recorded[pid] != 3 {
		t.Errorf("recorded purchases = %d, want 3", recorder.recorded[pid])
	}
}

func TestPlaceOrderKeepsProductActiveWhileStockRemains(t *testing.T) {
	repo := newFakeRepo()
	pid := uuid.New().String()
	repo.stock[pid] = &stockEntry{name: "Chocolate Croissant", qty: 5}

	svc := NewService(repo, &fakeRecorder{}, logger.Nop())
	if _, err := svc.PlaceOrder(context.Background(), checkoutRequest(pid, 2, 9)); err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if len(repo.deactivated) != 0 {
		t.Errorf("deactivated = %v, want none while stock remains", repo.deactivated)
	}
}

func TestPlaceOrderStoresSubmittedTotal(t *testing.T) {
	repo := newFakeRepo()
	pid := uuid.New().String()
	repo.stock[pid] = &stockEntry{name: "Chocolate Croissant", qty: 10}

	svc := NewService(repo, &fakeRecorder{}, logger.Nop())
	// 1 × 4.50 but a total of 99: the server stores what was submitted.
	o, err := svc.PlaceOrder(context.Background(), checkoutRequest(pid, 1, 99))
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if o.Total != 99 {
		t.Errorf("total = %v, want the submitted 99", o.Total)
	}
}

func TestPlaceOrderRequiresItems(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeRecorder{}, logger.Nop())
	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{Total: 10})
	if err == nil {
		t.Fatal("expected validation error for empty items")
	}
}

func TestUpdateStatusScopeRejectsOutOfScopeValue(t *testing.T) {
	repo := newFakeRepo()
	o := &Order{ID: uuid.New(), Status: StatusReady}
	repo.orders[o.ID.String()] = o

	svc := NewService(repo, &fakeRecorder{}, logger.Nop())

	_, err := svc.UpdateStatus(context.Background(), ScopeKitchen, o.ID.String(), StatusDelivered)
	var notAllowed *StatusNotAllowedError
	if !errors.As(err, &notAllowed) {
		t.Fatalf("kitchen writing Delivered: err = %v, want StatusNotAllowedError", err)
	}
	if o.Status != StatusReady {
		t.Errorf("status changed to %q despite rejection", o.Status)
	}

	_, err = svc.UpdateStatus(context.Background(), ScopeDelivery, o.ID.String(), StatusPreparing)
	if !errors.As(err, &notAllowed) {
		t.Fatalf("delivery writing Preparing: err = %v, want StatusNotAllowedError", err)
	}
}

func TestUpdateStatusManagementMaySkipStates(t *testing.T) {
	repo := newFakeRepo()
	o := &Order{ID: uuid.New(), Status: StatusPending}
	repo.orders[o.ID.String()] = o

	svc := NewService(repo, &fakeRecorder{}, logger.Nop())

	// Pending straight to Delivered: no adjacency check.
	updated, err := svc.UpdateStatus(context.Background(), ScopeManagement, o.ID.String(), StatusDelivered)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != StatusDelivered {
		t.Errorf("status = %q, want %q", updated.Status, StatusDelivered)
	}
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeRecorder{}, logger.Nop())
	_, err := svc.UpdateStatus(context.Background(), ScopeManagement, uuid.New().String(), "Cancelled")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
}
