package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sweetbite/sweetbite-backend/internal/middleware"
	"github.com/sweetbite/sweetbite-backend/pkg/logger"
)

const testSecret = "test-secret"

func newTestServer(repo *fakeRepo) *chi.Mux {
	svc := NewService(repo, &fakeRecorder{}, logger.Nop())
	mux := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(mux, middleware.NewAuth(testSecret))
	return mux
}

func bearerToken(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256,
		&middleware.Claims{UserID: userID, Role: role}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + token
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body["message"]
}

func TestChefStatusPatchRejectsDeliveryStatus(t *testing.T) {
	repo := newFakeRepo()
	o := &Order{ID: uuid.New(), Status: StatusReady}
	repo.orders[o.ID.String()] = o

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch,
		"/api/chef/order/"+o.ID.String()+"/status",
		strings.NewReader(`{"status":"Delivered"}`))
	req.Header.Set("Authorization", bearerToken(t, "u1", "chef"))

	newTestServer(repo).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg == "" {
		t.Error("error body missing message field")
	}
	if o.Status != StatusReady {
		t.Errorf("order status changed to %q despite rejection", o.Status)
	}
}

func TestChefStatusPatchAcceptsKitchenStatus(t *testing.T) {
	repo := newFakeRepo()
	o := &Order{ID: uuid.New(), Status: StatusPending}
	repo.orders[o.ID.String()] = o

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch,
		"/api/chef/order/"+o.ID.String()+"/status",
		strings.NewReader(`{"status":"Preparing"}`))
	req.Header.Set("Authorization", bearerToken(t, "u1", "chef"))

	newTestServer(repo).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if o.Status != StatusPreparing {
		t.Errorf("order status = %q, want %q", o.Status, StatusPreparing)
	}
}

func TestCustomerCannotReachKitchenRoutes(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/chef/pending", nil)
	req.Header.Set("Authorization", bearerToken(t, "u1", "customer"))

	newTestServer(newFakeRepo()).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestPlaceOrderReturnsBadRequestOnInsufficientStock(t *testing.T) {
	repo := newFakeRepo()
	pid := uuid.New().String()
	repo.stock[pid] = &stockEntry{name: "Vanilla Cake", qty: 1}

	body := `{"items":[{"product_id":"` + pid + `","name":"Vanilla Cake","price":20,"qty":2}],"total":40}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Authorization", bearerToken(t, uuid.New().String(), "customer"))

	newTestServer(repo).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", rec.Code, rec.Body.String())
	}
	if msg := decodeMessage(t, rec); msg != "Insufficient stock for Vanilla Cake" {
		t.Errorf("message = %q, want the product named", msg)
	}
}

func TestPlaceOrderReturnsServerErrorOnStoreFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.stockErr = errors.New("pq: connection refused")

	body := `{"items":[{"product_id":"` + uuid.New().String() + `","name":"Vanilla Cake","price":20,"qty":1}],"total":20}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Authorization", bearerToken(t, uuid.New().String(), "customer"))

	newTestServer(repo).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500, body %s", rec.Code, rec.Body.String())
	}
	if msg := decodeMessage(t, rec); msg != "Server error" {
		t.Errorf("message = %q, want the generic server error", msg)
	}
}

func TestPlaceOrderCreatesOrderForCaller(t *testing.T) {
	repo := newFakeRepo()
	pid := uuid.New().String()
	repo.stock[pid] = &stockEntry{name: "Vanilla Cake", qty: 5}
	customerID := uuid.New().String()

	body := `{"items":[{"product_id":"` + pid + `","name":"Vanilla Cake","price":20,"qty":2}],"total":40}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Authorization", bearerToken(t, customerID, "customer"))

	newTestServer(repo).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	if len(repo.created) != 1 {
		t.Fatalf("created %d orders, want 1", len(repo.created))
	}
	if got := repo.created[0].CustomerID; got == nil || got.String() != customerID {
		t.Errorf("order customer = %v, want the authenticated caller", got)
	}
}
