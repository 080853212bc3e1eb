package pos

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/sweetbite/sweetbite-backend/internal/middleware"
	"github.com/sweetbite/sweetbite-backend/internal/modules/order"
	"github.com/sweetbite/sweetbite-backend/internal/modules/user"
)

// Handler exposes the cashier endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux, mw *middleware.Auth) {
	cashierOnly := mw.Require(string(user.RoleCashier), string(user.RoleManager), string(user.RoleAdmin))

	r.With(mw.Authenticate, cashierOnly).Get("/api/cashier/customers/search", h.searchCustomers)
	r.With(mw.Authenticate, cashierOnly).Get("/api/cashier/customer/{id}", h.customerProfile)
	r.With(mw.Authenticate, cashierOnly).Post("/api/cashier/customer", h.registerCustomer)
	r.With(mw.Authenticate, cashierOnly).Get("/api/cashier/products", h.menu)
	r.With(mw.Authenticate, cashierOnly).Post("/api/cashier/order", h.placeOrder)
	r.With(mw.Authenticate, cashierOnly).Get("/api/cashier/orders", h.recentOrders)
}

func (h *Handler) searchCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.SearchCustomers(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if customers == nil {
		customers = []*user.User{}
	}
	respond(w, http.StatusOK, customers)
}

func (h *Handler) customerProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.CustomerProfile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			respond(w, http.StatusNotFound, map[string]string{"message": "Customer not found"})
			return
		}
		respond(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	respond(w, http.StatusOK, profile)
}

func (h *Handler) registerCustomer(w http.ResponseWriter, r *http.Request) {
	var req user.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	customer, err := h.service.RegisterCustomer(r.Context(), req)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			respond(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}
		respond(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	respond(w, http.StatusCreated, customer)
}

func (h *Handler) menu(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Menu(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req CounterOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	o, err := h.service.PlaceCounterOrder(r.Context(), req)
	if err != nil {
		var stockErr *order.InsufficientStockError
		var validationErrs validator.ValidationErrors
		switch {
		case errors.As(err, &stockErr), errors.As(err, &validationErrs):
			respond(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		case errors.Is(err, user.ErrNotFound):
			respond(w, http.StatusNotFound, map[string]string{"message": "Customer not found"})
		default:
			respond(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		}
		return
	}
	respond(w, http.StatusCreated, o)
}

func (h *Handler) recentOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.RecentOrders(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if orders == nil {
		orders = []*order.Order{}
	}
	respond(w, http.StatusOK, orders)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
