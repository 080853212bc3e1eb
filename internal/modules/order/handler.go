package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/sweetbite/sweetbite-backend/internal/middleware"
	"github.com/sweetbite/sweetbite-backend/internal/modules/user"
)

// Handler exposes order HTTP endpoints across the customer, kitchen,
// delivery and management surfaces.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux, mw *middleware.Auth) {
	authed := mw.Authenticate

	// Any authenticated user may order and list.
	r.With(authed).Post("/api/orders", h.placeOrder)
	r.With(authed).Get("/api/orders", h.listOrders)

	chefOnly := mw.Require(string(user.RoleChef), string(user.RoleManager), string(user.RoleAdmin))
	r.With(authed, chefOnly).Get("/api/chef/pending", h.chefPending)
	r.With(authed, chefOnly).Get("/api/chef/active", h.chefActive)
	r.With(authed, chefOnly).Get("/api/chef/history", h.chefHistory)
	r.With(authed, chefOnly).Get("/api/chef/stats", h.chefStats)
	r.With(authed, chefOnly).Patch("/api/chef/order/{id}/status", h.updateStatus(ScopeKitchen))

	deliveryOnly := mw.Require(string(user.RoleDelivery), string(user.RoleManager), string(user.RoleAdmin))
	r.With(authed, deliveryOnly).Get("/api/delivery/ready", h.deliveryReady)
	r.With(authed, deliveryOnly).Get("/api/delivery/active", h.deliveryActive)
	r.With(authed, deliveryOnly).Get("/api/delivery/history", h.deliveryHistory)
	r.With(authed, deliveryOnly).Get("/api/delivery/stats", h.deliveryStats)
	r.With(authed, deliveryOnly).Get("/api/delivery/order/{id}", h.getOrder)
	r.With(authed, deliveryOnly).Patch("/api/delivery/order/{id}/status", h.updateStatus(ScopeDelivery))

	managerOnly := mw.Require(string(user.RoleManager), string(user.RoleAdmin))
	r.With(authed, managerOnly).Get("/api/manager/orders/all", h.managerListOrders)
	r.With(authed, managerOnly).Patch("/api/manager/order/{id}/status", h.updateStatus(ScopeManagement))
	r.With(authed, managerOnly).Put("/api/manager/order/{id}", h.replaceOrder)
	r.With(authed, managerOnly).Delete("/api/manager/order/{id}", h.deleteOrder)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	// Orders placed on this route always belong to the authenticated caller.
	req.CustomerID = middleware.UserID(r.Context())

	o, err := h.service.PlaceOrder(r.Context(), req)
	if err != nil {
		respond(w, placeOrderStatus(err), map[string]string{"message": placeOrderMessage(err)})
		return
	}
	respond(w, http.StatusCreated, o)
}

func placeOrderStatus(err error) int {
	var stockErr *InsufficientStockError
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &stockErr), errors.As(err, &validationErrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func placeOrderMessage(err error) string {
	if placeOrderStatus(err) == http.StatusInternalServerError {
		return "Server error"
	}
	return err.Error()
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orders, err := h.service.ListForRequester(ctx, middleware.UserID(ctx), user.Role(middleware.Role(ctx)))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if orders == nil {
		orders = []*Order{}
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond(w, http.StatusNotFound, map[string]string{"message": "Order not found"})
			return
		}
		respond(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	respond(w, http.StatusOK, o)
}

// updateStatus builds the scope-bound PATCH handler shared by the kitchen,
// delivery and management routes.
func (h *Handler) updateStatus(scope StatusScope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req UpdateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}

		o, err := h.service.UpdateStatus(r.Context(), scope, id, OrderStatus(req.Status))
		if err != nil {
			var notAllowed *StatusNotAllowedError
			switch {
			case errors.As(err, &notAllowed):
				respond(w, http.StatusForbidden, map[string]string{"message": notAllowed.Error()})
			case errors.Is(err, ErrInvalidStatus):
				respond(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			case errors.Is(err, ErrNotFound):
				respond(w, http.StatusNotFound, map[string]string{"message": "Order not found"})
			default:
				respond(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
			}
			return
		}
		respond(w, http.StatusOK, o)
	}
}

// ── kitchen dashboard ────────────────────────────────────────────────────────

func (h *Handler) chefPending(w http.ResponseWriter, r *http.Request) {
	h.listFiltered(w, r, ListFilter{
		Statuses:    []OrderStatus{StatusPending, StatusPreparing},
		OldestFirst: true,
	})
}

func (h *Handler) chefActive(w http.ResponseWriter, r *http.Request) {
	h.listFiltered(w, r, ListFilter{
		Statuses: []OrderStatus{StatusPending, StatusPreparing, StatusReady},
	})
}

func (h *Handler) chefHistory(w http.ResponseWriter, r *http.Request) {
	h.listFiltered(w, r, ListFilter{
		Statuses:      []OrderStatus{StatusReady, StatusPickedUp, StatusOutForDelivery, StatusDelivered},
		SortByUpdated: true,
	})
}

func (h *Handler) chefStats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.StatusCounts(r.Context(), StatusPending, StatusPreparing, StatusReady)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	respond(w, http.StatusOK, map[string]int{
		"pending":   counts[StatusPending],
		"preparing": counts[StatusPreparing],
		"ready":     counts[StatusReady],
		"total":     counts[StatusPending] + counts[StatusPreparing] + counts[StatusReady],
	})
}

// ── delivery dashboard ───────────────────────────────────────────────────────

func (h *Handler) deliveryReady(w http.ResponseWriter, r *http.Request) {
	h.listFiltered(w, r, ListFilter{
		Statuses:      []OrderStatus{StatusReady},
		SortByUpdated: true,
		OldestFirst:   true,
	})
}

func (h *Handler) deliveryActive(w http.ResponseWriter, r *http.Request) {
	h.listFiltered(w, r, ListFilter{
		Statuses:      []OrderStatus{StatusReady, StatusPickedUp, StatusOutForDelivery},
		SortByUpdated: true,
	})
}

func (h *Handler) deliveryHistory(w http.ResponseWriter, r *http.Request) {
	h.listFiltered(w, r, ListFilter{
		Statuses:      []OrderStatus{StatusDelivered},
		SortByUpdated: true,
	})
}

func (h *Handler) deliveryStats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.StatusCounts(r.Context(), StatusReady, StatusPickedUp, StatusOutForDelivery)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	respond(w, http.StatusOK, map[string]int{
		"ready":          counts[StatusReady],
		"pickedUp":       counts[StatusPickedUp],
		"outForDelivery": counts[StatusOutForDelivery],
		"total":          counts[StatusReady] + counts[StatusPickedUp] + counts[StatusOutForDelivery],
	})
}

// ── management ───────────────────────────────────────────────────────────────

func (h *Handler) managerListOrders(w http.ResponseWriter, r *http.Request) {
	f := ListFilter{Limit: 100}

	if status := r.URL.Query().Get("status"); status != "" && status != "all" {
		f.Statuses = []OrderStatus{OrderStatus(status)}
	}
	start := r.URL.Query().Get("startDate")
	end := r.URL.Query().Get("endDate")
	if start != "" && end != "" {
		from, err := time.Parse("2006-01-02", start)
		if err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"message": "invalid startDate, want YYYY-MM-DD"})
			return
		}
		to, err := time.Parse("2006-01-02", end)
		if err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"message": "invalid endDate, want YYYY-MM-DD"})
			return
		}
		// Include the whole end day.
		to = to.Add(24*time.Hour - time.Nanosecond)
		f.From, f.To = &from, &to
	}

	h.listFiltered(w, r, f)
}

func (h *Handler) replaceOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req ReplaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	o, err := h.service.ReplaceOrder(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond(w, http.StatusNotFound, map[string]string{"message": "Order not found"})
		case errors.Is(err, ErrInvalidStatus):
			respond(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		default:
			respond(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		}
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteOrder(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond(w, http.StatusNotFound, map[string]string{"message": "Order not found"})
			return
		}
		respond(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}

func (h *Handler) listFiltered(w http.ResponseWriter, r *http.Request, f ListFilter) {
	orders, err := h.service.ListOrders(r.Context(), f)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if orders == nil {
		orders = []*Order{}
	}
	respond(w, http.StatusOK, orders)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
