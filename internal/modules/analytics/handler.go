package analytics

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sweetbite/sweetbite-backend/internal/middleware"
	"github.com/sweetbite/sweetbite-backend/internal/modules/user"
	"github.com/sweetbite/sweetbite-backend/pkg/logger"
)

// Handler serves the manager reporting endpoints. Read-only aggregates, so
// it talks to the repository directly.
type Handler struct {
	repo Repository
	log  logger.Logger
}

func NewHandler(repo Repository, log logger.Logger) *Handler {
	return &Handler{repo: repo, log: log}
}

func (h *Handler) RegisterRoutes(r *chi.Mux, mw *middleware.Auth) {
	managerOnly := mw.Require(string(user.RoleManager), string(user.RoleAdmin))

	r.With(mw.Authenticate, managerOnly).Get("/api/manager/analytics/overview", h.overview)
	r.With(mw.Authenticate, managerOnly).Get("/api/manager/analytics/sales", h.sales)
	r.With(mw.Authenticate, managerOnly).Get("/api/manager/analytics/popular-products", h.popularProducts)
	r.With(mw.Authenticate, managerOnly).Get("/api/manager/analytics/customer-insights", h.customerInsights)
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	o, err := h.repo.Overview(r.Context())
	if err != nil {
		h.fail(w, "analytics overview failed", err)
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) sales(w http.ResponseWriter, r *http.Request) {
	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 365 {
			respond(w, http.StatusBadRequest, map[string]string{"message": "days must be between 1 and 365"})
			return
		}
		days = n
	}
	points, err := h.repo.DailySales(r.Context(), days)
	if err != nil {
		h.fail(w, "daily sales query failed", err)
		return
	}
	respond(w, http.StatusOK, points)
}

func (h *Handler) popularProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.PopularProducts(r.Context(), 10)
	if err != nil {
		h.fail(w, "popular products query failed", err)
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) customerInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.repo.CustomerInsights(r.Context(), 20)
	if err != nil {
		h.fail(w, "customer insights query failed", err)
		return
	}
	respond(w, http.StatusOK, insights)
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error) {
	h.log.Error(msg, "err", err)
	respond(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
