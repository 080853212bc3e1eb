package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sweetbite/sweetbite-backend/internal/middleware"
	"github.com/sweetbite/sweetbite-backend/internal/modules/user"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux, mw *middleware.Auth) {
	// Public storefront reads.
	r.Get("/api/products", h.listMenu)
	r.Get("/api/customer/featured", h.featured)

	managerOnly := []func(http.Handler) http.Handler{
		mw.Authenticate,
		mw.Require(string(user.RoleManager), string(user.RoleAdmin)),
	}
	r.With(managerOnly...).Get("/api/products/all", h.listAll)
	r.With(managerOnly...).Post("/api/products", h.createProduct)
	r.With(managerOnly...).Put("/api/products/{id}", h.updateProduct)
	r.With(managerOnly...).Delete("/api/products/{id}", h.deleteProduct)
}

func (h *Handler) listMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListMenu(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if items == nil {
		items = []*MenuItem{}
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) featured(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Featured(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if items == nil {
		items = []*MenuItem{}
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListAll(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req SaveProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	p, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req SaveProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond(w, http.StatusNotFound, map[string]string{"message": err.Error()})
			return
		}
		respond(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond(w, http.StatusNotFound, map[string]string{"message": err.Error()})
			return
		}
		respond(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
