package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sweetbite/sweetbite-backend/internal/middleware"
)

// Handler exposes the manager-facing user management endpoints.
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *chi.Mux, mw *middleware.Auth) {
	managerOnly := []func(http.Handler) http.Handler{
		mw.Authenticate,
		mw.Require(string(RoleManager), string(RoleAdmin)),
	}

	r.With(managerOnly...).Get("/api/manager/users", h.listUsers)
	r.With(managerOnly...).Post("/api/manager/user", h.createUser)
	r.With(managerOnly...).Put("/api/manager/user/{id}", h.updateUser)
	r.With(managerOnly...).Delete("/api/manager/user/{id}", h.deleteUser)
}

// isDuplicateKey returns true when the error is a PostgreSQL unique constraint violation (code 23505).
func isDuplicateKey(err error) bool {
	return strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "duplicate key")
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	respond(w, http.StatusOK, users)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	u, err := h.service.CreateUser(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrEmailTaken) || isDuplicateKey(err) || strings.Contains(err.Error(), "required") || strings.Contains(err.Error(), "invalid role") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"message": err.Error()})
		return
	}
	respond(w, http.StatusCreated, u)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	u, err := h.service.UpdateUser(r.Context(), id, req)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrNotFound) {
			code = http.StatusNotFound
		} else if strings.Contains(err.Error(), "invalid role") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"message": err.Error()})
		return
	}
	respond(w, http.StatusOK, u)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.service.DeleteUser(r.Context(), middleware.UserID(r.Context()), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrSelfDelete) {
			code = http.StatusBadRequest
		} else if errors.Is(err, ErrNotFound) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"message": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
