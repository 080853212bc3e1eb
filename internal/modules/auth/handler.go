package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sweetbite/sweetbite-backend/internal/middleware"
	"github.com/sweetbite/sweetbite-backend/internal/modules/user"
)

// Handler exposes authentication HTTP endpoints.
type Handler struct {
	service Service
	users   user.Repository
}

func NewHandler(service Service, users user.Repository) *Handler {
	return &Handler{service: service, users: users}
}

func (h *Handler) RegisterRoutes(r *chi.Mux, mw *middleware.Auth) {
	r.Post("/api/auth/signup", h.signup)
	r.Post("/api/auth/login", h.login)
	r.With(mw.Authenticate).Get("/api/auth/me", h.me)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	u, err := h.service.Signup(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, user.ErrEmailTaken) {
			code = http.StatusBadRequest
		} else if err.Error() == "email and password are required" {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"message": err.Error()})
		return
	}
	respond(w, http.StatusCreated, u)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	token, u, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond(w, http.StatusUnauthorized, map[string]string{"message": err.Error()})
			return
		}
		respond(w, http.StatusInternalServerError, map[string]string{"message": "login failed"})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  u,
	})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.GetUserByID(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"message": "user not found"})
		return
	}
	respond(w, http.StatusOK, u)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
