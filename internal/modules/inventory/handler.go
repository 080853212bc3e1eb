package inventory

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sweetbite/sweetbite-backend/internal/middleware"
	"github.com/sweetbite/sweetbite-backend/internal/modules/catalog"
	"github.com/sweetbite/sweetbite-backend/internal/modules/user"
)

const maxImageSize = 10 << 20 // 10 MiB multipart memory cap

// Handler exposes inventory HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux, mw *middleware.Auth) {
	gated := []func(http.Handler) http.Handler{
		mw.Authenticate,
		mw.Require(string(user.RoleInventory), string(user.RoleManager), string(user.RoleAdmin)),
	}
	r.With(gated...).Get("/api/inventory", h.list)
	r.With(gated...).Post("/api/inventory", h.addItem)
	r.With(gated...).Put("/api/inventory/{id}", h.updateItem)
	r.With(gated...).Delete("/api/inventory/{id}", h.deleteItem)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	req, image, err := parseItemForm(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	item, err := h.service.AddItem(r.Context(), req, image)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		return
	}
	respond(w, http.StatusCreated, item)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req, image, err := parseItemForm(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	item, err := h.service.UpdateItem(r.Context(), id, req, image)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respond(w, http.StatusNotFound, map[string]string{"message": "Product not found"})
			return
		}
		respond(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		return
	}
	respond(w, http.StatusOK, item)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respond(w, http.StatusNotFound, map[string]string{"message": "Product not found"})
			return
		}
		respond(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "Product and stock deleted"})
}

// parseItemForm reads the multipart product+stock form shared by POST and PUT.
func parseItemForm(r *http.Request) (SaveItemRequest, *ImageUpload, error) {
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		return SaveItemRequest{}, nil, err
	}

	req := SaveItemRequest{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Unit:        r.FormValue("unit"),
		RemoveImage: r.FormValue("removeImage") == "true",
	}

	if v := r.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return SaveItemRequest{}, nil, errors.New("invalid price")
		}
		req.Price = price
	}
	if v := r.FormValue("quantity"); v != "" {
		qty, err := strconv.Atoi(v)
		if err != nil {
			return SaveItemRequest{}, nil, errors.New("invalid quantity")
		}
		req.Quantity = qty
	}
	if v := r.FormValue("expiry"); v != "" {
		expiry, err := time.Parse("2006-01-02", v)
		if err != nil {
			return SaveItemRequest{}, nil, errors.New("invalid expiry date, want YYYY-MM-DD")
		}
		req.Expiry = &expiry
	}

	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return req, nil, nil
	}
	if err != nil {
		return SaveItemRequest{}, nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return SaveItemRequest{}, nil, err
	}
	return req, &ImageUpload{Data: data, Filename: header.Filename}, nil
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
