// Package handler contains the HTTP layer: request parsing, response
// encoding, and the mapping from domain errors to status codes. Handlers
// never touch the database and services never touch HTTP.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/HerosSMP/Heros-shop.de/internal/service"
)

// ProductHandler serves the catalog: public reads for the storefront,
// authenticated writes for the admin panel.
type ProductHandler struct {
	products *service.ProductService
	logger   *slog.Logger
}

func NewProductHandler(products *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

// productRequest is the JSON body for create and update. Both accept the
// same full set of fields — product writes are wholesale.
type productRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

// HandleList returns the whole catalog.
//
// HTTP: GET /api/products
func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// HandleGet returns a single product.
//
// HTTP: GET /api/products/{id}
func (h *ProductHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// HandleCreate adds a product to the catalog.
//
// HTTP: POST /api/products (admin)
// BODY: {"title": "...", "description": "...", "price": 9.99, "image": "..."}
func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid product JSON", slog.String("error", err.Error()))
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	product, err := h.products.Create(r.Context(), req.Title, req.Description, req.Price, req.Image)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// HandleUpdate replaces a product's fields.
//
// HTTP: PUT /api/products/{id} (admin)
func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid product JSON", slog.String("error", err.Error()))
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	product, err := h.products.Update(r.Context(), r.PathValue("id"),
		req.Title, req.Description, req.Price, req.Image)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// HandleDelete removes a product.
//
// HTTP: DELETE /api/products/{id} (admin)
func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
