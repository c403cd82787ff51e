package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/HerosSMP/Heros-shop.de/internal/model"
	"github.com/HerosSMP/Heros-shop.de/internal/service"
)

// OrderHandler serves the checkout (public) and the order queue (admin).
type OrderHandler struct {
	orders *service.OrderService
	logger *slog.Logger
}

func NewOrderHandler(orders *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

type createOrderRequest struct {
	ProductID       string `json:"productId"`
	Email           string `json:"email"`
	DiscordName     string `json:"discordName"`
	PaysafecardCode string `json:"paysafecardCode"`
}

type updateStatusRequest struct {
	Status model.OrderStatus `json:"status"`
}

// HandleCreate places an order — the storefront's checkout submit.
//
// HTTP: POST /api/orders (public)
// BODY: {"productId": "...", "email": "...", "discordName": "...", "paysafecardCode": "..."}
//
// The response includes the generated order id and the pending status; the
// storefront shows it on the confirmation screen.
func (h *OrderHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid order JSON", slog.String("error", err.Error()))
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	order, err := h.orders.Create(r.Context(),
		req.ProductID, req.Email, req.DiscordName, req.PaysafecardCode)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// HandleList returns all orders, newest first.
//
// HTTP: GET /api/orders (admin)
func (h *OrderHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// HandleGet returns a single order.
//
// HTTP: GET /api/orders/{id} (admin)
func (h *OrderHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// HandleUpdateStatus sets an order's status.
//
// HTTP: PUT /api/orders/{id}/status (admin)
// BODY: {"status": "completed"}
func (h *OrderHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid status JSON", slog.String("error", err.Error()))
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := h.orders.UpdateStatus(r.Context(), r.PathValue("id"), req.Status); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": string(req.Status)})
}

// HandleDelete removes an order.
//
// HTTP: DELETE /api/orders/{id} (admin)
func (h *OrderHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteLast removes the newest order — the "scrub the test checkout"
// button. 404 when there are no orders.
//
// HTTP: DELETE /api/orders/last (admin)
func (h *OrderHandler) HandleDeleteLast(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.DeleteLast(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
