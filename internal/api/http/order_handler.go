package http

import (
	"net/http"
	"time"

	"rentaldesk-backend/internal/service"
)

// OrderHandler serves the order lifecycle endpoints.
type OrderHandler struct {
	orders service.OrderService
}

func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id", Code: "BAD_REQUEST"})
		return
	}
	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// List handles GET /orders?customer_id=&status=&page=&page_size=.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID := queryInt32(r, "customer_id", 0)
	if customerID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "customer_id is required", Code: "BAD_REQUEST"})
		return
	}
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	orders, total, err := h.orders.ListOrders(r.Context(), customerID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"orders": orders,
		"meta":   listMeta{Page: page, PageSize: pageSize, Total: total},
	})
}

type scheduleRequest struct {
	At time.Time `json:"at"`
}

// SchedulePickup handles POST /orders/{id}/pickup.
func (h *OrderHandler) SchedulePickup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id", Code: "BAD_REQUEST"})
		return
	}
	var req scheduleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.At.IsZero() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "at is required", Code: "BAD_REQUEST"})
		return
	}

	pickup, err := h.orders.SchedulePickup(r.Context(), id, req.At)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pickup)
}

// CompletePickup handles POST /orders/{id}/pickup/complete.
func (h *OrderHandler) CompletePickup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id", Code: "BAD_REQUEST"})
		return
	}
	var input service.PickupCompletionInput
	if !decodeBody(w, r, &input) {
		return
	}

	order, err := h.orders.CompletePickup(r.Context(), id, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// ScheduleReturn handles POST /orders/{id}/return.
func (h *OrderHandler) ScheduleReturn(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id", Code: "BAD_REQUEST"})
		return
	}
	var req scheduleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.At.IsZero() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "at is required", Code: "BAD_REQUEST"})
		return
	}

	ret, err := h.orders.ScheduleReturn(r.Context(), id, req.At)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ret)
}

// CompleteReturn handles POST /orders/{id}/return/complete.
func (h *OrderHandler) CompleteReturn(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id", Code: "BAD_REQUEST"})
		return
	}
	var input service.ReturnCompletionInput
	if !decodeBody(w, r, &input) {
		return
	}

	order, ret, err := h.orders.CompleteReturn(r.Context(), id, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": order, "return": ret})
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

// Cancel handles POST /orders/{id}/cancel.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id", Code: "BAD_REQUEST"})
		return
	}
	var req cancelOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	order, err := h.orders.CancelOrder(r.Context(), id, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
