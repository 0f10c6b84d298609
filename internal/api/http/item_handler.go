package http

import (
	"net/http"
	"time"

	"rentaldesk-backend/internal/service"
)

// ItemHandler serves availability and pricing lookups.
type ItemHandler struct {
	availability service.AvailabilityChecker
	pricing      service.PricingEngine
}

func NewItemHandler(availability service.AvailabilityChecker, pricing service.PricingEngine) *ItemHandler {
	return &ItemHandler{availability: availability, pricing: pricing}
}

// CheckAvailability handles GET /items/{id}/availability.
// Query: start, end (RFC 3339), quantity, optional variant_id.
func (h *ItemHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid item id", Code: "BAD_REQUEST"})
		return
	}

	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid start date", Code: "BAD_REQUEST"})
		return
	}
	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid end date", Code: "BAD_REQUEST"})
		return
	}
	quantity := queryInt32(r, "quantity", 1)

	var variantID *int32
	if v := queryInt32(r, "variant_id", 0); v > 0 {
		variantID = &v
	}

	result, err := h.availability.CheckAvailability(r.Context(), itemID, variantID, start, end, quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ListRates handles GET /items/{id}/pricing.
func (h *ItemHandler) ListRates(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid item id", Code: "BAD_REQUEST"})
		return
	}

	rates, err := h.pricing.ListRates(r.Context(), itemID, time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rates": rates})
}
