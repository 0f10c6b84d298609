package http

import (
	"net/http"
	"time"

	"rentaldesk-backend/internal/service"
)

// QuotationHandler serves the quotation lifecycle endpoints.
type QuotationHandler struct {
	quotations service.QuotationService
}

func NewQuotationHandler(quotations service.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotations: quotations}
}

type createQuotationRequest struct {
	CustomerID int32                        `json:"customer_id"`
	VendorID   int32                        `json:"vendor_id"`
	ValidUntil time.Time                    `json:"valid_until"`
	Lines      []service.QuotationLineInput `json:"lines"`
}

// Create handles POST /quotations.
func (h *QuotationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createQuotationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.CustomerID <= 0 || req.VendorID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "customer_id and vendor_id are required", Code: "BAD_REQUEST"})
		return
	}

	qt, err := h.quotations.CreateQuotation(r.Context(), req.CustomerID, req.VendorID, req.ValidUntil, req.Lines)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, qt)
}

// Send handles POST /quotations/{id}/send.
func (h *QuotationHandler) Send(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid quotation id", Code: "BAD_REQUEST"})
		return
	}
	qt, err := h.quotations.SendQuotation(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, qt)
}

// Confirm handles POST /quotations/{id}/confirm and returns the created order.
func (h *QuotationHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid quotation id", Code: "BAD_REQUEST"})
		return
	}
	order, err := h.quotations.ConfirmQuotation(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// Cancel handles POST /quotations/{id}/cancel.
func (h *QuotationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid quotation id", Code: "BAD_REQUEST"})
		return
	}
	qt, err := h.quotations.CancelQuotation(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, qt)
}

// Get handles GET /quotations/{id}.
func (h *QuotationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid quotation id", Code: "BAD_REQUEST"})
		return
	}
	qt, err := h.quotations.GetQuotation(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, qt)
}

// List handles GET /quotations?customer_id=&status=&page=&page_size=.
func (h *QuotationHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID := queryInt32(r, "customer_id", 0)
	if customerID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "customer_id is required", Code: "BAD_REQUEST"})
		return
	}
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	quotations, total, err := h.quotations.ListQuotations(r.Context(), customerID, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"quotations": quotations,
		"meta":       listMeta{Page: page, PageSize: pageSize, Total: total},
	})
}
