package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/service"
)

// InvoiceHandler serves invoice generation and payment endpoints.
type InvoiceHandler struct {
	invoices service.InvoiceService
}

func NewInvoiceHandler(invoices service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

// Generate handles POST /orders/{id}/invoice.
func (h *InvoiceHandler) Generate(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id", Code: "BAD_REQUEST"})
		return
	}
	var input service.GenerateInvoiceInput
	if !decodeBody(w, r, &input) {
		return
	}

	inv, err := h.invoices.Generate(r.Context(), orderID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

// Send handles POST /invoices/{id}/send.
func (h *InvoiceHandler) Send(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid invoice id", Code: "BAD_REQUEST"})
		return
	}
	inv, err := h.invoices.SendInvoice(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// Get handles GET /invoices/{id}.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid invoice id", Code: "BAD_REQUEST"})
		return
	}
	inv, err := h.invoices.GetInvoice(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

type recordPaymentRequest struct {
	Amount    decimal.Decimal      `json:"amount"`
	Method    domain.PaymentMethod `json:"method"`
	IsRefund  bool                 `json:"is_refund"`
	Reference string               `json:"reference"`
}

// RecordPayment handles POST /invoices/{id}/payments.
func (h *InvoiceHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid invoice id", Code: "BAD_REQUEST"})
		return
	}
	var req recordPaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !req.Amount.IsPositive() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "amount must be positive", Code: "BAD_REQUEST"})
		return
	}
	if req.Method == "" {
		req.Method = domain.PaymentMethodOther
	}

	payment, err := h.invoices.RecordPayment(r.Context(), id, req.Amount, req.Method, req.IsRefund, req.Reference)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}
