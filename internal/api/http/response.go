package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type listMeta struct {
	Page     int32 `json:"page"`
	PageSize int32 `json:"page_size"`
	Total    int32 `json:"total"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps domain errors to HTTP statuses: malformed input is 400,
// state conflicts are 409, missing rows are 404, business rule rejections
// are 422.
func writeError(w http.ResponseWriter, err error) {
	var (
		valErr        *domain.ValidationError
		dateErr       *domain.InvalidDateRangeError
		pricingErr    *domain.NoPricingAvailableError
		inventoryErr  *domain.InsufficientInventoryError
		expiredErr    *domain.QuotationExpiredError
		stateErr      *domain.InvalidStateError
		transitionErr *domain.InvalidTransitionError
		resStateErr   *domain.InvalidReservationStateError
		paymentErr    *domain.PaymentExceedsBalanceError
	)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found", Code: "NOT_FOUND"})
	case errors.As(err, &valErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "VALIDATION_FAILED"})
	case errors.As(err, &dateErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "INVALID_DATE_RANGE"})
	case errors.As(err, &pricingErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Code: "NO_PRICING"})
	case errors.As(err, &inventoryErr):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Code: "INSUFFICIENT_INVENTORY"})
	case errors.As(err, &expiredErr):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Code: "QUOTATION_EXPIRED"})
	case errors.As(err, &stateErr):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Code: "INVALID_STATE"})
	case errors.As(err, &transitionErr):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Code: "INVALID_TRANSITION"})
	case errors.As(err, &resStateErr):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Code: "INVALID_RESERVATION_STATE"})
	case errors.As(err, &paymentErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Code: "PAYMENT_EXCEEDS_BALANCE"})
	default:
		logger.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return int32(id), nil
}

func queryInt32(r *http.Request, name string, def int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v <= 0 {
		return def
	}
	return int32(v)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body", Code: "BAD_REQUEST"})
		return false
	}
	return true
}
