package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ValidationError reports request input rejected before any state was
// touched.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// InvalidDateRangeError reports a rental window whose end does not come
// strictly after its start.
type InvalidDateRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidDateRangeError) Error() string {
	return fmt.Sprintf("invalid date range: end %s must be after start %s",
		e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
}

// NoPricingAvailableError is returned when an item has no active pricing tier
// covering the requested window.
type NoPricingAvailableError struct {
	ItemID int32
}

func (e *NoPricingAvailableError) Error() string {
	return fmt.Sprintf("no active pricing tier for item %d", e.ItemID)
}

// InsufficientInventoryError identifies the quotation/order line whose
// requested quantity cannot be allocated.
type InsufficientInventoryError struct {
	LineID    int32
	ItemID    int32
	Requested int32
	Available int32
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory for line %d: requested %d of item %d, %d available",
		e.LineID, e.Requested, e.ItemID, e.Available)
}

// QuotationExpiredError is returned when a confirmation arrives after the
// quotation's validity deadline.
type QuotationExpiredError struct {
	QuotationID int32
	ValidUntil  time.Time
}

func (e *QuotationExpiredError) Error() string {
	return fmt.Sprintf("quotation %d expired on %s", e.QuotationID, e.ValidUntil.Format("2006-01-02"))
}

// InvalidStateError reports an operation attempted against an entity that is
// not in a state accepting it.
type InvalidStateError struct {
	Entity  string
	ID      int32
	Current string
	Op      string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s %d in state %q does not allow %s", e.Entity, e.ID, e.Current, e.Op)
}

// InvalidTransitionError reports an illegal lifecycle move.
type InvalidTransitionError struct {
	Entity string
	ID     int32
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s %d cannot move from %q to %q", e.Entity, e.ID, e.From, e.To)
}

// InvalidReservationStateError reports an illegal reservation transition.
type InvalidReservationStateError struct {
	ReservationID int32
	From          ReservationStatus
	To            ReservationStatus
}

func (e *InvalidReservationStateError) Error() string {
	return fmt.Sprintf("reservation %d cannot move from %q to %q", e.ReservationID, e.From, e.To)
}

// PaymentExceedsBalanceError is returned when a payment would overshoot the
// invoice balance due.
type PaymentExceedsBalanceError struct {
	InvoiceID  int32
	Amount     decimal.Decimal
	BalanceDue decimal.Decimal
}

func (e *PaymentExceedsBalanceError) Error() string {
	return fmt.Sprintf("payment of %s exceeds balance due %s on invoice %d",
		e.Amount.StringFixed(2), e.BalanceDue.StringFixed(2), e.InvoiceID)
}
