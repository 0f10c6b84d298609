package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusDraft      OrderStatus = "draft"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// orderTransitions encodes the monotonic order lifecycle. Cancellation is
// only reachable before pickup.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusDraft:      {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusInProgress, OrderStatusCancelled},
	OrderStatusInProgress: {OrderStatusCompleted},
}

func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is a confirmed rental agreement, created 1:1 from a confirmed
// quotation.
type Order struct {
	ID               int32           `json:"id"`
	OrderNumber      string          `json:"order_number"`
	QuotationID      int32           `json:"quotation_id"`
	CustomerID       int32           `json:"customer_id"`
	VendorID         int32           `json:"vendor_id"`
	Status           OrderStatus     `json:"status"`
	PickupDate       time.Time       `json:"pickup_date"`
	ReturnDate       time.Time       `json:"return_date"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	TaxAmount        decimal.Decimal `json:"tax_amount"`
	LateFee          decimal.Decimal `json:"late_fee"`
	DamageCharges    decimal.Decimal `json:"damage_charges"`
	Total            decimal.Decimal `json:"total"`
	DepositAmount    decimal.Decimal `json:"deposit_amount"`
	PaidAmount       decimal.Decimal `json:"paid_amount"`
	Notes            string          `json:"notes"`
	Lines            []OrderLine     `json:"lines,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	ConfirmedAt      *time.Time      `json:"confirmed_at,omitempty"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
	CancelledAt      *time.Time      `json:"cancelled_at,omitempty"`
	CancelReason     string          `json:"cancel_reason,omitempty"`
	OverdueFlaggedAt *time.Time      `json:"overdue_flagged_at,omitempty"`
}

// OrderLine mirrors a quotation line plus actual pickup/return facts.
type OrderLine struct {
	ID             int32           `json:"id"`
	OrderID        int32           `json:"order_id"`
	ItemID         int32           `json:"item_id"`
	VariantID      *int32          `json:"variant_id,omitempty"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        time.Time       `json:"end_date"`
	ActualPickupAt *time.Time      `json:"actual_pickup_at,omitempty"`
	ActualReturnAt *time.Time      `json:"actual_return_at,omitempty"`
	Quantity       int32           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	DurationUnits  int32           `json:"duration_units"`
	DurationType   DurationType    `json:"duration_type"`
	LineTotal      decimal.Decimal `json:"line_total"`
	IsLateReturn   bool            `json:"is_late_return"`
	LateFeeCharged decimal.Decimal `json:"late_fee_charged"`
	ReservationID  int32           `json:"reservation_id,omitempty"`
}

// BalanceDue is the remaining amount owed on the order, never negative.
func (o *Order) BalanceDue() decimal.Decimal {
	due := o.Total.Sub(o.PaidAmount)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

// RecalculateTotals rebuilds order money fields from lines and accumulated
// fees. Invariant: Total = Subtotal - Discount + Tax + LateFee + Damage.
func (o *Order) RecalculateTotals() {
	subtotal := decimal.Zero
	lateFee := decimal.Zero
	for _, line := range o.Lines {
		subtotal = subtotal.Add(line.LineTotal)
		lateFee = lateFee.Add(line.LateFeeCharged)
	}
	o.Subtotal = subtotal
	o.LateFee = lateFee
	o.Total = subtotal.Sub(o.DiscountAmount).Add(o.TaxAmount).Add(o.LateFee).Add(o.DamageCharges)
}
