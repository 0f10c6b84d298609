package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type QuotationStatus string

const (
	QuotationStatusDraft     QuotationStatus = "draft"
	QuotationStatusSent      QuotationStatus = "sent"
	QuotationStatusConfirmed QuotationStatus = "confirmed"
	QuotationStatusCancelled QuotationStatus = "cancelled"
	QuotationStatusExpired   QuotationStatus = "expired"
)

// quotationTransitions is the single authority on quotation lifecycle moves.
var quotationTransitions = map[QuotationStatus][]QuotationStatus{
	QuotationStatusDraft: {QuotationStatusSent, QuotationStatusCancelled, QuotationStatusExpired},
	QuotationStatusSent:  {QuotationStatusConfirmed, QuotationStatusCancelled, QuotationStatusExpired},
}

// CanTransition reports whether a quotation may move from one status to
// another. Confirmed, cancelled and expired are terminal.
func (s QuotationStatus) CanTransition(to QuotationStatus) bool {
	for _, next := range quotationTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Mutable reports whether quotation contents may still change.
func (s QuotationStatus) Mutable() bool {
	return s == QuotationStatusDraft || s == QuotationStatusSent
}

// Quotation is a priced, unconfirmed rental offer. Totals are recomputed from
// lines on every mutation and frozen once the status leaves draft/sent.
type Quotation struct {
	ID              int32           `json:"id"`
	QuotationNumber string          `json:"quotation_number"`
	CustomerID      int32           `json:"customer_id"`
	VendorID        int32           `json:"vendor_id"`
	Status          QuotationStatus `json:"status"`
	ValidUntil      time.Time       `json:"valid_until"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	Total           decimal.Decimal `json:"total"`
	Notes           string          `json:"notes"`
	Lines           []QuotationLine `json:"lines,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	ConfirmedAt     *time.Time      `json:"confirmed_at,omitempty"`
}

// QuotationLine is one item/range/quantity entry of a quotation.
type QuotationLine struct {
	ID            int32           `json:"id"`
	QuotationID   int32           `json:"quotation_id"`
	ItemID        int32           `json:"item_id"`
	VariantID     *int32          `json:"variant_id,omitempty"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       time.Time       `json:"end_date"`
	Quantity      int32           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	DurationUnits int32           `json:"duration_units"`
	DurationType  DurationType    `json:"duration_type"`
	LineTotal     decimal.Decimal `json:"line_total"`
}

// RecalculateTotals rebuilds the quotation money fields from its lines.
// Invariant: Total = Subtotal - Discount + Tax.
func (q *Quotation) RecalculateTotals(taxRate decimal.Decimal) {
	subtotal := decimal.Zero
	for _, line := range q.Lines {
		subtotal = subtotal.Add(line.LineTotal)
	}
	q.Subtotal = subtotal
	taxable := subtotal.Sub(q.DiscountAmount)
	q.TaxAmount = taxable.Mul(taxRate).Round(2)
	q.Total = taxable.Add(q.TaxAmount)
}
