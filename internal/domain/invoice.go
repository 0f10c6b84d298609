package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "draft"
	InvoiceStatusSent          InvoiceStatus = "sent"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusOverdue       InvoiceStatus = "overdue"
	InvoiceStatusCancelled     InvoiceStatus = "cancelled"
)

// Refunds can move a paid or partially paid invoice back towards sent, but
// an overdue invoice never loses its overdue mark by being refunded.
var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusDraft:         {InvoiceStatusSent, InvoiceStatusCancelled},
	InvoiceStatusSent:          {InvoiceStatusPartiallyPaid, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled},
	InvoiceStatusPartiallyPaid: {InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue},
	InvoiceStatusPaid:          {InvoiceStatusSent, InvoiceStatusPartiallyPaid},
	InvoiceStatusOverdue:       {InvoiceStatusPartiallyPaid, InvoiceStatusPaid},
}

func (s InvoiceStatus) CanTransition(to InvoiceStatus) bool {
	for _, next := range invoiceTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Invoice is the GST-compliant financial document generated from an order.
// Intra-state transactions split tax into CGST+SGST; inter-state uses IGST.
type Invoice struct {
	ID             int32           `json:"id"`
	InvoiceNumber  string          `json:"invoice_number"`
	OrderID        int32           `json:"order_id"`
	CustomerID     int32           `json:"customer_id"`
	VendorID       int32           `json:"vendor_id"`
	Status         InvoiceStatus   `json:"status"`
	InvoiceDate    time.Time       `json:"invoice_date"`
	DueDate        time.Time       `json:"due_date"`
	BillingState   string          `json:"billing_state"`
	VendorState    string          `json:"vendor_state"`
	IsIntrastate   bool            `json:"is_intrastate"`
	CGSTRate       decimal.Decimal `json:"cgst_rate"`
	SGSTRate       decimal.Decimal `json:"sgst_rate"`
	IGSTRate       decimal.Decimal `json:"igst_rate"`
	CGSTAmount     decimal.Decimal `json:"cgst_amount"`
	SGSTAmount     decimal.Decimal `json:"sgst_amount"`
	IGSTAmount     decimal.Decimal `json:"igst_amount"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	LateFee        decimal.Decimal `json:"late_fee"`
	DamageCharges  decimal.Decimal `json:"damage_charges"`
	Total          decimal.Decimal `json:"total"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	BalanceDue     decimal.Decimal `json:"balance_due"`
	Notes          string          `json:"notes"`
	Lines          []InvoiceLine   `json:"lines,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	SentAt         *time.Time      `json:"sent_at,omitempty"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
}

type InvoiceLine struct {
	ID          int32           `json:"id"`
	InvoiceID   int32           `json:"invoice_id"`
	OrderLineID *int32          `json:"order_line_id,omitempty"`
	Description string          `json:"description"`
	Quantity    int32           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	IsLateFee   bool            `json:"is_late_fee"`
}

// CalculateGST fills the tax fields from the taxable base. Same-state
// transactions are split CGST+SGST; otherwise the whole rate goes to IGST.
func (inv *Invoice) CalculateGST() {
	taxable := inv.Subtotal.Sub(inv.DiscountAmount).Add(inv.LateFee).Add(inv.DamageCharges)
	hundred := decimal.NewFromInt(100)
	if inv.BillingState == inv.VendorState {
		inv.IsIntrastate = true
		inv.CGSTAmount = taxable.Mul(inv.CGSTRate).Div(hundred).Round(2)
		inv.SGSTAmount = taxable.Mul(inv.SGSTRate).Div(hundred).Round(2)
		inv.IGSTAmount = decimal.Zero
		inv.TaxAmount = inv.CGSTAmount.Add(inv.SGSTAmount)
	} else {
		inv.IsIntrastate = false
		inv.CGSTAmount = decimal.Zero
		inv.SGSTAmount = decimal.Zero
		inv.IGSTAmount = taxable.Mul(inv.IGSTRate).Div(hundred).Round(2)
		inv.TaxAmount = inv.IGSTAmount
	}
}

// RecalculateTotals rebuilds subtotal, tax and balance from lines and
// payments received so far.
func (inv *Invoice) RecalculateTotals() {
	subtotal := decimal.Zero
	for _, line := range inv.Lines {
		if !line.IsLateFee {
			subtotal = subtotal.Add(line.LineTotal)
		}
	}
	inv.Subtotal = subtotal
	inv.CalculateGST()
	inv.Total = inv.Subtotal.
		Sub(inv.DiscountAmount).
		Add(inv.TaxAmount).
		Add(inv.LateFee).
		Add(inv.DamageCharges)
	inv.BalanceDue = inv.Total.Sub(inv.PaidAmount)
}

type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodCard       PaymentMethod = "card"
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodNetBanking PaymentMethod = "netbanking"
	PaymentMethodCheque     PaymentMethod = "cheque"
	PaymentMethodOther      PaymentMethod = "other"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusSuccess  PaymentStatus = "success"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Payment records money received against (or refunded from) an invoice.
type Payment struct {
	ID            int32           `json:"id"`
	PaymentNumber string          `json:"payment_number"`
	InvoiceID     int32           `json:"invoice_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        PaymentMethod   `json:"method"`
	Status        PaymentStatus   `json:"status"`
	IsRefund      bool            `json:"is_refund"`
	Reference     string          `json:"reference"`
	Notes         string          `json:"notes"`
	PaidAt        time.Time       `json:"paid_at"`
	CreatedAt     time.Time       `json:"created_at"`
}
