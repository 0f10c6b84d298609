package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"rentaldesk-backend/internal/domain"
)

// PriceQuote is the pricing engine's answer for one item over one window.
type PriceQuote struct {
	UnitPrice     decimal.Decimal     `json:"unit_price"`
	DurationType  domain.DurationType `json:"duration_type"`
	DurationUnits int32               `json:"duration_units"`
	LineTotal     decimal.Decimal     `json:"line_total"`
}

// RateOption is one published duration/price pair for an item.
type RateOption struct {
	DurationType domain.DurationType `json:"duration_type"`
	UnitPrice    decimal.Decimal     `json:"unit_price"`
}

type PricingEngine interface {
	// Quote prices quantity units of an item for [start, end) using the
	// cheapest applicable tier.
	Quote(ctx context.Context, itemID int32, variantID *int32, start, end time.Time, quantity int32) (*PriceQuote, error)
	// ListRates returns the active duration/price options for an item.
	ListRates(ctx context.Context, itemID int32, at time.Time) ([]RateOption, error)
}

// AvailabilityResult reports whether a requested quantity fits and how many
// units remain unreserved over the window.
type AvailabilityResult struct {
	Available         bool        `json:"available"`
	AvailableQuantity int32       `json:"available_quantity"`
	Pricing           *PriceQuote `json:"pricing,omitempty"`
}

type AvailabilityChecker interface {
	// CheckAvailability is advisory and read-only; the authoritative check
	// happens again inside the confirmation transaction.
	CheckAvailability(ctx context.Context, itemID int32, variantID *int32, start, end time.Time, quantity int32) (*AvailabilityResult, error)
}

type ReservationManager interface {
	// Activate moves a reservation confirmed -> active on pickup completion.
	Activate(ctx context.Context, reservationID int32) error
	// Release moves a reservation active -> completed on return completion,
	// freeing its quantity for future availability checks.
	Release(ctx context.Context, reservationID int32) error
	// Cancel moves any non-terminal reservation to cancelled.
	Cancel(ctx context.Context, reservationID int32) error
}

type LateFeeCalculator interface {
	// Calculate is pure: identical inputs always give the identical fee.
	// A nil policy means late returns carry no charge.
	Calculate(policy *domain.LateFeePolicy, scheduledEnd, actualEnd time.Time, lineBase decimal.Decimal) decimal.Decimal
}

// QuotationLineInput is one requested line when building a quotation.
type QuotationLineInput struct {
	ItemID    int32     `json:"item_id"`
	VariantID *int32    `json:"variant_id,omitempty"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Quantity  int32     `json:"quantity"`
}

type QuotationService interface {
	CreateQuotation(ctx context.Context, customerID, vendorID int32, validUntil time.Time, lines []QuotationLineInput) (*domain.Quotation, error)
	SendQuotation(ctx context.Context, quotationID int32) (*domain.Quotation, error)
	CancelQuotation(ctx context.Context, quotationID int32) (*domain.Quotation, error)
	// ConfirmQuotation atomically rechecks availability, creates the order
	// with its lines and reservations, and freezes the quotation.
	ConfirmQuotation(ctx context.Context, quotationID int32) (*domain.Order, error)
	GetQuotation(ctx context.Context, quotationID int32) (*domain.Quotation, error)
	ListQuotations(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Quotation, int32, error)
}

// PickupCompletionInput carries the facts recorded at item handover.
type PickupCompletionInput struct {
	ActualAt      time.Time `json:"actual_at"`
	ItemsVerified bool      `json:"items_verified"`
	Notes         string    `json:"notes"`
}

// ReturnCompletionInput carries the facts recorded when items come back.
type ReturnCompletionInput struct {
	ActualAt          time.Time       `json:"actual_at"`
	AllItemsReturned  bool            `json:"all_items_returned"`
	DamageReported    bool            `json:"damage_reported"`
	DamageDescription string          `json:"damage_description"`
	DamageCost        decimal.Decimal `json:"damage_cost"`
	Notes             string          `json:"notes"`
}

type OrderService interface {
	GetOrder(ctx context.Context, orderID int32) (*domain.Order, error)
	ListOrders(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Order, int32, error)
	SchedulePickup(ctx context.Context, orderID int32, at time.Time) (*domain.Pickup, error)
	// CompletePickup activates every line's reservation and moves the order
	// to in_progress.
	CompletePickup(ctx context.Context, orderID int32, input PickupCompletionInput) (*domain.Order, error)
	ScheduleReturn(ctx context.Context, orderID int32, at time.Time) (*domain.Return, error)
	// CompleteReturn records the actual return, charges late fees, releases
	// reservations and moves the order to completed.
	CompleteReturn(ctx context.Context, orderID int32, input ReturnCompletionInput) (*domain.Order, *domain.Return, error)
	// CancelOrder is only legal before pickup; it releases the order's
	// confirmed reservations synchronously.
	CancelOrder(ctx context.Context, orderID int32, reason string) (*domain.Order, error)
}

// GenerateInvoiceInput supplies per-invoice billing overrides. States left
// empty are resolved from the customer and vendor records.
type GenerateInvoiceInput struct {
	BillingState string `json:"billing_state"`
	VendorState  string `json:"vendor_state"`
	DueInDays    int32  `json:"due_in_days"`
	Notes        string `json:"notes"`
}

type InvoiceService interface {
	// Generate builds the invoice for an in-progress or completed order,
	// mirroring its lines plus a late-fee line when one applies.
	Generate(ctx context.Context, orderID int32, input GenerateInvoiceInput) (*domain.Invoice, error)
	SendInvoice(ctx context.Context, invoiceID int32) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, invoiceID int32) (*domain.Invoice, error)
	// RecordPayment applies a payment (or refund) and rolls the invoice
	// status forward.
	RecordPayment(ctx context.Context, invoiceID int32, amount decimal.Decimal, method domain.PaymentMethod, isRefund bool, reference string) (*domain.Payment, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}
