package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DurationType string

const (
	DurationTypeDaily   DurationType = "daily"
	DurationTypeWeekly  DurationType = "weekly"
	DurationTypeMonthly DurationType = "monthly"
)

// LengthDays returns the tier length in days used for unit rounding.
// Months are billed on a 30-day basis.
func (d DurationType) LengthDays() int32 {
	switch d {
	case DurationTypeWeekly:
		return 7
	case DurationTypeMonthly:
		return 30
	default:
		return 1
	}
}

// Item is a rentable unit owned by a vendor. QuantityOnHand is the total
// owned stock; availability for a window is always derived from reservations,
// never stored.
type Item struct {
	ID              int32           `json:"id"`
	VendorID        int32           `json:"vendor_id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	QuantityOnHand  int32           `json:"quantity_on_hand"`
	SecurityDeposit decimal.Decimal `json:"security_deposit"`
	IsActive        bool            `json:"is_active"`
	IsPublished     bool            `json:"is_published"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ItemVariant is an optional split of an item with its own stock count.
type ItemVariant struct {
	ID             int32     `json:"id"`
	ItemID         int32     `json:"item_id"`
	SKU            string    `json:"sku"`
	Name           string    `json:"name"`
	QuantityOnHand int32     `json:"quantity_on_hand"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// PricingTier is a duration-granular rental rate for an item (or a variant
// override). Several tiers may coexist; the engine picks the cheapest total.
type PricingTier struct {
	ID              int32           `json:"id"`
	ItemID          int32           `json:"item_id"`
	VariantID       *int32          `json:"variant_id,omitempty"`
	DurationType    DurationType    `json:"duration_type"`
	DurationValue   int32           `json:"duration_value"`
	Price           decimal.Decimal `json:"price"`
	IsDiscounted    bool            `json:"is_discounted"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	IsActive        bool            `json:"is_active"`
	EffectiveFrom   *time.Time      `json:"effective_from,omitempty"`
	EffectiveUntil  *time.Time      `json:"effective_until,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// EffectivePrice returns the tier price after any promotional discount.
func (t *PricingTier) EffectivePrice() decimal.Decimal {
	if t.IsDiscounted && t.DiscountPercent.IsPositive() {
		discount := t.Price.Mul(t.DiscountPercent).Div(decimal.NewFromInt(100))
		return t.Price.Sub(discount)
	}
	return t.Price
}

// InEffect reports whether the tier applies at the given instant.
func (t *PricingTier) InEffect(at time.Time) bool {
	if !t.IsActive {
		return false
	}
	if t.EffectiveFrom != nil && at.Before(*t.EffectiveFrom) {
		return false
	}
	if t.EffectiveUntil != nil && at.After(*t.EffectiveUntil) {
		return false
	}
	return true
}
