package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestQuotationStatusTransitions(t *testing.T) {
	cases := []struct {
		from    QuotationStatus
		to      QuotationStatus
		allowed bool
	}{
		{QuotationStatusDraft, QuotationStatusSent, true},
		{QuotationStatusDraft, QuotationStatusCancelled, true},
		{QuotationStatusDraft, QuotationStatusConfirmed, false},
		{QuotationStatusSent, QuotationStatusConfirmed, true},
		{QuotationStatusSent, QuotationStatusExpired, true},
		{QuotationStatusConfirmed, QuotationStatusCancelled, false},
		{QuotationStatusCancelled, QuotationStatusSent, false},
		{QuotationStatusExpired, QuotationStatusConfirmed, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusDraft, OrderStatusConfirmed, true},
		{OrderStatusConfirmed, OrderStatusInProgress, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusInProgress, OrderStatusCompleted, true},
		{OrderStatusInProgress, OrderStatusCancelled, false},
		{OrderStatusCompleted, OrderStatusInProgress, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestInvoiceStatusTransitionsLifecycle(t *testing.T) {
	cases := []struct {
		from    InvoiceStatus
		to      InvoiceStatus
		allowed bool
	}{
		{InvoiceStatusDraft, InvoiceStatusSent, true},
		{InvoiceStatusDraft, InvoiceStatusPaid, false},
		{InvoiceStatusSent, InvoiceStatusPartiallyPaid, true},
		{InvoiceStatusSent, InvoiceStatusOverdue, true},
		{InvoiceStatusPartiallyPaid, InvoiceStatusSent, true},
		{InvoiceStatusPaid, InvoiceStatusPartiallyPaid, true},
		{InvoiceStatusPaid, InvoiceStatusSent, true},
		{InvoiceStatusOverdue, InvoiceStatusPaid, true},
		// A refund cannot clear the overdue mark.
		{InvoiceStatusOverdue, InvoiceStatusSent, false},
		{InvoiceStatusCancelled, InvoiceStatusSent, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestReservationStatus(t *testing.T) {
	assert.True(t, ReservationStatusConfirmed.CanTransition(ReservationStatusActive))
	assert.True(t, ReservationStatusActive.CanTransition(ReservationStatusCompleted))
	assert.False(t, ReservationStatusCompleted.CanTransition(ReservationStatusActive))
	assert.False(t, ReservationStatusCancelled.CanTransition(ReservationStatusConfirmed))

	assert.True(t, ReservationStatusConfirmed.Blocking())
	assert.True(t, ReservationStatusActive.Blocking())
	assert.False(t, ReservationStatusCompleted.Blocking())
	assert.False(t, ReservationStatusCancelled.Blocking())
}

func TestReservationOverlaps(t *testing.T) {
	start := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 5)
	res := &Reservation{StartDate: start, EndDate: end}

	assert.True(t, res.Overlaps(start.AddDate(0, 0, 2), end.AddDate(0, 0, 2)))
	assert.True(t, res.Overlaps(start.AddDate(0, 0, -2), start.AddDate(0, 0, 1)))
	// Half-open: a range starting exactly at the reservation's end is free.
	assert.False(t, res.Overlaps(end, end.AddDate(0, 0, 3)))
	assert.False(t, res.Overlaps(start.AddDate(0, 0, -3), start))
}

func TestQuotationRecalculateTotals(t *testing.T) {
	q := &Quotation{
		DiscountAmount: decimal.NewFromInt(50),
		Lines: []QuotationLine{
			{LineTotal: decimal.NewFromInt(600)},
			{LineTotal: decimal.NewFromInt(400)},
		},
	}
	q.RecalculateTotals(decimal.NewFromFloat(0.18))

	assert.True(t, q.Subtotal.Equal(decimal.NewFromInt(1000)))
	// (1000 - 50) * 0.18 = 171
	assert.True(t, q.TaxAmount.Equal(decimal.NewFromInt(171)), "tax %s", q.TaxAmount)
	assert.True(t, q.Total.Equal(decimal.NewFromInt(1121)), "total %s", q.Total)
}

func TestOrderBalanceDue(t *testing.T) {
	o := &Order{Total: decimal.NewFromInt(500), PaidAmount: decimal.NewFromInt(200)}
	assert.True(t, o.BalanceDue().Equal(decimal.NewFromInt(300)))

	o.PaidAmount = decimal.NewFromInt(600)
	assert.True(t, o.BalanceDue().IsZero())
}

func TestPricingTierEffectivePrice(t *testing.T) {
	tier := &PricingTier{Price: decimal.NewFromInt(200)}
	assert.True(t, tier.EffectivePrice().Equal(decimal.NewFromInt(200)))

	tier.IsDiscounted = true
	tier.DiscountPercent = decimal.NewFromInt(25)
	assert.True(t, tier.EffectivePrice().Equal(decimal.NewFromInt(150)))
}

func TestPricingTierInEffect(t *testing.T) {
	at := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	from := at.AddDate(0, 0, -10)
	until := at.AddDate(0, 0, 10)

	tier := &PricingTier{IsActive: true, EffectiveFrom: &from, EffectiveUntil: &until}
	assert.True(t, tier.InEffect(at))
	assert.False(t, tier.InEffect(at.AddDate(0, 0, 20)))
	assert.False(t, tier.InEffect(at.AddDate(0, 0, -20)))

	tier.IsActive = false
	assert.False(t, tier.InEffect(at))
}

func TestDurationTypeLengthDays(t *testing.T) {
	assert.Equal(t, int32(1), DurationTypeDaily.LengthDays())
	assert.Equal(t, int32(7), DurationTypeWeekly.LengthDays())
	assert.Equal(t, int32(30), DurationTypeMonthly.LengthDays())
}
