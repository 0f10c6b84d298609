package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newGSTInvoice() *Invoice {
	return &Invoice{
		CGSTRate:       decimal.NewFromInt(9),
		SGSTRate:       decimal.NewFromInt(9),
		IGSTRate:       decimal.NewFromInt(18),
		DiscountAmount: decimal.Zero,
		LateFee:        decimal.Zero,
		DamageCharges:  decimal.Zero,
		PaidAmount:     decimal.Zero,
		Lines: []InvoiceLine{
			{Description: "Rental", LineTotal: decimal.NewFromInt(1000)},
		},
	}
}

func TestInvoiceCalculateGST(t *testing.T) {
	t.Run("Intrastate", func(t *testing.T) {
		inv := newGSTInvoice()
		inv.BillingState = "Karnataka"
		inv.VendorState = "Karnataka"
		inv.RecalculateTotals()

		assert.True(t, inv.IsIntrastate)
		assert.True(t, inv.CGSTAmount.Equal(decimal.NewFromInt(90)), "cgst %s", inv.CGSTAmount)
		assert.True(t, inv.SGSTAmount.Equal(decimal.NewFromInt(90)), "sgst %s", inv.SGSTAmount)
		assert.True(t, inv.IGSTAmount.IsZero())
		assert.True(t, inv.TaxAmount.Equal(decimal.NewFromInt(180)))
		assert.True(t, inv.Total.Equal(decimal.NewFromInt(1180)))
	})

	t.Run("Interstate", func(t *testing.T) {
		inv := newGSTInvoice()
		inv.BillingState = "Maharashtra"
		inv.VendorState = "Karnataka"
		inv.RecalculateTotals()

		assert.False(t, inv.IsIntrastate)
		assert.True(t, inv.CGSTAmount.IsZero())
		assert.True(t, inv.SGSTAmount.IsZero())
		assert.True(t, inv.IGSTAmount.Equal(decimal.NewFromInt(180)), "igst %s", inv.IGSTAmount)
		// Split and unsplit paths tax the same base identically.
		assert.True(t, inv.Total.Equal(decimal.NewFromInt(1180)))
	})

	t.Run("Late Fee And Damage In Taxable Base", func(t *testing.T) {
		inv := newGSTInvoice()
		inv.BillingState = "Karnataka"
		inv.VendorState = "Karnataka"
		inv.LateFee = decimal.NewFromInt(150)
		inv.DamageCharges = decimal.NewFromInt(50)
		inv.RecalculateTotals()

		// Base 1200: 9% each side = 108.
		assert.True(t, inv.CGSTAmount.Equal(decimal.NewFromInt(108)), "cgst %s", inv.CGSTAmount)
		// 1000 + 216 tax + 150 + 50.
		assert.True(t, inv.Total.Equal(decimal.NewFromInt(1416)), "total %s", inv.Total)
	})

	t.Run("Late Fee Lines Excluded From Subtotal", func(t *testing.T) {
		inv := newGSTInvoice()
		inv.BillingState = "Karnataka"
		inv.VendorState = "Karnataka"
		inv.LateFee = decimal.NewFromInt(150)
		inv.Lines = append(inv.Lines, InvoiceLine{
			Description: "Late return fee",
			LineTotal:   decimal.NewFromInt(150),
			IsLateFee:   true,
		})
		inv.RecalculateTotals()

		// The fee rides on the LateFee field, not the subtotal, so it is not
		// double counted.
		assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(1000)), "subtotal %s", inv.Subtotal)
	})
}

func TestInvoiceStatusTransitions(t *testing.T) {
	cases := []struct {
		from    InvoiceStatus
		to      InvoiceStatus
		allowed bool
	}{
		{InvoiceStatusDraft, InvoiceStatusSent, true},
		{InvoiceStatusSent, InvoiceStatusPartiallyPaid, true},
		{InvoiceStatusSent, InvoiceStatusPaid, true},
		{InvoiceStatusPartiallyPaid, InvoiceStatusPaid, true},
		{InvoiceStatusOverdue, InvoiceStatusPaid, true},
		{InvoiceStatusPaid, InvoiceStatusSent, false},
		{InvoiceStatusCancelled, InvoiceStatusSent, false},
		{InvoiceStatusDraft, InvoiceStatusPaid, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}
