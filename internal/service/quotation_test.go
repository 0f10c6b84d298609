package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentaldesk-backend/internal/domain"
)

func TestQuotationService_CreateQuotation(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)
	validUntil := start.AddDate(0, 0, -2)

	daily := domain.PricingTier{
		ItemID:        7,
		DurationType:  domain.DurationTypeDaily,
		DurationValue: 1,
		Price:         decimal.NewFromInt(100),
		IsActive:      true,
	}

	t.Run("Success", func(t *testing.T) {
		store := newMockStore()
		store.items.On("ListActiveTiers", ctx, int32(7), (*int32)(nil)).
			Return([]domain.PricingTier{daily}, nil)
		store.quotations.On("Create", ctx, mock.AnythingOfType("*domain.Quotation")).Return(nil)

		svc := NewQuotationService(store, NewPricingEngine(store), decimal.NewFromFloat(0.18))

		qt, err := svc.CreateQuotation(ctx, 1, 2, validUntil, []QuotationLineInput{
			{ItemID: 7, StartDate: start, EndDate: end, Quantity: 2},
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.QuotationStatusDraft, qt.Status)
		assert.Len(t, qt.Lines, 1)
		// 3 days x 100 x 2 units = 600; 18% tax = 108.
		assert.True(t, qt.Subtotal.Equal(decimal.NewFromInt(600)), "subtotal %s", qt.Subtotal)
		assert.True(t, qt.TaxAmount.Equal(decimal.NewFromInt(108)), "tax %s", qt.TaxAmount)
		assert.True(t, qt.Total.Equal(decimal.NewFromInt(708)), "total %s", qt.Total)
		assert.NotEmpty(t, qt.QuotationNumber)
	})

	t.Run("Zero Quantity Rejected", func(t *testing.T) {
		store := newMockStore()
		svc := NewQuotationService(store, NewPricingEngine(store), decimal.NewFromFloat(0.18))

		_, err := svc.CreateQuotation(ctx, 1, 2, validUntil, []QuotationLineInput{
			{ItemID: 7, StartDate: start, EndDate: end, Quantity: 0},
		})
		var valErr *domain.ValidationError
		assert.ErrorAs(t, err, &valErr)
		store.quotations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Invalid Date Range Rejected", func(t *testing.T) {
		store := newMockStore()
		svc := NewQuotationService(store, NewPricingEngine(store), decimal.NewFromFloat(0.18))

		_, err := svc.CreateQuotation(ctx, 1, 2, validUntil, []QuotationLineInput{
			{ItemID: 7, StartDate: end, EndDate: start, Quantity: 1},
		})
		var dateErr *domain.InvalidDateRangeError
		assert.ErrorAs(t, err, &dateErr)
	})

	t.Run("No Lines Rejected", func(t *testing.T) {
		store := newMockStore()
		svc := NewQuotationService(store, NewPricingEngine(store), decimal.NewFromFloat(0.18))

		_, err := svc.CreateQuotation(ctx, 1, 2, validUntil, nil)
		var valErr *domain.ValidationError
		assert.ErrorAs(t, err, &valErr)
	})
}

func TestQuotationService_ConfirmQuotation(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)
	now := time.Date(2026, 4, 20, 12, 0, 0, 0, time.UTC)

	newSentQuotation := func() *domain.Quotation {
		return &domain.Quotation{
			ID:              9,
			QuotationNumber: "QT-2026-TEST0001",
			CustomerID:      1,
			VendorID:        2,
			Status:          domain.QuotationStatusSent,
			ValidUntil:      now.AddDate(0, 0, 7),
			Subtotal:        decimal.NewFromInt(600),
			DiscountAmount:  decimal.Zero,
			TaxAmount:       decimal.NewFromInt(108),
			Total:           decimal.NewFromInt(708),
			Lines: []domain.QuotationLine{{
				ID:            31,
				QuotationID:   9,
				ItemID:        7,
				StartDate:     start,
				EndDate:       end,
				Quantity:      2,
				UnitPrice:     decimal.NewFromInt(100),
				DurationUnits: 3,
				DurationType:  domain.DurationTypeDaily,
				LineTotal:     decimal.NewFromInt(600),
			}},
		}
	}

	newService := func(store *mockStore) *quotationService {
		svc := NewQuotationService(store, NewPricingEngine(store), decimal.NewFromFloat(0.18)).(*quotationService)
		svc.now = func() time.Time { return now }
		return svc
	}

	t.Run("Success", func(t *testing.T) {
		qt := newSentQuotation()
		store := newMockStore()
		store.quotations.On("GetByID", ctx, int32(9)).Return(qt, nil)
		store.items.On("GetByIDForUpdate", ctx, int32(7)).
			Return(&domain.Item{ID: 7, QuantityOnHand: 3}, nil)
		store.reservations.On("SumOverlapping", ctx, int32(7), (*int32)(nil), start, end).Return(int32(1), nil)
		store.orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).
			Run(func(args mock.Arguments) {
				o := args.Get(1).(*domain.Order)
				o.ID = 55
				for i := range o.Lines {
					o.Lines[i].ID = int32(100 + i)
				}
			}).Return(nil)
		store.reservations.On("Create", ctx, mock.AnythingOfType("*domain.Reservation")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Reservation).ID = 200
			}).Return(nil)
		store.quotations.On("Update", ctx, qt).Return(nil)
		store.notifications.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		svc := newService(store)

		order, err := svc.ConfirmQuotation(ctx, 9)
		assert.NoError(t, err)
		assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
		assert.Equal(t, domain.QuotationStatusConfirmed, qt.Status)
		assert.Len(t, order.Lines, 1)
		assert.Equal(t, int32(200), order.Lines[0].ReservationID)
		assert.Equal(t, start, order.PickupDate)
		assert.Equal(t, end, order.ReturnDate)
		assert.True(t, order.Total.Equal(qt.Total))
	})

	t.Run("Insufficient Inventory Rolls Back", func(t *testing.T) {
		qt := newSentQuotation()
		store := newMockStore()
		store.quotations.On("GetByID", ctx, int32(9)).Return(qt, nil)
		store.items.On("GetByIDForUpdate", ctx, int32(7)).
			Return(&domain.Item{ID: 7, QuantityOnHand: 3}, nil)
		// 2 already reserved leaves 1 free, line wants 2.
		store.reservations.On("SumOverlapping", ctx, int32(7), (*int32)(nil), start, end).Return(int32(2), nil)

		svc := newService(store)

		_, err := svc.ConfirmQuotation(ctx, 9)
		var invErr *domain.InsufficientInventoryError
		assert.ErrorAs(t, err, &invErr)
		assert.Equal(t, int32(31), invErr.LineID)
		assert.Equal(t, int32(2), invErr.Requested)
		assert.Equal(t, int32(1), invErr.Available)
		store.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		store.reservations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Expired Quotation Is Marked And Rejected", func(t *testing.T) {
		qt := newSentQuotation()
		qt.ValidUntil = now.AddDate(0, 0, -1)
		store := newMockStore()
		store.quotations.On("GetByID", ctx, int32(9)).Return(qt, nil)
		store.quotations.On("Update", ctx, qt).Return(nil)

		svc := newService(store)

		_, err := svc.ConfirmQuotation(ctx, 9)
		var expErr *domain.QuotationExpiredError
		assert.ErrorAs(t, err, &expErr)
		assert.Equal(t, domain.QuotationStatusExpired, qt.Status)
		store.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Double Confirm Rejected", func(t *testing.T) {
		qt := newSentQuotation()
		qt.Status = domain.QuotationStatusConfirmed
		store := newMockStore()
		store.quotations.On("GetByID", ctx, int32(9)).Return(qt, nil)

		svc := newService(store)

		_, err := svc.ConfirmQuotation(ctx, 9)
		var stateErr *domain.InvalidStateError
		assert.ErrorAs(t, err, &stateErr)
		assert.Equal(t, "quotation", stateErr.Entity)
		store.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Draft Cannot Confirm", func(t *testing.T) {
		qt := newSentQuotation()
		qt.Status = domain.QuotationStatusDraft
		store := newMockStore()
		store.quotations.On("GetByID", ctx, int32(9)).Return(qt, nil)

		svc := newService(store)

		_, err := svc.ConfirmQuotation(ctx, 9)
		var stateErr *domain.InvalidStateError
		assert.ErrorAs(t, err, &stateErr)
	})
}

func TestQuotationService_Transitions(t *testing.T) {
	ctx := context.Background()

	t.Run("Send Draft", func(t *testing.T) {
		qt := &domain.Quotation{ID: 3, Status: domain.QuotationStatusDraft}
		store := newMockStore()
		store.quotations.On("GetByID", ctx, int32(3)).Return(qt, nil)
		store.quotations.On("Update", ctx, qt).Return(nil)

		svc := NewQuotationService(store, NewPricingEngine(store), decimal.Zero)

		out, err := svc.SendQuotation(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, domain.QuotationStatusSent, out.Status)
	})

	t.Run("Cancel Confirmed Rejected", func(t *testing.T) {
		qt := &domain.Quotation{ID: 3, Status: domain.QuotationStatusConfirmed}
		store := newMockStore()
		store.quotations.On("GetByID", ctx, int32(3)).Return(qt, nil)

		svc := NewQuotationService(store, NewPricingEngine(store), decimal.Zero)

		_, err := svc.CancelQuotation(ctx, 3)
		var trErr *domain.InvalidTransitionError
		assert.ErrorAs(t, err, &trErr)
	})
}
