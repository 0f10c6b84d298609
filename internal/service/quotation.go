package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/repository"
	"rentaldesk-backend/internal/utils"
)

type quotationService struct {
	store   repository.Store
	pricing PricingEngine
	taxRate decimal.Decimal
	now     func() time.Time
}

func NewQuotationService(store repository.Store, pricing PricingEngine, taxRate decimal.Decimal) QuotationService {
	return &quotationService{
		store:   store,
		pricing: pricing,
		taxRate: taxRate,
		now:     time.Now,
	}
}

func (s *quotationService) CreateQuotation(ctx context.Context, customerID, vendorID int32, validUntil time.Time, lines []QuotationLineInput) (*domain.Quotation, error) {
	if len(lines) == 0 {
		return nil, &domain.ValidationError{Msg: "quotation requires at least one line"}
	}

	qt := &domain.Quotation{
		QuotationNumber: utils.DocumentNumber("QT"),
		CustomerID:      customerID,
		VendorID:        vendorID,
		Status:          domain.QuotationStatusDraft,
		ValidUntil:      validUntil,
		DiscountAmount:  decimal.Zero,
	}

	for i, in := range lines {
		if in.Quantity < 1 {
			return nil, &domain.ValidationError{Msg: fmt.Sprintf("line %d: quantity must be at least 1", i+1)}
		}
		if !in.EndDate.After(in.StartDate) {
			return nil, &domain.InvalidDateRangeError{Start: in.StartDate, End: in.EndDate}
		}
		quote, err := s.pricing.Quote(ctx, in.ItemID, in.VariantID, in.StartDate, in.EndDate, in.Quantity)
		if err != nil {
			return nil, err
		}
		qt.Lines = append(qt.Lines, domain.QuotationLine{
			ItemID:        in.ItemID,
			VariantID:     in.VariantID,
			StartDate:     in.StartDate,
			EndDate:       in.EndDate,
			Quantity:      in.Quantity,
			UnitPrice:     quote.UnitPrice,
			DurationUnits: quote.DurationUnits,
			DurationType:  quote.DurationType,
			LineTotal:     quote.LineTotal,
		})
	}
	qt.RecalculateTotals(s.taxRate)

	if err := s.store.Quotations().Create(ctx, qt); err != nil {
		return nil, err
	}
	logger.Info("quotation created", "quotation", qt.QuotationNumber, "customer_id", customerID, "total", qt.Total)
	return qt, nil
}

func (s *quotationService) SendQuotation(ctx context.Context, quotationID int32) (*domain.Quotation, error) {
	return s.transition(ctx, quotationID, domain.QuotationStatusSent)
}

func (s *quotationService) CancelQuotation(ctx context.Context, quotationID int32) (*domain.Quotation, error) {
	return s.transition(ctx, quotationID, domain.QuotationStatusCancelled)
}

func (s *quotationService) transition(ctx context.Context, quotationID int32, to domain.QuotationStatus) (*domain.Quotation, error) {
	qt, err := s.store.Quotations().GetByID(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	if !qt.Status.CanTransition(to) {
		return nil, &domain.InvalidTransitionError{Entity: "quotation", ID: quotationID, From: string(qt.Status), To: string(to)}
	}
	qt.Status = to
	if err := s.store.Quotations().Update(ctx, qt); err != nil {
		return nil, err
	}
	return qt, nil
}

// ConfirmQuotation turns a sent quotation into an order. The availability
// recheck and reservation creation share one transaction: confirmations
// racing over the same items serialize on the item row locks, and the loser
// fails with InsufficientInventoryError leaving no partial rows behind.
func (s *quotationService) ConfirmQuotation(ctx context.Context, quotationID int32) (*domain.Order, error) {
	now := s.now()

	// Lazy expiry check, outside the confirmation transaction so the expired
	// mark survives the rejection.
	qt, err := s.store.Quotations().GetByID(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	if qt.Status.Mutable() && now.After(qt.ValidUntil) {
		qt.Status = domain.QuotationStatusExpired
		if err := s.store.Quotations().Update(ctx, qt); err != nil {
			return nil, err
		}
		return nil, &domain.QuotationExpiredError{QuotationID: quotationID, ValidUntil: qt.ValidUntil}
	}

	var order *domain.Order
	err = s.store.InTx(ctx, func(st repository.Store) error {
		qt, err := st.Quotations().GetByID(ctx, quotationID)
		if err != nil {
			return err
		}
		if qt.Status != domain.QuotationStatusSent {
			return &domain.InvalidStateError{Entity: "quotation", ID: quotationID, Current: string(qt.Status), Op: "confirm"}
		}

		order = &domain.Order{
			OrderNumber:    utils.DocumentNumber("RO"),
			QuotationID:    qt.ID,
			CustomerID:     qt.CustomerID,
			VendorID:       qt.VendorID,
			Status:         domain.OrderStatusConfirmed,
			Subtotal:       qt.Subtotal,
			DiscountAmount: qt.DiscountAmount,
			TaxAmount:      qt.TaxAmount,
			LateFee:        decimal.Zero,
			DamageCharges:  decimal.Zero,
			Total:          qt.Total,
			DepositAmount:  decimal.Zero,
			PaidAmount:     decimal.Zero,
			ConfirmedAt:    &now,
		}

		for i := range qt.Lines {
			line := &qt.Lines[i]

			// Authoritative recheck under the item row lock.
			free, err := availableQuantity(ctx, st, line.ItemID, line.VariantID, line.StartDate, line.EndDate, true)
			if err != nil {
				return err
			}
			if free < line.Quantity {
				if free < 0 {
					free = 0
				}
				return &domain.InsufficientInventoryError{
					LineID:    line.ID,
					ItemID:    line.ItemID,
					Requested: line.Quantity,
					Available: free,
				}
			}

			order.Lines = append(order.Lines, domain.OrderLine{
				ItemID:         line.ItemID,
				VariantID:      line.VariantID,
				StartDate:      line.StartDate,
				EndDate:        line.EndDate,
				Quantity:       line.Quantity,
				UnitPrice:      line.UnitPrice,
				DurationUnits:  line.DurationUnits,
				DurationType:   line.DurationType,
				LineTotal:      line.LineTotal,
				LateFeeCharged: decimal.Zero,
			})

			if order.PickupDate.IsZero() || line.StartDate.Before(order.PickupDate) {
				order.PickupDate = line.StartDate
			}
			if line.EndDate.After(order.ReturnDate) {
				order.ReturnDate = line.EndDate
			}
		}

		if err := st.Orders().Create(ctx, order); err != nil {
			return err
		}
		for i := range order.Lines {
			if _, err := allocate(ctx, st, &order.Lines[i]); err != nil {
				return err
			}
		}

		qt.Status = domain.QuotationStatusConfirmed
		qt.ConfirmedAt = &now
		return st.Quotations().Update(ctx, qt)
	})
	if err != nil {
		return nil, err
	}

	notif := &domain.Notification{
		UserID:  order.VendorID,
		Title:   "Order Confirmed",
		Message: fmt.Sprintf("Quotation %s was confirmed as order %s", qt.QuotationNumber, order.OrderNumber),
		Attributes: map[string]string{
			"type":     "ORDER_CONFIRMED",
			"order_id": fmt.Sprintf("%d", order.ID),
		},
	}
	_ = s.store.Notifications().Create(ctx, notif)

	logger.Info("quotation confirmed", "quotation_id", quotationID, "order", order.OrderNumber)
	return order, nil
}

func (s *quotationService) GetQuotation(ctx context.Context, quotationID int32) (*domain.Quotation, error) {
	return s.store.Quotations().GetByID(ctx, quotationID)
}

func (s *quotationService) ListQuotations(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Quotation, int32, error) {
	return s.store.Quotations().ListByCustomer(ctx, customerID, status, page, pageSize)
}
