package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/repository"
	"rentaldesk-backend/internal/utils"
)

// GSTRates carries the configured tax percentages applied to invoices.
type GSTRates struct {
	CGST decimal.Decimal
	SGST decimal.Decimal
	IGST decimal.Decimal
}

type invoiceService struct {
	store          repository.Store
	rates          GSTRates
	defaultDueDays int32
	now            func() time.Time
}

func NewInvoiceService(store repository.Store, rates GSTRates, defaultDueDays int32) InvoiceService {
	if defaultDueDays <= 0 {
		defaultDueDays = 15
	}
	return &invoiceService{
		store:          store,
		rates:          rates,
		defaultDueDays: defaultDueDays,
		now:            time.Now,
	}
}

func (s *invoiceService) Generate(ctx context.Context, orderID int32, input GenerateInvoiceInput) (*domain.Invoice, error) {
	order, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusInProgress && order.Status != domain.OrderStatusCompleted {
		return nil, &domain.InvalidStateError{Entity: "order", ID: orderID, Current: string(order.Status), Op: "generate invoice"}
	}

	// States omitted from the request fall back to the party records, which
	// carry the GST jurisdiction for each account.
	billingState := input.BillingState
	if billingState == "" {
		customer, err := s.store.Parties().GetCustomer(ctx, order.CustomerID)
		if err != nil {
			return nil, err
		}
		billingState = customer.State
	}
	vendorState := input.VendorState
	if vendorState == "" {
		vendor, err := s.store.Parties().GetVendor(ctx, order.VendorID)
		if err != nil {
			return nil, err
		}
		vendorState = vendor.State
	}

	now := s.now()
	dueInDays := input.DueInDays
	if dueInDays <= 0 {
		dueInDays = s.defaultDueDays
	}

	inv := &domain.Invoice{
		InvoiceNumber:  utils.DocumentNumber("INV"),
		OrderID:        order.ID,
		CustomerID:     order.CustomerID,
		VendorID:       order.VendorID,
		Status:         domain.InvoiceStatusDraft,
		InvoiceDate:    now,
		DueDate:        now.AddDate(0, 0, int(dueInDays)),
		BillingState:   billingState,
		VendorState:    vendorState,
		CGSTRate:       s.rates.CGST,
		SGSTRate:       s.rates.SGST,
		IGSTRate:       s.rates.IGST,
		DiscountAmount: order.DiscountAmount,
		LateFee:        order.LateFee,
		DamageCharges:  order.DamageCharges,
		PaidAmount:     decimal.Zero,
		Notes:          input.Notes,
	}

	for i := range order.Lines {
		line := &order.Lines[i]
		item, err := s.store.Items().GetByID(ctx, line.ItemID)
		if err != nil {
			return nil, err
		}
		lineID := line.ID
		inv.Lines = append(inv.Lines, domain.InvoiceLine{
			OrderLineID: &lineID,
			Description: fmt.Sprintf("%s (%d x %s rate)", item.Name, line.DurationUnits, line.DurationType),
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.LineTotal,
		})
		if line.LateFeeCharged.IsPositive() {
			inv.Lines = append(inv.Lines, domain.InvoiceLine{
				OrderLineID: &lineID,
				Description: fmt.Sprintf("Late return fee - %s", item.Name),
				Quantity:    1,
				UnitPrice:   line.LateFeeCharged,
				LineTotal:   line.LateFeeCharged,
				IsLateFee:   true,
			})
		}
	}
	inv.RecalculateTotals()

	if err := s.store.Invoices().Create(ctx, inv); err != nil {
		return nil, err
	}
	logger.Info("invoice generated", "invoice", inv.InvoiceNumber, "order_id", orderID, "total", inv.Total, "intrastate", inv.IsIntrastate)
	return inv, nil
}

func (s *invoiceService) SendInvoice(ctx context.Context, invoiceID int32) (*domain.Invoice, error) {
	inv, err := s.store.Invoices().GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !inv.Status.CanTransition(domain.InvoiceStatusSent) {
		return nil, &domain.InvalidTransitionError{Entity: "invoice", ID: invoiceID, From: string(inv.Status), To: string(domain.InvoiceStatusSent)}
	}
	inv.Status = domain.InvoiceStatusSent
	now := s.now()
	inv.SentAt = &now
	if err := s.store.Invoices().Update(ctx, inv); err != nil {
		return nil, err
	}

	_ = s.store.Notifications().Create(ctx, &domain.Notification{
		UserID:  inv.CustomerID,
		Title:   "Invoice Issued",
		Message: fmt.Sprintf("Invoice %s for %s is due by %s", inv.InvoiceNumber, inv.Total, inv.DueDate.Format("2006-01-02")),
		Attributes: map[string]string{
			"type":       "INVOICE_SENT",
			"invoice_id": fmt.Sprintf("%d", inv.ID),
		},
	})
	return inv, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, invoiceID int32) (*domain.Invoice, error) {
	return s.store.Invoices().GetByID(ctx, invoiceID)
}

// RecordPayment applies a payment or refund inside one transaction, so the
// invoice balance and the payment row always move together.
func (s *invoiceService) RecordPayment(ctx context.Context, invoiceID int32, amount decimal.Decimal, method domain.PaymentMethod, isRefund bool, reference string) (*domain.Payment, error) {
	if !amount.IsPositive() {
		return nil, &domain.ValidationError{Msg: "payment amount must be positive"}
	}

	var payment *domain.Payment
	err := s.store.InTx(ctx, func(st repository.Store) error {
		inv, err := st.Invoices().GetByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv.Status == domain.InvoiceStatusDraft || inv.Status == domain.InvoiceStatusCancelled {
			return &domain.InvalidStateError{Entity: "invoice", ID: invoiceID, Current: string(inv.Status), Op: "record payment"}
		}

		if isRefund {
			if amount.GreaterThan(inv.PaidAmount) {
				return &domain.PaymentExceedsBalanceError{InvoiceID: invoiceID, Amount: amount, BalanceDue: inv.PaidAmount}
			}
			inv.PaidAmount = inv.PaidAmount.Sub(amount)
		} else {
			if amount.GreaterThan(inv.BalanceDue) {
				return &domain.PaymentExceedsBalanceError{InvoiceID: invoiceID, Amount: amount, BalanceDue: inv.BalanceDue}
			}
			inv.PaidAmount = inv.PaidAmount.Add(amount)
		}
		inv.BalanceDue = inv.Total.Sub(inv.PaidAmount)

		// The balance dictates the target status, but the move only happens
		// along an allowed transition: a refund emptying an overdue invoice
		// keeps it overdue instead of sliding back to sent.
		now := s.now()
		var next domain.InvoiceStatus
		switch {
		case inv.BalanceDue.IsZero() && inv.PaidAmount.IsPositive():
			next = domain.InvoiceStatusPaid
		case inv.PaidAmount.IsPositive():
			next = domain.InvoiceStatusPartiallyPaid
		default:
			next = domain.InvoiceStatusSent
		}
		if next != inv.Status && inv.Status.CanTransition(next) {
			inv.Status = next
		}
		if inv.Status == domain.InvoiceStatusPaid {
			inv.PaidAt = &now
		} else {
			inv.PaidAt = nil
		}
		if err := st.Invoices().Update(ctx, inv); err != nil {
			return err
		}

		if reference == "" {
			reference = uuid.NewString()
		}
		status := domain.PaymentStatusSuccess
		if isRefund {
			status = domain.PaymentStatusRefunded
		}
		payment = &domain.Payment{
			PaymentNumber: utils.DocumentNumber("PAY"),
			InvoiceID:     invoiceID,
			Amount:        amount,
			Method:        method,
			Status:        status,
			IsRefund:      isRefund,
			Reference:     reference,
			PaidAt:        now,
		}
		return st.Invoices().CreatePayment(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("payment recorded", "invoice_id", invoiceID, "payment", payment.PaymentNumber, "amount", amount, "refund", isRefund)
	return payment, nil
}
