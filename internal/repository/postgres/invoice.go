package postgres

import (
	"context"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type invoiceRepository struct {
	q Querier
}

func NewInvoiceRepository(q Querier) repository.InvoiceRepository {
	return &invoiceRepository{q: q}
}

const invoiceColumns = `id, invoice_number, order_id, customer_id, vendor_id, status, invoice_date, due_date, billing_state, vendor_state, is_intrastate, cgst_rate, sgst_rate, igst_rate, cgst_amount, sgst_amount, igst_amount, subtotal, discount_amount, tax_amount, late_fee, damage_charges, total, paid_amount, balance_due, notes, created_at, updated_at, sent_at, paid_at`

func (r *invoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	query := `INSERT INTO invoices (invoice_number, order_id, customer_id, vendor_id, status, invoice_date, due_date, billing_state, vendor_state, is_intrastate, cgst_rate, sgst_rate, igst_rate, cgst_amount, sgst_amount, igst_amount, subtotal, discount_amount, tax_amount, late_fee, damage_charges, total, paid_amount, balance_due, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27) RETURNING id`
	now := time.Now()
	err := r.q.QueryRowContext(ctx, query,
		inv.InvoiceNumber, inv.OrderID, inv.CustomerID, inv.VendorID, inv.Status,
		inv.InvoiceDate, inv.DueDate, inv.BillingState, inv.VendorState, inv.IsIntrastate,
		inv.CGSTRate, inv.SGSTRate, inv.IGSTRate, inv.CGSTAmount, inv.SGSTAmount, inv.IGSTAmount,
		inv.Subtotal, inv.DiscountAmount, inv.TaxAmount, inv.LateFee, inv.DamageCharges,
		inv.Total, inv.PaidAmount, inv.BalanceDue, inv.Notes, now, now,
	).Scan(&inv.ID)
	if err != nil {
		return err
	}
	for i := range inv.Lines {
		line := &inv.Lines[i]
		line.InvoiceID = inv.ID
		if err := r.createLine(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *invoiceRepository) createLine(ctx context.Context, line *domain.InvoiceLine) error {
	query := `INSERT INTO invoice_lines (invoice_id, order_line_id, description, quantity, unit_price, line_total, is_late_fee)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.q.QueryRowContext(ctx, query,
		line.InvoiceID, line.OrderLineID, line.Description, line.Quantity,
		line.UnitPrice, line.LineTotal, line.IsLateFee,
	).Scan(&line.ID)
}

func scanInvoice(row interface{ Scan(...interface{}) error }, inv *domain.Invoice) error {
	return row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.OrderID, &inv.CustomerID, &inv.VendorID, &inv.Status,
		&inv.InvoiceDate, &inv.DueDate, &inv.BillingState, &inv.VendorState, &inv.IsIntrastate,
		&inv.CGSTRate, &inv.SGSTRate, &inv.IGSTRate, &inv.CGSTAmount, &inv.SGSTAmount, &inv.IGSTAmount,
		&inv.Subtotal, &inv.DiscountAmount, &inv.TaxAmount, &inv.LateFee, &inv.DamageCharges,
		&inv.Total, &inv.PaidAmount, &inv.BalanceDue, &inv.Notes,
		&inv.CreatedAt, &inv.UpdatedAt, &inv.SentAt, &inv.PaidAt,
	)
}

func (r *invoiceRepository) GetByID(ctx context.Context, id int32) (*domain.Invoice, error) {
	inv := &domain.Invoice{}
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	if err := scanInvoice(r.q.QueryRowContext(ctx, query, id), inv); err != nil {
		return nil, err
	}
	lines, err := r.listLines(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.Lines = lines
	return inv, nil
}

func (r *invoiceRepository) GetByOrder(ctx context.Context, orderID int32) (*domain.Invoice, error) {
	inv := &domain.Invoice{}
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE order_id = $1 ORDER BY id DESC LIMIT 1`
	if err := scanInvoice(r.q.QueryRowContext(ctx, query, orderID), inv); err != nil {
		return nil, err
	}
	lines, err := r.listLines(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Lines = lines
	return inv, nil
}

func (r *invoiceRepository) listLines(ctx context.Context, invoiceID int32) ([]domain.InvoiceLine, error) {
	query := `SELECT id, invoice_id, order_line_id, description, quantity, unit_price, line_total, is_late_fee
	          FROM invoice_lines WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.InvoiceLine
	for rows.Next() {
		var l domain.InvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.OrderLineID, &l.Description,
			&l.Quantity, &l.UnitPrice, &l.LineTotal, &l.IsLateFee); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *invoiceRepository) Update(ctx context.Context, inv *domain.Invoice) error {
	query := `UPDATE invoices SET status=$1, is_intrastate=$2, cgst_amount=$3, sgst_amount=$4, igst_amount=$5, subtotal=$6, discount_amount=$7, tax_amount=$8, late_fee=$9, damage_charges=$10, total=$11, paid_amount=$12, balance_due=$13, notes=$14, sent_at=$15, paid_at=$16, updated_at=$17 WHERE id=$18`
	_, err := r.q.ExecContext(ctx, query,
		inv.Status, inv.IsIntrastate, inv.CGSTAmount, inv.SGSTAmount, inv.IGSTAmount,
		inv.Subtotal, inv.DiscountAmount, inv.TaxAmount, inv.LateFee, inv.DamageCharges,
		inv.Total, inv.PaidAmount, inv.BalanceDue, inv.Notes, inv.SentAt, inv.PaidAt,
		time.Now(), inv.ID,
	)
	return err
}

func (r *invoiceRepository) CreatePayment(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (payment_number, invoice_id, amount, method, status, is_refund, reference, notes, paid_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.q.QueryRowContext(ctx, query,
		p.PaymentNumber, p.InvoiceID, p.Amount, p.Method, p.Status, p.IsRefund,
		p.Reference, p.Notes, p.PaidAt, time.Now(),
	).Scan(&p.ID)
}

func (r *invoiceRepository) ListPayments(ctx context.Context, invoiceID int32) ([]domain.Payment, error) {
	query := `SELECT id, payment_number, invoice_id, amount, method, status, is_refund, reference, notes, paid_at, created_at
	          FROM payments WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.PaymentNumber, &p.InvoiceID, &p.Amount, &p.Method,
			&p.Status, &p.IsRefund, &p.Reference, &p.Notes, &p.PaidAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
