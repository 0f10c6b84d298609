package postgres

import (
	"context"
	"fmt"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type orderRepository struct {
	q Querier
}

func NewOrderRepository(q Querier) repository.OrderRepository {
	return &orderRepository{q: q}
}

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	query := `INSERT INTO orders (order_number, quotation_id, customer_id, vendor_id, status, pickup_date, return_date, subtotal, discount_amount, tax_amount, late_fee, damage_charges, total, deposit_amount, paid_amount, notes, created_at, updated_at, confirmed_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19) RETURNING id`
	now := time.Now()
	err := r.q.QueryRowContext(ctx, query,
		o.OrderNumber, o.QuotationID, o.CustomerID, o.VendorID, o.Status,
		o.PickupDate, o.ReturnDate, o.Subtotal, o.DiscountAmount, o.TaxAmount,
		o.LateFee, o.DamageCharges, o.Total, o.DepositAmount, o.PaidAmount,
		o.Notes, now, now, o.ConfirmedAt,
	).Scan(&o.ID)
	if err != nil {
		return err
	}
	for i := range o.Lines {
		line := &o.Lines[i]
		line.OrderID = o.ID
		if err := r.createLine(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *orderRepository) createLine(ctx context.Context, line *domain.OrderLine) error {
	query := `INSERT INTO order_lines (order_id, item_id, variant_id, start_date, end_date, quantity, unit_price, duration_units, duration_type, line_total, is_late_return, late_fee_charged)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	return r.q.QueryRowContext(ctx, query,
		line.OrderID, line.ItemID, line.VariantID, line.StartDate, line.EndDate,
		line.Quantity, line.UnitPrice, line.DurationUnits, line.DurationType,
		line.LineTotal, line.IsLateReturn, line.LateFeeCharged,
	).Scan(&line.ID)
}

const orderColumns = `id, order_number, quotation_id, customer_id, vendor_id, status, pickup_date, return_date, subtotal, discount_amount, tax_amount, late_fee, damage_charges, total, deposit_amount, paid_amount, notes, created_at, updated_at, confirmed_at, completed_at, cancelled_at, cancel_reason, overdue_flagged_at`

func scanOrder(row interface{ Scan(...interface{}) error }, o *domain.Order) error {
	return row.Scan(
		&o.ID, &o.OrderNumber, &o.QuotationID, &o.CustomerID, &o.VendorID, &o.Status,
		&o.PickupDate, &o.ReturnDate, &o.Subtotal, &o.DiscountAmount, &o.TaxAmount,
		&o.LateFee, &o.DamageCharges, &o.Total, &o.DepositAmount, &o.PaidAmount,
		&o.Notes, &o.CreatedAt, &o.UpdatedAt, &o.ConfirmedAt, &o.CompletedAt,
		&o.CancelledAt, &o.CancelReason, &o.OverdueFlaggedAt,
	)
}

func (r *orderRepository) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	o := &domain.Order{}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if err := scanOrder(r.q.QueryRowContext(ctx, query, id), o); err != nil {
		return nil, err
	}
	lines, err := r.listLines(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return o, nil
}

func (r *orderRepository) listLines(ctx context.Context, orderID int32) ([]domain.OrderLine, error) {
	query := `SELECT ol.id, ol.order_id, ol.item_id, ol.variant_id, ol.start_date, ol.end_date, ol.actual_pickup_at, ol.actual_return_at, ol.quantity, ol.unit_price, ol.duration_units, ol.duration_type, ol.line_total, ol.is_late_return, ol.late_fee_charged, COALESCE(res.id, 0)
	          FROM order_lines ol
	          LEFT JOIN reservations res ON res.order_line_id = ol.id
	          WHERE ol.order_id = $1 ORDER BY ol.id`
	rows, err := r.q.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ItemID, &l.VariantID, &l.StartDate, &l.EndDate,
			&l.ActualPickupAt, &l.ActualReturnAt, &l.Quantity, &l.UnitPrice, &l.DurationUnits,
			&l.DurationType, &l.LineTotal, &l.IsLateReturn, &l.LateFeeCharged, &l.ReservationID); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *orderRepository) Update(ctx context.Context, o *domain.Order) error {
	query := `UPDATE orders SET status=$1, pickup_date=$2, return_date=$3, subtotal=$4, discount_amount=$5, tax_amount=$6, late_fee=$7, damage_charges=$8, total=$9, paid_amount=$10, notes=$11, confirmed_at=$12, completed_at=$13, cancelled_at=$14, cancel_reason=$15, overdue_flagged_at=$16, updated_at=$17 WHERE id=$18`
	_, err := r.q.ExecContext(ctx, query,
		o.Status, o.PickupDate, o.ReturnDate, o.Subtotal, o.DiscountAmount, o.TaxAmount,
		o.LateFee, o.DamageCharges, o.Total, o.PaidAmount, o.Notes,
		o.ConfirmedAt, o.CompletedAt, o.CancelledAt, o.CancelReason, o.OverdueFlaggedAt, time.Now(), o.ID,
	)
	return err
}

func (r *orderRepository) UpdateLine(ctx context.Context, line *domain.OrderLine) error {
	query := `UPDATE order_lines SET actual_pickup_at=$1, actual_return_at=$2, is_late_return=$3, late_fee_charged=$4 WHERE id=$5`
	_, err := r.q.ExecContext(ctx, query,
		line.ActualPickupAt, line.ActualReturnAt, line.IsLateReturn, line.LateFeeCharged, line.ID,
	)
	return err
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_id = $1`
	args := []interface{}{customerID}
	argIdx := 2
	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.q.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, count, rows.Err()
}

func (r *orderRepository) ListOverdue(ctx context.Context, now time.Time) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status = 'in_progress' AND return_date < $1 AND overdue_flagged_at IS NULL ORDER BY return_date`
	rows, err := r.q.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
