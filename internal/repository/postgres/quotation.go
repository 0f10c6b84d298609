package postgres

import (
	"context"
	"fmt"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type quotationRepository struct {
	q Querier
}

func NewQuotationRepository(q Querier) repository.QuotationRepository {
	return &quotationRepository{q: q}
}

func (r *quotationRepository) Create(ctx context.Context, qt *domain.Quotation) error {
	query := `INSERT INTO quotations (quotation_number, customer_id, vendor_id, status, valid_until, subtotal, discount_amount, tax_amount, total, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now()
	err := r.q.QueryRowContext(ctx, query,
		qt.QuotationNumber, qt.CustomerID, qt.VendorID, qt.Status, qt.ValidUntil,
		qt.Subtotal, qt.DiscountAmount, qt.TaxAmount, qt.Total, qt.Notes, now, now,
	).Scan(&qt.ID)
	if err != nil {
		return err
	}
	for i := range qt.Lines {
		line := &qt.Lines[i]
		line.QuotationID = qt.ID
		if err := r.createLine(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *quotationRepository) createLine(ctx context.Context, line *domain.QuotationLine) error {
	query := `INSERT INTO quotation_lines (quotation_id, item_id, variant_id, start_date, end_date, quantity, unit_price, duration_units, duration_type, line_total)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.q.QueryRowContext(ctx, query,
		line.QuotationID, line.ItemID, line.VariantID, line.StartDate, line.EndDate,
		line.Quantity, line.UnitPrice, line.DurationUnits, line.DurationType, line.LineTotal,
	).Scan(&line.ID)
}

func (r *quotationRepository) GetByID(ctx context.Context, id int32) (*domain.Quotation, error) {
	qt := &domain.Quotation{}
	query := `SELECT id, quotation_number, customer_id, vendor_id, status, valid_until, subtotal, discount_amount, tax_amount, total, notes, created_at, updated_at, confirmed_at
	          FROM quotations WHERE id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&qt.ID, &qt.QuotationNumber, &qt.CustomerID, &qt.VendorID, &qt.Status, &qt.ValidUntil,
		&qt.Subtotal, &qt.DiscountAmount, &qt.TaxAmount, &qt.Total, &qt.Notes,
		&qt.CreatedAt, &qt.UpdatedAt, &qt.ConfirmedAt,
	)
	if err != nil {
		return nil, err
	}
	lines, err := r.listLines(ctx, id)
	if err != nil {
		return nil, err
	}
	qt.Lines = lines
	return qt, nil
}

func (r *quotationRepository) listLines(ctx context.Context, quotationID int32) ([]domain.QuotationLine, error) {
	query := `SELECT id, quotation_id, item_id, variant_id, start_date, end_date, quantity, unit_price, duration_units, duration_type, line_total
	          FROM quotation_lines WHERE quotation_id = $1 ORDER BY id`
	rows, err := r.q.QueryContext(ctx, query, quotationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.QuotationLine
	for rows.Next() {
		var l domain.QuotationLine
		if err := rows.Scan(&l.ID, &l.QuotationID, &l.ItemID, &l.VariantID, &l.StartDate, &l.EndDate,
			&l.Quantity, &l.UnitPrice, &l.DurationUnits, &l.DurationType, &l.LineTotal); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *quotationRepository) Update(ctx context.Context, qt *domain.Quotation) error {
	query := `UPDATE quotations SET status=$1, valid_until=$2, subtotal=$3, discount_amount=$4, tax_amount=$5, total=$6, notes=$7, confirmed_at=$8, updated_at=$9 WHERE id=$10`
	_, err := r.q.ExecContext(ctx, query,
		qt.Status, qt.ValidUntil, qt.Subtotal, qt.DiscountAmount, qt.TaxAmount,
		qt.Total, qt.Notes, qt.ConfirmedAt, time.Now(), qt.ID,
	)
	return err
}

func (r *quotationRepository) ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Quotation, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, quotation_number, customer_id, vendor_id, status, valid_until, subtotal, discount_amount, tax_amount, total, notes, created_at, updated_at, confirmed_at
	          FROM quotations WHERE customer_id = $1`
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

	var quotations []domain.Quotation
	for rows.Next() {
		var qt domain.Quotation
		if err := rows.Scan(&qt.ID, &qt.QuotationNumber, &qt.CustomerID, &qt.VendorID, &qt.Status,
			&qt.ValidUntil, &qt.Subtotal, &qt.DiscountAmount, &qt.TaxAmount, &qt.Total,
			&qt.Notes, &qt.CreatedAt, &qt.UpdatedAt, &qt.ConfirmedAt); err != nil {
			return nil, 0, err
		}
		quotations = append(quotations, qt)
	}
	return quotations, count, rows.Err()
}

func (r *quotationRepository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE quotations SET status = 'expired', updated_at = $1
	          WHERE status IN ('draft', 'sent') AND valid_until < $2`
	res, err := r.q.ExecContext(ctx, query, now, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
