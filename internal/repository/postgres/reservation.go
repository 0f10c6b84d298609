package postgres

import (
	"context"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type reservationRepository struct {
	q Querier
}

func NewReservationRepository(q Querier) repository.ReservationRepository {
	return &reservationRepository{q: q}
}

func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	query := `INSERT INTO reservations (order_line_id, item_id, variant_id, start_date, end_date, quantity, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	return r.q.QueryRowContext(ctx, query,
		res.OrderLineID, res.ItemID, res.VariantID, res.StartDate, res.EndDate,
		res.Quantity, res.Status, now, now,
	).Scan(&res.ID)
}

func (r *reservationRepository) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	res := &domain.Reservation{}
	query := `SELECT id, order_line_id, item_id, variant_id, start_date, end_date, quantity, status, created_at, updated_at
	          FROM reservations WHERE id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&res.ID, &res.OrderLineID, &res.ItemID, &res.VariantID, &res.StartDate, &res.EndDate,
		&res.Quantity, &res.Status, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *reservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	query := `UPDATE reservations SET status=$1, updated_at=$2 WHERE id=$3`
	_, err := r.q.ExecContext(ctx, query, res.Status, time.Now(), res.ID)
	return err
}

func (r *reservationRepository) ListByOrder(ctx context.Context, orderID int32) ([]domain.Reservation, error) {
	query := `SELECT res.id, res.order_line_id, res.item_id, res.variant_id, res.start_date, res.end_date, res.quantity, res.status, res.created_at, res.updated_at
	          FROM reservations res
	          JOIN order_lines ol ON ol.id = res.order_line_id
	          WHERE ol.order_id = $1 ORDER BY res.id`
	rows, err := r.q.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		if err := rows.Scan(&res.ID, &res.OrderLineID, &res.ItemID, &res.VariantID,
			&res.StartDate, &res.EndDate, &res.Quantity, &res.Status,
			&res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

// SumOverlapping uses the half-open overlap predicate: a reservation blocks
// [start, end) when its start is before end and its end is after start.
func (r *reservationRepository) SumOverlapping(ctx context.Context, itemID int32, variantID *int32, start, end time.Time) (int32, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM reservations
	          WHERE item_id = $1
	            AND ($2::int IS NULL OR variant_id = $2)
	            AND status IN ('confirmed', 'active')
	            AND start_date < $3 AND end_date > $4`
	var total int32
	err := r.q.QueryRowContext(ctx, query, itemID, variantID, end, start).Scan(&total)
	return total, err
}
