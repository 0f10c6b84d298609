package postgres

import (
	"context"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type handoverRepository struct {
	q Querier
}

func NewHandoverRepository(q Querier) repository.HandoverRepository {
	return &handoverRepository{q: q}
}

func (r *handoverRepository) CreatePickup(ctx context.Context, p *domain.Pickup) error {
	query := `INSERT INTO pickups (pickup_number, order_id, status, scheduled_at, items_checked, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	return r.q.QueryRowContext(ctx, query,
		p.PickupNumber, p.OrderID, p.Status, p.ScheduledAt, p.ItemsChecked, p.Notes, now, now,
	).Scan(&p.ID)
}

func (r *handoverRepository) GetPickupByOrder(ctx context.Context, orderID int32) (*domain.Pickup, error) {
	p := &domain.Pickup{}
	query := `SELECT id, pickup_number, order_id, status, scheduled_at, actual_at, items_checked, notes, created_at, updated_at
	          FROM pickups WHERE order_id = $1`
	err := r.q.QueryRowContext(ctx, query, orderID).Scan(
		&p.ID, &p.PickupNumber, &p.OrderID, &p.Status, &p.ScheduledAt, &p.ActualAt,
		&p.ItemsChecked, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *handoverRepository) UpdatePickup(ctx context.Context, p *domain.Pickup) error {
	query := `UPDATE pickups SET status=$1, scheduled_at=$2, actual_at=$3, items_checked=$4, notes=$5, updated_at=$6 WHERE id=$7`
	_, err := r.q.ExecContext(ctx, query,
		p.Status, p.ScheduledAt, p.ActualAt, p.ItemsChecked, p.Notes, time.Now(), p.ID,
	)
	return err
}

func (r *handoverRepository) CreateReturn(ctx context.Context, ret *domain.Return) error {
	query := `INSERT INTO returns (return_number, order_id, status, scheduled_at, all_items_returned, items_damaged, damage_description, damage_cost, is_late_return, late_fee_charged, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	now := time.Now()
	return r.q.QueryRowContext(ctx, query,
		ret.ReturnNumber, ret.OrderID, ret.Status, ret.ScheduledAt, ret.AllItemsReturned,
		ret.ItemsDamaged, ret.DamageDescription, ret.DamageCost, ret.IsLateReturn,
		ret.LateFeeCharged, ret.Notes, now, now,
	).Scan(&ret.ID)
}

func (r *handoverRepository) GetReturnByOrder(ctx context.Context, orderID int32) (*domain.Return, error) {
	ret := &domain.Return{}
	query := `SELECT id, return_number, order_id, status, scheduled_at, actual_at, all_items_returned, items_damaged, damage_description, damage_cost, is_late_return, late_fee_charged, notes, created_at, updated_at
	          FROM returns WHERE order_id = $1`
	err := r.q.QueryRowContext(ctx, query, orderID).Scan(
		&ret.ID, &ret.ReturnNumber, &ret.OrderID, &ret.Status, &ret.ScheduledAt, &ret.ActualAt,
		&ret.AllItemsReturned, &ret.ItemsDamaged, &ret.DamageDescription, &ret.DamageCost,
		&ret.IsLateReturn, &ret.LateFeeCharged, &ret.Notes, &ret.CreatedAt, &ret.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func (r *handoverRepository) UpdateReturn(ctx context.Context, ret *domain.Return) error {
	query := `UPDATE returns SET status=$1, scheduled_at=$2, actual_at=$3, all_items_returned=$4, items_damaged=$5, damage_description=$6, damage_cost=$7, is_late_return=$8, late_fee_charged=$9, notes=$10, updated_at=$11 WHERE id=$12`
	_, err := r.q.ExecContext(ctx, query,
		ret.Status, ret.ScheduledAt, ret.ActualAt, ret.AllItemsReturned, ret.ItemsDamaged,
		ret.DamageDescription, ret.DamageCost, ret.IsLateReturn, ret.LateFeeCharged,
		ret.Notes, time.Now(), ret.ID,
	)
	return err
}
