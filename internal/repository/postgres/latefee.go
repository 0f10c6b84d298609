package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type lateFeePolicyRepository struct {
	q Querier
}

func NewLateFeePolicyRepository(q Querier) repository.LateFeePolicyRepository {
	return &lateFeePolicyRepository{q: q}
}

const policyColumns = `id, name, description, grace_period_hours, method, rate_per_day, rate_per_hour, percentage, max_penalty_cap, is_active, effective_from, effective_until, created_at`

func (r *lateFeePolicyRepository) Create(ctx context.Context, p *domain.LateFeePolicy) error {
	query := `INSERT INTO late_fee_policies (name, description, grace_period_hours, method, rate_per_day, rate_per_hour, percentage, max_penalty_cap, is_active, effective_from, effective_until, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	return r.q.QueryRowContext(ctx, query,
		p.Name, p.Description, p.GracePeriodHours, p.Method, p.RatePerDay, p.RatePerHour,
		p.Percentage, p.MaxPenaltyCap, p.IsActive, p.EffectiveFrom, p.EffectiveUntil, time.Now(),
	).Scan(&p.ID)
}

func (r *lateFeePolicyRepository) scanPolicy(row *sql.Row) (*domain.LateFeePolicy, error) {
	p := &domain.LateFeePolicy{}
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.GracePeriodHours, &p.Method,
		&p.RatePerDay, &p.RatePerHour, &p.Percentage, &p.MaxPenaltyCap,
		&p.IsActive, &p.EffectiveFrom, &p.EffectiveUntil, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *lateFeePolicyRepository) GetByID(ctx context.Context, id int32) (*domain.LateFeePolicy, error) {
	query := `SELECT ` + policyColumns + ` FROM late_fee_policies WHERE id = $1`
	return r.scanPolicy(r.q.QueryRowContext(ctx, query, id))
}

func (r *lateFeePolicyRepository) GetActive(ctx context.Context, at time.Time) (*domain.LateFeePolicy, error) {
	query := `SELECT ` + policyColumns + ` FROM late_fee_policies
	          WHERE is_active = TRUE
	            AND (effective_from IS NULL OR effective_from <= $1)
	            AND (effective_until IS NULL OR effective_until >= $1)
	          ORDER BY id LIMIT 1`
	p, err := r.scanPolicy(r.q.QueryRowContext(ctx, query, at))
	if errors.Is(err, sql.ErrNoRows) {
		// No configured policy means no late fees are charged.
		return nil, nil
	}
	return p, err
}
