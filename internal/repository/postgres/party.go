package postgres

import (
	"context"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type partyRepository struct {
	q Querier
}

func NewPartyRepository(q Querier) repository.PartyRepository {
	return &partyRepository{q: q}
}

func (r *partyRepository) GetCustomer(ctx context.Context, id int32) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT id, name, email, gstin, state, created_at FROM customers WHERE id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.GSTIN, &c.State, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *partyRepository) GetVendor(ctx context.Context, id int32) (*domain.Vendor, error) {
	v := &domain.Vendor{}
	query := `SELECT id, company_name, email, gstin, state, created_at FROM vendors WHERE id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.CompanyName, &v.Email, &v.GSTIN, &v.State, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}
