package postgres

import (
	"context"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type itemRepository struct {
	q Querier
}

func NewItemRepository(q Querier) repository.ItemRepository {
	return &itemRepository{q: q}
}

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	query := `INSERT INTO items (vendor_id, sku, name, description, quantity_on_hand, security_deposit, is_active, is_published, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	return r.q.QueryRowContext(ctx, query,
		item.VendorID, item.SKU, item.Name, item.Description, item.QuantityOnHand,
		item.SecurityDeposit, item.IsActive, item.IsPublished, now, now,
	).Scan(&item.ID)
}

const itemColumns = `id, vendor_id, sku, name, description, quantity_on_hand, security_deposit, is_active, is_published, created_at, updated_at`

func (r *itemRepository) GetByID(ctx context.Context, id int32) (*domain.Item, error) {
	return r.getItem(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
}

func (r *itemRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Item, error) {
	return r.getItem(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id)
}

func (r *itemRepository) getItem(ctx context.Context, query string, id int32) (*domain.Item, error) {
	item := &domain.Item{}
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.VendorID, &item.SKU, &item.Name, &item.Description,
		&item.QuantityOnHand, &item.SecurityDeposit, &item.IsActive, &item.IsPublished,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	query := `UPDATE items SET name=$1, description=$2, quantity_on_hand=$3, security_deposit=$4, is_active=$5, is_published=$6, updated_at=$7 WHERE id=$8`
	_, err := r.q.ExecContext(ctx, query,
		item.Name, item.Description, item.QuantityOnHand, item.SecurityDeposit,
		item.IsActive, item.IsPublished, time.Now(), item.ID,
	)
	return err
}

func (r *itemRepository) GetVariant(ctx context.Context, id int32) (*domain.ItemVariant, error) {
	v := &domain.ItemVariant{}
	query := `SELECT id, item_id, sku, name, quantity_on_hand, is_active, created_at FROM item_variants WHERE id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.ItemID, &v.SKU, &v.Name, &v.QuantityOnHand, &v.IsActive, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *itemRepository) CreateTier(ctx context.Context, tier *domain.PricingTier) error {
	query := `INSERT INTO pricing_tiers (item_id, variant_id, duration_type, duration_value, price, is_discounted, discount_percent, is_active, effective_from, effective_until, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	return r.q.QueryRowContext(ctx, query,
		tier.ItemID, tier.VariantID, tier.DurationType, tier.DurationValue, tier.Price,
		tier.IsDiscounted, tier.DiscountPercent, tier.IsActive,
		tier.EffectiveFrom, tier.EffectiveUntil, time.Now(),
	).Scan(&tier.ID)
}

func (r *itemRepository) ListActiveTiers(ctx context.Context, itemID int32, variantID *int32) ([]domain.PricingTier, error) {
	query := `SELECT id, item_id, variant_id, duration_type, duration_value, price, is_discounted, discount_percent, is_active, effective_from, effective_until, created_at
	          FROM pricing_tiers
	          WHERE item_id = $1 AND is_active = TRUE AND (variant_id IS NULL OR variant_id = $2)
	          ORDER BY duration_type, duration_value`
	rows, err := r.q.QueryContext(ctx, query, itemID, variantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiers []domain.PricingTier
	for rows.Next() {
		var t domain.PricingTier
		if err := rows.Scan(&t.ID, &t.ItemID, &t.VariantID, &t.DurationType, &t.DurationValue,
			&t.Price, &t.IsDiscounted, &t.DiscountPercent, &t.IsActive,
			&t.EffectiveFrom, &t.EffectiveUntil, &t.CreatedAt); err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}
