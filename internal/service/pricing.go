package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
	"rentaldesk-backend/internal/utils"
)

type pricingEngine struct {
	store repository.Store
}

func NewPricingEngine(store repository.Store) PricingEngine {
	return &pricingEngine{store: store}
}

// Quote picks the cheapest total across the item's active tiers. A weekly
// tier at 600 beats seven daily units at 100 for a 7-day rental.
func (e *pricingEngine) Quote(ctx context.Context, itemID int32, variantID *int32, start, end time.Time, quantity int32) (*PriceQuote, error) {
	if !end.After(start) {
		return nil, &domain.InvalidDateRangeError{Start: start, End: end}
	}

	tiers, err := e.store.Items().ListActiveTiers(ctx, itemID, variantID)
	if err != nil {
		return nil, err
	}

	days := utils.RentalDays(start, end)
	qty := decimal.NewFromInt32(quantity)

	var best *PriceQuote
	for i := range tiers {
		tier := &tiers[i]
		if !tier.InEffect(start) {
			continue
		}
		tierLen := tier.DurationType.LengthDays() * tier.DurationValue
		if tierLen <= 0 {
			continue
		}
		units := utils.CeilDiv(days, tierLen)
		unitPrice := tier.EffectivePrice()
		total := unitPrice.Mul(decimal.NewFromInt32(units)).Mul(qty)
		if best == nil || total.LessThan(best.LineTotal) {
			best = &PriceQuote{
				UnitPrice:     unitPrice,
				DurationType:  tier.DurationType,
				DurationUnits: units,
				LineTotal:     total,
			}
		}
	}
	if best == nil {
		return nil, &domain.NoPricingAvailableError{ItemID: itemID}
	}
	return best, nil
}

func (e *pricingEngine) ListRates(ctx context.Context, itemID int32, at time.Time) ([]RateOption, error) {
	tiers, err := e.store.Items().ListActiveTiers(ctx, itemID, nil)
	if err != nil {
		return nil, err
	}
	var rates []RateOption
	for i := range tiers {
		tier := &tiers[i]
		if !tier.InEffect(at) {
			continue
		}
		rates = append(rates, RateOption{
			DurationType: tier.DurationType,
			UnitPrice:    tier.EffectivePrice(),
		})
	}
	if len(rates) == 0 {
		return nil, &domain.NoPricingAvailableError{ItemID: itemID}
	}
	return rates, nil
}
