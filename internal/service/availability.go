package service

import (
	"context"
	"errors"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

type availabilityChecker struct {
	store   repository.Store
	pricing PricingEngine
}

func NewAvailabilityChecker(store repository.Store, pricing PricingEngine) AvailabilityChecker {
	return &availabilityChecker{store: store, pricing: pricing}
}

func (c *availabilityChecker) CheckAvailability(ctx context.Context, itemID int32, variantID *int32, start, end time.Time, quantity int32) (*AvailabilityResult, error) {
	if !end.After(start) {
		return nil, &domain.InvalidDateRangeError{Start: start, End: end}
	}

	free, err := availableQuantity(ctx, c.store, itemID, variantID, start, end, false)
	if err != nil {
		return nil, err
	}
	display := free
	if display < 0 {
		display = 0
	}
	result := &AvailabilityResult{
		Available:         free >= quantity,
		AvailableQuantity: display,
	}

	// An unpriced item is still reportable as available; the quote is just
	// omitted.
	quote, err := c.pricing.Quote(ctx, itemID, variantID, start, end, quantity)
	if err != nil {
		var noPricing *domain.NoPricingAvailableError
		if !errors.As(err, &noPricing) {
			return nil, err
		}
	} else {
		result.Pricing = quote
	}
	return result, nil
}

// availableQuantity derives free stock from reservations, never from a
// cached counter: quantity on hand minus blocking reservations overlapping
// [start, end). With forUpdate set the item row is locked so a concurrent
// confirmation on the same item serializes behind this call.
func availableQuantity(ctx context.Context, st repository.Store, itemID int32, variantID *int32, start, end time.Time, forUpdate bool) (int32, error) {
	var onHand int32
	if forUpdate {
		item, err := st.Items().GetByIDForUpdate(ctx, itemID)
		if err != nil {
			return 0, err
		}
		onHand = item.QuantityOnHand
	} else {
		item, err := st.Items().GetByID(ctx, itemID)
		if err != nil {
			return 0, err
		}
		onHand = item.QuantityOnHand
	}

	if variantID != nil {
		variant, err := st.Items().GetVariant(ctx, *variantID)
		if err != nil {
			return 0, err
		}
		onHand = variant.QuantityOnHand
	}

	reserved, err := st.Reservations().SumOverlapping(ctx, itemID, variantID, start, end)
	if err != nil {
		return 0, err
	}
	return onHand - reserved, nil
}
