package service

import (
	"time"

	"github.com/shopspring/decimal"

	"rentaldesk-backend/internal/domain"
)

type lateFeeCalculator struct{}

func NewLateFeeCalculator() LateFeeCalculator {
	return &lateFeeCalculator{}
}

func (c *lateFeeCalculator) Calculate(policy *domain.LateFeePolicy, scheduledEnd, actualEnd time.Time, lineBase decimal.Decimal) decimal.Decimal {
	if policy == nil {
		return decimal.Zero
	}

	deadline := scheduledEnd.Add(policy.GracePeriod())
	if !actualEnd.After(deadline) {
		return decimal.Zero
	}
	overdue := actualEnd.Sub(scheduledEnd) - policy.GracePeriod()

	var unit time.Duration
	var fee decimal.Decimal
	switch policy.Method {
	case domain.PenaltyMethodPerHour:
		unit = time.Hour
		fee = policy.RatePerHour.Mul(decimal.NewFromInt32(ceilUnits(overdue, unit)))
	case domain.PenaltyMethodPercentage:
		unit = 24 * time.Hour
		units := decimal.NewFromInt32(ceilUnits(overdue, unit))
		fee = lineBase.Mul(policy.Percentage).Div(decimal.NewFromInt(100)).Mul(units)
	default: // per_day
		unit = 24 * time.Hour
		fee = policy.RatePerDay.Mul(decimal.NewFromInt32(ceilUnits(overdue, unit)))
	}

	if fee.IsNegative() {
		return decimal.Zero
	}
	if policy.MaxPenaltyCap != nil && fee.GreaterThan(*policy.MaxPenaltyCap) {
		fee = *policy.MaxPenaltyCap
	}
	return fee.Round(2)
}

// ceilUnits rounds a positive overdue span up to whole billing units.
func ceilUnits(overdue, unit time.Duration) int32 {
	units := overdue / unit
	if overdue%unit != 0 {
		units++
	}
	return int32(units)
}
