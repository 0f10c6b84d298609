package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PenaltyMethod string

const (
	PenaltyMethodPerDay     PenaltyMethod = "per_day"
	PenaltyMethodPerHour    PenaltyMethod = "per_hour"
	PenaltyMethodPercentage PenaltyMethod = "percentage"
)

// LateFeePolicy configures how late-return penalties are computed. The
// engine reads policies; it never mutates them.
type LateFeePolicy struct {
	ID               int32            `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	GracePeriodHours int32            `json:"grace_period_hours"`
	Method           PenaltyMethod    `json:"method"`
	RatePerDay       decimal.Decimal  `json:"rate_per_day"`
	RatePerHour      decimal.Decimal  `json:"rate_per_hour"`
	Percentage       decimal.Decimal  `json:"percentage"`
	MaxPenaltyCap    *decimal.Decimal `json:"max_penalty_cap,omitempty"`
	IsActive         bool             `json:"is_active"`
	EffectiveFrom    *time.Time       `json:"effective_from,omitempty"`
	EffectiveUntil   *time.Time       `json:"effective_until,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

// GracePeriod returns the configured grace window as a duration.
func (p *LateFeePolicy) GracePeriod() time.Duration {
	return time.Duration(p.GracePeriodHours) * time.Hour
}
