package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type HandoverStatus string

const (
	HandoverStatusPending    HandoverStatus = "pending"
	HandoverStatusInProgress HandoverStatus = "in_progress"
	HandoverStatusCompleted  HandoverStatus = "completed"
	HandoverStatusCancelled  HandoverStatus = "cancelled"
)

// Pickup is the handover document for the start of a rental, tied 1:1 to an
// order.
type Pickup struct {
	ID           int32          `json:"id"`
	PickupNumber string         `json:"pickup_number"`
	OrderID      int32          `json:"order_id"`
	Status       HandoverStatus `json:"status"`
	ScheduledAt  time.Time      `json:"scheduled_at"`
	ActualAt     *time.Time     `json:"actual_at,omitempty"`
	ItemsChecked bool           `json:"items_checked"`
	Notes        string         `json:"notes"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Return is the handover document closing a rental. Its completion is the
// single trigger for late-fee computation.
type Return struct {
	ID                int32           `json:"id"`
	ReturnNumber      string          `json:"return_number"`
	OrderID           int32           `json:"order_id"`
	Status            HandoverStatus  `json:"status"`
	ScheduledAt       time.Time       `json:"scheduled_at"`
	ActualAt          *time.Time      `json:"actual_at,omitempty"`
	AllItemsReturned  bool            `json:"all_items_returned"`
	ItemsDamaged      bool            `json:"items_damaged"`
	DamageDescription string          `json:"damage_description"`
	DamageCost        decimal.Decimal `json:"damage_cost"`
	IsLateReturn      bool            `json:"is_late_return"`
	LateFeeCharged    decimal.Decimal `json:"late_fee_charged"`
	Notes             string          `json:"notes"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
