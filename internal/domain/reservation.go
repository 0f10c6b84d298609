package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusActive    ReservationStatus = "active"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusConfirmed: {ReservationStatusActive, ReservationStatusCancelled},
	ReservationStatusActive:    {ReservationStatusCompleted, ReservationStatusCancelled},
}

func (s ReservationStatus) CanTransition(to ReservationStatus) bool {
	for _, next := range reservationTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Blocking reports whether the reservation counts against availability.
func (s ReservationStatus) Blocking() bool {
	return s == ReservationStatusConfirmed || s == ReservationStatusActive
}

// Reservation blocks a quantity of an item (or variant) for a date range.
// For any instant, the blocking reservations covering it must never sum past
// the item's quantity on hand.
type Reservation struct {
	ID          int32             `json:"id"`
	OrderLineID int32             `json:"order_line_id"`
	ItemID      int32             `json:"item_id"`
	VariantID   *int32            `json:"variant_id,omitempty"`
	StartDate   time.Time         `json:"start_date"`
	EndDate     time.Time         `json:"end_date"`
	Quantity    int32             `json:"quantity"`
	Status      ReservationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Overlaps applies the canonical half-open interval test used everywhere
// reservations are compared: [start, end) intersects [r.Start, r.End).
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartDate.Before(end) && r.EndDate.After(start)
}
