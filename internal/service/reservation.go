package service

import (
	"context"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/repository"
)

type reservationManager struct {
	store repository.Store
}

func NewReservationManager(store repository.Store) ReservationManager {
	return &reservationManager{store: store}
}

// allocate creates a confirmed reservation for an order line. It must only
// run inside the same transaction as the availability recheck; the caller
// holds the item row lock at that point.
func allocate(ctx context.Context, st repository.Store, line *domain.OrderLine) (*domain.Reservation, error) {
	res := &domain.Reservation{
		OrderLineID: line.ID,
		ItemID:      line.ItemID,
		VariantID:   line.VariantID,
		StartDate:   line.StartDate,
		EndDate:     line.EndDate,
		Quantity:    line.Quantity,
		Status:      domain.ReservationStatusConfirmed,
	}
	if err := st.Reservations().Create(ctx, res); err != nil {
		return nil, err
	}
	line.ReservationID = res.ID
	return res, nil
}

func (m *reservationManager) Activate(ctx context.Context, reservationID int32) error {
	return transitionReservation(ctx, m.store, reservationID, domain.ReservationStatusActive)
}

func (m *reservationManager) Release(ctx context.Context, reservationID int32) error {
	return transitionReservation(ctx, m.store, reservationID, domain.ReservationStatusCompleted)
}

func (m *reservationManager) Cancel(ctx context.Context, reservationID int32) error {
	return transitionReservation(ctx, m.store, reservationID, domain.ReservationStatusCancelled)
}

func transitionReservation(ctx context.Context, st repository.Store, reservationID int32, to domain.ReservationStatus) error {
	res, err := st.Reservations().GetByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if !res.Status.CanTransition(to) {
		return &domain.InvalidReservationStateError{ReservationID: reservationID, From: res.Status, To: to}
	}
	res.Status = to
	if err := st.Reservations().Update(ctx, res); err != nil {
		return err
	}
	logger.Debug("reservation transitioned", "reservation_id", reservationID, "status", to)
	return nil
}
