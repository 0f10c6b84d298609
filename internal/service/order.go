package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/repository"
	"rentaldesk-backend/internal/utils"
)

type orderService struct {
	store   repository.Store
	lateFee LateFeeCalculator
	now     func() time.Time
}

func NewOrderService(store repository.Store, lateFee LateFeeCalculator) OrderService {
	return &orderService{
		store:   store,
		lateFee: lateFee,
		now:     time.Now,
	}
}

func (s *orderService) GetOrder(ctx context.Context, orderID int32) (*domain.Order, error) {
	return s.store.Orders().GetByID(ctx, orderID)
}

func (s *orderService) ListOrders(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	return s.store.Orders().ListByCustomer(ctx, customerID, status, page, pageSize)
}

func (s *orderService) SchedulePickup(ctx context.Context, orderID int32, at time.Time) (*domain.Pickup, error) {
	order, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusConfirmed {
		return nil, &domain.InvalidStateError{Entity: "order", ID: orderID, Current: string(order.Status), Op: "schedule pickup"}
	}

	pickup, err := s.store.Handovers().GetPickupByOrder(ctx, orderID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if pickup != nil {
		pickup.ScheduledAt = at
		if err := s.store.Handovers().UpdatePickup(ctx, pickup); err != nil {
			return nil, err
		}
		return pickup, nil
	}

	pickup = &domain.Pickup{
		PickupNumber: utils.DocumentNumber("PU"),
		OrderID:      orderID,
		Status:       domain.HandoverStatusPending,
		ScheduledAt:  at,
	}
	if err := s.store.Handovers().CreatePickup(ctx, pickup); err != nil {
		return nil, err
	}
	logger.Info("pickup scheduled", "order_id", orderID, "pickup", pickup.PickupNumber, "at", at)
	return pickup, nil
}

// CompletePickup activates the order's reservations and starts the rental.
// All writes share one transaction so a failed activation leaves the order
// untouched in confirmed.
func (s *orderService) CompletePickup(ctx context.Context, orderID int32, input PickupCompletionInput) (*domain.Order, error) {
	if !input.ItemsVerified {
		return nil, &domain.ValidationError{Msg: "cannot complete pickup: items not verified"}
	}
	actualAt := input.ActualAt
	if actualAt.IsZero() {
		actualAt = s.now()
	}

	var order *domain.Order
	err := s.store.InTx(ctx, func(st repository.Store) error {
		var err error
		order, err = st.Orders().GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if !order.Status.CanTransition(domain.OrderStatusInProgress) {
			return &domain.InvalidTransitionError{Entity: "order", ID: orderID, From: string(order.Status), To: string(domain.OrderStatusInProgress)}
		}

		for i := range order.Lines {
			line := &order.Lines[i]
			if line.ReservationID != 0 {
				if err := transitionReservation(ctx, st, line.ReservationID, domain.ReservationStatusActive); err != nil {
					return err
				}
			}
			line.ActualPickupAt = &actualAt
			if err := st.Orders().UpdateLine(ctx, line); err != nil {
				return err
			}
		}

		pickup, err := st.Handovers().GetPickupByOrder(ctx, orderID)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return err
			}
			pickup = &domain.Pickup{
				PickupNumber: utils.DocumentNumber("PU"),
				OrderID:      orderID,
				Status:       domain.HandoverStatusPending,
				ScheduledAt:  order.PickupDate,
			}
			if err := st.Handovers().CreatePickup(ctx, pickup); err != nil {
				return err
			}
		}
		pickup.Status = domain.HandoverStatusCompleted
		pickup.ActualAt = &actualAt
		pickup.ItemsChecked = true
		if input.Notes != "" {
			pickup.Notes = input.Notes
		}
		if err := st.Handovers().UpdatePickup(ctx, pickup); err != nil {
			return err
		}

		order.Status = domain.OrderStatusInProgress
		return st.Orders().Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	_ = s.store.Notifications().Create(ctx, &domain.Notification{
		UserID:  order.CustomerID,
		Title:   "Rental Started",
		Message: fmt.Sprintf("Items for order %s have been picked up", order.OrderNumber),
		Attributes: map[string]string{
			"type":     "PICKUP_COMPLETED",
			"order_id": fmt.Sprintf("%d", order.ID),
		},
	})
	logger.Info("pickup completed", "order_id", orderID, "order", order.OrderNumber)
	return order, nil
}

func (s *orderService) ScheduleReturn(ctx context.Context, orderID int32, at time.Time) (*domain.Return, error) {
	order, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusInProgress {
		return nil, &domain.InvalidStateError{Entity: "order", ID: orderID, Current: string(order.Status), Op: "schedule return"}
	}

	ret, err := s.store.Handovers().GetReturnByOrder(ctx, orderID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if ret != nil {
		ret.ScheduledAt = at
		if err := s.store.Handovers().UpdateReturn(ctx, ret); err != nil {
			return nil, err
		}
		return ret, nil
	}

	ret = &domain.Return{
		ReturnNumber: utils.DocumentNumber("RT"),
		OrderID:      orderID,
		Status:       domain.HandoverStatusPending,
		ScheduledAt:  at,
		DamageCost:   decimal.Zero,
	}
	if err := s.store.Handovers().CreateReturn(ctx, ret); err != nil {
		return nil, err
	}
	logger.Info("return scheduled", "order_id", orderID, "return", ret.ReturnNumber, "at", at)
	return ret, nil
}

// CompleteReturn closes the rental: late fees are computed per line from the
// policy active at the actual return instant, reservations are released, and
// the order totals are rebuilt before it moves to completed.
func (s *orderService) CompleteReturn(ctx context.Context, orderID int32, input ReturnCompletionInput) (*domain.Order, *domain.Return, error) {
	actualAt := input.ActualAt
	if actualAt.IsZero() {
		actualAt = s.now()
	}

	var (
		order *domain.Order
		ret   *domain.Return
	)
	err := s.store.InTx(ctx, func(st repository.Store) error {
		var err error
		order, err = st.Orders().GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if !order.Status.CanTransition(domain.OrderStatusCompleted) {
			return &domain.InvalidTransitionError{Entity: "order", ID: orderID, From: string(order.Status), To: string(domain.OrderStatusCompleted)}
		}

		policy, err := st.LateFeePolicies().GetActive(ctx, actualAt)
		if err != nil {
			return err
		}

		totalLateFee := decimal.Zero
		anyLate := false
		for i := range order.Lines {
			line := &order.Lines[i]
			fee := s.lateFee.Calculate(policy, line.EndDate, actualAt, line.LineTotal)
			line.ActualReturnAt = &actualAt
			if fee.IsPositive() {
				line.IsLateReturn = true
				line.LateFeeCharged = fee
				totalLateFee = totalLateFee.Add(fee)
				anyLate = true
			}
			if err := st.Orders().UpdateLine(ctx, line); err != nil {
				return err
			}
			if line.ReservationID != 0 {
				if err := transitionReservation(ctx, st, line.ReservationID, domain.ReservationStatusCompleted); err != nil {
					return err
				}
			}
		}

		ret, err = st.Handovers().GetReturnByOrder(ctx, orderID)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return err
			}
			ret = &domain.Return{
				ReturnNumber: utils.DocumentNumber("RT"),
				OrderID:      orderID,
				Status:       domain.HandoverStatusPending,
				ScheduledAt:  order.ReturnDate,
				DamageCost:   decimal.Zero,
			}
			if err := st.Handovers().CreateReturn(ctx, ret); err != nil {
				return err
			}
		}
		ret.Status = domain.HandoverStatusCompleted
		ret.ActualAt = &actualAt
		ret.AllItemsReturned = input.AllItemsReturned
		ret.ItemsDamaged = input.DamageReported
		ret.DamageDescription = input.DamageDescription
		ret.DamageCost = input.DamageCost
		ret.IsLateReturn = anyLate
		ret.LateFeeCharged = totalLateFee
		if input.Notes != "" {
			ret.Notes = input.Notes
		}
		if err := st.Handovers().UpdateReturn(ctx, ret); err != nil {
			return err
		}

		if input.DamageReported {
			order.DamageCharges = input.DamageCost
		}
		order.RecalculateTotals()
		order.Status = domain.OrderStatusCompleted
		now := s.now()
		order.CompletedAt = &now
		return st.Orders().Update(ctx, order)
	})
	if err != nil {
		return nil, nil, err
	}

	_ = s.store.Notifications().Create(ctx, &domain.Notification{
		UserID:  order.CustomerID,
		Title:   "Rental Completed",
		Message: fmt.Sprintf("Order %s has been returned and closed", order.OrderNumber),
		Attributes: map[string]string{
			"type":     "RETURN_COMPLETED",
			"order_id": fmt.Sprintf("%d", order.ID),
		},
	})
	logger.Info("return completed", "order_id", orderID, "late_fee", order.LateFee, "damage_charges", order.DamageCharges)
	return order, ret, nil
}

func (s *orderService) CancelOrder(ctx context.Context, orderID int32, reason string) (*domain.Order, error) {
	var order *domain.Order
	err := s.store.InTx(ctx, func(st repository.Store) error {
		var err error
		order, err = st.Orders().GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if !order.Status.CanTransition(domain.OrderStatusCancelled) {
			return &domain.InvalidTransitionError{Entity: "order", ID: orderID, From: string(order.Status), To: string(domain.OrderStatusCancelled)}
		}

		// Released here, inside the same transaction, so the quantity is free
		// to book again the instant the cancellation commits.
		reservations, err := st.Reservations().ListByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		for i := range reservations {
			res := &reservations[i]
			if !res.Status.Blocking() {
				continue
			}
			res.Status = domain.ReservationStatusCancelled
			if err := st.Reservations().Update(ctx, res); err != nil {
				return err
			}
		}

		order.Status = domain.OrderStatusCancelled
		now := s.now()
		order.CancelledAt = &now
		order.CancelReason = reason
		return st.Orders().Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	_ = s.store.Notifications().Create(ctx, &domain.Notification{
		UserID:  order.VendorID,
		Title:   "Order Cancelled",
		Message: fmt.Sprintf("Order %s was cancelled: %s", order.OrderNumber, reason),
		Attributes: map[string]string{
			"type":     "ORDER_CANCELLED",
			"order_id": fmt.Sprintf("%d", order.ID),
		},
	})
	logger.Info("order cancelled", "order_id", orderID, "reason", reason)
	return order, nil
}
