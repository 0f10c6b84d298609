package jobs

import (
	"context"
	"fmt"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
)

// ExpireStaleQuotations flips draft/sent quotations past their validity
// deadline to expired. Confirmation also checks lazily, so this job only
// keeps listings tidy.
func (jr *JobRunner) ExpireStaleQuotations() {
	jr.runWithRecovery("ExpireStaleQuotations", func() {
		ctx := context.Background()

		count, err := jr.store.Quotations().ExpireStale(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to expire stale quotations", "error", err)
			return
		}
		logger.Info("Expired stale quotations", "count", count)
	})
}

// FlagOverdueReturns notifies vendors about in-progress orders whose
// scheduled return date has passed. Each order is flagged once; the marker
// keeps later runs from notifying again. Late fees themselves are only
// charged when the return is actually completed.
func (jr *JobRunner) FlagOverdueReturns() {
	jr.runWithRecovery("FlagOverdueReturns", func() {
		ctx := context.Background()
		now := time.Now()

		orders, err := jr.store.Orders().ListOverdue(ctx, now)
		if err != nil {
			logger.Error("Failed to list overdue orders", "error", err)
			return
		}

		flagged := 0
		for i := range orders {
			order := &orders[i]
			note := &domain.Notification{
				UserID:  order.VendorID,
				Title:   "Return Overdue",
				Message: fmt.Sprintf("Order %s was due back on %s", order.OrderNumber, order.ReturnDate.Format("2006-01-02")),
				Attributes: map[string]string{
					"type":     "RETURN_OVERDUE",
					"order_id": fmt.Sprintf("%d", order.ID),
				},
			}
			if err := jr.store.Notifications().Create(ctx, note); err != nil {
				logger.Error("Failed to create overdue notification", "order_id", order.ID, "error", err)
				continue
			}
			order.OverdueFlaggedAt = &now
			if err := jr.store.Orders().Update(ctx, order); err != nil {
				logger.Error("Failed to flag overdue order", "order_id", order.ID, "error", err)
				continue
			}
			flagged++
			logger.Debug("Flagged overdue return",
				"order_id", order.ID,
				"order", order.OrderNumber,
				"return_date", order.ReturnDate.Format("2006-01-02"))
		}

		logger.Info("Flagged overdue returns", "count", flagged)
	})
}
