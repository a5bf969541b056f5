package jobs

import (
	"context"

	"atelier-rental-backend/internal/domain"
	"atelier-rental-backend/internal/logger"
)

// ReconcileProductStatuses re-derives every product's cached status from
// the active rentals. The bulk pass is the safety net behind the
// per-mutation sync calls, so drift never survives past one night.
func (jr *JobRunner) ReconcileProductStatuses() {
	jr.runWithRecovery("ReconcileProductStatuses", func() {
		ctx := context.Background()

		corrected, err := jr.reconcileSvc.SyncAll(ctx)
		if err != nil {
			logger.Error("Failed to reconcile product statuses", "error", err)
			return
		}
		logger.Info("Reconciled product statuses", "corrected", corrected)
	})
}

// ReportOverdueRentals notifies staff about rentals whose end date has
// passed while still in an active status. Nothing is persisted; overdue
// is always derived at read time.
func (jr *JobRunner) ReportOverdueRentals() {
	jr.runWithRecovery("ReportOverdueRentals", func() {
		ctx := context.Background()

		overdue, err := jr.rentals.ListOverdue(ctx, domain.Today())
		if err != nil {
			logger.Error("Failed to list overdue rentals", "error", err)
			return
		}
		if len(overdue) == 0 {
			logger.Info("No overdue rentals to report")
			return
		}

		logger.Info("Reporting overdue rentals", "count", len(overdue))
		jr.dispatcher.NotifyOverdueRentals(ctx, overdue)
	})
}
