package jobs

import (
	"atelier-rental-backend/internal/config"
	"atelier-rental-backend/internal/logger"
	"atelier-rental-backend/internal/notify"
	"atelier-rental-backend/internal/repository"
	"atelier-rental-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	reconcileSvc service.ReconcileService
	rentals      repository.RentalRepository
	dispatcher   *notify.Dispatcher
	config       *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(reconcileSvc service.ReconcileService, rentals repository.RentalRepository, dispatcher *notify.Dispatcher, cfg *config.Config) *JobRunner {
	return &JobRunner{
		reconcileSvc: reconcileSvc,
		rentals:      rentals,
		dispatcher:   dispatcher,
		config:       cfg,
	}
}

// Config exposes the loaded config for the scheduler's cron expressions.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.ReconcileProductStatuses()
	jr.ReportOverdueRentals()
}
