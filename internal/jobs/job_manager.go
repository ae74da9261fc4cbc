package jobs

import (
	"fmt"
	"log/slog"

	"agromarket/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	deadlineMonitorJob *DeadlineMonitorJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	uowFactory ports.UnitOfWorkFactory,
	canceller OrderCanceller,
	sweepSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		deadlineMonitorJob: NewDeadlineMonitorJob(uowFactory, canceller, sweepSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.deadlineMonitorJob.Start(); err != nil {
		return fmt.Errorf("failed to start deadline monitor job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.deadlineMonitorJob.Stop()
}
