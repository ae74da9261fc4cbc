// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the order lifecycle.
//
// # Available Jobs
//
// 1. DeadlineMonitorJob - Runs every minute to cancel non-terminal orders whose progress deadline has passed
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(uowFactory, appLedger, "* * * * *", logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The deadline monitor schedule is configurable and defaults to "* * * * *",
// running once a minute. Deadlines are coarse (hours), so minute resolution
// is plenty.
//
// # Error Handling
//
// - Cancellations go through the ledger, so the sweep competes for the same per-order locks as interactive commands
// - Orders that progressed or terminated between scan and cancel are skipped silently
// - All other failures are logged and the sweep moves on to the next order
package jobs
