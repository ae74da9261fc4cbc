package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/ports"
	"agromarket/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// OrderCanceller submits cancellations. Cancellations go through the ledger,
// not straight to the handler, so the system actor competes for the same
// per-order lock as everyone else.
type OrderCanceller interface {
	CancelOrder(ctx context.Context, cmd commands.CancelOrderCommand) error
}

// DeadlineMonitorJob cancels orders whose progress deadline has passed.
// Runs every minute; a deal that beats the sweep by committing progress
// first simply is not in the result set anymore.
type DeadlineMonitorJob struct {
	uowFactory ports.UnitOfWorkFactory
	canceller  OrderCanceller
	schedule   string
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewDeadlineMonitorJob creates the deadline sweep job. An empty schedule
// falls back to once a minute.
func NewDeadlineMonitorJob(
	uowFactory ports.UnitOfWorkFactory,
	canceller OrderCanceller,
	schedule string,
	logger *slog.Logger,
) *DeadlineMonitorJob {
	if schedule == "" {
		schedule = "* * * * *"
	}

	return &DeadlineMonitorJob{
		uowFactory: uowFactory,
		canceller:  canceller,
		schedule:   schedule,
		cron:       cron.New(),
		logger:     logger.With("component", "deadline_monitor_job"),
	}
}

// Start schedules the sweep.
func (j *DeadlineMonitorJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if sweepErr := j.sweep(ctx); sweepErr != nil {
			j.logger.ErrorContext(ctx, "Deadline sweep failed", "error", sweepErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Deadline monitor started", "schedule", j.schedule)
	return nil
}

// Stop stops the deadline monitor.
func (j *DeadlineMonitorJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Deadline monitor stopped")
}

func (j *DeadlineMonitorJob) sweep(ctx context.Context) error {
	expired, err := j.uowFactory.Create().OrderRepository().GetAllPastDeadline(ctx, time.Now().UTC())
	if err != nil {
		return err
	}

	for _, stalled := range expired {
		cmd, cmdErr := commands.NewCancelOrderCommand(kernel.NewSystemActor(), stalled.ID())
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to build cancellation", "order_id", stalled.ID().String(), "error", cmdErr)
			continue
		}

		if cancelErr := j.canceller.CancelOrder(ctx, cmd); cancelErr != nil {
			// A deal that progressed or terminated after the scan is not an
			// incident; anything else is.
			if errors.Is(cancelErr, errs.ErrInvalidTransition) {
				continue
			}
			j.logger.ErrorContext(ctx, "Deadline cancellation failed", "order_id", stalled.ID().String(), "error", cancelErr)
		}
	}

	return nil
}
