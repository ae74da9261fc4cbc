package commands

import (
	"context"
	"time"

	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
)

// ListOrderCommandHandler handles the business logic for listing new orders.
// Creates the order in Listed status, asks the grading service for an
// advisory quality grade, and schedules the progress deadline.
type ListOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	estimator  ports.GradeEstimator
	publisher  ports.EventPublisher
	policy     Policy
}

// NewListOrderCommandHandler creates a handler for order listing.
func NewListOrderCommandHandler(
	uowFactory OrderUoWFactory,
	estimator ports.GradeEstimator,
	publisher ports.EventPublisher,
	policy Policy,
) ListOrderCommandHandler {
	return ListOrderCommandHandler{
		uowFactory: uowFactory,
		estimator:  estimator,
		publisher:  publisher,
		policy:     policy,
	}
}

// Handle processes the listing command. The grade estimate is advisory: a
// grading service failure does not block the listing.
func (h *ListOrderCommandHandler) Handle(ctx context.Context, cmd ListOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	aggregate, err := order.NewOrder(
		cmd.OrderID(), cmd.Actor().ID(),
		cmd.CropType(), cmd.Variety(),
		cmd.TotalVolume(), cmd.AskingPrice(), cmd.ColdChain(),
		now,
	)
	if err != nil {
		return err
	}

	if grade, gradeErr := h.estimator.Estimate(
		ctx, cmd.CropType(), cmd.Variety(), cmd.TotalVolume()); gradeErr == nil && grade != "" {
		if err = aggregate.AssignGrade(grade); err != nil {
			return err
		}
	}

	aggregate.ScheduleDeadline(h.policy.DeadlineFrom(now))

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	event, err := recordTransition(ctx, uow.TransitionLogRepository(),
		cmd.Actor(), aggregate.ID(), order.Unknown, order.Listed,
		order.EventOrderListed, now)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishAll(h.publisher, []ports.TransitionEvent{event})
	return nil
}
