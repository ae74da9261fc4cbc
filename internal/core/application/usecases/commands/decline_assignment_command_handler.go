package commands

import (
	"context"
	"time"

	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
	"agromarket/internal/pkg/errs"
)

// DeclineAssignmentCommandHandler handles assignment refusal by its hauler.
// The order remains in logistics search so the system can match again.
type DeclineAssignmentCommandHandler struct {
	uowFactory LogisticsUoWFactory
	publisher  ports.EventPublisher
}

// NewDeclineAssignmentCommandHandler creates a handler for assignment refusal.
func NewDeclineAssignmentCommandHandler(
	uowFactory LogisticsUoWFactory,
	publisher ports.EventPublisher,
) DeclineAssignmentCommandHandler {
	return DeclineAssignmentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the refusal command.
func (h *DeclineAssignmentCommandHandler) Handle(ctx context.Context, cmd DeclineAssignmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	offer, err := uow.AssignmentRepository().Get(ctx, cmd.AssignmentID())
	if err != nil {
		return err
	}
	if !offer.HaulerID().IsEqual(cmd.Actor().ID()) {
		return errs.NewUnauthorizedError(cmd.Actor().Role().String(),
			cmd.Actor().ID().String(), "assignment is offered to another hauler")
	}
	if !offer.OrderID().IsEqual(cmd.OrderID()) {
		return errs.NewObjectNotFoundError("assignmentID", cmd.AssignmentID().String())
	}

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = offer.Decline(now); err != nil {
		return err
	}
	if err = uow.AssignmentRepository().Update(ctx, offer); err != nil {
		return err
	}

	event, err := recordTransition(ctx, uow.TransitionLogRepository(),
		cmd.Actor(), aggregate.ID(), aggregate.Status(), aggregate.Status(),
		order.EventAssignmentDeclined, now)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishAll(h.publisher, []ports.TransitionEvent{event})
	return nil
}
