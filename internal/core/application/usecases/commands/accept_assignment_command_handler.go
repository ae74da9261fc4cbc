package commands

import (
	"context"
	"time"

	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
	"agromarket/internal/pkg/errs"
)

// AcceptAssignmentCommandHandler handles assignment acceptance. The first
// hauler committed by the per-order serialization wins; a competitor sees
// the order already in transit and receives a conflict.
type AcceptAssignmentCommandHandler struct {
	uowFactory LogisticsUoWFactory
	publisher  ports.EventPublisher
	policy     Policy
}

// NewAcceptAssignmentCommandHandler creates a handler for assignment acceptance.
func NewAcceptAssignmentCommandHandler(
	uowFactory LogisticsUoWFactory,
	publisher ports.EventPublisher,
	policy Policy,
) AcceptAssignmentCommandHandler {
	return AcceptAssignmentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		policy:     policy,
	}
}

// Handle processes the acceptance command.
func (h *AcceptAssignmentCommandHandler) Handle(ctx context.Context, cmd AcceptAssignmentCommand) error {
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
	if aggregate.Status() == order.InTransit {
		return errs.NewConflictError("assignment", "another hauler already accepted this order")
	}

	if err = offer.Accept(now); err != nil {
		return err
	}
	if err = aggregate.BeginTransit(offer.HaulerID(), now); err != nil {
		return err
	}
	aggregate.ScheduleDeadline(h.policy.DeadlineFrom(now))

	if err = uow.AssignmentRepository().Update(ctx, offer); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	event, err := recordTransition(ctx, uow.TransitionLogRepository(),
		cmd.Actor(), aggregate.ID(), order.LogisticsSearch, order.InTransit,
		order.EventAssignmentAccepted, now)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishAll(h.publisher, []ports.TransitionEvent{event})
	return nil
}
