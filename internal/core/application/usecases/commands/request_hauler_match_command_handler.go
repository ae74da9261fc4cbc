package commands

import (
	"context"
	"time"

	"agromarket/internal/core/domain/model/assignment"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
	"agromarket/internal/pkg/errs"
)

// RequestHaulerMatchCommandHandler handles hauler matching for locked
// orders. The matching service proposes a hauler; the proposal becomes an
// offered assignment and the order enters logistics search.
type RequestHaulerMatchCommandHandler struct {
	uowFactory LogisticsUoWFactory
	matcher    ports.HaulerMatcher
	publisher  ports.EventPublisher
	policy     Policy
}

// NewRequestHaulerMatchCommandHandler creates a handler for hauler matching.
func NewRequestHaulerMatchCommandHandler(
	uowFactory LogisticsUoWFactory,
	matcher ports.HaulerMatcher,
	publisher ports.EventPublisher,
	policy Policy,
) RequestHaulerMatchCommandHandler {
	return RequestHaulerMatchCommandHandler{
		uowFactory: uowFactory,
		matcher:    matcher,
		publisher:  publisher,
		policy:     policy,
	}
}

// Handle processes the matching command.
func (h *RequestHaulerMatchCommandHandler) Handle(ctx context.Context, cmd RequestHaulerMatchCommand) error {
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

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if !cmd.Actor().IsSystem() && !aggregate.FarmerID().IsEqual(cmd.Actor().ID()) {
		return errs.NewUnauthorizedError(cmd.Actor().Role().String(),
			cmd.Actor().ID().String(), "order belongs to another farmer")
	}

	if err = aggregate.BeginLogisticsSearch(now); err != nil {
		return err
	}
	aggregate.ScheduleDeadline(h.policy.DeadlineFrom(now))

	proposal, err := h.matcher.Match(ctx, aggregate)
	if err != nil {
		return err
	}

	offer, err := assignment.NewAssignment(
		kernel.NewUUID(), aggregate.ID(), proposal.HaulerID,
		proposal.Fee, proposal.EstimatedDistanceKm, now,
	)
	if err != nil {
		return err
	}

	if err = uow.AssignmentRepository().Add(ctx, offer); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	event, err := recordTransition(ctx, uow.TransitionLogRepository(),
		cmd.Actor(), aggregate.ID(), order.LockedPendingLogistics, order.LogisticsSearch,
		order.EventHaulerMatched, now)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishAll(h.publisher, []ports.TransitionEvent{event})
	return nil
}
