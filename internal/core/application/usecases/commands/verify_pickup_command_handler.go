package commands

import (
	"context"
	"time"

	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
	"agromarket/internal/pkg/errs"
)

// VerifyPickupCommandHandler handles pickup verification. A valid, unused
// token releases the pickup share of escrow; the order stays in transit.
type VerifyPickupCommandHandler struct {
	uowFactory VerificationUoWFactory
	publisher  ports.EventPublisher
	policy     Policy
}

// NewVerifyPickupCommandHandler creates a handler for pickup verification.
func NewVerifyPickupCommandHandler(
	uowFactory VerificationUoWFactory,
	publisher ports.EventPublisher,
	policy Policy,
) VerifyPickupCommandHandler {
	return VerifyPickupCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		policy:     policy,
	}
}

// Handle processes the pickup verification command.
func (h *VerifyPickupCommandHandler) Handle(ctx context.Context, cmd VerifyPickupCommand) error {
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
	if aggregate.HaulerID() == nil || !aggregate.HaulerID().IsEqual(cmd.Actor().ID()) {
		return errs.NewUnauthorizedError(cmd.Actor().Role().String(),
			cmd.Actor().ID().String(), "order is hauled by another hauler")
	}
	if aggregate.Status() != order.InTransit {
		return errs.NewInvalidTransitionError(aggregate.Status().String(), order.InTransit.String())
	}

	funds, err := uow.EscrowRepository().GetForOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if _, err = funds.ReleasePickup(cmd.RawToken(), cmd.Location(), now); err != nil {
		return err
	}
	aggregate.ScheduleDeadline(h.policy.DeadlineFrom(now))

	if err = uow.EscrowRepository().Update(ctx, funds); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	event, err := recordTransition(ctx, uow.TransitionLogRepository(),
		cmd.Actor(), aggregate.ID(), order.InTransit, order.InTransit,
		order.EventPickupVerified, now)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishAll(h.publisher, []ports.TransitionEvent{event})
	return nil
}
