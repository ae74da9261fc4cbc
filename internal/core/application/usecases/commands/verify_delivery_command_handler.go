package commands

import (
	"context"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
	"agromarket/internal/pkg/errs"
)

// VerifyDeliveryCommandHandler handles delivery verification. A valid,
// unused delivery token (legal only after pickup was verified) releases the
// remaining escrow; with the full amount released, settlement finalizes in
// the same commit and the order reaches Settled.
type VerifyDeliveryCommandHandler struct {
	uowFactory VerificationUoWFactory
	publisher  ports.EventPublisher
}

// NewVerifyDeliveryCommandHandler creates a handler for delivery verification.
func NewVerifyDeliveryCommandHandler(
	uowFactory VerificationUoWFactory,
	publisher ports.EventPublisher,
) VerifyDeliveryCommandHandler {
	return VerifyDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the delivery verification command.
func (h *VerifyDeliveryCommandHandler) Handle(ctx context.Context, cmd VerifyDeliveryCommand) error {
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

	if _, err = funds.ReleaseDelivery(cmd.RawToken(), cmd.Location(), now); err != nil {
		return err
	}

	if err = aggregate.CompleteDelivery(now); err != nil {
		return err
	}

	deliveryEvent, err := recordTransition(ctx, uow.TransitionLogRepository(),
		cmd.Actor(), aggregate.ID(), order.InTransit, order.CompletedPendingDeliveryRelease,
		order.EventDeliveryVerified, now)
	if err != nil {
		return err
	}

	// the full amount is released, so settlement finalizes in the same
	// commit
	if err = aggregate.Settle(now); err != nil {
		return err
	}

	settleEvent, err := recordTransition(ctx, uow.TransitionLogRepository(),
		kernel.NewSystemActor(), aggregate.ID(),
		order.CompletedPendingDeliveryRelease, order.Settled,
		order.EventSettlementFinalized, now)
	if err != nil {
		return err
	}

	haul, err := uow.AssignmentRepository().GetActiveForOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = haul.Complete(now); err != nil {
		return err
	}

	if err = uow.EscrowRepository().Update(ctx, funds); err != nil {
		return err
	}
	if err = uow.AssignmentRepository().Update(ctx, haul); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishAll(h.publisher, []ports.TransitionEvent{deliveryEvent, settleEvent})
	return nil
}
