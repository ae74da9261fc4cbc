package commands

import (
	"context"
	"errors"
	"time"

	"agromarket/internal/core/domain/model/assignment"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
	"agromarket/internal/pkg/errs"
)

// CancelOrderCommandHandler handles cancellation from any non-terminal
// state: pending bids are rejected, an open assignment offer is declined,
// and the locked escrow remainder is refunded, all in one transaction.
//
// The deadline monitor runs this handler as the system actor. A timer firing
// after the order already reached a terminal state is a silent no-op.
type CancelOrderCommandHandler struct {
	uowFactory MarketUoWFactory
	publisher  ports.EventPublisher
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory MarketUoWFactory,
	publisher ports.EventPublisher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	if aggregate.Status().IsTerminal() {
		if cmd.Actor().IsSystem() {
			// late timer fire, nothing to do
			return nil
		}
		return errs.NewInvalidTransitionError(aggregate.Status().String(), order.Cancelled.String())
	}

	if !cmd.Actor().IsSystem() && !aggregate.FarmerID().IsEqual(cmd.Actor().ID()) {
		return errs.NewUnauthorizedError(cmd.Actor().Role().String(),
			cmd.Actor().ID().String(), "order belongs to another farmer")
	}

	statusBefore := aggregate.Status()
	if err = aggregate.Cancel(now); err != nil {
		return err
	}

	pending, err := uow.BidRepository().GetAllPendingForOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	for _, entity := range pending {
		if err = entity.Reject(now); err != nil {
			return err
		}
		if err = uow.BidRepository().Update(ctx, entity); err != nil {
			return err
		}
	}

	if err = h.closeAssignment(ctx, uow, cmd, now); err != nil {
		return err
	}
	if err = h.refundEscrow(ctx, uow, cmd, now); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	eventName := order.EventOrderCancelled
	if cmd.Actor().IsSystem() {
		eventName = order.EventDeadlineCancellation
	}

	event, err := recordTransition(ctx, uow.TransitionLogRepository(),
		cmd.Actor(), aggregate.ID(), statusBefore, order.Cancelled,
		eventName, now)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishAll(h.publisher, []ports.TransitionEvent{event})
	return nil
}

// closeAssignment declines an open assignment offer if one exists. An
// already-accepted assignment stays in history untouched.
func (h *CancelOrderCommandHandler) closeAssignment(
	ctx context.Context, uow MarketUoW, cmd CancelOrderCommand, now time.Time,
) error {
	haul, err := uow.AssignmentRepository().GetActiveForOrder(ctx, cmd.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}

	if haul.Status() != assignment.Offered {
		return nil
	}
	if err = haul.Decline(now); err != nil {
		return err
	}
	return uow.AssignmentRepository().Update(ctx, haul)
}

// refundEscrow returns the locked remainder to the buyer if escrow was ever
// funded and is not already terminal.
func (h *CancelOrderCommandHandler) refundEscrow(
	ctx context.Context, uow MarketUoW, cmd CancelOrderCommand, now time.Time,
) error {
	funds, err := uow.EscrowRepository().GetForOrder(ctx, cmd.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}

	if funds.Status().IsTerminal() {
		return nil
	}
	if _, err = funds.Refund(now); err != nil {
		return err
	}
	return uow.EscrowRepository().Update(ctx, funds)
}
