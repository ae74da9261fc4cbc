package commands

import (
	"context"
	"time"

	"agromarket/internal/core/domain/model/bid"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
)

// SubmitBidCommandHandler handles bid submission. Moves a Listed order into
// Negotiating (further bids keep it there), enforces the capacity guard, and
// reschedules the progress deadline.
type SubmitBidCommandHandler struct {
	uowFactory BidUoWFactory
	publisher  ports.EventPublisher
	policy     Policy
}

// NewSubmitBidCommandHandler creates a handler for bid submission.
func NewSubmitBidCommandHandler(
	uowFactory BidUoWFactory,
	publisher ports.EventPublisher,
	policy Policy,
) SubmitBidCommandHandler {
	return SubmitBidCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		policy:     policy,
	}
}

// Handle processes the bid submission command.
func (h *SubmitBidCommandHandler) Handle(ctx context.Context, cmd SubmitBidCommand) error {
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

	statusBefore := aggregate.Status()
	if err = aggregate.ReceiveBid(cmd.Volume(), now); err != nil {
		return err
	}
	aggregate.ScheduleDeadline(h.policy.DeadlineFrom(now))

	entity, err := bid.NewBid(
		cmd.BidID(), cmd.OrderID(), cmd.Actor().ID(),
		cmd.PricePerKg(), cmd.Volume(), cmd.Message(), cmd.ExpiresAt(),
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.BidRepository().Add(ctx, entity); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	event, err := recordTransition(ctx, uow.TransitionLogRepository(),
		cmd.Actor(), aggregate.ID(), statusBefore, aggregate.Status(),
		order.EventBidSubmitted, now)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishAll(h.publisher, []ports.TransitionEvent{event})
	return nil
}
