package commands

import (
	"context"
	"time"

	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
	"agromarket/internal/pkg/errs"
)

// WithdrawBidCommandHandler handles bid withdrawal by its buyer. When the
// last pending bid closes, the order returns to Listed.
type WithdrawBidCommandHandler struct {
	uowFactory BidUoWFactory
	publisher  ports.EventPublisher
}

// NewWithdrawBidCommandHandler creates a handler for bid withdrawal.
func NewWithdrawBidCommandHandler(
	uowFactory BidUoWFactory,
	publisher ports.EventPublisher,
) WithdrawBidCommandHandler {
	return WithdrawBidCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the withdrawal command.
func (h *WithdrawBidCommandHandler) Handle(ctx context.Context, cmd WithdrawBidCommand) error {
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

	entity, err := uow.BidRepository().Get(ctx, cmd.BidID())
	if err != nil {
		return err
	}
	if !entity.BuyerID().IsEqual(cmd.Actor().ID()) {
		return errs.NewUnauthorizedError(cmd.Actor().Role().String(),
			cmd.Actor().ID().String(), "bid belongs to another buyer")
	}
	if !entity.OrderID().IsEqual(cmd.OrderID()) {
		return errs.NewObjectNotFoundError("bidID", cmd.BidID().String())
	}

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = entity.Withdraw(now); err != nil {
		return err
	}
	if err = uow.BidRepository().Update(ctx, entity); err != nil {
		return err
	}

	event, err := recordTransition(ctx, uow.TransitionLogRepository(),
		cmd.Actor(), aggregate.ID(), aggregate.Status(), aggregate.Status(),
		order.EventBidWithdrawn, now)
	if err != nil {
		return err
	}
	events := []ports.TransitionEvent{event}

	listingEvent, err := returnToListingIfIdle(ctx, uow, cmd.Actor(), aggregate, entity.ID(), now)
	if err != nil {
		return err
	}
	if listingEvent != nil {
		events = append(events, *listingEvent)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishAll(h.publisher, events)
	return nil
}
