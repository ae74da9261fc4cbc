package commands

import (
	"context"
	"time"

	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
	"agromarket/internal/pkg/errs"
)

// RejectBidCommandHandler handles explicit bid rejection by the order's
// farmer. When the last pending bid closes, the order returns to Listed.
type RejectBidCommandHandler struct {
	uowFactory BidUoWFactory
	publisher  ports.EventPublisher
}

// NewRejectBidCommandHandler creates a handler for bid rejection.
func NewRejectBidCommandHandler(
	uowFactory BidUoWFactory,
	publisher ports.EventPublisher,
) RejectBidCommandHandler {
	return RejectBidCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the rejection command.
func (h *RejectBidCommandHandler) Handle(ctx context.Context, cmd RejectBidCommand) error {
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
	if !aggregate.FarmerID().IsEqual(cmd.Actor().ID()) {
		return errs.NewUnauthorizedError(cmd.Actor().Role().String(),
			cmd.Actor().ID().String(), "order belongs to another farmer")
	}

	entity, err := uow.BidRepository().Get(ctx, cmd.BidID())
	if err != nil {
		return err
	}
	if !entity.OrderID().IsEqual(cmd.OrderID()) {
		return errs.NewObjectNotFoundError("bidID", cmd.BidID().String())
	}

	if err = entity.Reject(now); err != nil {
		return err
	}
	if err = uow.BidRepository().Update(ctx, entity); err != nil {
		return err
	}

	event, err := recordTransition(ctx, uow.TransitionLogRepository(),
		cmd.Actor(), aggregate.ID(), aggregate.Status(), aggregate.Status(),
		order.EventBidRejected, now)
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
