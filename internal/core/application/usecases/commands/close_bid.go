package commands

import (
	"context"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
)

// returnToListingIfIdle moves a Negotiating order back to Listed when the
// last pending bid has just closed. closedBidID is excluded from the pending
// check because its status change may not be visible to the query inside the
// open transaction.
func returnToListingIfIdle(
	ctx context.Context,
	uow BidUoW,
	actor kernel.Actor,
	aggregate *order.Order,
	closedBidID kernel.UUID,
	now time.Time,
) (*ports.TransitionEvent, error) {
	if aggregate.Status() != order.Negotiating {
		return nil, nil
	}

	pending, err := uow.BidRepository().GetAllPendingForOrder(ctx, aggregate.ID())
	if err != nil {
		return nil, err
	}

	for _, entity := range pending {
		if !entity.ID().IsEqual(closedBidID) {
			return nil, nil
		}
	}

	if err = aggregate.ReturnToListing(now); err != nil {
		return nil, err
	}
	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return nil, err
	}

	event, err := recordTransition(ctx, uow.TransitionLogRepository(),
		actor, aggregate.ID(), order.Negotiating, order.Listed,
		order.EventReturnedToListing, now)
	if err != nil {
		return nil, err
	}

	return &event, nil
}
