package commands

import (
	"context"
	"time"

	"agromarket/internal/core/domain/model/escrow"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
	"agromarket/internal/pkg/errs"
)

// AcceptBidCommandHandler handles bid acceptance: the winning bid locks the
// order, sibling bids are auto-rejected, and escrow is funded with the bid's
// total. A second acceptance on an already-locked order fails the status
// guard inside Order.Lock, which is how the at-most-one-accepted-bid
// invariant holds.
type AcceptBidCommandHandler struct {
	uowFactory DealUoWFactory
	publisher  ports.EventPublisher
	policy     Policy
}

// NewAcceptBidCommandHandler creates a handler for bid acceptance.
func NewAcceptBidCommandHandler(
	uowFactory DealUoWFactory,
	publisher ports.EventPublisher,
	policy Policy,
) AcceptBidCommandHandler {
	return AcceptBidCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		policy:     policy,
	}
}

// Handle processes the acceptance command. On success the result carries the
// raw verification tokens, returned exactly once.
func (h *AcceptBidCommandHandler) Handle(ctx context.Context, cmd AcceptBidCommand) (AcceptBidResult, error) {
	if err := cmd.Validate(); err != nil {
		return AcceptBidResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AcceptBidResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return AcceptBidResult{}, err
	}
	if !aggregate.FarmerID().IsEqual(cmd.Actor().ID()) {
		return AcceptBidResult{}, errs.NewUnauthorizedError(cmd.Actor().Role().String(),
			cmd.Actor().ID().String(), "order belongs to another farmer")
	}

	winner, err := uow.BidRepository().Get(ctx, cmd.BidID())
	if err != nil {
		return AcceptBidResult{}, err
	}
	if !winner.OrderID().IsEqual(cmd.OrderID()) {
		return AcceptBidResult{}, errs.NewObjectNotFoundError("bidID", cmd.BidID().String())
	}

	if err = winner.Accept(now); err != nil {
		return AcceptBidResult{}, err
	}

	if err = aggregate.Lock(winner.BuyerID(), winner.PricePerKg(), winner.Volume(), now); err != nil {
		return AcceptBidResult{}, err
	}
	aggregate.ScheduleDeadline(h.policy.DeadlineFrom(now))

	siblings, err := uow.BidRepository().GetAllPendingForOrder(ctx, cmd.OrderID())
	if err != nil {
		return AcceptBidResult{}, err
	}
	for _, sibling := range siblings {
		if sibling.ID().IsEqual(winner.ID()) {
			continue
		}
		if err = sibling.Reject(now); err != nil {
			return AcceptBidResult{}, err
		}
		if err = uow.BidRepository().Update(ctx, sibling); err != nil {
			return AcceptBidResult{}, err
		}
	}

	funds, tokens, err := escrow.NewEscrow(
		kernel.NewUUID(), aggregate.ID(), winner.BuyerID(),
		winner.Total(), h.policy.PickupReleasePercent(), now,
	)
	if err != nil {
		return AcceptBidResult{}, err
	}

	if err = uow.BidRepository().Update(ctx, winner); err != nil {
		return AcceptBidResult{}, err
	}
	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return AcceptBidResult{}, err
	}
	if err = uow.EscrowRepository().Add(ctx, funds); err != nil {
		return AcceptBidResult{}, err
	}

	event, err := recordTransition(ctx, uow.TransitionLogRepository(),
		cmd.Actor(), aggregate.ID(), order.Negotiating, order.LockedPendingLogistics,
		order.EventBidAccepted, now)
	if err != nil {
		return AcceptBidResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AcceptBidResult{}, err
	}

	publishAll(h.publisher, []ports.TransitionEvent{event})

	return AcceptBidResult{
		EscrowID: funds.ID(),
		Total:    funds.Total(),
		Tokens:   tokens,
	}, nil
}
