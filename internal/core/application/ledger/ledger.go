// Package ledger provides the single entry point for all state-changing
// marketplace operations. It enforces the role table in front of every
// command and serializes commands per order, so each order observes a
// strictly sequential history no matter how many actors race against it.
package ledger

import (
	"context"
	"sync"

	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/services"
)

// Handlers bundles the command handlers the ledger dispatches to.
type Handlers struct {
	ListOrder          commands.ListOrderCommandHandler
	SubmitBid          commands.SubmitBidCommandHandler
	WithdrawBid        commands.WithdrawBidCommandHandler
	RejectBid          commands.RejectBidCommandHandler
	AcceptBid          commands.AcceptBidCommandHandler
	RequestHaulerMatch commands.RequestHaulerMatchCommandHandler
	AcceptAssignment   commands.AcceptAssignmentCommandHandler
	DeclineAssignment  commands.DeclineAssignmentCommandHandler
	VerifyPickup       commands.VerifyPickupCommandHandler
	VerifyDelivery     commands.VerifyDeliveryCommandHandler
	CancelOrder        commands.CancelOrderCommandHandler
}

// Ledger serializes commands per order and authorizes each one against the
// access gate before dispatch. Losing a race never corrupts state: the
// loser runs after the winner and fails on the state machine's own guards.
type Ledger struct {
	gate     services.AccessGate
	handlers Handlers

	mu    sync.Mutex
	locks map[kernel.UUID]*sync.Mutex
}

// NewLedger creates the marketplace command facade.
func NewLedger(gate services.AccessGate, handlers Handlers) *Ledger {
	return &Ledger{
		gate:     gate,
		handlers: handlers,
		locks:    make(map[kernel.UUID]*sync.Mutex),
	}
}

// lockFor returns the mutex serializing one order's commands. Locks are
// kept for the life of the process; the per-order footprint is one mutex.
func (l *Ledger) lockFor(orderID kernel.UUID) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[orderID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[orderID] = lock
	}
	return lock
}

func (l *Ledger) dispatch(
	actor kernel.Actor,
	action services.Action,
	orderID kernel.UUID,
	handle func() error,
) error {
	if err := l.gate.Authorize(actor, action); err != nil {
		return err
	}

	lock := l.lockFor(orderID)
	lock.Lock()
	defer lock.Unlock()

	return handle()
}

// ListOrder publishes a new crop batch to the market.
func (l *Ledger) ListOrder(ctx context.Context, cmd commands.ListOrderCommand) error {
	return l.dispatch(cmd.Actor(), services.ActionListOrder, cmd.OrderID(), func() error {
		return l.handlers.ListOrder.Handle(ctx, cmd)
	})
}

// SubmitBid places a buyer's bid on an order.
func (l *Ledger) SubmitBid(ctx context.Context, cmd commands.SubmitBidCommand) error {
	return l.dispatch(cmd.Actor(), services.ActionSubmitBid, cmd.OrderID(), func() error {
		return l.handlers.SubmitBid.Handle(ctx, cmd)
	})
}

// WithdrawBid retracts the buyer's own pending bid.
func (l *Ledger) WithdrawBid(ctx context.Context, cmd commands.WithdrawBidCommand) error {
	return l.dispatch(cmd.Actor(), services.ActionWithdrawBid, cmd.OrderID(), func() error {
		return l.handlers.WithdrawBid.Handle(ctx, cmd)
	})
}

// RejectBid declines a pending bid on the farmer's order.
func (l *Ledger) RejectBid(ctx context.Context, cmd commands.RejectBidCommand) error {
	return l.dispatch(cmd.Actor(), services.ActionRejectBid, cmd.OrderID(), func() error {
		return l.handlers.RejectBid.Handle(ctx, cmd)
	})
}

// AcceptBid accepts a bid, locks the traded volume and funds escrow. The
// returned raw verification tokens exist only in this response.
func (l *Ledger) AcceptBid(ctx context.Context, cmd commands.AcceptBidCommand) (commands.AcceptBidResult, error) {
	var result commands.AcceptBidResult
	err := l.dispatch(cmd.Actor(), services.ActionAcceptBid, cmd.OrderID(), func() error {
		var handleErr error
		result, handleErr = l.handlers.AcceptBid.Handle(ctx, cmd)
		return handleErr
	})
	return result, err
}

// RequestHaulerMatch starts the logistics search for a locked order.
func (l *Ledger) RequestHaulerMatch(ctx context.Context, cmd commands.RequestHaulerMatchCommand) error {
	return l.dispatch(cmd.Actor(), services.ActionRequestHaulerMatch, cmd.OrderID(), func() error {
		return l.handlers.RequestHaulerMatch.Handle(ctx, cmd)
	})
}

// AcceptAssignment takes on an offered haul. Under concurrent accepts the
// serialized loser receives a Conflict.
func (l *Ledger) AcceptAssignment(ctx context.Context, cmd commands.AcceptAssignmentCommand) error {
	return l.dispatch(cmd.Actor(), services.ActionAcceptAssignment, cmd.OrderID(), func() error {
		return l.handlers.AcceptAssignment.Handle(ctx, cmd)
	})
}

// DeclineAssignment turns down an offered haul.
func (l *Ledger) DeclineAssignment(ctx context.Context, cmd commands.DeclineAssignmentCommand) error {
	return l.dispatch(cmd.Actor(), services.ActionDeclineAssignment, cmd.OrderID(), func() error {
		return l.handlers.DeclineAssignment.Handle(ctx, cmd)
	})
}

// VerifyPickup presents the pickup token at the farm gate.
func (l *Ledger) VerifyPickup(ctx context.Context, cmd commands.VerifyPickupCommand) error {
	return l.dispatch(cmd.Actor(), services.ActionVerifyPickup, cmd.OrderID(), func() error {
		return l.handlers.VerifyPickup.Handle(ctx, cmd)
	})
}

// VerifyDelivery presents the delivery token at the buyer's site.
func (l *Ledger) VerifyDelivery(ctx context.Context, cmd commands.VerifyDeliveryCommand) error {
	return l.dispatch(cmd.Actor(), services.ActionVerifyDelivery, cmd.OrderID(), func() error {
		return l.handlers.VerifyDelivery.Handle(ctx, cmd)
	})
}

// CancelOrder withdraws an order, by its farmer or by the deadline monitor.
func (l *Ledger) CancelOrder(ctx context.Context, cmd commands.CancelOrderCommand) error {
	return l.dispatch(cmd.Actor(), services.ActionCancelOrder, cmd.OrderID(), func() error {
		return l.handlers.CancelOrder.Handle(ctx, cmd)
	})
}

// AuthorizeSubscribe checks whether the actor may open a live feed of an
// order's transitions. Reads are not serialized.
func (l *Ledger) AuthorizeSubscribe(actor kernel.Actor) error {
	return l.gate.Authorize(actor, services.ActionSubscribe)
}
