package commands

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/guard"
)

var ErrRejectBidCommandIsNotConstructed = errors.New(
	"RejectBidCommand must be created via NewRejectBidCommand constructor",
)

// RejectBidCommand represents a farmer declining a pending bid on their own
// order.
type RejectBidCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID
	bidID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewRejectBidCommand creates a command to reject a bid.
func NewRejectBidCommand(actor kernel.Actor, orderID, bidID kernel.UUID) (RejectBidCommand, error) {
	rejectCommand := RejectBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		rejectCommand.setActor(actor),
		rejectCommand.setOrderID(orderID),
		rejectCommand.setBidID(bidID),
	); err != nil {
		return RejectBidCommand{}, err
	}

	return rejectCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectBidCommand) Validate() error {
	return c.guard.Validate(ErrRejectBidCommandIsNotConstructed)
}

// Actor returns the deciding farmer.
func (c RejectBidCommand) Actor() kernel.Actor {
	return c.actor
}

// OrderID returns the order the bid targets.
func (c RejectBidCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BidID returns the bid being rejected.
func (c RejectBidCommand) BidID() kernel.UUID {
	return c.bidID
}

func (c *RejectBidCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *RejectBidCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RejectBidCommand) setBidID(bidID kernel.UUID) error {
	if err := bidID.Validate(); err != nil {
		return err
	}

	c.bidID = bidID
	return nil
}
