package commands

import (
	"errors"

	"agromarket/internal/core/domain/model/escrow"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/guard"
)

var ErrAcceptBidCommandIsNotConstructed = errors.New(
	"AcceptBidCommand must be created via NewAcceptBidCommand constructor",
)

// AcceptBidCommand represents a farmer taking a pending bid. Acceptance
// locks the order, auto-rejects every sibling bid, and funds escrow with the
// bid's total in a single transaction.
type AcceptBidCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID
	bidID   kernel.UUID

	guard guard.ConstructorGuard
}

// AcceptBidResult carries the outcome of a successful acceptance. The raw
// verification tokens appear here and nowhere else: the caller must hand
// them to the hauler and buyer, because only digests are stored.
type AcceptBidResult struct {
	EscrowID kernel.UUID
	Total    kernel.Money
	Tokens   escrow.RawTokens
}

// NewAcceptBidCommand creates a command to accept a bid.
func NewAcceptBidCommand(actor kernel.Actor, orderID, bidID kernel.UUID) (AcceptBidCommand, error) {
	acceptCommand := AcceptBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		acceptCommand.setActor(actor),
		acceptCommand.setOrderID(orderID),
		acceptCommand.setBidID(bidID),
	); err != nil {
		return AcceptBidCommand{}, err
	}

	return acceptCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptBidCommand) Validate() error {
	return c.guard.Validate(ErrAcceptBidCommandIsNotConstructed)
}

// Actor returns the deciding farmer.
func (c AcceptBidCommand) Actor() kernel.Actor {
	return c.actor
}

// OrderID returns the order being locked.
func (c AcceptBidCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BidID returns the winning bid.
func (c AcceptBidCommand) BidID() kernel.UUID {
	return c.bidID
}

func (c *AcceptBidCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *AcceptBidCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AcceptBidCommand) setBidID(bidID kernel.UUID) error {
	if err := bidID.Validate(); err != nil {
		return err
	}

	c.bidID = bidID
	return nil
}
