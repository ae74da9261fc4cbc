package commands

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/guard"
)

var ErrWithdrawBidCommandIsNotConstructed = errors.New(
	"WithdrawBidCommand must be created via NewWithdrawBidCommand constructor",
)

// WithdrawBidCommand represents a buyer pulling back their own pending bid.
type WithdrawBidCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID
	bidID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewWithdrawBidCommand creates a command to withdraw a bid.
func NewWithdrawBidCommand(actor kernel.Actor, orderID, bidID kernel.UUID) (WithdrawBidCommand, error) {
	withdrawCommand := WithdrawBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		withdrawCommand.setActor(actor),
		withdrawCommand.setOrderID(orderID),
		withdrawCommand.setBidID(bidID),
	); err != nil {
		return WithdrawBidCommand{}, err
	}

	return withdrawCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c WithdrawBidCommand) Validate() error {
	return c.guard.Validate(ErrWithdrawBidCommandIsNotConstructed)
}

// Actor returns the withdrawing buyer.
func (c WithdrawBidCommand) Actor() kernel.Actor {
	return c.actor
}

// OrderID returns the order the bid targets.
func (c WithdrawBidCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BidID returns the bid being withdrawn.
func (c WithdrawBidCommand) BidID() kernel.UUID {
	return c.bidID
}

func (c *WithdrawBidCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *WithdrawBidCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *WithdrawBidCommand) setBidID(bidID kernel.UUID) error {
	if err := bidID.Validate(); err != nil {
		return err
	}

	c.bidID = bidID
	return nil
}
