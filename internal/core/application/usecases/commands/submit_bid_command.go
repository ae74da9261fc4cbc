package commands

import (
	"errors"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/guard"
)

var ErrSubmitBidCommandIsNotConstructed = errors.New(
	"SubmitBidCommand must be created via NewSubmitBidCommand constructor",
)

// SubmitBidCommand represents a buyer's offer against a listed order.
type SubmitBidCommand struct { //nolint:recvcheck //using for validation
	actor      kernel.Actor
	bidID      kernel.UUID
	orderID    kernel.UUID
	pricePerKg kernel.Money
	volume     kernel.Volume
	message    string
	expiresAt  *time.Time

	guard guard.ConstructorGuard
}

// NewSubmitBidCommand creates a command to place a bid.
func NewSubmitBidCommand(
	actor kernel.Actor,
	bidID kernel.UUID,
	orderID kernel.UUID,
	pricePerKg kernel.Money,
	volume kernel.Volume,
	message string,
	expiresAt *time.Time,
) (SubmitBidCommand, error) {
	bidCommand := SubmitBidCommand{
		message:   message,
		expiresAt: expiresAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		bidCommand.setActor(actor),
		bidCommand.setBidID(bidID),
		bidCommand.setOrderID(orderID),
		bidCommand.setPricePerKg(pricePerKg),
		bidCommand.setVolume(volume),
	); err != nil {
		return SubmitBidCommand{}, err
	}

	return bidCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitBidCommand) Validate() error {
	return c.guard.Validate(ErrSubmitBidCommandIsNotConstructed)
}

// Actor returns the bidding buyer.
func (c SubmitBidCommand) Actor() kernel.Actor {
	return c.actor
}

// BidID returns the unique identifier for the new bid.
func (c SubmitBidCommand) BidID() kernel.UUID {
	return c.bidID
}

// OrderID returns the order being bid on.
func (c SubmitBidCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PricePerKg returns the offered unit price.
func (c SubmitBidCommand) PricePerKg() kernel.Money {
	return c.pricePerKg
}

// Volume returns the requested volume.
func (c SubmitBidCommand) Volume() kernel.Volume {
	return c.volume
}

// Message returns the buyer's optional message.
func (c SubmitBidCommand) Message() string {
	return c.message
}

// ExpiresAt returns the bid's optional expiry.
func (c SubmitBidCommand) ExpiresAt() *time.Time {
	return c.expiresAt
}

func (c *SubmitBidCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *SubmitBidCommand) setBidID(bidID kernel.UUID) error {
	if err := bidID.Validate(); err != nil {
		return err
	}

	c.bidID = bidID
	return nil
}

func (c *SubmitBidCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitBidCommand) setPricePerKg(pricePerKg kernel.Money) error {
	if pricePerKg.IsZero() {
		return errors.New("price per kg must be greater than 0")
	}

	c.pricePerKg = pricePerKg
	return nil
}

func (c *SubmitBidCommand) setVolume(volume kernel.Volume) error {
	if volume.IsZero() {
		return errors.New("volume must be greater than 0")
	}

	c.volume = volume
	return nil
}
