package commands

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/guard"
)

var ErrVerifyDeliveryCommandIsNotConstructed = errors.New(
	"VerifyDeliveryCommand must be created via NewVerifyDeliveryCommand constructor",
)

// VerifyDeliveryCommand represents the hauler presenting the delivery token
// at the buyer's site. A valid token completes delivery, releases the
// remaining escrow, and finalizes settlement.
type VerifyDeliveryCommand struct { //nolint:recvcheck //using for validation
	actor    kernel.Actor
	orderID  kernel.UUID
	rawToken string
	location *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewVerifyDeliveryCommand creates a command to verify delivery.
func NewVerifyDeliveryCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	rawToken string,
	location *kernel.GeoPoint,
) (VerifyDeliveryCommand, error) {
	verifyCommand := VerifyDeliveryCommand{
		location: location,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		verifyCommand.setActor(actor),
		verifyCommand.setOrderID(orderID),
		verifyCommand.setRawToken(rawToken),
	); err != nil {
		return VerifyDeliveryCommand{}, err
	}

	return verifyCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrVerifyDeliveryCommandIsNotConstructed)
}

// Actor returns the presenting hauler.
func (c VerifyDeliveryCommand) Actor() kernel.Actor {
	return c.actor
}

// OrderID returns the order being delivered.
func (c VerifyDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RawToken returns the presented plaintext token.
func (c VerifyDeliveryCommand) RawToken() string {
	return c.rawToken
}

// Location returns where the token was presented, or nil.
func (c VerifyDeliveryCommand) Location() *kernel.GeoPoint {
	return c.location
}

func (c *VerifyDeliveryCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *VerifyDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *VerifyDeliveryCommand) setRawToken(rawToken string) error {
	if rawToken == "" {
		return ErrTokenIsRequired
	}

	c.rawToken = rawToken
	return nil
}
