package commands

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/guard"
)

var (
	ErrVerifyPickupCommandIsNotConstructed = errors.New(
		"VerifyPickupCommand must be created via NewVerifyPickupCommand constructor",
	)
	ErrTokenIsRequired = errors.New("verification token is required")
)

// VerifyPickupCommand represents the hauler presenting the pickup token at
// the farm, unlocking the first escrow tranche.
type VerifyPickupCommand struct { //nolint:recvcheck //using for validation
	actor    kernel.Actor
	orderID  kernel.UUID
	rawToken string
	location *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewVerifyPickupCommand creates a command to verify pickup. The location is
// where the token was presented; it is recorded, never validated.
func NewVerifyPickupCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	rawToken string,
	location *kernel.GeoPoint,
) (VerifyPickupCommand, error) {
	verifyCommand := VerifyPickupCommand{
		location: location,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		verifyCommand.setActor(actor),
		verifyCommand.setOrderID(orderID),
		verifyCommand.setRawToken(rawToken),
	); err != nil {
		return VerifyPickupCommand{}, err
	}

	return verifyCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyPickupCommand) Validate() error {
	return c.guard.Validate(ErrVerifyPickupCommandIsNotConstructed)
}

// Actor returns the presenting hauler.
func (c VerifyPickupCommand) Actor() kernel.Actor {
	return c.actor
}

// OrderID returns the order being picked up.
func (c VerifyPickupCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RawToken returns the presented plaintext token.
func (c VerifyPickupCommand) RawToken() string {
	return c.rawToken
}

// Location returns where the token was presented, or nil.
func (c VerifyPickupCommand) Location() *kernel.GeoPoint {
	return c.location
}

func (c *VerifyPickupCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *VerifyPickupCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *VerifyPickupCommand) setRawToken(rawToken string) error {
	if rawToken == "" {
		return ErrTokenIsRequired
	}

	c.rawToken = rawToken
	return nil
}
