package commands

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/guard"
)

var ErrRequestHaulerMatchCommandIsNotConstructed = errors.New(
	"RequestHaulerMatchCommand must be created via NewRequestHaulerMatchCommand constructor",
)

// RequestHaulerMatchCommand asks the matching service for a hauler for a
// locked order, moving it into logistics search with an offered assignment.
type RequestHaulerMatchCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRequestHaulerMatchCommand creates a command to request hauler matching.
func NewRequestHaulerMatchCommand(actor kernel.Actor, orderID kernel.UUID) (RequestHaulerMatchCommand, error) {
	matchCommand := RequestHaulerMatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		matchCommand.setActor(actor),
		matchCommand.setOrderID(orderID),
	); err != nil {
		return RequestHaulerMatchCommand{}, err
	}

	return matchCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestHaulerMatchCommand) Validate() error {
	return c.guard.Validate(ErrRequestHaulerMatchCommandIsNotConstructed)
}

// Actor returns the requesting actor: the owning farmer or the system.
func (c RequestHaulerMatchCommand) Actor() kernel.Actor {
	return c.actor
}

// OrderID returns the order needing a hauler.
func (c RequestHaulerMatchCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *RequestHaulerMatchCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *RequestHaulerMatchCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
