package commands

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/guard"
)

var ErrDeclineAssignmentCommandIsNotConstructed = errors.New(
	"DeclineAssignmentCommand must be created via NewDeclineAssignmentCommand constructor",
)

// DeclineAssignmentCommand represents a hauler turning an offered haul down.
// The order stays in logistics search for the next match.
type DeclineAssignmentCommand struct { //nolint:recvcheck //using for validation
	actor        kernel.Actor
	orderID      kernel.UUID
	assignmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeclineAssignmentCommand creates a command to decline an assignment.
func NewDeclineAssignmentCommand(actor kernel.Actor, orderID, assignmentID kernel.UUID) (DeclineAssignmentCommand, error) {
	declineCommand := DeclineAssignmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		declineCommand.setActor(actor),
		declineCommand.setOrderID(orderID),
		declineCommand.setAssignmentID(assignmentID),
	); err != nil {
		return DeclineAssignmentCommand{}, err
	}

	return declineCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c DeclineAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrDeclineAssignmentCommandIsNotConstructed)
}

// Actor returns the declining hauler.
func (c DeclineAssignmentCommand) Actor() kernel.Actor {
	return c.actor
}

// OrderID returns the order the offer targets.
func (c DeclineAssignmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AssignmentID returns the assignment being declined.
func (c DeclineAssignmentCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

func (c *DeclineAssignmentCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *DeclineAssignmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *DeclineAssignmentCommand) setAssignmentID(assignmentID kernel.UUID) error {
	if err := assignmentID.Validate(); err != nil {
		return err
	}

	c.assignmentID = assignmentID
	return nil
}
