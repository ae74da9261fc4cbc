package commands

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/guard"
)

var ErrAcceptAssignmentCommandIsNotConstructed = errors.New(
	"AcceptAssignmentCommand must be created via NewAcceptAssignmentCommand constructor",
)

// AcceptAssignmentCommand represents a hauler committing to an offered haul,
// which puts the order in transit.
type AcceptAssignmentCommand struct { //nolint:recvcheck //using for validation
	actor        kernel.Actor
	orderID      kernel.UUID
	assignmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptAssignmentCommand creates a command to accept an assignment.
func NewAcceptAssignmentCommand(actor kernel.Actor, orderID, assignmentID kernel.UUID) (AcceptAssignmentCommand, error) {
	acceptCommand := AcceptAssignmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		acceptCommand.setActor(actor),
		acceptCommand.setOrderID(orderID),
		acceptCommand.setAssignmentID(assignmentID),
	); err != nil {
		return AcceptAssignmentCommand{}, err
	}

	return acceptCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrAcceptAssignmentCommandIsNotConstructed)
}

// Actor returns the accepting hauler.
func (c AcceptAssignmentCommand) Actor() kernel.Actor {
	return c.actor
}

// OrderID returns the order being hauled.
func (c AcceptAssignmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AssignmentID returns the assignment being accepted.
func (c AcceptAssignmentCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

func (c *AcceptAssignmentCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *AcceptAssignmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AcceptAssignmentCommand) setAssignmentID(assignmentID kernel.UUID) error {
	if err := assignmentID.Validate(); err != nil {
		return err
	}

	c.assignmentID = assignmentID
	return nil
}
