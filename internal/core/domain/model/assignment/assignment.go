// Package assignment provides the LogisticsAssignment entity: a hauler's
// offer to move a locked order from farm to buyer. Like bids, assignments
// reference their order by identifier only.
package assignment

import (
	"errors"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"
)

// ErrAssignmentIsNotConstructed is returned when an Assignment instance was
// not created through NewAssignment or RestoreAssignment.
var ErrAssignmentIsNotConstructed = errors.New(
	"Assignment must be created via NewAssignment or RestoreAssignment")

// Assignment is an offer for a specific hauler to carry a specific order for
// a fee. At most one assignment per order is ever in a non-terminal status.
type Assignment struct {
	id       kernel.UUID
	orderID  kernel.UUID
	haulerID kernel.UUID

	fee                 kernel.Money
	estimatedDistanceKm float64

	status Status

	offeredAt  time.Time
	acceptedAt *time.Time
	updatedAt  time.Time

	isConstructed bool
}

// NewAssignment creates an offered Assignment with validation.
func NewAssignment(
	id kernel.UUID,
	orderID kernel.UUID,
	haulerID kernel.UUID,
	fee kernel.Money,
	estimatedDistanceKm float64,
	now time.Time,
) (*Assignment, error) {
	a := &Assignment{
		status:        Offered,
		offeredAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setOrderID(orderID),
		a.setHaulerID(haulerID),
		a.setFee(fee),
		a.setDistance(estimatedDistanceKm),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAssignment reconstructs an Assignment from persistence.
func RestoreAssignment(
	id kernel.UUID,
	orderID kernel.UUID,
	haulerID kernel.UUID,
	fee kernel.Money,
	estimatedDistanceKm float64,
	status Status,
	offeredAt time.Time,
	acceptedAt *time.Time,
	updatedAt time.Time,
) (*Assignment, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	a := &Assignment{
		status:        status,
		offeredAt:     offeredAt,
		acceptedAt:    acceptedAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setOrderID(orderID),
		a.setHaulerID(haulerID),
		a.setFee(fee),
		a.setDistance(estimatedDistanceKm),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate ensures the Assignment instance was properly constructed.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

// ID returns the assignment's unique identifier.
func (a *Assignment) ID() kernel.UUID {
	return a.id
}

// OrderID returns the identifier of the order being hauled.
func (a *Assignment) OrderID() kernel.UUID {
	return a.orderID
}

// HaulerID returns the matched hauler's identifier.
func (a *Assignment) HaulerID() kernel.UUID {
	return a.haulerID
}

// Fee returns the agreed haul fee.
func (a *Assignment) Fee() kernel.Money {
	return a.fee
}

// EstimatedDistanceKm returns the estimated haul distance in kilometers.
func (a *Assignment) EstimatedDistanceKm() float64 {
	return a.estimatedDistanceKm
}

// Status returns the assignment's current status.
func (a *Assignment) Status() Status {
	return a.status
}

// OfferedAt returns when the offer was made.
func (a *Assignment) OfferedAt() time.Time {
	return a.offeredAt
}

// AcceptedAt returns when the hauler accepted, or nil.
func (a *Assignment) AcceptedAt() *time.Time {
	return a.acceptedAt
}

// UpdatedAt returns when the assignment last changed.
func (a *Assignment) UpdatedAt() time.Time {
	return a.updatedAt
}

// Accept marks the assignment accepted by its hauler.
func (a *Assignment) Accept(now time.Time) error {
	newStatus, err := a.status.Accept()
	if err != nil {
		return err
	}

	a.status = newStatus
	a.acceptedAt = &now
	a.updatedAt = now
	return nil
}

// Decline marks the assignment declined by its hauler.
func (a *Assignment) Decline(now time.Time) error {
	newStatus, err := a.status.Decline()
	if err != nil {
		return err
	}

	a.status = newStatus
	a.updatedAt = now
	return nil
}

// Complete marks the haul finished after delivery verification.
func (a *Assignment) Complete(now time.Time) error {
	newStatus, err := a.status.Complete()
	if err != nil {
		return err
	}

	a.status = newStatus
	a.updatedAt = now
	return nil
}

func (a *Assignment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Assignment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	a.orderID = orderID
	return nil
}

func (a *Assignment) setHaulerID(haulerID kernel.UUID) error {
	if err := haulerID.Validate(); err != nil {
		return err
	}
	a.haulerID = haulerID
	return nil
}

func (a *Assignment) setFee(fee kernel.Money) error {
	if fee.IsZero() {
		return errs.NewValueIsRequiredError("fee")
	}
	a.fee = fee
	return nil
}

func (a *Assignment) setDistance(km float64) error {
	if km <= 0 {
		return errs.NewValueIsInvalidError("estimatedDistanceKm")
	}
	a.estimatedDistanceKm = km
	return nil
}
