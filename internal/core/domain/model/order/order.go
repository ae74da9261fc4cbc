package order

import (
	"errors"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrCropTypeIsRequired is returned when attempting to list an order without a crop type.
	ErrCropTypeIsRequired = errs.NewValueIsRequiredError("cropType")

	// ErrTotalVolumeIsRequired is returned when the listed volume is zero.
	ErrTotalVolumeIsRequired = errs.NewValueIsRequiredError("totalVolume")

	// ErrAskingPriceIsRequired is returned when the asking price is zero.
	ErrAskingPriceIsRequired = errs.NewValueIsRequiredError("askingPrice")

	// ErrGradeAlreadyAssigned is returned on a second grading attempt.
	// A quality grade is assigned once and never changes.
	ErrGradeAlreadyAssigned = errors.New("quality grade is immutable once assigned")
)

// Order represents a crop batch offered for sale. It is the aggregate root of
// the marketplace lifecycle: it owns the status state machine and the volume
// bookkeeping, while bids, logistics assignments and the escrow record
// reference it by identifier only.
//
// Order maintains these invariants:
//   - remaining volume never exceeds total volume
//   - status is always a defined state and changes only along the transition table
//   - the quality grade, once assigned, never changes
//   - terminal orders (Settled, Cancelled) accept no further mutation
//
// All fields are private; every mutation goes through a validated method so
// an Order can never be observed in a state the table does not allow.
type Order struct {
	id       kernel.UUID
	farmerID kernel.UUID

	// buyerID is set when the farmer accepts a bid (nil before the lock)
	buyerID *kernel.UUID

	// haulerID is set when a hauler's assignment is accepted
	haulerID *kernel.UUID

	cropType string
	variety  string

	totalVolume     kernel.Volume
	remainingVolume kernel.Volume

	// askingPrice is the farmer's listed price per kilogram, in cents
	askingPrice kernel.Money

	// acceptedPrice is the unit price of the accepted bid (nil before the lock)
	acceptedPrice *kernel.Money

	// coldChain marks orders that require refrigerated transport
	coldChain bool

	// grade is assigned once by the grading service and then immutable
	grade string

	status Status

	createdAt time.Time
	updatedAt time.Time

	// deadlineAt is when the progress deadline elapses; rescheduled on every
	// committed transition out of a non-terminal state
	deadlineAt time.Time

	settledAt *time.Time

	isConstructed bool
}

// NewOrder creates a newly listed Order with validation. The order starts in
// Listed status with its full volume available.
func NewOrder(
	id kernel.UUID,
	farmerID kernel.UUID,
	cropType string,
	variety string,
	totalVolume kernel.Volume,
	askingPrice kernel.Money,
	coldChain bool,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Listed,
		variety:       variety,
		coldChain:     coldChain,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setFarmerID(farmerID),
		o.setCropType(cropType),
		o.setVolumes(totalVolume, totalVolume),
		o.setAskingPrice(askingPrice),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without re-running the
// listing-time validation of NewOrder. The status must still be a defined
// state and the volume invariant must hold.
func RestoreOrder(
	id kernel.UUID,
	farmerID kernel.UUID,
	buyerID *kernel.UUID,
	haulerID *kernel.UUID,
	cropType string,
	variety string,
	totalVolume kernel.Volume,
	remainingVolume kernel.Volume,
	askingPrice kernel.Money,
	acceptedPrice *kernel.Money,
	coldChain bool,
	grade string,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
	deadlineAt time.Time,
	settledAt *time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		buyerID:       buyerID,
		haulerID:      haulerID,
		variety:       variety,
		acceptedPrice: acceptedPrice,
		coldChain:     coldChain,
		grade:         grade,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		deadlineAt:    deadlineAt,
		settledAt:     settledAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setFarmerID(farmerID),
		o.setCropType(cropType),
		o.setVolumes(totalVolume, remainingVolume),
		o.setAskingPrice(askingPrice),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. Call when reconstructing orders from persistence.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// FarmerID returns the owning farmer's identifier.
func (o *Order) FarmerID() kernel.UUID {
	return o.farmerID
}

// BuyerID returns the accepted buyer's identifier, or nil before a bid is accepted.
func (o *Order) BuyerID() *kernel.UUID {
	return o.buyerID
}

// HaulerID returns the assigned hauler's identifier, or nil before an
// assignment is accepted.
func (o *Order) HaulerID() *kernel.UUID {
	return o.haulerID
}

// CropType returns the listed crop type.
func (o *Order) CropType() string {
	return o.cropType
}

// Variety returns the listed crop variety, possibly empty.
func (o *Order) Variety() string {
	return o.variety
}

// TotalVolume returns the originally listed volume.
func (o *Order) TotalVolume() kernel.Volume {
	return o.totalVolume
}

// RemainingVolume returns the volume still available for sale.
func (o *Order) RemainingVolume() kernel.Volume {
	return o.remainingVolume
}

// AskingPrice returns the farmer's listed price per kilogram.
func (o *Order) AskingPrice() kernel.Money {
	return o.askingPrice
}

// AcceptedPrice returns the accepted bid's unit price, or nil before the lock.
func (o *Order) AcceptedPrice() *kernel.Money {
	return o.acceptedPrice
}

// ColdChain reports whether the order requires refrigerated transport.
func (o *Order) ColdChain() bool {
	return o.coldChain
}

// Grade returns the assigned quality grade, empty until grading happens.
func (o *Order) Grade() string {
	return o.grade
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns when the order was listed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order last changed.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// DeadlineAt returns when the progress deadline elapses.
func (o *Order) DeadlineAt() time.Time {
	return o.deadlineAt
}

// SettledAt returns when the order settled, or nil if it has not.
func (o *Order) SettledAt() *time.Time {
	return o.settledAt
}

// AssignGrade records the quality grade returned by the grading service.
// The grade is write-once: a second call fails and changes nothing.
func (o *Order) AssignGrade(grade string) error {
	if o.grade != "" {
		return ErrGradeAlreadyAssigned
	}
	if grade == "" {
		return errs.NewValueIsRequiredError("grade")
	}
	o.grade = grade
	return nil
}

// ScheduleDeadline sets the progress deadline. Handlers reschedule the
// deadline on every committed transition that counts as qualifying progress.
func (o *Order) ScheduleDeadline(deadline time.Time) {
	o.deadlineAt = deadline
}

// ReceiveBid validates that a bid for the requested volume may be placed and
// moves the order into Negotiating. The volume is not reserved yet; that
// happens only when the farmer accepts.
func (o *Order) ReceiveBid(requested kernel.Volume, now time.Time) error {
	if requested.IsZero() {
		return errs.NewValueIsRequiredError("requested volume")
	}
	if requested.Exceeds(o.remainingVolume) {
		return errs.NewCapacityExceededError(requested.String(), o.remainingVolume.String())
	}

	newStatus, err := o.status.ReceiveBid()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch(now)
	return nil
}

// ReturnToListing moves a Negotiating order with no open bids back to Listed.
func (o *Order) ReturnToListing(now time.Time) error {
	newStatus, err := o.status.ReturnToListing()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch(now)
	return nil
}

// Lock accepts a bid: reserves the bid volume, records buyer and price, and
// moves the order into LockedPendingLogistics. The caller funds the escrow in
// the same committed step.
func (o *Order) Lock(buyerID kernel.UUID, price kernel.Money, volume kernel.Volume, now time.Time) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}
	if volume.Exceeds(o.remainingVolume) {
		return errs.NewCapacityExceededError(volume.String(), o.remainingVolume.String())
	}

	newStatus, err := o.status.Lock()
	if err != nil {
		return err
	}

	remaining, err := o.remainingVolume.Sub(volume)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.remainingVolume = remaining
	o.buyerID = &buyerID
	o.acceptedPrice = &price
	o.touch(now)
	return nil
}

// BeginLogisticsSearch moves a locked order into LogisticsSearch once hauler
// candidates have been proposed.
func (o *Order) BeginLogisticsSearch(now time.Time) error {
	newStatus, err := o.status.BeginLogisticsSearch()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch(now)
	return nil
}

// BeginTransit records the accepted hauler and moves the order InTransit.
func (o *Order) BeginTransit(haulerID kernel.UUID, now time.Time) error {
	if err := haulerID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.BeginTransit()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.haulerID = &haulerID
	o.touch(now)
	return nil
}

// CompleteDelivery moves the order out of transit after the delivery token is
// verified. The final escrow release and settlement follow in the same
// committed step.
func (o *Order) CompleteDelivery(now time.Time) error {
	newStatus, err := o.status.CompleteDelivery()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch(now)
	return nil
}

// Settle finalizes the order once the escrow is fully released.
func (o *Order) Settle(now time.Time) error {
	newStatus, err := o.status.Settle()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.settledAt = &now
	o.touch(now)
	return nil
}

// Cancel moves any non-terminal order to Cancelled. The escrow refund happens
// in the same committed step. Cancelling a terminal order returns
// InvalidTransition; timer-driven callers treat that as a no-op.
func (o *Order) Cancel(now time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch(now)
	return nil
}

func (o *Order) touch(now time.Time) {
	o.updatedAt = now
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setFarmerID(farmerID kernel.UUID) error {
	if err := farmerID.Validate(); err != nil {
		return err
	}
	o.farmerID = farmerID
	return nil
}

func (o *Order) setCropType(cropType string) error {
	if cropType == "" {
		return ErrCropTypeIsRequired
	}
	o.cropType = cropType
	return nil
}

func (o *Order) setVolumes(total, remaining kernel.Volume) error {
	if total.IsZero() {
		return ErrTotalVolumeIsRequired
	}
	if remaining.Exceeds(total) {
		return errs.NewCapacityExceededError(remaining.String(), total.String())
	}
	o.totalVolume = total
	o.remainingVolume = remaining
	return nil
}

func (o *Order) setAskingPrice(price kernel.Money) error {
	if price.IsZero() {
		return ErrAskingPriceIsRequired
	}
	o.askingPrice = price
	return nil
}
