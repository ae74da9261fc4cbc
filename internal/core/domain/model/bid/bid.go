// Package bid provides the Bid entity: a buyer's offer against a listed
// order. Bids reference their order by identifier only; the order aggregate
// stays the single owner of volume bookkeeping.
package bid

import (
	"errors"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"
)

// ErrBidIsNotConstructed is returned when a Bid instance was not created
// through NewBid or RestoreBid.
var ErrBidIsNotConstructed = errors.New("Bid must be created via NewBid or RestoreBid")

// Bid is a buyer's offer for part of an order's remaining volume at a unit
// price. Invariants: the requested volume and price are positive; a bid in a
// terminal status never changes again.
type Bid struct {
	id      kernel.UUID
	orderID kernel.UUID
	buyerID kernel.UUID

	// pricePerKg is the offered unit price in cents per kilogram
	pricePerKg kernel.Money

	volume kernel.Volume

	status Status

	message   string
	expiresAt *time.Time

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewBid creates a pending Bid with validation. The capacity check against
// the order's remaining volume belongs to the Order aggregate, not here.
func NewBid(
	id kernel.UUID,
	orderID kernel.UUID,
	buyerID kernel.UUID,
	pricePerKg kernel.Money,
	volume kernel.Volume,
	message string,
	expiresAt *time.Time,
	now time.Time,
) (*Bid, error) {
	b := &Bid{
		status:        Pending,
		message:       message,
		expiresAt:     expiresAt,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setOrderID(orderID),
		b.setBuyerID(buyerID),
		b.setPrice(pricePerKg),
		b.setVolume(volume),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// RestoreBid reconstructs a Bid from persistence.
func RestoreBid(
	id kernel.UUID,
	orderID kernel.UUID,
	buyerID kernel.UUID,
	pricePerKg kernel.Money,
	volume kernel.Volume,
	status Status,
	message string,
	expiresAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*Bid, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	b := &Bid{
		status:        status,
		message:       message,
		expiresAt:     expiresAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setOrderID(orderID),
		b.setBuyerID(buyerID),
		b.setPrice(pricePerKg),
		b.setVolume(volume),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// Validate ensures the Bid instance was properly constructed.
func (b *Bid) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBidIsNotConstructed
	}
	return nil
}

// ID returns the bid's unique identifier.
func (b *Bid) ID() kernel.UUID {
	return b.id
}

// OrderID returns the identifier of the order the bid targets.
func (b *Bid) OrderID() kernel.UUID {
	return b.orderID
}

// BuyerID returns the bidding buyer's identifier.
func (b *Bid) BuyerID() kernel.UUID {
	return b.buyerID
}

// PricePerKg returns the offered unit price.
func (b *Bid) PricePerKg() kernel.Money {
	return b.pricePerKg
}

// Volume returns the requested volume.
func (b *Bid) Volume() kernel.Volume {
	return b.volume
}

// Status returns the bid's current status.
func (b *Bid) Status() Status {
	return b.status
}

// Message returns the buyer's optional message.
func (b *Bid) Message() string {
	return b.message
}

// ExpiresAt returns the bid's optional expiry, or nil.
func (b *Bid) ExpiresAt() *time.Time {
	return b.expiresAt
}

// CreatedAt returns when the bid was placed.
func (b *Bid) CreatedAt() time.Time {
	return b.createdAt
}

// UpdatedAt returns when the bid last changed.
func (b *Bid) UpdatedAt() time.Time {
	return b.updatedAt
}

// Total returns the bid's total value: volume times unit price, in cents.
func (b *Bid) Total() kernel.Money {
	return b.volume.Price(b.pricePerKg)
}

// Accept marks the bid accepted. Only pending bids can be accepted.
func (b *Bid) Accept(now time.Time) error {
	newStatus, err := b.status.Accept()
	if err != nil {
		return err
	}

	b.status = newStatus
	b.updatedAt = now
	return nil
}

// Reject marks the bid rejected, either by the farmer's explicit decision or
// automatically when a sibling bid is accepted.
func (b *Bid) Reject(now time.Time) error {
	newStatus, err := b.status.Reject()
	if err != nil {
		return err
	}

	b.status = newStatus
	b.updatedAt = now
	return nil
}

// Withdraw marks the bid withdrawn by its buyer.
func (b *Bid) Withdraw(now time.Time) error {
	newStatus, err := b.status.Withdraw()
	if err != nil {
		return err
	}

	b.status = newStatus
	b.updatedAt = now
	return nil
}

func (b *Bid) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Bid) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	b.orderID = orderID
	return nil
}

func (b *Bid) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}
	b.buyerID = buyerID
	return nil
}

func (b *Bid) setPrice(price kernel.Money) error {
	if price.IsZero() {
		return errs.NewValueIsRequiredError("pricePerKg")
	}
	b.pricePerKg = price
	return nil
}

func (b *Bid) setVolume(volume kernel.Volume) error {
	if volume.IsZero() {
		return errs.NewValueIsRequiredError("volume")
	}
	b.volume = volume
	return nil
}
