// Package escrow provides the Escrow aggregate: the buyer's funds locked
// against an order, released in two stages against single-use verification
// tokens.
//
// Token handling follows a hash-only model: raw tokens are generated once at
// funding time and handed to the caller; only their SHA-256 digests are ever
// stored. Releasing requires presenting a raw token whose digest matches,
// and each token verifies at most once.
package escrow

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"
)

// ErrEscrowIsNotConstructed is returned when an Escrow instance was not
// created through NewEscrow or RestoreEscrow.
var ErrEscrowIsNotConstructed = errors.New(
	"Escrow must be created via NewEscrow or RestoreEscrow")

// Token kinds used in TokenInvalid rejections.
const (
	PickupTokenKind   = "pickup"
	DeliveryTokenKind = "delivery"
)

const rawTokenBytes = 32

// RawTokens carries the plaintext verification tokens produced at funding
// time. They exist only in this value; the aggregate keeps digests.
type RawTokens struct {
	Pickup   string
	Delivery string
}

// Escrow locks the accepted bid's total against an order.
//
// Invariants: released never exceeds total; each token verifies at most
// once; no funds move out of a terminal status.
type Escrow struct {
	id      kernel.UUID
	orderID kernel.UUID
	buyerID kernel.UUID

	total    kernel.Money
	released kernel.Money

	pickupReleasePercent int

	pickupTokenHash   string
	deliveryTokenHash string

	pickupVerifiedAt   *time.Time
	deliveryVerifiedAt *time.Time

	// handoff locations as presented, recorded but never validated
	// geometrically
	pickupLocation   *kernel.GeoPoint
	deliveryLocation *kernel.GeoPoint

	status Status

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewEscrow locks total against orderID and generates both verification
// tokens. The raw tokens are returned exactly once; only their digests are
// retained.
func NewEscrow(
	id kernel.UUID,
	orderID kernel.UUID,
	buyerID kernel.UUID,
	total kernel.Money,
	pickupReleasePercent int,
	now time.Time,
) (*Escrow, RawTokens, error) {
	rawPickup, err := newRawToken()
	if err != nil {
		return nil, RawTokens{}, err
	}
	rawDelivery, err := newRawToken()
	if err != nil {
		return nil, RawTokens{}, err
	}

	e := &Escrow{
		status:               Held,
		pickupReleasePercent: pickupReleasePercent,
		pickupTokenHash:      hashToken(rawPickup),
		deliveryTokenHash:    hashToken(rawDelivery),
		createdAt:            now,
		updatedAt:            now,
		isConstructed:        true,
	}

	if err := errors.Join(
		e.setID(id),
		e.setOrderID(orderID),
		e.setBuyerID(buyerID),
		e.setTotal(total),
		e.setPercent(pickupReleasePercent),
	); err != nil {
		return nil, RawTokens{}, err
	}

	return e, RawTokens{Pickup: rawPickup, Delivery: rawDelivery}, nil
}

// RestoreEscrow reconstructs an Escrow from persistence. Only token digests
// cross this boundary; raw tokens are never stored.
func RestoreEscrow(
	id kernel.UUID,
	orderID kernel.UUID,
	buyerID kernel.UUID,
	total kernel.Money,
	released kernel.Money,
	pickupReleasePercent int,
	pickupTokenHash string,
	deliveryTokenHash string,
	pickupVerifiedAt *time.Time,
	deliveryVerifiedAt *time.Time,
	pickupLocation *kernel.GeoPoint,
	deliveryLocation *kernel.GeoPoint,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) (*Escrow, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if released.Cents() > total.Cents() {
		return nil, errs.NewValueIsInvalidErrorWithCause("released",
			fmt.Errorf("released %s exceeds total %s", released, total))
	}

	e := &Escrow{
		released:           released,
		pickupTokenHash:    pickupTokenHash,
		deliveryTokenHash:  deliveryTokenHash,
		pickupVerifiedAt:   pickupVerifiedAt,
		deliveryVerifiedAt: deliveryVerifiedAt,
		pickupLocation:     pickupLocation,
		deliveryLocation:   deliveryLocation,
		status:             status,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
		isConstructed:      true,
	}

	if err := errors.Join(
		e.setID(id),
		e.setOrderID(orderID),
		e.setBuyerID(buyerID),
		e.setTotal(total),
		e.setPercent(pickupReleasePercent),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// Validate ensures the Escrow instance was properly constructed.
func (e *Escrow) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEscrowIsNotConstructed
	}
	return nil
}

// ID returns the escrow's unique identifier.
func (e *Escrow) ID() kernel.UUID {
	return e.id
}

// OrderID returns the identifier of the order the funds back.
func (e *Escrow) OrderID() kernel.UUID {
	return e.orderID
}

// BuyerID returns the paying buyer's identifier.
func (e *Escrow) BuyerID() kernel.UUID {
	return e.buyerID
}

// Total returns the full locked amount.
func (e *Escrow) Total() kernel.Money {
	return e.total
}

// Released returns the amount paid out so far.
func (e *Escrow) Released() kernel.Money {
	return e.released
}

// Remaining returns the amount still locked.
func (e *Escrow) Remaining() kernel.Money {
	remaining, _ := e.total.Sub(e.released)
	return remaining
}

// PickupReleasePercent returns the share of the total paid out at pickup.
func (e *Escrow) PickupReleasePercent() int {
	return e.pickupReleasePercent
}

// PickupTokenHash returns the stored digest of the pickup token.
func (e *Escrow) PickupTokenHash() string {
	return e.pickupTokenHash
}

// DeliveryTokenHash returns the stored digest of the delivery token.
func (e *Escrow) DeliveryTokenHash() string {
	return e.deliveryTokenHash
}

// PickupVerifiedAt returns when the pickup token was presented, or nil.
func (e *Escrow) PickupVerifiedAt() *time.Time {
	return e.pickupVerifiedAt
}

// DeliveryVerifiedAt returns when the delivery token was presented, or nil.
func (e *Escrow) DeliveryVerifiedAt() *time.Time {
	return e.deliveryVerifiedAt
}

// PickupLocation returns where the pickup token was presented, or nil.
func (e *Escrow) PickupLocation() *kernel.GeoPoint {
	return e.pickupLocation
}

// DeliveryLocation returns where the delivery token was presented, or nil.
func (e *Escrow) DeliveryLocation() *kernel.GeoPoint {
	return e.deliveryLocation
}

// Status returns the escrow's current status.
func (e *Escrow) Status() Status {
	return e.status
}

// CreatedAt returns when the funds were locked.
func (e *Escrow) CreatedAt() time.Time {
	return e.createdAt
}

// UpdatedAt returns when the escrow last changed.
func (e *Escrow) UpdatedAt() time.Time {
	return e.updatedAt
}

// ReleasePickup verifies the pickup token and pays out the pickup share of
// the total. The token verifies at most once; a second presentation is a
// TokenInvalid rejection even with the correct raw value, ahead of any
// status check. The presenter's location is recorded as given.
func (e *Escrow) ReleasePickup(rawToken string, location *kernel.GeoPoint, now time.Time) (kernel.Money, error) {
	if e.pickupVerifiedAt != nil && matchToken(rawToken, e.pickupTokenHash) {
		return 0, errs.NewTokenInvalidError(PickupTokenKind)
	}
	if e.status != Held {
		return 0, errs.NewInvalidTransitionError(e.status.String(), PartiallyReleased.String())
	}
	if !matchToken(rawToken, e.pickupTokenHash) {
		return 0, errs.NewTokenInvalidError(PickupTokenKind)
	}

	amount := e.total.Percent(e.pickupReleasePercent)
	e.released = e.released.Add(amount)
	e.pickupVerifiedAt = &now
	e.pickupLocation = location
	e.status = PartiallyReleased
	e.updatedAt = now

	return amount, nil
}

// ReleaseDelivery verifies the delivery token and pays out everything still
// locked. Pickup must already be verified: the remainder is total minus the
// pickup share, so the two releases always reassemble the total exactly.
func (e *Escrow) ReleaseDelivery(rawToken string, location *kernel.GeoPoint, now time.Time) (kernel.Money, error) {
	if e.deliveryVerifiedAt != nil && matchToken(rawToken, e.deliveryTokenHash) {
		return 0, errs.NewTokenInvalidError(DeliveryTokenKind)
	}
	if e.status != PartiallyReleased {
		return 0, errs.NewInvalidTransitionError(e.status.String(), FullyReleased.String())
	}
	if !matchToken(rawToken, e.deliveryTokenHash) {
		return 0, errs.NewTokenInvalidError(DeliveryTokenKind)
	}

	amount := e.Remaining()
	e.released = e.total
	e.deliveryVerifiedAt = &now
	e.deliveryLocation = location
	e.status = FullyReleased
	e.updatedAt = now

	return amount, nil
}

// Refund returns everything still locked to the buyer. Amounts already
// released to the farmer stay released.
func (e *Escrow) Refund(now time.Time) (kernel.Money, error) {
	if e.status.IsTerminal() {
		return 0, errs.NewInvalidTransitionError(e.status.String(), Refunded.String())
	}

	amount := e.Remaining()
	e.status = Refunded
	e.updatedAt = now

	return amount, nil
}

func (e *Escrow) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Escrow) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	e.orderID = orderID
	return nil
}

func (e *Escrow) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}
	e.buyerID = buyerID
	return nil
}

func (e *Escrow) setTotal(total kernel.Money) error {
	if total.IsZero() {
		return errs.NewValueIsRequiredError("total")
	}
	e.total = total
	return nil
}

func (e *Escrow) setPercent(pct int) error {
	if pct < 1 || pct > 99 {
		return errs.NewValueIsOutOfRangeError("pickupReleasePercent", pct, 1, 99)
	}
	e.pickupReleasePercent = pct
	return nil
}

func newRawToken() (string, error) {
	buf := make([]byte, rawTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate verification token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func matchToken(raw, storedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(hashToken(raw)), []byte(storedHash)) == 1
}
