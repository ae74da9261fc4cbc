package order

import (
	"errors"
	"time"

	"agromarket/internal/core/domain/model/kernel"
)

// TransitionRecord is one entry in an order's append-only audit trail: who
// moved the order from which status to which, through which event, and when.
// Records are immutable once written.
type TransitionRecord struct {
	id      kernel.UUID
	orderID kernel.UUID

	from Status
	to   Status

	event     string
	actorRole string
	actorID   string

	occurredAt time.Time
}

// NewTransitionRecord creates an audit trail entry for a committed
// transition.
func NewTransitionRecord(
	id kernel.UUID,
	orderID kernel.UUID,
	from Status,
	to Status,
	event string,
	actorRole string,
	actorID string,
	occurredAt time.Time,
) (TransitionRecord, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), to.Validate()); err != nil {
		return TransitionRecord{}, err
	}

	return TransitionRecord{
		id:         id,
		orderID:    orderID,
		from:       from,
		to:         to,
		event:      event,
		actorRole:  actorRole,
		actorID:    actorID,
		occurredAt: occurredAt,
	}, nil
}

// RestoreTransitionRecord reconstructs a record from persistence.
func RestoreTransitionRecord(
	id kernel.UUID,
	orderID kernel.UUID,
	from Status,
	to Status,
	event string,
	actorRole string,
	actorID string,
	occurredAt time.Time,
) TransitionRecord {
	return TransitionRecord{
		id:         id,
		orderID:    orderID,
		from:       from,
		to:         to,
		event:      event,
		actorRole:  actorRole,
		actorID:    actorID,
		occurredAt: occurredAt,
	}
}

// ID returns the record's unique identifier.
func (r TransitionRecord) ID() kernel.UUID {
	return r.id
}

// OrderID returns the order the transition belongs to.
func (r TransitionRecord) OrderID() kernel.UUID {
	return r.orderID
}

// From returns the status the order left. Unknown for the listing event.
func (r TransitionRecord) From() Status {
	return r.from
}

// To returns the status the order entered.
func (r TransitionRecord) To() Status {
	return r.to
}

// Event returns the name of the operation that drove the transition.
func (r TransitionRecord) Event() string {
	return r.event
}

// ActorRole returns the role of the actor who triggered the transition,
// "system" for deadline cancellations.
func (r TransitionRecord) ActorRole() string {
	return r.actorRole
}

// ActorID returns the triggering actor's identifier.
func (r TransitionRecord) ActorID() string {
	return r.actorID
}

// OccurredAt returns when the transition was committed.
func (r TransitionRecord) OccurredAt() time.Time {
	return r.occurredAt
}
