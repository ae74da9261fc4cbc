package ports

import (
	"time"

	"agromarket/internal/core/domain/model/kernel"
)

// TransitionEvent is the fact broadcast to subscribers after a transition
// commits. It carries the post-commit truth: by the time a subscriber reads
// it, the database already reflects the new status.
type TransitionEvent struct {
	OrderID   kernel.UUID
	From      string
	To        string
	Event     string
	ActorRole string
	Seq       uint64
	At        time.Time
}

// EventPublisher pushes committed transition events to interested parties.
// Publish must never block the committing command: slow consumers are the
// publisher's problem, not the ledger's.
type EventPublisher interface {
	Publish(event TransitionEvent)
}

// NopEventPublisher discards all events. Used in jobs and tests that do not
// care about notifications.
type NopEventPublisher struct{}

// Publish implements EventPublisher.
func (NopEventPublisher) Publish(TransitionEvent) {}
