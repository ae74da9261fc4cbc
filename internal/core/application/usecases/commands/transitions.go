package commands

import (
	"context"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
)

// recordTransition appends one audit trail entry inside the current
// transaction and returns the synchronization event to publish after commit.
func recordTransition(
	ctx context.Context,
	log ports.TransitionLogRepository,
	actor kernel.Actor,
	orderID kernel.UUID,
	from order.Status,
	to order.Status,
	event string,
	now time.Time,
) (ports.TransitionEvent, error) {
	record, err := order.NewTransitionRecord(
		kernel.NewUUID(), orderID, from, to, event,
		actor.Role().String(), actor.ID().String(), now,
	)
	if err != nil {
		return ports.TransitionEvent{}, err
	}

	if err := log.Append(ctx, record); err != nil {
		return ports.TransitionEvent{}, err
	}

	return ports.TransitionEvent{
		OrderID:   orderID,
		From:      from.String(),
		To:        to.String(),
		Event:     event,
		ActorRole: actor.Role().String(),
		At:        now,
	}, nil
}

// publishAll pushes committed events to subscribers. Called only after a
// successful commit so subscribers never observe uncommitted state.
func publishAll(publisher ports.EventPublisher, events []ports.TransitionEvent) {
	for _, event := range events {
		publisher.Publish(event)
	}
}
