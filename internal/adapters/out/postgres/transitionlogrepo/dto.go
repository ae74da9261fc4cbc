// Package transitionlogrepo provides persistence for the append-only audit
// trail of order status transitions.
package transitionlogrepo

import (
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// TransitionDTO represents one row of the transition log. Rows are only ever
// inserted.
type TransitionDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	FromStatus int
	ToStatus   int
	Event      string
	ActorRole  string
	ActorID    string
	OccurredAt time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming convention to use "transitions".
func (TransitionDTO) TableName() string {
	return "transitions"
}

// fromDomain converts a transition record to its database representation.
func fromDomain(record order.TransitionRecord) TransitionDTO {
	return TransitionDTO{
		ID:         record.ID().Bytes(),
		OrderID:    record.OrderID().Bytes(),
		FromStatus: int(record.From()),
		ToStatus:   int(record.To()),
		Event:      record.Event(),
		ActorRole:  record.ActorRole(),
		ActorID:    record.ActorID(),
		OccurredAt: record.OccurredAt(),
	}
}

// toDomain converts a database row to a transition record.
func toDomain(dto TransitionDTO) (order.TransitionRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.TransitionRecord{}, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.TransitionRecord{}, err
	}

	return order.RestoreTransitionRecord(
		id,
		orderID,
		order.Status(dto.FromStatus),
		order.Status(dto.ToStatus),
		dto.Event,
		dto.ActorRole,
		dto.ActorID,
		dto.OccurredAt,
	), nil
}
