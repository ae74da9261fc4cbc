// Package assignmentrepo provides data transfer objects and mapping
// functions for logistics assignment persistence.
package assignmentrepo

import (
	"time"

	"agromarket/internal/core/domain/model/assignment"
	"agromarket/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO represents the database structure for persisting logistics
// assignments.
type AssignmentDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID             uuid.UUID `gorm:"type:uuid;index:idx_assignments_order_status"`
	HaulerID            uuid.UUID `gorm:"type:uuid;index"`
	Fee                 int64
	EstimatedDistanceKm float64
	Status              int `gorm:"index:idx_assignments_order_status"`
	OfferedAt           time.Time
	AcceptedAt          *time.Time
	UpdatedAt           time.Time
}

// TableName overrides GORM's default naming convention to use "assignments".
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// fromDomain converts an assignment entity to its database representation.
func fromDomain(entity *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:                  entity.ID().Bytes(),
		OrderID:             entity.OrderID().Bytes(),
		HaulerID:            entity.HaulerID().Bytes(),
		Fee:                 entity.Fee().Cents(),
		EstimatedDistanceKm: entity.EstimatedDistanceKm(),
		Status:              int(entity.Status()),
		OfferedAt:           entity.OfferedAt(),
		AcceptedAt:          entity.AcceptedAt(),
		UpdatedAt:           entity.UpdatedAt(),
	}
}

// toDomain converts a database row to an assignment entity via
// RestoreAssignment.
func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	haulerID, err := kernel.UUIDFromBytes(dto.HaulerID[:])
	if err != nil {
		return nil, err
	}

	fee, err := kernel.NewMoney(dto.Fee)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(
		id,
		orderID,
		haulerID,
		fee,
		dto.EstimatedDistanceKm,
		assignment.Status(dto.Status),
		dto.OfferedAt,
		dto.AcceptedAt,
		dto.UpdatedAt,
	)
}
