// Package escrowrepo provides data transfer objects and mapping functions
// for escrow persistence. Only token digests are stored; raw verification
// tokens never reach this layer.
package escrowrepo

import (
	"time"

	"agromarket/internal/core/domain/model/escrow"
	"agromarket/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EscrowDTO represents the database structure for persisting escrow
// aggregates. An order has at most one escrow over its lifetime, enforced by
// the unique index on order_id.
type EscrowDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID              uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	BuyerID              uuid.UUID `gorm:"type:uuid;index"`
	Total                int64
	Released             int64
	PickupReleasePercent int
	PickupTokenHash      string
	DeliveryTokenHash    string
	PickupVerifiedAt     *time.Time
	DeliveryVerifiedAt   *time.Time
	PickupLat            *float64
	PickupLng            *float64
	DeliveryLat          *float64
	DeliveryLng          *float64
	Status               int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName overrides GORM's default naming convention to use "escrows".
func (EscrowDTO) TableName() string {
	return "escrows"
}

// fromDomain converts an escrow aggregate to its database representation.
func fromDomain(aggregate *escrow.Escrow) EscrowDTO {
	dto := EscrowDTO{
		ID:                   aggregate.ID().Bytes(),
		OrderID:              aggregate.OrderID().Bytes(),
		BuyerID:              aggregate.BuyerID().Bytes(),
		Total:                aggregate.Total().Cents(),
		Released:             aggregate.Released().Cents(),
		PickupReleasePercent: aggregate.PickupReleasePercent(),
		PickupTokenHash:      aggregate.PickupTokenHash(),
		DeliveryTokenHash:    aggregate.DeliveryTokenHash(),
		PickupVerifiedAt:     aggregate.PickupVerifiedAt(),
		DeliveryVerifiedAt:   aggregate.DeliveryVerifiedAt(),
		Status:               int(aggregate.Status()),
		CreatedAt:            aggregate.CreatedAt(),
		UpdatedAt:            aggregate.UpdatedAt(),
	}

	if p := aggregate.PickupLocation(); p != nil {
		lat, lng := p.Latitude(), p.Longitude()
		dto.PickupLat, dto.PickupLng = &lat, &lng
	}
	if p := aggregate.DeliveryLocation(); p != nil {
		lat, lng := p.Latitude(), p.Longitude()
		dto.DeliveryLat, dto.DeliveryLng = &lat, &lng
	}

	return dto
}

// toDomain converts a database row to an escrow aggregate via RestoreEscrow.
func toDomain(dto EscrowDTO) (*escrow.Escrow, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	released, err := kernel.NewMoney(dto.Released)
	if err != nil {
		return nil, err
	}

	pickupLocation, err := locationFromColumns(dto.PickupLat, dto.PickupLng)
	if err != nil {
		return nil, err
	}

	deliveryLocation, err := locationFromColumns(dto.DeliveryLat, dto.DeliveryLng)
	if err != nil {
		return nil, err
	}

	return escrow.RestoreEscrow(
		id,
		orderID,
		buyerID,
		total,
		released,
		dto.PickupReleasePercent,
		dto.PickupTokenHash,
		dto.DeliveryTokenHash,
		dto.PickupVerifiedAt,
		dto.DeliveryVerifiedAt,
		pickupLocation,
		deliveryLocation,
		escrow.Status(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func locationFromColumns(lat, lng *float64) (*kernel.GeoPoint, error) {
	if lat == nil || lng == nil {
		return nil, nil
	}

	point, err := kernel.NewGeoPoint(*lat, *lng)
	if err != nil {
		return nil, err
	}
	return &point, nil
}
