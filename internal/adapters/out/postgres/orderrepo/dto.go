// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status and deadline are indexed for the open-orders listing and the
// deadline monitor sweep.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FarmerID        uuid.UUID  `gorm:"type:uuid;index"`
	BuyerID         *uuid.UUID `gorm:"type:uuid"`
	HaulerID        *uuid.UUID `gorm:"type:uuid"`
	CropType        string
	Variety         string
	Grade           string
	TotalVolume     int64
	RemainingVolume int64
	AskingPrice     int64
	AcceptedPrice   *int64
	ColdChain       bool
	Status          int `gorm:"index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeadlineAt      time.Time `gorm:"index"`
	SettledAt       *time.Time
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var buyerID, haulerID *uuid.UUID
	if id := aggregate.BuyerID(); id != nil {
		raw := id.Bytes()
		buyerID = &raw
	}
	if id := aggregate.HaulerID(); id != nil {
		raw := id.Bytes()
		haulerID = &raw
	}

	var acceptedPrice *int64
	if price := aggregate.AcceptedPrice(); price != nil {
		cents := price.Cents()
		acceptedPrice = &cents
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		FarmerID:        aggregate.FarmerID().Bytes(),
		BuyerID:         buyerID,
		HaulerID:        haulerID,
		CropType:        aggregate.CropType(),
		Variety:         aggregate.Variety(),
		Grade:           aggregate.Grade(),
		TotalVolume:     aggregate.TotalVolume().Hundredths(),
		RemainingVolume: aggregate.RemainingVolume().Hundredths(),
		AskingPrice:     aggregate.AskingPrice().Cents(),
		AcceptedPrice:   acceptedPrice,
		ColdChain:       aggregate.ColdChain(),
		Status:          int(aggregate.Status()),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
		DeadlineAt:      aggregate.DeadlineAt(),
		SettledAt:       aggregate.SettledAt(),
	}
}

// toDomain converts a database row to an order aggregate via RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	farmerID, err := kernel.UUIDFromBytes(dto.FarmerID[:])
	if err != nil {
		return nil, err
	}

	var buyerID *kernel.UUID
	if dto.BuyerID != nil {
		bID, buyerErr := kernel.UUIDFromBytes((*dto.BuyerID)[:])
		if buyerErr != nil {
			return nil, buyerErr
		}
		buyerID = &bID
	}

	var haulerID *kernel.UUID
	if dto.HaulerID != nil {
		hID, haulerErr := kernel.UUIDFromBytes((*dto.HaulerID)[:])
		if haulerErr != nil {
			return nil, haulerErr
		}
		haulerID = &hID
	}

	totalVolume, err := kernel.NewVolume(dto.TotalVolume)
	if err != nil {
		return nil, err
	}

	remainingVolume, err := kernel.NewVolume(dto.RemainingVolume)
	if err != nil {
		return nil, err
	}

	askingPrice, err := kernel.NewMoney(dto.AskingPrice)
	if err != nil {
		return nil, err
	}

	var acceptedPrice *kernel.Money
	if dto.AcceptedPrice != nil {
		price, priceErr := kernel.NewMoney(*dto.AcceptedPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		acceptedPrice = &price
	}

	return order.RestoreOrder(
		id,
		farmerID,
		buyerID,
		haulerID,
		dto.CropType,
		dto.Variety,
		totalVolume,
		remainingVolume,
		askingPrice,
		acceptedPrice,
		dto.ColdChain,
		dto.Grade,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.DeadlineAt,
		dto.SettledAt,
	)
}
