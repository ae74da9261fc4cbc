// Package bidrepo provides data transfer objects and mapping functions for
// bid persistence.
package bidrepo

import (
	"time"

	"agromarket/internal/core/domain/model/bid"
	"agromarket/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BidDTO represents the database structure for persisting bids. The
// order/status pair is indexed for the pending-bids lookup on accept,
// withdraw and reject.
type BidDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index:idx_bids_order_status"`
	BuyerID    uuid.UUID `gorm:"type:uuid;index"`
	PricePerKg int64
	Volume     int64
	Status     int `gorm:"index:idx_bids_order_status"`
	Message    string
	ExpiresAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName overrides GORM's default naming convention to use "bids".
func (BidDTO) TableName() string {
	return "bids"
}

// fromDomain converts a bid entity to its database representation.
func fromDomain(entity *bid.Bid) BidDTO {
	return BidDTO{
		ID:         entity.ID().Bytes(),
		OrderID:    entity.OrderID().Bytes(),
		BuyerID:    entity.BuyerID().Bytes(),
		PricePerKg: entity.PricePerKg().Cents(),
		Volume:     entity.Volume().Hundredths(),
		Status:     int(entity.Status()),
		Message:    entity.Message(),
		ExpiresAt:  entity.ExpiresAt(),
		CreatedAt:  entity.CreatedAt(),
		UpdatedAt:  entity.UpdatedAt(),
	}
}

// toDomain converts a database row to a bid entity via RestoreBid.
func toDomain(dto BidDTO) (*bid.Bid, error) {
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

	pricePerKg, err := kernel.NewMoney(dto.PricePerKg)
	if err != nil {
		return nil, err
	}

	volume, err := kernel.NewVolume(dto.Volume)
	if err != nil {
		return nil, err
	}

	return bid.RestoreBid(
		id,
		orderID,
		buyerID,
		pricePerKg,
		volume,
		bid.Status(dto.Status),
		dto.Message,
		dto.ExpiresAt,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
