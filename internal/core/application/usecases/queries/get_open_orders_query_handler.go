package queries

import (
	"context"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOpenOrdersQueryHandler retrieves open orders from the database,
// newest listings first.
type GetOpenOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenOrdersQueryHandler creates a handler for open order queries.
func NewGetOpenOrdersQueryHandler(db *gorm.DB) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all orders open for bidding.
func (h GetOpenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOpenOrdersQuery,
) ([]GetOpenOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOpenOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			farmer_id,
			crop_type,
			variety,
			grade,
			remaining_volume,
			asking_price,
			cold_chain,
			status,
			deadline_at
		FROM orders
		WHERE status IN (?, ?)
		ORDER BY created_at DESC
	`, int(order.Listed), int(order.Negotiating)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOpenOrdersQueryResponse
		var id, farmerID uuid.UUID
		var remainingVolume, askingPrice int64
		var status int
		var deadlineAt time.Time

		err = rows.Scan(
			&id,
			&farmerID,
			&resp.CropType,
			&resp.Variety,
			&resp.Grade,
			&remainingVolume,
			&askingPrice,
			&resp.ColdChain,
			&status,
			&deadlineAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		ownerID, ownerErr := kernel.UUIDFromBytes(farmerID[:])
		if ownerErr != nil {
			return nil, ownerErr
		}
		resp.FarmerID = ownerID

		volume, volumeErr := kernel.NewVolume(remainingVolume)
		if volumeErr != nil {
			return nil, volumeErr
		}
		resp.RemainingVolume = volume

		price, priceErr := kernel.NewMoney(askingPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		resp.AskingPrice = price

		resp.Status = order.Status(status)
		resp.DeadlineAt = deadlineAt
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
