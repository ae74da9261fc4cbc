package queries

import (
	"context"
	"database/sql"
	"errors"

	"agromarket/internal/core/domain/model/assignment"
	"agromarket/internal/core/domain/model/bid"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderParticipantsQueryHandler assembles the order's role-holders from
// the orders, bids and assignments tables.
type GetOrderParticipantsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderParticipantsQueryHandler creates a handler for participant
// queries.
func NewGetOrderParticipantsQueryHandler(db *gorm.DB) GetOrderParticipantsQueryHandler {
	return GetOrderParticipantsQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFound error when the order
// does not exist.
func (h GetOrderParticipantsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderParticipantsQuery,
) (GetOrderParticipantsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderParticipantsQueryResponse{}, err
	}

	var resp GetOrderParticipantsQueryResponse
	var farmerID uuid.UUID
	var buyerID, haulerID *uuid.UUID

	row := h.db.WithContext(ctx).Raw(`
		SELECT farmer_id, buyer_id, hauler_id
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(&farmerID, &buyerID, &haulerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return resp, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return resp, err
	}

	if resp.FarmerID, err = kernel.UUIDFromBytes(farmerID[:]); err != nil {
		return resp, err
	}
	if resp.BuyerID, err = optionalUUID(buyerID); err != nil {
		return resp, err
	}
	if resp.HaulerID, err = optionalUUID(haulerID); err != nil {
		return resp, err
	}

	resp.BidderIDs, err = h.readIDs(ctx, `
		SELECT buyer_id FROM bids
		WHERE order_id = ? AND status = ?
	`, query.OrderID(), int(bid.Pending))
	if err != nil {
		return GetOrderParticipantsQueryResponse{}, err
	}

	resp.AssignedHaulerIDs, err = h.readIDs(ctx, `
		SELECT hauler_id FROM assignments
		WHERE order_id = ? AND status IN (?, ?)
	`, query.OrderID(), int(assignment.Offered), int(assignment.Accepted))
	if err != nil {
		return GetOrderParticipantsQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderParticipantsQueryHandler) readIDs(
	ctx context.Context,
	sqlText string,
	orderID kernel.UUID,
	statuses ...any,
) ([]kernel.UUID, error) {
	args := append([]any{orderID.Bytes()}, statuses...)

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]kernel.UUID, 0)
	for rows.Next() {
		var raw uuid.UUID
		if err = rows.Scan(&raw); err != nil {
			return nil, err
		}

		id, convErr := kernel.UUIDFromBytes(raw[:])
		if convErr != nil {
			return nil, convErr
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
