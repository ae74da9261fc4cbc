package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"agromarket/internal/core/domain/model/escrow"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderSnapshotQueryHandler assembles an order's snapshot from the
// orders, escrows and transitions tables.
type GetOrderSnapshotQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderSnapshotQueryHandler creates a handler for snapshot queries.
func NewGetOrderSnapshotQueryHandler(db *gorm.DB) GetOrderSnapshotQueryHandler {
	return GetOrderSnapshotQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFound error when the order
// does not exist.
func (h GetOrderSnapshotQueryHandler) Handle(
	ctx context.Context,
	query GetOrderSnapshotQuery,
) (GetOrderSnapshotQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderSnapshotQueryResponse{}, err
	}

	resp, err := h.readOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderSnapshotQueryResponse{}, err
	}

	resp.Escrow, err = h.readEscrow(ctx, query.OrderID())
	if err != nil {
		return GetOrderSnapshotQueryResponse{}, err
	}

	resp.History, err = h.readHistory(ctx, query.OrderID())
	if err != nil {
		return GetOrderSnapshotQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderSnapshotQueryHandler) readOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (GetOrderSnapshotQueryResponse, error) {
	var resp GetOrderSnapshotQueryResponse
	var id, farmerID uuid.UUID
	var buyerID, haulerID *uuid.UUID
	var totalVolume, remainingVolume, askingPrice int64
	var acceptedPrice sql.NullInt64
	var status int

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			farmer_id,
			buyer_id,
			hauler_id,
			crop_type,
			variety,
			grade,
			total_volume,
			remaining_volume,
			asking_price,
			accepted_price,
			cold_chain,
			status,
			deadline_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	err := row.Scan(
		&id,
		&farmerID,
		&buyerID,
		&haulerID,
		&resp.CropType,
		&resp.Variety,
		&resp.Grade,
		&totalVolume,
		&remainingVolume,
		&askingPrice,
		&acceptedPrice,
		&resp.ColdChain,
		&status,
		&resp.DeadlineAt,
		&resp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return resp, errs.NewObjectNotFoundError("order", orderID.String())
		}
		return resp, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
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

	if resp.TotalVolume, err = kernel.NewVolume(totalVolume); err != nil {
		return resp, err
	}
	if resp.RemainingVolume, err = kernel.NewVolume(remainingVolume); err != nil {
		return resp, err
	}
	if resp.AskingPrice, err = kernel.NewMoney(askingPrice); err != nil {
		return resp, err
	}
	if acceptedPrice.Valid {
		price, priceErr := kernel.NewMoney(acceptedPrice.Int64)
		if priceErr != nil {
			return resp, priceErr
		}
		resp.AcceptedPrice = &price
	}

	resp.Status = order.Status(status)
	return resp, nil
}

func (h GetOrderSnapshotQueryHandler) readEscrow(
	ctx context.Context,
	orderID kernel.UUID,
) (*EscrowSummary, error) {
	var total, released int64
	var pct, status int

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			total,
			released,
			pickup_release_percent,
			status
		FROM escrows
		WHERE order_id = ?
	`, orderID.Bytes()).Row()

	err := row.Scan(&total, &released, &pct, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	summary := EscrowSummary{
		PickupReleasePercent: pct,
		Status:               escrow.Status(status),
	}
	if summary.Total, err = kernel.NewMoney(total); err != nil {
		return nil, err
	}
	if summary.Released, err = kernel.NewMoney(released); err != nil {
		return nil, err
	}

	return &summary, nil
}

func (h GetOrderSnapshotQueryHandler) readHistory(
	ctx context.Context,
	orderID kernel.UUID,
) ([]TransitionEntry, error) {
	history := make([]TransitionEntry, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			from_status,
			to_status,
			event,
			actor_role,
			occurred_at
		FROM transitions
		WHERE order_id = ?
		ORDER BY occurred_at, id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry TransitionEntry
		var fromStatus, toStatus int
		var occurredAt time.Time

		err = rows.Scan(
			&fromStatus,
			&toStatus,
			&entry.Event,
			&entry.ActorRole,
			&occurredAt,
		)
		if err != nil {
			return nil, err
		}

		entry.From = order.Status(fromStatus)
		entry.To = order.Status(toStatus)
		entry.OccurredAt = occurredAt
		history = append(history, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
