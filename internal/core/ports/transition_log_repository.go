package ports

import (
	"context"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
)

// TransitionLogRepository defines the persistence contract for the
// append-only audit trail of order status transitions.
type TransitionLogRepository interface {
	// Append writes a transition record. Records are never updated or
	// deleted.
	Append(ctx context.Context, record order.TransitionRecord) error

	// GetAllForOrder retrieves an order's full transition history in
	// chronological order.
	GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]order.TransitionRecord, error)
}
