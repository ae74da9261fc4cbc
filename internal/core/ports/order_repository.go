// Package ports defines the contracts between the domain layer and
// infrastructure: repositories, unit of work, event publishing, and external
// marketplace services. These interfaces enable dependency inversion and
// testability.
package ports

import (
	"context"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns an ObjectNotFound error when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllOpen retrieves all orders that still accept bids, i.e. orders
	// in Listed or Negotiating status.
	GetAllOpen(ctx context.Context) ([]*order.Order, error)

	// GetAllPastDeadline retrieves all non-terminal orders whose progress
	// deadline has passed. Used by the deadline monitor to cancel stalled
	// deals.
	GetAllPastDeadline(ctx context.Context, now time.Time) ([]*order.Order, error)
}
