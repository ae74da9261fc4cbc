package ports

import (
	"context"

	"agromarket/internal/core/domain/model/escrow"
	"agromarket/internal/core/domain/model/kernel"
)

// EscrowRepository defines the persistence contract for escrow aggregates.
// Only token digests ever cross this boundary; raw verification tokens are
// never persisted.
type EscrowRepository interface {
	// Add persists a new escrow to storage.
	Add(ctx context.Context, aggregate *escrow.Escrow) error

	// Update persists changes to an existing escrow.
	Update(ctx context.Context, aggregate *escrow.Escrow) error

	// GetForOrder retrieves the escrow backing an order. An order has at
	// most one escrow over its lifetime.
	GetForOrder(ctx context.Context, orderID kernel.UUID) (*escrow.Escrow, error)
}
