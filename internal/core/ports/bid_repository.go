package ports

import (
	"context"

	"agromarket/internal/core/domain/model/bid"
	"agromarket/internal/core/domain/model/kernel"
)

// BidRepository defines the persistence contract for bid entities.
type BidRepository interface {
	// Add persists a new bid to storage.
	Add(ctx context.Context, entity *bid.Bid) error

	// Update persists changes to an existing bid.
	Update(ctx context.Context, entity *bid.Bid) error

	// Get retrieves a bid by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*bid.Bid, error)

	// GetAllForOrder retrieves every bid placed against an order,
	// regardless of status.
	GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*bid.Bid, error)

	// GetAllPendingForOrder retrieves the bids still awaiting the
	// farmer's decision. Used for the sibling auto-reject on accept and
	// for the return-to-listing check when the last bid closes.
	GetAllPendingForOrder(ctx context.Context, orderID kernel.UUID) ([]*bid.Bid, error)
}
