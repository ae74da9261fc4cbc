package ports

import (
	"context"

	"agromarket/internal/core/domain/model/assignment"
	"agromarket/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for logistics
// assignments.
type AssignmentRepository interface {
	// Add persists a new assignment to storage.
	Add(ctx context.Context, entity *assignment.Assignment) error

	// Update persists changes to an existing assignment.
	Update(ctx context.Context, entity *assignment.Assignment) error

	// Get retrieves an assignment by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// GetActiveForOrder retrieves the order's assignment in Offered or
	// Accepted status. At most one such assignment exists per order.
	// Returns an ObjectNotFound error when the order has none.
	GetActiveForOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error)
}
