// Package order provides domain entities and business logic for produce order
// management in the marketplace core. It implements the Order aggregate root
// with lifecycle management and the authoritative state transition table.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, volume bookkeeping, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must have a valid unique identifier, crop type, positive volume and price
//   - Status follows the defined workflow: Listed -> Negotiating ->
//     LockedPendingLogistics -> LogisticsSearch -> InTransit ->
//     CompletedPendingDeliveryRelease -> Settled, with Cancelled reachable
//     from every non-terminal state
//   - Remaining volume never exceeds total volume
//   - The quality grade is assigned once and never changes
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
// It performs no I/O: timestamps are injected by callers and persistence lives
// behind repository ports.
package order
