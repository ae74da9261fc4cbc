// Package queries implements the read side of the marketplace: listing open
// orders for buyers and assembling full order snapshots for state
// synchronization. Query handlers read the database directly and bypass the
// domain aggregates.
package queries

import (
	"errors"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/pkg/guard"
)

var ErrGetOpenOrdersQueryIsNotConstructed = errors.New(
	"GetOpenOrdersQuery must be created via NewGetOpenOrdersQuery constructor",
)

// GetOpenOrdersQuery retrieves all orders still accepting bids, i.e. orders
// in Listed or Negotiating status. This is the buyer's marketplace view.
type GetOpenOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOpenOrdersQuery creates a query to retrieve open orders.
func NewGetOpenOrdersQuery() GetOpenOrdersQuery {
	return GetOpenOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenOrdersQueryIsNotConstructed)
}

// GetOpenOrdersQueryResponse represents one open order as shown to bidding
// buyers. RemainingVolume is what a new bid may claim.
type GetOpenOrdersQueryResponse struct {
	ID              kernel.UUID
	FarmerID        kernel.UUID
	CropType        string
	Variety         string
	Grade           string
	RemainingVolume kernel.Volume
	AskingPrice     kernel.Money
	ColdChain       bool
	Status          order.Status
	DeadlineAt      time.Time
}
