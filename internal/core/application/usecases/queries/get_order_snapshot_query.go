package queries

import (
	"errors"
	"time"

	"agromarket/internal/core/domain/model/escrow"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/pkg/guard"
)

var ErrGetOrderSnapshotQueryIsNotConstructed = errors.New(
	"GetOrderSnapshotQuery must be created via NewGetOrderSnapshotQuery constructor",
)

// GetOrderSnapshotQuery retrieves the full current state of one order: the
// order itself, its escrow summary if funded, and the complete transition
// history. Subscribers receive this snapshot on connect before the live
// transition stream starts.
type GetOrderSnapshotQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderSnapshotQuery creates a query for one order's snapshot.
func NewGetOrderSnapshotQuery(orderID kernel.UUID) (GetOrderSnapshotQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderSnapshotQuery{}, err
	}

	return GetOrderSnapshotQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderSnapshotQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderSnapshotQueryIsNotConstructed)
}

// OrderID returns the order whose snapshot is requested.
func (q GetOrderSnapshotQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderSnapshotQueryResponse is the assembled snapshot. Escrow is nil
// until a bid has been accepted and funds locked.
type GetOrderSnapshotQueryResponse struct {
	ID              kernel.UUID
	FarmerID        kernel.UUID
	BuyerID         *kernel.UUID
	HaulerID        *kernel.UUID
	CropType        string
	Variety         string
	Grade           string
	TotalVolume     kernel.Volume
	RemainingVolume kernel.Volume
	AskingPrice     kernel.Money
	AcceptedPrice   *kernel.Money
	ColdChain       bool
	Status          order.Status
	DeadlineAt      time.Time
	UpdatedAt       time.Time
	Escrow          *EscrowSummary
	History         []TransitionEntry
}

// EscrowSummary carries the financial state of a funded order. Token
// digests never leave the write side.
type EscrowSummary struct {
	Total                kernel.Money
	Released             kernel.Money
	PickupReleasePercent int
	Status               escrow.Status
}

// TransitionEntry is one audit trail row of the order's lifecycle.
type TransitionEntry struct {
	From       order.Status
	To         order.Status
	Event      string
	ActorRole  string
	OccurredAt time.Time
}
