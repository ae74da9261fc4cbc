package queries

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/guard"
)

var ErrGetOrderParticipantsQueryIsNotConstructed = errors.New(
	"GetOrderParticipantsQuery must be created via NewGetOrderParticipantsQuery constructor",
)

// GetOrderParticipantsQuery retrieves the set of actors currently holding a
// role on one order: its farmer, the locked buyer, buyers with pending bids,
// and haulers with a live assignment. Subscription scope is decided against
// this set.
type GetOrderParticipantsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderParticipantsQuery creates a query for one order's participants.
func NewGetOrderParticipantsQuery(orderID kernel.UUID) (GetOrderParticipantsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderParticipantsQuery{}, err
	}

	return GetOrderParticipantsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderParticipantsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderParticipantsQueryIsNotConstructed)
}

// OrderID returns the order whose participants are requested.
func (q GetOrderParticipantsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderParticipantsQueryResponse lists everyone with a current role on
// the order. BuyerID and HaulerID are nil until the order is locked and in
// transit respectively; BidderIDs and AssignedHaulerIDs cover the actors
// whose role exists only through a pending bid or a live assignment.
type GetOrderParticipantsQueryResponse struct {
	FarmerID          kernel.UUID
	BuyerID           *kernel.UUID
	HaulerID          *kernel.UUID
	BidderIDs         []kernel.UUID
	AssignedHaulerIDs []kernel.UUID
}

// HoldsRole reports whether the actor currently holds a role on the order.
// The system actor always does.
func (r GetOrderParticipantsQueryResponse) HoldsRole(actor kernel.Actor) bool {
	switch actor.Role() {
	case kernel.RoleSystem:
		return true
	case kernel.RoleFarmer:
		return r.FarmerID.IsEqual(actor.ID())
	case kernel.RoleBuyer:
		if r.BuyerID != nil && r.BuyerID.IsEqual(actor.ID()) {
			return true
		}
		return containsID(r.BidderIDs, actor.ID())
	case kernel.RoleHauler:
		if r.HaulerID != nil && r.HaulerID.IsEqual(actor.ID()) {
			return true
		}
		return containsID(r.AssignedHaulerIDs, actor.ID())
	}
	return false
}

func containsID(ids []kernel.UUID, id kernel.UUID) bool {
	for _, candidate := range ids {
		if candidate.IsEqual(id) {
			return true
		}
	}
	return false
}
