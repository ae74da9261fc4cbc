package services

import (
	"fmt"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"
)

// Action identifies a marketplace operation for authorization purposes.
type Action int

const (
	// ActionUnknown is the zero value and never authorized.
	ActionUnknown Action = iota

	// ActionListOrder publishes a crop batch to the market.
	ActionListOrder

	// ActionSubmitBid places a bid on a listed order.
	ActionSubmitBid

	// ActionWithdrawBid retracts the buyer's own pending bid.
	ActionWithdrawBid

	// ActionRejectBid declines a pending bid on the farmer's order.
	ActionRejectBid

	// ActionAcceptBid accepts a pending bid, locking volume and funding
	// escrow.
	ActionAcceptBid

	// ActionRequestHaulerMatch starts the logistics search.
	ActionRequestHaulerMatch

	// ActionAcceptAssignment takes on an offered haul.
	ActionAcceptAssignment

	// ActionDeclineAssignment turns down an offered haul.
	ActionDeclineAssignment

	// ActionVerifyPickup presents the pickup token at the farm.
	ActionVerifyPickup

	// ActionVerifyDelivery presents the delivery token at the buyer's
	// site.
	ActionVerifyDelivery

	// ActionCancelOrder withdraws an order from the market.
	ActionCancelOrder

	// ActionSubscribe opens a live feed of an order's transitions.
	ActionSubscribe
)

// AccessGate is the domain service deciding which actor roles may perform
// each marketplace action. It checks roles only; ownership checks (this
// farmer's order, this buyer's bid, this hauler's assignment) stay with the
// command handlers, which have the aggregates loaded.
type AccessGate struct{}

// NewAccessGate creates a new AccessGate instance.
func NewAccessGate() AccessGate {
	return AccessGate{}
}

// permissions maps each action to the roles allowed to perform it.
func permissions() map[Action][]kernel.Role {
	return map[Action][]kernel.Role{
		ActionListOrder:          {kernel.RoleFarmer},
		ActionSubmitBid:          {kernel.RoleBuyer},
		ActionWithdrawBid:        {kernel.RoleBuyer},
		ActionRejectBid:          {kernel.RoleFarmer},
		ActionAcceptBid:          {kernel.RoleFarmer},
		ActionRequestHaulerMatch: {kernel.RoleFarmer, kernel.RoleSystem},
		ActionAcceptAssignment:   {kernel.RoleHauler},
		ActionDeclineAssignment:  {kernel.RoleHauler},
		ActionVerifyPickup:       {kernel.RoleHauler},
		ActionVerifyDelivery:     {kernel.RoleHauler},
		ActionCancelOrder:        {kernel.RoleFarmer, kernel.RoleSystem},
		ActionSubscribe: {
			kernel.RoleFarmer, kernel.RoleBuyer, kernel.RoleHauler, kernel.RoleSystem,
		},
	}
}

// Authorize checks whether the actor's role may perform the action.
// Returns an Unauthorized error naming the role otherwise.
func (g AccessGate) Authorize(actor kernel.Actor, action Action) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	allowed, ok := permissions()[action]
	if !ok {
		return errs.NewValueIsInvalidErrorWithCause("action",
			fmt.Errorf("%d is not a known action", action))
	}

	for _, role := range allowed {
		if actor.Role() == role {
			return nil
		}
	}

	return errs.NewUnauthorizedError(actor.Role().String(), actor.ID().String(),
		"role may not perform this action")
}
