package order

import (
	"fmt"

	"agromarket/internal/pkg/errs"
)

// Status represents the lifecycle state of a produce order together with its
// escrow. It implements a state machine with defined transitions so orders
// follow the correct marketplace workflow:
//
//	Listed ──> Negotiating ──> LockedPendingLogistics ──> LogisticsSearch
//	  ^             │                                           │
//	  └─────────────┘ (all bids withdrawn/rejected)             v
//	                                                       InTransit
//	                                                            │
//	                              CompletedPendingDeliveryRelease ──> Settled
//
// Cancelled is reachable from every non-terminal state, by explicit
// withdrawal or by the progress deadline elapsing. Settled and Cancelled are
// terminal: orders in those states are archived, never deleted, so escrow
// history stays auditable.
//
// Status is a value object: transition methods validate the move and return
// the next state without mutating the receiver.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Listed is the initial status: the crop batch is visible to buyers and
	// accepting bids.
	Listed

	// Negotiating indicates at least one open bid exists on the order.
	Negotiating

	// LockedPendingLogistics indicates the farmer accepted a bid: volume is
	// reserved, escrow funds are held, and the order waits for a hauler match.
	LockedPendingLogistics

	// LogisticsSearch indicates hauler candidates have been proposed and the
	// order is waiting for one of them to accept the assignment.
	LogisticsSearch

	// InTransit indicates an accepted hauler is moving the goods. The pickup
	// verification happens inside this state without changing it.
	InTransit

	// CompletedPendingDeliveryRelease indicates the delivery token was
	// verified and the final escrow release is being settled.
	CompletedPendingDeliveryRelease

	// Settled is the terminal success state: all escrow funds are released.
	Settled

	// Cancelled is the terminal failure state: the order was withdrawn or
	// timed out and any held escrow funds were refunded.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                         "Unknown",
		Listed:                          "Listed",
		Negotiating:                     "Negotiating",
		LockedPendingLogistics:          "LockedPendingLogistics",
		LogisticsSearch:                 "LogisticsSearch",
		InTransit:                       "InTransit",
		CompletedPendingDeliveryRelease: "CompletedPendingDeliveryRelease",
		Settled:                         "Settled",
		Cancelled:                       "Cancelled",
	}
}

// transitions is the authoritative table of legal moves. Every committed
// state sequence must be a walk of this table; the per-event methods below
// are thin guards over it.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Listed:                          {Negotiating, Cancelled},
		Negotiating:                     {Listed, LockedPendingLogistics, Cancelled},
		LockedPendingLogistics:          {LogisticsSearch, Cancelled},
		LogisticsSearch:                 {InTransit, Cancelled},
		InTransit:                       {CompletedPendingDeliveryRelease, Cancelled},
		CompletedPendingDeliveryRelease: {Settled, Cancelled},
		Settled:                         {},
		Cancelled:                       {},
	}
}

// Validate checks if the Status value is one of the defined states.
// Unknown (0) and any out-of-range value are invalid.
func (s Status) Validate() error {
	if _, ok := transitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer; safe on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status is Settled or Cancelled.
// No transition leaves a terminal state.
func (s Status) IsTerminal() bool {
	return s == Settled || s == Cancelled
}

// CanTransition reports whether moving to the target state is a legal walk of
// the transition table.
func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions()[s] {
		if next == to {
			return true
		}
	}
	return false
}

// transition validates and performs a move to the target state.
func (s Status) transition(to Status) (Status, error) {
	if !s.CanTransition(to) {
		return 0, errs.NewInvalidTransitionError(s.String(), to.String())
	}
	return to, nil
}

// ReceiveBid transitions the status when a buyer submits a bid.
//
// Valid transitions:
//   - Listed -> Negotiating (first bid opens negotiation)
//   - Negotiating -> Negotiating (further bids)
//
// Any other starting state rejects the bid with InvalidTransition.
func (s Status) ReceiveBid() (Status, error) {
	if s == Negotiating {
		return Negotiating, nil
	}
	return s.transition(Negotiating)
}

// ReturnToListing transitions Negotiating back to Listed once the last open
// bid has been withdrawn or rejected and none was accepted.
func (s Status) ReturnToListing() (Status, error) {
	return s.transition(Listed)
}

// Lock transitions Negotiating to LockedPendingLogistics when the farmer
// accepts a bid. The caller reserves volume and funds escrow in the same
// committed step.
func (s Status) Lock() (Status, error) {
	return s.transition(LockedPendingLogistics)
}

// BeginLogisticsSearch transitions LockedPendingLogistics to LogisticsSearch
// when the matching service proposes hauler candidates.
func (s Status) BeginLogisticsSearch() (Status, error) {
	return s.transition(LogisticsSearch)
}

// BeginTransit transitions LogisticsSearch to InTransit when a hauler accepts
// the assignment. The caller guards that no other accepted assignment exists.
func (s Status) BeginTransit() (Status, error) {
	return s.transition(InTransit)
}

// CompleteDelivery transitions InTransit to CompletedPendingDeliveryRelease
// when the delivery token is verified. Pickup verification does not move the
// status: the order stays InTransit while the partial release happens.
func (s Status) CompleteDelivery() (Status, error) {
	return s.transition(CompletedPendingDeliveryRelease)
}

// Settle transitions CompletedPendingDeliveryRelease to Settled once the
// escrow's released total equals the held total.
func (s Status) Settle() (Status, error) {
	return s.transition(Settled)
}

// Cancel transitions any non-terminal state to Cancelled.
// Cancelling a terminal state fails with InvalidTransition; the timer path
// treats that as a silent no-op before calling.
func (s Status) Cancel() (Status, error) {
	return s.transition(Cancelled)
}
