package bid

import (
	"fmt"

	"agromarket/internal/pkg/errs"
)

// Status represents the lifecycle state of a bid.
//
//	Pending ──┬──> Accepted
//	          ├──> Rejected
//	          └──> Withdrawn
//
// Accepted, Rejected and Withdrawn are terminal: a bid never transitions out
// of them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status: the bid awaits the farmer's decision.
	Pending

	// Accepted means the farmer took this bid; at most one bid per order
	// ever reaches this status.
	Accepted

	// Rejected means the farmer declined the bid, or it was auto-rejected
	// when a sibling bid was accepted.
	Rejected

	// Withdrawn means the buyer pulled the bid back.
	Withdrawn
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Accepted:  "Accepted",
		Rejected:  "Rejected",
		Withdrawn: "Withdrawn",
	}
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	if s < Pending || s > Withdrawn {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid bid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the bid can still change state.
func (s Status) IsTerminal() bool {
	return s == Accepted || s == Rejected || s == Withdrawn
}

func (s Status) close(to Status) (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidTransitionError(s.String(), to.String())
	}
	return to, nil
}

// Accept transitions Pending to Accepted.
func (s Status) Accept() (Status, error) {
	return s.close(Accepted)
}

// Reject transitions Pending to Rejected.
func (s Status) Reject() (Status, error) {
	return s.close(Rejected)
}

// Withdraw transitions Pending to Withdrawn.
func (s Status) Withdraw() (Status, error) {
	return s.close(Withdrawn)
}
