package assignment

import (
	"fmt"

	"agromarket/internal/pkg/errs"
)

// Status represents the lifecycle state of a logistics assignment.
//
//	Offered ──┬──> Accepted ──> Completed
//	          └──> Declined
//
// Declined and Completed are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Offered is the initial status: the hauler has been matched to the
	// order but has not responded yet.
	Offered

	// Accepted means the hauler committed to the haul.
	Accepted

	// Declined means the hauler turned the offer down; the order goes back
	// to logistics search.
	Declined

	// Completed means the haul finished and delivery was verified.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Offered:   "Offered",
		Accepted:  "Accepted",
		Declined:  "Declined",
		Completed: "Completed",
	}
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	if s < Offered || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid assignment status", s))
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

// IsTerminal reports whether the assignment can still change state.
func (s Status) IsTerminal() bool {
	return s == Declined || s == Completed
}

// Accept transitions Offered to Accepted.
func (s Status) Accept() (Status, error) {
	if s != Offered {
		return 0, errs.NewInvalidTransitionError(s.String(), Accepted.String())
	}
	return Accepted, nil
}

// Decline transitions Offered to Declined.
func (s Status) Decline() (Status, error) {
	if s != Offered {
		return 0, errs.NewInvalidTransitionError(s.String(), Declined.String())
	}
	return Declined, nil
}

// Complete transitions Accepted to Completed.
func (s Status) Complete() (Status, error) {
	if s != Accepted {
		return 0, errs.NewInvalidTransitionError(s.String(), Completed.String())
	}
	return Completed, nil
}
