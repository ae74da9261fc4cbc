package escrow

import (
	"fmt"

	"agromarket/internal/pkg/errs"
)

// Status represents the lifecycle state of an escrow account.
//
//	Held ──┬──> PartiallyReleased ──┬──> FullyReleased
//	       │                        └──> Refunded
//	       └──> Refunded
//
// FullyReleased and Refunded are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Held is the initial status: the buyer's funds are locked in full.
	Held

	// PartiallyReleased means the pickup share has been paid out to the
	// farmer; the remainder stays locked until delivery.
	PartiallyReleased

	// FullyReleased means the full amount has been paid out.
	FullyReleased

	// Refunded means the locked remainder went back to the buyer after a
	// cancellation.
	Refunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "Unknown",
		Held:              "Held",
		PartiallyReleased: "PartiallyReleased",
		FullyReleased:     "FullyReleased",
		Refunded:          "Refunded",
	}
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	if s < Held || s > Refunded {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid escrow status", s))
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

// IsTerminal reports whether any funds can still move.
func (s Status) IsTerminal() bool {
	return s == FullyReleased || s == Refunded
}
