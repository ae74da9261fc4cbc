package commands

import (
	"time"

	"agromarket/internal/pkg/errs"
)

// Policy carries the tunable marketplace rules handlers apply: the escrow
// share released at pickup and how long an order may sit without qualifying
// progress before the deadline monitor cancels it.
type Policy struct {
	pickupReleasePercent int
	progressWindow       time.Duration
}

// NewPolicy creates a Policy with validation.
func NewPolicy(pickupReleasePercent int, progressWindow time.Duration) (Policy, error) {
	if pickupReleasePercent < 1 || pickupReleasePercent > 99 {
		return Policy{}, errs.NewValueIsOutOfRangeError(
			"pickupReleasePercent", pickupReleasePercent, 1, 99)
	}
	if progressWindow <= 0 {
		return Policy{}, errs.NewValueIsInvalidError("progressWindow")
	}

	return Policy{
		pickupReleasePercent: pickupReleasePercent,
		progressWindow:       progressWindow,
	}, nil
}

// DefaultPolicy returns the stock marketplace rules: 20% released at pickup
// and a 48-hour progress window.
func DefaultPolicy() Policy {
	return Policy{
		pickupReleasePercent: 20,
		progressWindow:       48 * time.Hour,
	}
}

// PickupReleasePercent returns the escrow share released at pickup.
func (p Policy) PickupReleasePercent() int {
	return p.pickupReleasePercent
}

// ProgressWindow returns how long an order may stall before cancellation.
func (p Policy) ProgressWindow() time.Duration {
	return p.progressWindow
}

// DeadlineFrom returns the progress deadline for an order that last moved
// at now.
func (p Policy) DeadlineFrom(now time.Time) time.Time {
	return now.Add(p.progressWindow)
}
