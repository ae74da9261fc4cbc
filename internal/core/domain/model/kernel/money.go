package kernel

import (
	"fmt"

	"agromarket/internal/pkg/errs"
)

// Money is a monetary amount in integer minor units (cents).
// All escrow arithmetic happens on Money; fractional currency never appears
// in the domain, which keeps release splits exact under any percentage.
//
// The zero value is a valid zero amount. Money is immutable: arithmetic
// methods return new values.
//
// Example:
//
//	total, _ := kernel.NewMoney(28800)
//	pickup := total.Percent(20)  // 5760 cents
//	rest, _ := total.Sub(pickup) // 23040 cents
type Money int64

// NewMoney creates a Money amount from minor units.
// Negative amounts are invalid everywhere in this domain.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%d cents is negative", cents))
	}
	return Money(cents), nil
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	return int64(m)
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m == 0
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub returns m minus other.
// Returns an error if the result would be negative, which in this domain
// always signals a broken invariant rather than a valid balance.
func (m Money) Sub(other Money) (Money, error) {
	if other > m {
		return 0, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("subtracting %d from %d yields a negative amount", other, m))
	}
	return m - other, nil
}

// Percent returns pct percent of the amount, truncated toward zero.
// Truncation means Percent(20) plus the remainder always reassembles the
// original total exactly.
func (m Money) Percent(pct int) Money {
	return Money(int64(m) * int64(pct) / 100)
}

// String formats the amount as major.minor units, e.g. "288.00".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", int64(m)/100, int64(m)%100)
}
