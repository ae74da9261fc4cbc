package kernel

import (
	"fmt"

	"agromarket/internal/pkg/errs"
)

// Volume is a produce quantity in hundredths of a kilogram, giving exact
// fixed-point arithmetic with two decimal places. 600.00 kg is Volume(60000).
//
// The zero value is a valid empty quantity (an order can sell out completely).
// Volume is immutable: arithmetic methods return new values.
type Volume int64

// NewVolume creates a Volume from hundredths of a kilogram.
// Negative quantities are invalid.
func NewVolume(hundredthsKg int64) (Volume, error) {
	if hundredthsKg < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("volume",
			fmt.Errorf("%d hundredths of a kg is negative", hundredthsKg))
	}
	return Volume(hundredthsKg), nil
}

// Hundredths returns the quantity in hundredths of a kilogram.
func (v Volume) Hundredths() int64 {
	return int64(v)
}

// IsZero reports whether the quantity is exactly zero.
func (v Volume) IsZero() bool {
	return v == 0
}

// Exceeds reports whether v is strictly greater than other.
// Used for the capacity guard: a requested volume exceeding the remaining
// volume is a CapacityExceeded rejection.
func (v Volume) Exceeds(other Volume) bool {
	return v > other
}

// Add returns the sum of two quantities.
func (v Volume) Add(other Volume) Volume {
	return v + other
}

// Sub returns v minus other.
// Returns an error if the result would be negative; callers must check
// capacity with Exceeds before reserving volume.
func (v Volume) Sub(other Volume) (Volume, error) {
	if other > v {
		return 0, errs.NewValueIsInvalidErrorWithCause("volume",
			fmt.Errorf("subtracting %s from %s yields a negative quantity", other, v))
	}
	return v - other, nil
}

// Price returns the total price of this quantity at pricePerKg, in exact
// integer cents: hundredths-of-kg times cents-per-kg divided by 100.
func (v Volume) Price(pricePerKg Money) Money {
	return Money(int64(v) * pricePerKg.Cents() / 100)
}

// String formats the quantity with two decimal places, e.g. "600.00".
func (v Volume) String() string {
	return fmt.Sprintf("%d.%02d", int64(v)/100, int64(v)%100)
}
