// Package grading provides the local grade estimator used when no external
// grading service is configured.
package grading

import (
	"context"
	"strings"

	"agromarket/internal/core/domain/model/kernel"
)

// crops whose named varieties routinely grade premium on intake.
var premiumVarieties = map[string]string{
	"mango":   "alphonso",
	"grape":   "thompson",
	"tomato":  "roma",
	"avocado": "hass",
}

// HeuristicEstimator grades produce from the listing metadata alone. It is
// deliberately conservative: a named premium variety grades A, any other
// named variety B, and unnamed produce C.
type HeuristicEstimator struct{}

// NewHeuristicEstimator creates the local estimator.
func NewHeuristicEstimator() HeuristicEstimator {
	return HeuristicEstimator{}
}

// Estimate implements ports.GradeEstimator. It never fails.
func (HeuristicEstimator) Estimate(
	_ context.Context,
	cropType, variety string,
	_ kernel.Volume,
) (string, error) {
	if variety == "" {
		return "C", nil
	}

	if premium, ok := premiumVarieties[strings.ToLower(cropType)]; ok &&
		strings.EqualFold(variety, premium) {
		return "A", nil
	}

	return "B", nil
}
