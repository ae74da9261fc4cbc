package ports

import (
	"context"

	"agromarket/internal/core/domain/model/kernel"
)

// GradeEstimator estimates a quality grade for newly listed produce.
// Implementations may call external grading services; the estimate is
// advisory and assigned to the order exactly once.
type GradeEstimator interface {
	Estimate(ctx context.Context, cropType, variety string, volume kernel.Volume) (string, error)
}
