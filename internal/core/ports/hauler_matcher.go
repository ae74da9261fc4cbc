package ports

import (
	"context"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
)

// MatchProposal is a hauler candidate produced by the matching service.
type MatchProposal struct {
	HaulerID            kernel.UUID
	Fee                 kernel.Money
	EstimatedDistanceKm float64
}

// HaulerMatcher finds a hauler for a locked order. Returns an
// ObjectNotFound error when no hauler is available.
type HaulerMatcher interface {
	Match(ctx context.Context, aggregate *order.Order) (MatchProposal, error)
}
