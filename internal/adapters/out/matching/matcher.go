// Package matching provides the roster-backed hauler matcher used when no
// external logistics service is configured.
package matching

import (
	"context"
	"sync"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
	"agromarket/internal/pkg/errs"
)

// RosterMatcher proposes haulers from a fixed roster in round-robin order.
// The fee quote is flat; distance is the configured average for the region.
type RosterMatcher struct {
	mu     sync.Mutex
	roster []kernel.UUID
	next   int

	fee        kernel.Money
	distanceKm float64
}

// NewRosterMatcher creates a matcher over the given hauler roster.
func NewRosterMatcher(roster []kernel.UUID, fee kernel.Money, distanceKm float64) *RosterMatcher {
	return &RosterMatcher{
		roster:     roster,
		fee:        fee,
		distanceKm: distanceKm,
	}
}

// Match implements ports.HaulerMatcher. Returns an ObjectNotFound error when
// the roster is empty.
func (m *RosterMatcher) Match(_ context.Context, aggregate *order.Order) (ports.MatchProposal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.roster) == 0 {
		return ports.MatchProposal{}, errs.NewObjectNotFoundError("hauler", aggregate.ID().String())
	}

	haulerID := m.roster[m.next%len(m.roster)]
	m.next++

	return ports.MatchProposal{
		HaulerID:            haulerID,
		Fee:                 m.fee,
		EstimatedDistanceKm: m.distanceKm,
	}, nil
}
