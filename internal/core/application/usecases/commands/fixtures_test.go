package commands_test

import (
	"testing"
	"time"

	"agromarket/internal/core/domain/model/bid"
	"agromarket/internal/core/domain/model/escrow"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func newActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(role, kernel.NewUUID())
	require.NoError(t, err)
	return actor
}

func money(t *testing.T, cents int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(cents)
	require.NoError(t, err)
	return m
}

func volume(t *testing.T, hundredths int64) kernel.Volume {
	t.Helper()
	v, err := kernel.NewVolume(hundredths)
	require.NoError(t, err)
	return v
}

// listedOrder creates a 1000.00 kg order at 50 cents/kg owned by farmer.
func listedOrder(t *testing.T, farmer kernel.Actor) *order.Order {
	t.Helper()
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), farmer.ID(), "tomato", "roma",
		volume(t, 100000), money(t, 50), false, time.Now().UTC(),
	)
	require.NoError(t, err)
	return aggregate
}

// negotiatingOrder is a listed order with one pending 600.00 kg bid at 48
// cents/kg from buyer.
func negotiatingOrder(t *testing.T, farmer, buyer kernel.Actor) (*order.Order, *bid.Bid) {
	t.Helper()
	aggregate := listedOrder(t, farmer)

	entity, err := bid.NewBid(
		kernel.NewUUID(), aggregate.ID(), buyer.ID(),
		money(t, 48), volume(t, 60000), "", nil, time.Now().UTC(),
	)
	require.NoError(t, err)
	require.NoError(t, aggregate.ReceiveBid(entity.Volume(), time.Now().UTC()))

	return aggregate, entity
}

// inTransitOrder walks an order to InTransit with hauler carrying it and a
// held escrow over the accepted bid's total. Returns the raw tokens.
func inTransitOrder(t *testing.T, farmer, buyer, hauler kernel.Actor) (*order.Order, *escrow.Escrow, escrow.RawTokens) {
	t.Helper()
	now := time.Now().UTC()

	aggregate, entity := negotiatingOrder(t, farmer, buyer)
	require.NoError(t, entity.Accept(now))
	require.NoError(t, aggregate.Lock(buyer.ID(), entity.PricePerKg(), entity.Volume(), now))
	require.NoError(t, aggregate.BeginLogisticsSearch(now))
	require.NoError(t, aggregate.BeginTransit(hauler.ID(), now))

	funds, tokens, err := escrow.NewEscrow(
		kernel.NewUUID(), aggregate.ID(), buyer.ID(), entity.Total(), 20, now,
	)
	require.NoError(t, err)

	return aggregate, funds, tokens
}
