package matching

import (
	"context"
	"testing"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lockedOrder(t *testing.T) *order.Order {
	t.Helper()

	volume, err := kernel.NewVolume(40000)
	require.NoError(t, err)
	price, err := kernel.NewMoney(55)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), "Tomato", "Roma", volume, price, false, time.Now().UTC())
	require.NoError(t, err)

	return aggregate
}

func Test_RosterMatcher_Match(t *testing.T) {
	fee, err := kernel.NewMoney(120000)
	require.NoError(t, err)

	t.Run("cycles through the roster", func(t *testing.T) {
		roster := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}
		matcher := NewRosterMatcher(roster, fee, 35.5)
		aggregate := lockedOrder(t)

		first, matchErr := matcher.Match(context.Background(), aggregate)
		require.NoError(t, matchErr)
		second, matchErr := matcher.Match(context.Background(), aggregate)
		require.NoError(t, matchErr)
		third, matchErr := matcher.Match(context.Background(), aggregate)
		require.NoError(t, matchErr)

		assert.True(t, first.HaulerID.IsEqual(roster[0]))
		assert.True(t, second.HaulerID.IsEqual(roster[1]))
		assert.True(t, third.HaulerID.IsEqual(roster[0]))
		assert.Equal(t, fee, first.Fee)
		assert.InDelta(t, 35.5, first.EstimatedDistanceKm, 0.001)
	})

	t.Run("empty roster means no hauler found", func(t *testing.T) {
		matcher := NewRosterMatcher(nil, fee, 35.5)

		_, matchErr := matcher.Match(context.Background(), lockedOrder(t))
		assert.ErrorIs(t, matchErr, errs.ErrObjectNotFound)
	})
}
