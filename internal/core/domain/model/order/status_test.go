package order_test

import (
	"fmt"
	"testing"

	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []order.Status {
	return []order.Status{
		order.Listed,
		order.Negotiating,
		order.LockedPendingLogistics,
		order.LogisticsSearch,
		order.InTransit,
		order.CompletedPendingDeliveryRelease,
		order.Settled,
		order.Cancelled,
	}
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate all defined statuses", func(t *testing.T) {
		for _, status := range allStatuses() {
			t.Run(status.String(), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject invalid status values", func(t *testing.T) {
		for _, status := range []order.Status{order.Unknown, order.Status(-1), order.Status(100)} {
			t.Run(fmt.Sprintf("value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
			})
		}
	})
}

func TestStatus_String(t *testing.T) {
	testCases := []struct {
		status   order.Status
		expected string
	}{
		{order.Listed, "Listed"},
		{order.Negotiating, "Negotiating"},
		{order.LockedPendingLogistics, "LockedPendingLogistics"},
		{order.LogisticsSearch, "LogisticsSearch"},
		{order.InTransit, "InTransit"},
		{order.CompletedPendingDeliveryRelease, "CompletedPendingDeliveryRelease"},
		{order.Settled, "Settled"},
		{order.Cancelled, "Cancelled"},
		{order.Unknown, "Unknown"},
		{order.Status(42), "Unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.status.String())
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Settled.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())

	for _, status := range allStatuses() {
		if status == order.Settled || status == order.Cancelled {
			continue
		}
		assert.False(t, status.IsTerminal(), "%s must not be terminal", status)
	}
}

func TestStatus_TransitionTable(t *testing.T) {
	t.Run("the happy path is a valid walk", func(t *testing.T) {
		walk := allStatuses()[:7] // Listed .. Settled
		for i := 0; i < len(walk)-1; i++ {
			assert.True(t, walk[i].CanTransition(walk[i+1]),
				"%s -> %s must be legal", walk[i], walk[i+1])
		}
	})

	t.Run("every non-terminal state can cancel", func(t *testing.T) {
		for _, status := range allStatuses() {
			if status.IsTerminal() {
				continue
			}
			assert.True(t, status.CanTransition(order.Cancelled), "%s must allow cancel", status)
		}
	})

	t.Run("no transition leaves a terminal state", func(t *testing.T) {
		for _, terminal := range []order.Status{order.Settled, order.Cancelled} {
			for _, target := range allStatuses() {
				assert.False(t, terminal.CanTransition(target),
					"%s -> %s must be illegal", terminal, target)
			}
		}
	})

	t.Run("no transition skips the table", func(t *testing.T) {
		illegal := []struct{ from, to order.Status }{
			{order.Listed, order.LockedPendingLogistics},
			{order.Listed, order.InTransit},
			{order.Negotiating, order.LogisticsSearch},
			{order.LockedPendingLogistics, order.InTransit},
			{order.LogisticsSearch, order.Settled},
			{order.InTransit, order.Settled},
		}
		for _, tc := range illegal {
			assert.False(t, tc.from.CanTransition(tc.to),
				"%s -> %s must be illegal", tc.from, tc.to)
		}
	})
}

func TestStatus_EventMethods(t *testing.T) {
	t.Run("ReceiveBid", func(t *testing.T) {
		next, err := order.Listed.ReceiveBid()
		require.NoError(t, err)
		assert.Equal(t, order.Negotiating, next)

		next, err = order.Negotiating.ReceiveBid()
		require.NoError(t, err)
		assert.Equal(t, order.Negotiating, next)

		_, err = order.InTransit.ReceiveBid()
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("ReturnToListing", func(t *testing.T) {
		next, err := order.Negotiating.ReturnToListing()
		require.NoError(t, err)
		assert.Equal(t, order.Listed, next)

		_, err = order.LockedPendingLogistics.ReturnToListing()
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("Lock", func(t *testing.T) {
		next, err := order.Negotiating.Lock()
		require.NoError(t, err)
		assert.Equal(t, order.LockedPendingLogistics, next)

		_, err = order.Listed.Lock()
		require.ErrorIs(t, err, errs.ErrInvalidTransition)

		// accepting a second bid on an already-locked order is illegal
		_, err = order.LockedPendingLogistics.Lock()
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("BeginLogisticsSearch", func(t *testing.T) {
		next, err := order.LockedPendingLogistics.BeginLogisticsSearch()
		require.NoError(t, err)
		assert.Equal(t, order.LogisticsSearch, next)
	})

	t.Run("BeginTransit", func(t *testing.T) {
		next, err := order.LogisticsSearch.BeginTransit()
		require.NoError(t, err)
		assert.Equal(t, order.InTransit, next)
	})

	t.Run("CompleteDelivery", func(t *testing.T) {
		next, err := order.InTransit.CompleteDelivery()
		require.NoError(t, err)
		assert.Equal(t, order.CompletedPendingDeliveryRelease, next)
	})

	t.Run("Settle", func(t *testing.T) {
		next, err := order.CompletedPendingDeliveryRelease.Settle()
		require.NoError(t, err)
		assert.Equal(t, order.Settled, next)

		_, err = order.InTransit.Settle()
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("Cancel", func(t *testing.T) {
		next, err := order.LogisticsSearch.Cancel()
		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, next)

		_, err = order.Settled.Cancel()
		require.ErrorIs(t, err, errs.ErrInvalidTransition)

		_, err = order.Cancelled.Cancel()
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}
