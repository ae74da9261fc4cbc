package bid_test

import (
	"testing"
	"time"

	"agromarket/internal/core/domain/model/bid"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingBid(t *testing.T) *bid.Bid {
	t.Helper()

	price, err := kernel.NewMoney(48)
	require.NoError(t, err)
	vol, err := kernel.NewVolume(60000)
	require.NoError(t, err)

	b, err := bid.NewBid(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		price, vol, "fresh batch please", nil, time.Now(),
	)
	require.NoError(t, err)
	return b
}

func TestNewBid(t *testing.T) {
	t.Run("should create a pending bid", func(t *testing.T) {
		b := pendingBid(t)

		assert.Equal(t, bid.Pending, b.Status())
		assert.Equal(t, "fresh batch please", b.Message())
		require.NoError(t, b.Validate())
	})

	t.Run("should reject zero price and zero volume", func(t *testing.T) {
		price, _ := kernel.NewMoney(48)
		vol, _ := kernel.NewVolume(60000)
		var zeroPrice kernel.Money
		var zeroVol kernel.Volume

		_, err := bid.NewBid(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			zeroPrice, vol, "", nil, time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = bid.NewBid(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			price, zeroVol, "", nil, time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value bid fails validation", func(t *testing.T) {
		var b bid.Bid
		require.ErrorIs(t, b.Validate(), bid.ErrBidIsNotConstructed)
	})
}

func TestBid_Total(t *testing.T) {
	b := pendingBid(t)

	// 600.00 kg at 48 cents/kg
	assert.Equal(t, int64(28800), b.Total().Cents())
}

func TestBid_Transitions(t *testing.T) {
	t.Run("accept", func(t *testing.T) {
		b := pendingBid(t)

		require.NoError(t, b.Accept(time.Now()))
		assert.Equal(t, bid.Accepted, b.Status())
	})

	t.Run("reject", func(t *testing.T) {
		b := pendingBid(t)

		require.NoError(t, b.Reject(time.Now()))
		assert.Equal(t, bid.Rejected, b.Status())
	})

	t.Run("withdraw", func(t *testing.T) {
		b := pendingBid(t)

		require.NoError(t, b.Withdraw(time.Now()))
		assert.Equal(t, bid.Withdrawn, b.Status())
	})

	t.Run("a terminal bid never changes again", func(t *testing.T) {
		b := pendingBid(t)
		require.NoError(t, b.Accept(time.Now()))

		require.ErrorIs(t, b.Accept(time.Now()), errs.ErrInvalidTransition)
		require.ErrorIs(t, b.Reject(time.Now()), errs.ErrInvalidTransition)
		require.ErrorIs(t, b.Withdraw(time.Now()), errs.ErrInvalidTransition)
		assert.Equal(t, bid.Accepted, b.Status())
	})
}

func TestBidStatus_IsTerminal(t *testing.T) {
	assert.False(t, bid.Pending.IsTerminal())
	assert.True(t, bid.Accepted.IsTerminal())
	assert.True(t, bid.Rejected.IsTerminal())
	assert.True(t, bid.Withdrawn.IsTerminal())
}

func TestRestoreBid(t *testing.T) {
	src := pendingBid(t)
	require.NoError(t, src.Accept(time.Now()))

	restored, err := bid.RestoreBid(
		src.ID(), src.OrderID(), src.BuyerID(),
		src.PricePerKg(), src.Volume(), src.Status(),
		src.Message(), src.ExpiresAt(), src.CreatedAt(), src.UpdatedAt(),
	)

	require.NoError(t, err)
	assert.Equal(t, bid.Accepted, restored.Status())
	assert.True(t, src.ID().IsEqual(restored.ID()))
}
