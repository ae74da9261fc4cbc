package commands_test

import (
	"testing"

	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/domain/model/bid"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWithdrawBidCommandHandler_Handle(t *testing.T) {
	farmer := newActor(t, kernel.RoleFarmer)
	buyer := newActor(t, kernel.RoleBuyer)

	t.Run("withdrawing the last pending bid returns the order to Listed", func(t *testing.T) {
		aggregate, entity := negotiatingOrder(t, farmer, buyer)

		cmd, err := commands.NewWithdrawBidCommand(buyer, aggregate.ID(), entity.ID())
		require.NoError(t, err)

		uow := newMockUoW()
		uow.expectTx()
		uow.bids.On("Get", mock.Anything, entity.ID()).Return(entity, nil).Once()
		uow.bids.On("Update", mock.Anything, entity).Return(nil).Once()
		uow.bids.On("GetAllPendingForOrder", mock.Anything, aggregate.ID()).
			Return([]*bid.Bid{entity}, nil).Once()
		uow.orders.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
		uow.orders.On("Update", mock.Anything, aggregate).Return(nil).Once()
		uow.log.On("Append", mock.Anything, mock.Anything).Return(nil).Twice()

		publisher := &recordingPublisher{}
		h := commands.NewWithdrawBidCommandHandler(bidUoWFactory{uow}, publisher)
		require.NoError(t, h.Handle(t.Context(), cmd))

		assert.Equal(t, bid.Withdrawn, entity.Status())
		assert.Equal(t, order.Listed, aggregate.Status())

		events := publisher.Events()
		require.Len(t, events, 2)
		assert.Equal(t, order.EventBidWithdrawn, events[0].Event)
		assert.Equal(t, order.EventReturnedToListing, events[1].Event)
		assert.Equal(t, order.Listed.String(), events[1].To)
	})

	t.Run("order stays Negotiating while other bids are pending", func(t *testing.T) {
		aggregate, entity := negotiatingOrder(t, farmer, buyer)

		other, err := bid.NewBid(
			kernel.NewUUID(), aggregate.ID(), kernel.NewUUID(),
			money(t, 45), volume(t, 20000), "", nil, aggregate.UpdatedAt(),
		)
		require.NoError(t, err)

		cmd, err := commands.NewWithdrawBidCommand(buyer, aggregate.ID(), entity.ID())
		require.NoError(t, err)

		uow := newMockUoW()
		uow.expectTx()
		uow.bids.On("Get", mock.Anything, entity.ID()).Return(entity, nil).Once()
		uow.bids.On("Update", mock.Anything, entity).Return(nil).Once()
		uow.bids.On("GetAllPendingForOrder", mock.Anything, aggregate.ID()).
			Return([]*bid.Bid{entity, other}, nil).Once()
		uow.orders.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
		uow.log.On("Append", mock.Anything, mock.Anything).Return(nil).Once()

		h := commands.NewWithdrawBidCommandHandler(bidUoWFactory{uow}, &recordingPublisher{})
		require.NoError(t, h.Handle(t.Context(), cmd))

		assert.Equal(t, order.Negotiating, aggregate.Status())
	})

	t.Run("a buyer cannot withdraw someone else's bid", func(t *testing.T) {
		aggregate, entity := negotiatingOrder(t, farmer, buyer)
		stranger := newActor(t, kernel.RoleBuyer)

		cmd, err := commands.NewWithdrawBidCommand(stranger, aggregate.ID(), entity.ID())
		require.NoError(t, err)

		uow := newMockUoW()
		uow.On("Begin", mock.Anything).Return(nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()
		uow.bids.On("Get", mock.Anything, entity.ID()).Return(entity, nil).Once()

		h := commands.NewWithdrawBidCommandHandler(bidUoWFactory{uow}, &recordingPublisher{})

		err = h.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrUnauthorized)
		assert.Equal(t, bid.Pending, entity.Status())
	})
}
