package commands_test

import (
	"testing"
	"time"

	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/domain/model/assignment"
	"agromarket/internal/core/domain/model/escrow"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestVerifyDeliveryCommandHandler_Handle(t *testing.T) {
	farmer := newActor(t, kernel.RoleFarmer)
	buyer := newActor(t, kernel.RoleBuyer)
	hauler := newActor(t, kernel.RoleHauler)

	acceptedHaul := func(t *testing.T, aggregate *order.Order) *assignment.Assignment {
		t.Helper()
		haul, err := assignment.NewAssignment(
			kernel.NewUUID(), aggregate.ID(), hauler.ID(), money(t, 3500), 42.5, time.Now().UTC(),
		)
		require.NoError(t, err)
		require.NoError(t, haul.Accept(time.Now().UTC()))
		return haul
	}

	t.Run("valid token settles the order and releases the remainder", func(t *testing.T) {
		aggregate, funds, tokens := inTransitOrder(t, farmer, buyer, hauler)
		_, err := funds.ReleasePickup(tokens.Pickup, nil, time.Now().UTC())
		require.NoError(t, err)
		haul := acceptedHaul(t, aggregate)

		cmd, err := commands.NewVerifyDeliveryCommand(hauler, aggregate.ID(), tokens.Delivery, nil)
		require.NoError(t, err)

		uow := newMockUoW()
		uow.expectTx()
		uow.orders.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
		uow.orders.On("Update", mock.Anything, aggregate).Return(nil).Once()
		uow.escrows.On("GetForOrder", mock.Anything, aggregate.ID()).Return(funds, nil).Once()
		uow.escrows.On("Update", mock.Anything, funds).Return(nil).Once()
		uow.assignments.On("GetActiveForOrder", mock.Anything, aggregate.ID()).Return(haul, nil).Once()
		uow.assignments.On("Update", mock.Anything, haul).Return(nil).Once()
		uow.log.On("Append", mock.Anything, mock.Anything).Return(nil).Twice()

		publisher := &recordingPublisher{}
		h := commands.NewVerifyDeliveryCommandHandler(verificationUoWFactory{uow}, publisher)
		require.NoError(t, h.Handle(t.Context(), cmd))

		assert.Equal(t, order.Settled, aggregate.Status())
		require.NotNil(t, aggregate.SettledAt())
		assert.Equal(t, escrow.FullyReleased, funds.Status())
		assert.Equal(t, funds.Total().Cents(), funds.Released().Cents())
		assert.Equal(t, assignment.Completed, haul.Status())

		events := publisher.Events()
		require.Len(t, events, 2)
		assert.Equal(t, order.EventDeliveryVerified, events[0].Event)
		assert.Equal(t, order.CompletedPendingDeliveryRelease.String(), events[0].To)
		assert.Equal(t, order.EventSettlementFinalized, events[1].Event)
		assert.Equal(t, order.Settled.String(), events[1].To)
		assert.Equal(t, kernel.RoleSystem.String(), events[1].ActorRole)
	})

	t.Run("delivery before pickup is rejected", func(t *testing.T) {
		aggregate, funds, tokens := inTransitOrder(t, farmer, buyer, hauler)

		cmd, err := commands.NewVerifyDeliveryCommand(hauler, aggregate.ID(), tokens.Delivery, nil)
		require.NoError(t, err)

		uow := newMockUoW()
		uow.On("Begin", mock.Anything).Return(nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()
		uow.orders.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
		uow.escrows.On("GetForOrder", mock.Anything, aggregate.ID()).Return(funds, nil).Once()

		h := commands.NewVerifyDeliveryCommandHandler(verificationUoWFactory{uow}, &recordingPublisher{})

		err = h.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.InTransit, aggregate.Status())
	})

	t.Run("pickup token does not unlock the delivery release", func(t *testing.T) {
		aggregate, funds, tokens := inTransitOrder(t, farmer, buyer, hauler)
		_, err := funds.ReleasePickup(tokens.Pickup, nil, time.Now().UTC())
		require.NoError(t, err)

		cmd, err := commands.NewVerifyDeliveryCommand(hauler, aggregate.ID(), tokens.Pickup, nil)
		require.NoError(t, err)

		uow := newMockUoW()
		uow.On("Begin", mock.Anything).Return(nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()
		uow.orders.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
		uow.escrows.On("GetForOrder", mock.Anything, aggregate.ID()).Return(funds, nil).Once()

		h := commands.NewVerifyDeliveryCommandHandler(verificationUoWFactory{uow}, &recordingPublisher{})

		err = h.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrTokenInvalid)
		assert.Equal(t, int64(5760), funds.Released().Cents())
	})
}
