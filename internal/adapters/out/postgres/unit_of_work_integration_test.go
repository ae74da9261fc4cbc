package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	postgres_adapter "agromarket/internal/adapters/out/postgres"
	"agromarket/internal/adapters/out/postgres/assignmentrepo"
	"agromarket/internal/adapters/out/postgres/bidrepo"
	"agromarket/internal/adapters/out/postgres/escrowrepo"
	"agromarket/internal/adapters/out/postgres/orderrepo"
	"agromarket/internal/adapters/out/postgres/transitionlogrepo"
	"agromarket/internal/core/domain/model/bid"
	"agromarket/internal/core/domain/model/escrow"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
	"agromarket/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work against a
// real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&bidrepo.BidDTO{},
		&assignmentrepo.AssignmentDTO{},
		&escrowrepo.EscrowDTO{},
		&transitionlogrepo.TransitionDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, bids, assignments, escrows, transitions").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newListedOrder() *order.Order {
	volume, err := kernel.NewVolume(100000)
	suite.Require().NoError(err)
	price, err := kernel.NewMoney(50)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), "tomato", "roma",
		volume, price, false, time.Now().UTC(),
	)
	suite.Require().NoError(err)
	aggregate.ScheduleDeadline(time.Now().UTC().Add(48 * time.Hour))
	return aggregate
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "factory should create separate instances")
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.BidRepository())
	suite.NotNil(uow1.AssignmentRepository())
	suite.NotNil(uow1.EscrowRepository())
	suite.NotNil(uow1.TransitionLogRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "repeated begin should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsChanges() {
	ctx := context.Background()
	aggregate := suite.newListedOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsAcrossRepositories() {
	ctx := context.Background()
	now := time.Now().UTC()
	aggregate := suite.newListedOrder()

	pricePerKg, err := kernel.NewMoney(48)
	suite.Require().NoError(err)
	bidVolume, err := kernel.NewVolume(60000)
	suite.Require().NoError(err)
	offer, err := bid.NewBid(
		kernel.NewUUID(), aggregate.ID(), kernel.NewUUID(),
		pricePerKg, bidVolume, "first harvest", nil, now,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.ReceiveBid(bidVolume, now))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.BidRepository().Add(ctx, offer))

	record, err := order.NewTransitionRecord(
		kernel.NewUUID(), aggregate.ID(), order.Listed, order.Negotiating,
		order.EventBidSubmitted, kernel.RoleBuyer.String(), offer.BuyerID().String(), now,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.TransitionLogRepository().Append(ctx, record))
	suite.Require().NoError(uow.Commit(ctx))

	fresh := suite.factory.Create()

	restored, err := fresh.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Negotiating, restored.Status())

	pending, err := fresh.BidRepository().GetAllPendingForOrder(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal(int64(28800), pending[0].Total().Cents())

	history, err := fresh.TransitionLogRepository().GetAllForOrder(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().Len(history, 1)
	suite.Equal(order.EventBidSubmitted, history[0].Event())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_EscrowRoundTripKeepsDigestsOnly() {
	ctx := context.Background()
	now := time.Now().UTC()
	aggregate := suite.newListedOrder()
	total, err := kernel.NewMoney(28800)
	suite.Require().NoError(err)

	funds, tokens, err := escrow.NewEscrow(
		kernel.NewUUID(), aggregate.ID(), kernel.NewUUID(), total, 20, now,
	)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.EscrowRepository().Add(ctx, funds))
	suite.Require().NoError(uow.Commit(ctx))

	restored, err := suite.factory.Create().EscrowRepository().GetForOrder(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(escrow.Held, restored.Status())
	suite.NotEqual(tokens.Pickup, restored.PickupTokenHash(),
		"raw token must never be stored")
	suite.NotEqual(tokens.Delivery, restored.DeliveryTokenHash())

	// the restored aggregate still verifies the raw token against its digest
	released, err := restored.ReleasePickup(tokens.Pickup, nil, now)
	suite.Require().NoError(err)
	suite.Equal(int64(5760), released.Cents())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_GetAllPastDeadline() {
	ctx := context.Background()
	now := time.Now().UTC()

	stalled := suite.newListedOrder()
	stalled.ScheduleDeadline(now.Add(-time.Hour))
	fresh := suite.newListedOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, stalled))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, fresh))
	suite.Require().NoError(uow.Commit(ctx))

	expired, err := suite.factory.Create().OrderRepository().GetAllPastDeadline(ctx, now)
	suite.Require().NoError(err)
	suite.Require().Len(expired, 1)
	suite.True(expired[0].ID().IsEqual(stalled.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_UpdateMissingOrderFails() {
	ctx := context.Background()
	aggregate := suite.newListedOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	err := uow.OrderRepository().Update(ctx, aggregate)
	suite.Require().Error(err)
	suite.True(errors.Is(err, gorm.ErrRecordNotFound))

	suite.Require().NoError(uow.Rollback(ctx))
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
