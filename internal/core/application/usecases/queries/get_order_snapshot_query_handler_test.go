package queries_test

import (
	"context"
	"testing"
	"time"

	"agromarket/internal/adapters/out/postgres/escrowrepo"
	"agromarket/internal/adapters/out/postgres/orderrepo"
	"agromarket/internal/adapters/out/postgres/transitionlogrepo"
	"agromarket/internal/core/application/usecases/queries"
	"agromarket/internal/core/domain/model/escrow"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderSnapshotQueryHandlerTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	handler    queries.GetOrderSnapshotQueryHandler
	orderRepo  *orderrepo.GormOrderRepository
	escrowRepo *escrowrepo.GormEscrowRepository
	logRepo    *transitionlogrepo.GormTransitionLogRepository
}

func (suite *GetOrderSnapshotQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
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
		&escrowrepo.EscrowDTO{},
		&transitionlogrepo.TransitionDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderSnapshotQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
	suite.escrowRepo = escrowrepo.NewGormEscrowRepository(db, &mockAggregateTracker{})
	suite.logRepo = transitionlogrepo.NewGormTransitionLogRepository(db)
}

func (suite *GetOrderSnapshotQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderSnapshotQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, escrows, transitions").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderSnapshotQueryHandlerTestSuite) TestHandle_ListedOrder_NoEscrowEmptyHistory() {
	ctx := context.Background()
	now := time.Now().UTC()

	volume, err := kernel.NewVolume(100000)
	suite.Require().NoError(err)
	price, err := kernel.NewMoney(50)
	suite.Require().NoError(err)
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), "tomato", "roma",
		volume, price, true, now,
	)
	suite.Require().NoError(err)
	aggregate.ScheduleDeadline(now.Add(48 * time.Hour))
	suite.Require().NoError(suite.orderRepo.Add(ctx, aggregate))

	query, err := queries.NewGetOrderSnapshotQuery(aggregate.ID())
	suite.Require().NoError(err)

	snapshot, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.True(snapshot.ID.IsEqual(aggregate.ID()))
	suite.Equal("tomato", snapshot.CropType)
	suite.Equal("roma", snapshot.Variety)
	suite.True(snapshot.ColdChain)
	suite.Equal(order.Listed, snapshot.Status)
	suite.Equal(int64(100000), snapshot.TotalVolume.Hundredths())
	suite.Nil(snapshot.BuyerID)
	suite.Nil(snapshot.AcceptedPrice)
	suite.Nil(snapshot.Escrow)
	suite.Empty(snapshot.History)
}

func (suite *GetOrderSnapshotQueryHandlerTestSuite) TestHandle_FundedOrder_IncludesEscrowAndHistory() {
	ctx := context.Background()
	now := time.Now().UTC()

	volume, err := kernel.NewVolume(100000)
	suite.Require().NoError(err)
	price, err := kernel.NewMoney(50)
	suite.Require().NoError(err)
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), "mango", "alphonso",
		volume, price, false, now,
	)
	suite.Require().NoError(err)
	aggregate.ScheduleDeadline(now.Add(48 * time.Hour))

	bidVolume, err := kernel.NewVolume(60000)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.ReceiveBid(bidVolume, now))

	acceptedPrice, err := kernel.NewMoney(48)
	suite.Require().NoError(err)
	buyerID := kernel.NewUUID()
	suite.Require().NoError(aggregate.Lock(buyerID, acceptedPrice, bidVolume, now))
	suite.Require().NoError(suite.orderRepo.Add(ctx, aggregate))

	total, err := kernel.NewMoney(28800)
	suite.Require().NoError(err)
	funds, _, err := escrow.NewEscrow(kernel.NewUUID(), aggregate.ID(), buyerID, total, 20, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.escrowRepo.Add(ctx, funds))

	walk := []struct {
		from  order.Status
		to    order.Status
		event string
	}{
		{order.Unknown, order.Listed, order.EventOrderListed},
		{order.Listed, order.Negotiating, order.EventBidSubmitted},
		{order.Negotiating, order.LockedPendingLogistics, order.EventBidAccepted},
	}
	for i, step := range walk {
		record, recordErr := order.NewTransitionRecord(
			kernel.NewUUID(), aggregate.ID(), step.from, step.to, step.event,
			kernel.RoleFarmer.String(), aggregate.FarmerID().String(),
			now.Add(time.Duration(i)*time.Second),
		)
		suite.Require().NoError(recordErr)
		suite.Require().NoError(suite.logRepo.Append(ctx, record))
	}

	query, err := queries.NewGetOrderSnapshotQuery(aggregate.ID())
	suite.Require().NoError(err)

	snapshot, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(order.LockedPendingLogistics, snapshot.Status)
	suite.Require().NotNil(snapshot.BuyerID)
	suite.True(snapshot.BuyerID.IsEqual(buyerID))
	suite.Require().NotNil(snapshot.AcceptedPrice)
	suite.Equal(int64(48), snapshot.AcceptedPrice.Cents())
	suite.Equal(int64(40000), snapshot.RemainingVolume.Hundredths())

	suite.Require().NotNil(snapshot.Escrow)
	suite.Equal(int64(28800), snapshot.Escrow.Total.Cents())
	suite.Equal(int64(0), snapshot.Escrow.Released.Cents())
	suite.Equal(20, snapshot.Escrow.PickupReleasePercent)
	suite.Equal(escrow.Held, snapshot.Escrow.Status)

	suite.Require().Len(snapshot.History, 3)
	suite.Equal(order.EventOrderListed, snapshot.History[0].Event)
	suite.Equal(order.EventBidSubmitted, snapshot.History[1].Event)
	suite.Equal(order.EventBidAccepted, snapshot.History[2].Event)
	suite.Equal(order.Negotiating, snapshot.History[2].From)
	suite.Equal(order.LockedPendingLogistics, snapshot.History[2].To)
}

func (suite *GetOrderSnapshotQueryHandlerTestSuite) TestHandle_MissingOrder_ReturnsNotFound() {
	query, err := queries.NewGetOrderSnapshotQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderSnapshotQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	var invalidQuery queries.GetOrderSnapshotQuery

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetOrderSnapshotQuery constructor")
}

func TestGetOrderSnapshotQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderSnapshotQueryHandlerTestSuite))
}
