package queries_test

import (
	"context"
	"testing"
	"time"

	"agromarket/internal/adapters/out/postgres/orderrepo"
	"agromarket/internal/core/application/usecases/queries"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (t *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type GetOpenOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOpenOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOpenOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) newListedOrder(cropType string) *order.Order {
	volume, err := kernel.NewVolume(100000)
	suite.Require().NoError(err)
	price, err := kernel.NewMoney(50)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), cropType, "",
		volume, price, false, time.Now().UTC(),
	)
	suite.Require().NoError(err)
	aggregate.ScheduleDeadline(time.Now().UTC().Add(48 * time.Hour))
	return aggregate
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetOpenOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) TestHandle_MixedStatuses_ReturnsOnlyOpen() {
	ctx := context.Background()
	now := time.Now().UTC()

	listed := suite.newListedOrder("tomato")

	negotiating := suite.newListedOrder("mango")
	bidVolume, err := kernel.NewVolume(40000)
	suite.Require().NoError(err)
	suite.Require().NoError(negotiating.ReceiveBid(bidVolume, now))

	cancelled := suite.newListedOrder("onion")
	suite.Require().NoError(cancelled.Cancel(now))

	for _, aggregate := range []*order.Order{listed, negotiating, cancelled} {
		suite.Require().NoError(suite.orderRepo.Add(ctx, aggregate))
	}

	query := queries.NewGetOpenOrdersQuery()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	byID := make(map[kernel.UUID]queries.GetOpenOrdersQueryResponse)
	for _, resp := range result {
		byID[resp.ID] = resp
	}

	listedResp, ok := byID[listed.ID()]
	suite.Require().True(ok, "listed order should be in results")
	suite.Equal("tomato", listedResp.CropType)
	suite.Equal(order.Listed, listedResp.Status)
	suite.Equal(int64(100000), listedResp.RemainingVolume.Hundredths())
	suite.Equal(int64(50), listedResp.AskingPrice.Cents())

	negotiatingResp, ok := byID[negotiating.ID()]
	suite.Require().True(ok, "negotiating order should be in results")
	suite.Equal(order.Negotiating, negotiatingResp.Status)

	_, ok = byID[cancelled.ID()]
	suite.False(ok, "cancelled order must not be listed")
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	var invalidQuery queries.GetOpenOrdersQuery

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetOpenOrdersQuery constructor")
}

func TestGetOpenOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOpenOrdersQueryHandlerTestSuite))
}
