package cmd

import (
	"time"

	adapterhttp "agromarket/internal/adapters/in/http"
	"agromarket/internal/adapters/in/ws"
	"agromarket/internal/adapters/out/grading"
	"agromarket/internal/adapters/out/matching"
	"agromarket/internal/adapters/out/postgres"
	"agromarket/internal/core/application/ledger"
	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/application/usecases/queries"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/services"
	"agromarket/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	config     Config
	uowFactory postgres.GormUnitOfWorkFactory

	hub       *ws.Hub
	policy    commands.Policy
	estimator ports.GradeEstimator
	matcher   ports.HaulerMatcher
	appLedger *ledger.Ledger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	root := CompositionRoot{
		gormDB:     gormDB,
		config:     config,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		hub:        ws.NewHubWithQueueDepth(config.SubscriberQueueDepth),
		policy:     configuredPolicy(config),
		estimator:  grading.NewHeuristicEstimator(),
		matcher:    configuredMatcher(config),
	}
	root.appLedger = ledger.NewLedger(services.NewAccessGate(), ledger.Handlers{
		ListOrder:          root.createListOrderCommandHandler(),
		SubmitBid:          root.createSubmitBidCommandHandler(),
		WithdrawBid:        root.createWithdrawBidCommandHandler(),
		RejectBid:          root.createRejectBidCommandHandler(),
		AcceptBid:          root.createAcceptBidCommandHandler(),
		RequestHaulerMatch: root.createRequestHaulerMatchCommandHandler(),
		AcceptAssignment:   root.createAcceptAssignmentCommandHandler(),
		DeclineAssignment:  root.createDeclineAssignmentCommandHandler(),
		VerifyPickup:       root.createVerifyPickupCommandHandler(),
		VerifyDelivery:     root.createVerifyDeliveryCommandHandler(),
		CancelOrder:        root.createCancelOrderCommandHandler(),
	})
	return root
}

// configuredPolicy builds marketplace rules from the config, falling back to
// the stock policy when the values are out of range.
func configuredPolicy(config Config) commands.Policy {
	policy, err := commands.NewPolicy(
		config.PickupReleasePercent,
		time.Duration(config.ProgressDeadlineHours)*time.Hour,
	)
	if err != nil {
		return commands.DefaultPolicy()
	}
	return policy
}

// configuredMatcher builds the roster matcher from config, skipping roster
// entries that are not valid UUIDs.
func configuredMatcher(config Config) ports.HaulerMatcher {
	roster := make([]kernel.UUID, 0, len(config.HaulerRoster))
	for _, raw := range config.HaulerRoster {
		haulerID, err := kernel.UUIDFromString(raw)
		if err != nil {
			continue
		}
		roster = append(roster, haulerID)
	}

	fee, err := kernel.NewMoney(config.HaulerFlatFee)
	if err != nil {
		fee = kernel.Money(0)
	}

	return matching.NewRosterMatcher(roster, fee, config.HaulerAvgDistanceKm)
}

func (c *CompositionRoot) CreateLedger() *ledger.Ledger {
	return c.appLedger
}

func (c *CompositionRoot) CreateHub() *ws.Hub {
	return c.hub
}

func (c *CompositionRoot) CreateUnitOfWorkFactory() ports.UnitOfWorkFactory {
	return FuncUnitOfWorkFactory(func() ports.UnitOfWork {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateHTTPServer() *adapterhttp.Server {
	stream := ws.NewStreamHandler(
		c.hub,
		c.appLedger,
		c.CreateGetOrderSnapshotQueryHandler(),
		c.CreateGetOrderParticipantsQueryHandler(),
	)
	return adapterhttp.NewServer(
		c.appLedger,
		stream,
		c.CreateGetOpenOrdersQueryHandler(),
		c.CreateGetOrderSnapshotQueryHandler(),
	)
}

func (c *CompositionRoot) createListOrderCommandHandler() commands.ListOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewListOrderCommandHandler(f, c.estimator, c.hub, c.policy)
}

func (c *CompositionRoot) createSubmitBidCommandHandler() commands.SubmitBidCommandHandler {
	var f commands.BidUoWFactory = FuncBidUoWFactory(func() commands.BidUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitBidCommandHandler(f, c.hub, c.policy)
}

func (c *CompositionRoot) createWithdrawBidCommandHandler() commands.WithdrawBidCommandHandler {
	var f commands.BidUoWFactory = FuncBidUoWFactory(func() commands.BidUoW {
		return c.uowFactory.Create()
	})
	return commands.NewWithdrawBidCommandHandler(f, c.hub)
}

func (c *CompositionRoot) createRejectBidCommandHandler() commands.RejectBidCommandHandler {
	var f commands.BidUoWFactory = FuncBidUoWFactory(func() commands.BidUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRejectBidCommandHandler(f, c.hub)
}

func (c *CompositionRoot) createAcceptBidCommandHandler() commands.AcceptBidCommandHandler {
	var f commands.DealUoWFactory = FuncDealUoWFactory(func() commands.DealUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptBidCommandHandler(f, c.hub, c.policy)
}

func (c *CompositionRoot) createRequestHaulerMatchCommandHandler() commands.RequestHaulerMatchCommandHandler {
	var f commands.LogisticsUoWFactory = FuncLogisticsUoWFactory(func() commands.LogisticsUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRequestHaulerMatchCommandHandler(f, c.matcher, c.hub, c.policy)
}

func (c *CompositionRoot) createAcceptAssignmentCommandHandler() commands.AcceptAssignmentCommandHandler {
	var f commands.LogisticsUoWFactory = FuncLogisticsUoWFactory(func() commands.LogisticsUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptAssignmentCommandHandler(f, c.hub, c.policy)
}

func (c *CompositionRoot) createDeclineAssignmentCommandHandler() commands.DeclineAssignmentCommandHandler {
	var f commands.LogisticsUoWFactory = FuncLogisticsUoWFactory(func() commands.LogisticsUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeclineAssignmentCommandHandler(f, c.hub)
}

func (c *CompositionRoot) createVerifyPickupCommandHandler() commands.VerifyPickupCommandHandler {
	var f commands.VerificationUoWFactory = FuncVerificationUoWFactory(func() commands.VerificationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewVerifyPickupCommandHandler(f, c.hub, c.policy)
}

func (c *CompositionRoot) createVerifyDeliveryCommandHandler() commands.VerifyDeliveryCommandHandler {
	var f commands.VerificationUoWFactory = FuncVerificationUoWFactory(func() commands.VerificationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewVerifyDeliveryCommandHandler(f, c.hub)
}

func (c *CompositionRoot) createCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.MarketUoWFactory = FuncMarketUoWFactory(func() commands.MarketUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderSnapshotQueryHandler() queries.GetOrderSnapshotQueryHandler {
	return queries.NewGetOrderSnapshotQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderParticipantsQueryHandler() queries.GetOrderParticipantsQueryHandler {
	return queries.NewGetOrderParticipantsQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncBidUoWFactory func() commands.BidUoW

func (f FuncBidUoWFactory) Create() commands.BidUoW {
	return f()
}

type FuncDealUoWFactory func() commands.DealUoW

func (f FuncDealUoWFactory) Create() commands.DealUoW {
	return f()
}

type FuncLogisticsUoWFactory func() commands.LogisticsUoW

func (f FuncLogisticsUoWFactory) Create() commands.LogisticsUoW {
	return f()
}

type FuncVerificationUoWFactory func() commands.VerificationUoW

func (f FuncVerificationUoWFactory) Create() commands.VerificationUoW {
	return f()
}

type FuncMarketUoWFactory func() commands.MarketUoW

func (f FuncMarketUoWFactory) Create() commands.MarketUoW {
	return f()
}

type FuncUnitOfWorkFactory func() ports.UnitOfWork

func (f FuncUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f()
}
