package commands_test

import (
	"context"
	"sync"
	"time"

	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/domain/model/assignment"
	"agromarket/internal/core/domain/model/bid"
	"agromarket/internal/core/domain/model/escrow"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllOpen(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllPastDeadline(ctx context.Context, now time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockBidRepository struct{ mock.Mock }

func (m *MockBidRepository) Add(ctx context.Context, b *bid.Bid) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBidRepository) Update(ctx context.Context, b *bid.Bid) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBidRepository) Get(ctx context.Context, id kernel.UUID) (*bid.Bid, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bid.Bid), args.Error(1)
}

func (m *MockBidRepository) GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*bid.Bid, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*bid.Bid), args.Error(1)
}

func (m *MockBidRepository) GetAllPendingForOrder(ctx context.Context, orderID kernel.UUID) ([]*bid.Bid, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*bid.Bid), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetActiveForOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

type MockEscrowRepo struct{ mock.Mock }

func (m *MockEscrowRepo) Add(ctx context.Context, e *escrow.Escrow) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEscrowRepo) Update(ctx context.Context, e *escrow.Escrow) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEscrowRepo) GetForOrder(ctx context.Context, orderID kernel.UUID) (*escrow.Escrow, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*escrow.Escrow), args.Error(1)
}

type MockTransitionLogRepository struct{ mock.Mock }

func (m *MockTransitionLogRepository) Append(ctx context.Context, record order.TransitionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTransitionLogRepository) GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]order.TransitionRecord, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.TransitionRecord), args.Error(1)
}

// MockMarketUoW satisfies every unit of work composite in this package, so a
// single mock serves all handlers.
type MockMarketUoW struct {
	mock.Mock

	orders      *MockOrderRepository
	bids        *MockBidRepository
	assignments *MockAssignmentRepository
	escrows     *MockEscrowRepo
	log         *MockTransitionLogRepository
}

func newMockUoW() *MockMarketUoW {
	return &MockMarketUoW{
		orders:      new(MockOrderRepository),
		bids:        new(MockBidRepository),
		assignments: new(MockAssignmentRepository),
		escrows:     new(MockEscrowRepo),
		log:         new(MockTransitionLogRepository),
	}
}

func (m *MockMarketUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMarketUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMarketUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMarketUoW) OrderRepository() ports.OrderRepository           { return m.orders }
func (m *MockMarketUoW) BidRepository() ports.BidRepository               { return m.bids }
func (m *MockMarketUoW) AssignmentRepository() ports.AssignmentRepository { return m.assignments }
func (m *MockMarketUoW) EscrowRepository() ports.EscrowRepository         { return m.escrows }
func (m *MockMarketUoW) TransitionLogRepository() ports.TransitionLogRepository {
	return m.log
}

// expectTx wires the happy-path transaction lifecycle: Begin and the
// deferred Rollback always run; Commit once.
func (m *MockMarketUoW) expectTx() {
	m.On("Begin", mock.Anything).Return(nil).Once()
	m.On("Commit", mock.Anything).Return(nil).Once()
	m.On("Rollback", mock.Anything).Return(nil).Once()
}

type orderUoWFactory struct{ uow *MockMarketUoW }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.uow }

type bidUoWFactory struct{ uow *MockMarketUoW }

func (f bidUoWFactory) Create() commands.BidUoW { return f.uow }

type dealUoWFactory struct{ uow *MockMarketUoW }

func (f dealUoWFactory) Create() commands.DealUoW { return f.uow }

type logisticsUoWFactory struct{ uow *MockMarketUoW }

func (f logisticsUoWFactory) Create() commands.LogisticsUoW { return f.uow }

type verificationUoWFactory struct{ uow *MockMarketUoW }

func (f verificationUoWFactory) Create() commands.VerificationUoW { return f.uow }

type marketUoWFactory struct{ uow *MockMarketUoW }

func (f marketUoWFactory) Create() commands.MarketUoW { return f.uow }

// recordingPublisher collects published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.TransitionEvent
}

func (p *recordingPublisher) Publish(event ports.TransitionEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) Events() []ports.TransitionEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ports.TransitionEvent(nil), p.events...)
}

type MockGradeEstimator struct{ mock.Mock }

func (m *MockGradeEstimator) Estimate(ctx context.Context, cropType, variety string, volume kernel.Volume) (string, error) {
	args := m.Called(ctx, cropType, variety, volume)
	return args.String(0), args.Error(1)
}

type MockHaulerMatcher struct{ mock.Mock }

func (m *MockHaulerMatcher) Match(ctx context.Context, aggregate *order.Order) (ports.MatchProposal, error) {
	args := m.Called(ctx, aggregate)
	return args.Get(0).(ports.MatchProposal), args.Error(1)
}
