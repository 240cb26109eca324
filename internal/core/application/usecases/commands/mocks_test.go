package commands_test

import (
	"context"
	"sync"
	"time"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/domain/model/inventory"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/model/production"
	"atelier/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

var fixedClock = ports.ClockFunc(func() time.Time { return fixedNow })

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.OrderID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockSKURepository struct{ mock.Mock }

func (m *MockSKURepository) Add(ctx context.Context, s *inventory.SKU) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSKURepository) Update(ctx context.Context, s *inventory.SKU) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSKURepository) Get(ctx context.Context, code string) (*inventory.SKU, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.SKU), args.Error(1)
}

func (m *MockSKURepository) FindByName(ctx context.Context, name string) ([]*inventory.SKU, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.SKU), args.Error(1)
}

func (m *MockSKURepository) List(ctx context.Context) ([]*inventory.SKU, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.SKU), args.Error(1)
}

func (m *MockSKURepository) Codes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockMovementLedger struct{ mock.Mock }

func (m *MockMovementLedger) Append(ctx context.Context, movement inventory.Movement) error {
	return m.Called(ctx, movement).Error(0)
}

func (m *MockMovementLedger) QueryByCode(ctx context.Context, code string) ([]inventory.Movement, error) {
	args := m.Called(ctx, code)
	return args.Get(0).([]inventory.Movement), args.Error(1)
}

func (m *MockMovementLedger) QueryByDate(ctx context.Context, day time.Time) ([]inventory.Movement, error) {
	args := m.Called(ctx, day)
	return args.Get(0).([]inventory.Movement), args.Error(1)
}

func (m *MockMovementLedger) QueryByRef(ctx context.Context, ref string) ([]inventory.Movement, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).([]inventory.Movement), args.Error(1)
}

func (m *MockMovementLedger) QueryRange(ctx context.Context, from, to *time.Time) ([]inventory.Movement, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]inventory.Movement), args.Error(1)
}

type MockProductionRepository struct{ mock.Mock }

func (m *MockProductionRepository) Add(ctx context.Context, e *production.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockProductionRepository) Update(ctx context.Context, e *production.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockProductionRepository) Get(ctx context.Context, id kernel.UUID) (*production.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.Entry), args.Error(1)
}

func (m *MockProductionRepository) List(ctx context.Context) ([]*production.Entry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*production.Entry), args.Error(1)
}

// MockUoW satisfies every narrow unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) SKURepository() ports.SKURepository {
	return m.Called().Get(0).(ports.SKURepository)
}

func (m *MockUoW) MovementLedger() ports.MovementLedger {
	return m.Called().Get(0).(ports.MovementLedger)
}

func (m *MockUoW) ProductionLogRepository() ports.ProductionLogRepository {
	return m.Called().Get(0).(ports.ProductionLogRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockStockUoWFactory struct{ mock.Mock }

func (m *MockStockUoWFactory) Create() commands.StockUoW {
	return m.Called().Get(0).(commands.StockUoW)
}

type MockProductionUoWFactory struct{ mock.Mock }

func (m *MockProductionUoWFactory) Create() commands.ProductionUoW {
	return m.Called().Get(0).(commands.ProductionUoW)
}

type MockStockAdjuster struct{ mock.Mock }

func (m *MockStockAdjuster) Handle(ctx context.Context, cmd commands.AdjustStockCommand) (commands.AdjustStockResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.AdjustStockResult), args.Error(1)
}

type MockOrderTransitioner struct{ mock.Mock }

func (m *MockOrderTransitioner) Handle(
	ctx context.Context,
	cmd commands.TransitionOrderCommand,
) (commands.TransitionOrderResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.TransitionOrderResult), args.Error(1)
}

// recordingLocker grants every lock and remembers the keys in order.
type recordingLocker struct {
	mu   sync.Mutex
	keys []string
}

func (l *recordingLocker) Lock(_ context.Context, key string) (ports.Unlock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.keys = append(l.keys, key)
	return func(context.Context) error { return nil }, nil
}

func (l *recordingLocker) Keys() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.keys...)
}

type recordingNotifier struct {
	mu     sync.Mutex
	alerts []ports.Alert
}

func (n *recordingNotifier) Notify(_ context.Context, alert ports.Alert) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, alert)
}

func (n *recordingNotifier) Alerts() []ports.Alert {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.Alert(nil), n.alerts...)
}
