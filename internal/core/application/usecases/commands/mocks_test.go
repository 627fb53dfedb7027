package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"fleetdelivery/internal/core/application/usecases/commands"
	"fleetdelivery/internal/core/domain/model/eta"
	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/order"
	"fleetdelivery/internal/core/ports"
	"fleetdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	t0    = time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)
	actor = kernel.NewUUID()
)

type MockDeliveryOrderRepository struct{ mock.Mock }

func (m *MockDeliveryOrderRepository) Add(ctx context.Context, o *order.DeliveryOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockDeliveryOrderRepository) Update(ctx context.Context, o *order.DeliveryOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockDeliveryOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.DeliveryOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.DeliveryOrder), args.Error(1)
}

func (m *MockDeliveryOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.DeliveryOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.DeliveryOrder), args.Error(1)
}

func (m *MockDeliveryOrderRepository) NextSequence(ctx context.Context, branchCode string, date time.Time) (int, error) {
	args := m.Called(ctx, branchCode, date)
	return args.Int(0), args.Error(1)
}

type MockETAScheduleRepository struct{ mock.Mock }

func (m *MockETAScheduleRepository) Get(ctx context.Context, entityType string, entityID kernel.UUID) (*eta.Schedule, error) {
	args := m.Called(ctx, entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*eta.Schedule), args.Error(1)
}

func (m *MockETAScheduleRepository) Save(ctx context.Context, s *eta.Schedule) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) DeliveryOrderRepository() ports.DeliveryOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryOrderRepository)
}

func (m *MockUoW) ETAScheduleRepository() ports.ETAScheduleRepository {
	args := m.Called()
	return args.Get(0).(ports.ETAScheduleRepository)
}

type MockDeliveryOrderUoWFactory struct{ mock.Mock }

func (m *MockDeliveryOrderUoWFactory) Create() commands.DeliveryOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryOrderUoW)
}

type MockETAUoWFactory struct{ mock.Mock }

func (m *MockETAUoWFactory) Create() commands.ETAUoW {
	args := m.Called()
	return args.Get(0).(commands.ETAUoW)
}

type MockLocker struct{ mock.Mock }

func (m *MockLocker) Lock(ctx context.Context, key string) (func(), error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

type MockReferenceChecker struct{ mock.Mock }

func (m *MockReferenceChecker) Exists(ctx context.Context, kind ports.ReferenceKind, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, kind, id)
	return args.Bool(0), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event order.StatusChanged) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// noopLocker grants every lock immediately.
type noopLocker struct{}

func (noopLocker) Lock(context.Context, string) (func(), error) { return func() {}, nil }

// memoryStore is an in-memory order store with version checks, used to run
// several handlers against the same order.
type memoryStore struct {
	mu     sync.Mutex
	orders map[string]*order.DeliveryOrder
	etas   map[string]*eta.Schedule
}

func newMemoryStore() *memoryStore {
	return &memoryStore{orders: map[string]*order.DeliveryOrder{}, etas: map[string]*eta.Schedule{}}
}

func (s *memoryStore) Create() commands.DeliveryOrderUoW { return memoryUoW{store: s} }

func (s *memoryStore) orderRepo() ports.DeliveryOrderRepository { return memoryOrderRepo{store: s} }

type memoryETAFactory struct{ store *memoryStore }

func (f memoryETAFactory) Create() commands.ETAUoW { return memoryUoW{store: f.store} }

type memoryUoW struct{ store *memoryStore }

func (memoryUoW) Begin(context.Context) error    { return nil }
func (memoryUoW) Commit(context.Context) error   { return nil }
func (memoryUoW) Rollback(context.Context) error { return nil }

func (u memoryUoW) DeliveryOrderRepository() ports.DeliveryOrderRepository {
	return memoryOrderRepo(u)
}

func (u memoryUoW) ETAScheduleRepository() ports.ETAScheduleRepository {
	return memoryETARepo(u)
}

type memoryOrderRepo struct{ store *memoryStore }

func (r memoryOrderRepo) Add(_ context.Context, o *order.DeliveryOrder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, taken := r.store.orders[o.ID().String()]; taken {
		return errs.NewConflictError(ports.ConflictOrderID, o.ID())
	}
	for _, existing := range r.store.orders {
		if existing.Number().IsEqual(o.Number()) {
			return errs.NewConflictError(ports.ConflictOrderNumber, o.Number())
		}
	}
	o.SetVersion(1)
	r.store.orders[o.ID().String()] = o
	return nil
}

func (r memoryOrderRepo) Update(_ context.Context, o *order.DeliveryOrder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.orders[o.ID().String()]
	if !ok {
		return errs.NewObjectNotFoundError("orderId", o.ID())
	}
	if stored != o && stored.Version() != o.Version() {
		return errs.NewConflictError("delivery order", o.ID())
	}
	o.SetVersion(o.Version() + 1)
	r.store.orders[o.ID().String()] = o
	return nil
}

func (r memoryOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.DeliveryOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id)
	}
	return o, nil
}

func (r memoryOrderRepo) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.DeliveryOrder, error) {
	return r.Get(ctx, id)
}

func (r memoryOrderRepo) NextSequence(_ context.Context, branchCode string, date time.Time) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	highest := 0
	for _, o := range r.store.orders {
		n := o.Number()
		if n.BranchCode() == branchCode && n.Date().Format(time.DateOnly) == date.Format(time.DateOnly) && n.Sequence() > highest {
			highest = n.Sequence()
		}
	}
	return highest + 1, nil
}

type memoryETARepo struct{ store *memoryStore }

func (r memoryETARepo) Get(_ context.Context, entityType string, entityID kernel.UUID) (*eta.Schedule, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.etas[entityType+"/"+entityID.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("entityId", entityID)
	}
	return s, nil
}

func (r memoryETARepo) Save(_ context.Context, s *eta.Schedule) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s.SetVersion(s.Version() + 1)
	r.store.etas[s.EntityType()+"/"+s.EntityID().String()] = s
	return nil
}

func mustLocation(t *testing.T, lon, lat float64) kernel.Location {
	t.Helper()
	l, err := kernel.NewLocation(lon, lat)
	require.NoError(t, err)
	return l
}

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func itemDetails(t *testing.T, waybill string, lon, lat float64) order.ItemDetails {
	t.Helper()
	loc := mustLocation(t, lon, lat)
	return order.ItemDetails{
		ShipmentOrderRef: kernel.NewUUID(),
		WaybillNumber:    waybill,
		Receiver:         order.Receiver{Name: "Budi", Address: "Jl. Kenanga 7", Phone: "0813", Location: &loc},
		Quantity:         1,
		WeightKg:         2,
		PaymentType:      order.PaymentCash,
		CODAmount:        kernel.ZeroMoney(),
	}
}

func createInput(t *testing.T, items ...order.ItemDetails) commands.CreateDeliveryOrderInput {
	t.Helper()
	schedule, err := order.NewSchedule(t0, "07:00")
	require.NoError(t, err)
	start := mustLocation(t, 0, 0)
	return commands.CreateDeliveryOrderInput{
		OrderID:       kernel.NewUUID(),
		Actor:         actor,
		Branch:        order.BranchRef{ID: kernel.NewUUID(), Code: "jk"},
		Schedule:      schedule,
		Priority:      order.PriorityNormal,
		StartLocation: &start,
		Items:         items,
	}
}

func pendingOrder(t *testing.T, items ...order.ItemDetails) *order.DeliveryOrder {
	t.Helper()
	cmd, err := commands.NewCreateDeliveryOrderCommand(createInput(t, items...))
	require.NoError(t, err)

	built := make([]*order.Item, 0, len(items))
	for _, d := range cmd.Items() {
		item, err := order.NewItem(kernel.NewUUID(), d, actor, t0)
		require.NoError(t, err)
		built = append(built, item)
	}
	number, err := order.NewNumber(t0, "JK", 1)
	require.NoError(t, err)
	o, err := order.NewDeliveryOrder(cmd.OrderID(), number, cmd.Details(built), actor, t0)
	require.NoError(t, err)
	o.PullEvents()
	return o
}
