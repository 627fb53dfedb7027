package commands

import (
	"context"
	"time"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/order"
	"fleetdelivery/internal/core/ports"

	"go.uber.org/zap"
)

// OrderLockKey is the Locker key guarding one delivery order.
func OrderLockKey(id kernel.UUID) string {
	return "delivery_order:" + id.String()
}

// OrderMutator runs one change against one delivery order with at most one
// change in flight per order id:
//
//  1. acquire the per-order lock
//  2. begin a unit of work and load the order with a row lock
//  3. apply the change
//  4. update (version checked) and commit
//  5. publish the raised events; failures are logged, never returned
//
// Any error before the commit rolls everything back.
type OrderMutator struct {
	uowFactory DeliveryOrderUoWFactory
	locker     ports.Locker
	clock      ports.Clock
	publisher  ports.EventPublisher
	logger     *zap.Logger
}

func NewOrderMutator(
	uowFactory DeliveryOrderUoWFactory,
	locker ports.Locker,
	clock ports.Clock,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *OrderMutator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderMutator{
		uowFactory: uowFactory,
		locker:     locker,
		clock:      clock,
		publisher:  publisher,
		logger:     logger.With(zap.String("component", "order_mutator")),
	}
}

// Mutate applies change to the order with the given id and returns the
// committed aggregate.
func (m *OrderMutator) Mutate(
	ctx context.Context,
	orderID kernel.UUID,
	change func(o *order.DeliveryOrder, now time.Time) error,
) (*order.DeliveryOrder, error) {
	release, err := m.locker.Lock(ctx, OrderLockKey(orderID))
	if err != nil {
		return nil, err
	}
	defer release()

	uow := m.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryOrderRepository()
	aggregate, err := repo.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err = change(aggregate, m.clock.Now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	m.publish(ctx, aggregate.PullEvents())
	return aggregate, nil
}

func (m *OrderMutator) publish(ctx context.Context, events []order.StatusChanged) {
	if m.publisher == nil {
		return
	}
	for _, event := range events {
		if err := m.publisher.Publish(ctx, event); err != nil {
			m.logger.Warn("publish status change failed",
				zap.String("order_id", event.OrderID.String()),
				zap.String("to", event.To.String()),
				zap.Error(err),
			)
		}
	}
}
