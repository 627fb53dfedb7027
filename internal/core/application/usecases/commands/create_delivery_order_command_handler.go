package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/order"
	"fleetdelivery/internal/core/ports"
	"fleetdelivery/internal/pkg/errs"

	"go.uber.org/zap"
)

// DefaultCreateAttempts bounds the retries after an order-number collision.
const DefaultCreateAttempts = 3

// NumberLockKey is the Locker key serializing order-number generation for
// one branch and day.
func NumberLockKey(branchCode string, date time.Time) string {
	return "order_number:" + branchCode + ":" + date.Format("2006-01-02")
}

// CreateDeliveryOrderCommandHandler creates pending delivery orders.
//
// Order numbers are generated from the highest sequence stored for the branch
// and day. Generation is serialized per branch and day through the Locker;
// if another process still wins the race the unique index rejects the insert
// with a Conflict and the handler retries with a fresh sequence.
type CreateDeliveryOrderCommandHandler struct {
	uowFactory DeliveryOrderUoWFactory
	locker     ports.Locker
	references ports.ReferenceChecker
	clock      ports.Clock
	attempts   int
	logger     *zap.Logger
}

// NewCreateDeliveryOrderCommandHandler creates the handler. attempts below 1
// falls back to DefaultCreateAttempts.
func NewCreateDeliveryOrderCommandHandler(
	uowFactory DeliveryOrderUoWFactory,
	locker ports.Locker,
	references ports.ReferenceChecker,
	clock ports.Clock,
	attempts int,
	logger *zap.Logger,
) CreateDeliveryOrderCommandHandler {
	if attempts < 1 {
		attempts = DefaultCreateAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return CreateDeliveryOrderCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		references: references,
		clock:      clock,
		attempts:   attempts,
		logger:     logger.With(zap.String("component", "create_delivery_order")),
	}
}

// Handle validates the payload, checks external references and stores the
// new order.
func (h CreateDeliveryOrderCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryOrderCommand) (*order.DeliveryOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	items, err := buildItems(cmd.Items(), cmd.Actor(), now)
	if err != nil {
		return nil, err
	}

	if err = checkReferences(ctx, h.references, cmd.references()...); err != nil {
		return nil, err
	}

	release, err := h.locker.Lock(ctx, NumberLockKey(cmd.Branch().Code, now))
	if err != nil {
		return nil, err
	}
	defer release()

	for attempt := 1; ; attempt++ {
		created, err := h.create(ctx, cmd, items, now)
		if err == nil {
			return created, nil
		}
		if !isNumberCollision(err) || attempt >= h.attempts {
			return nil, err
		}
		h.logger.Info("order number collision, retrying",
			zap.String("branch", cmd.Branch().Code),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
}

func (h CreateDeliveryOrderCommandHandler) create(
	ctx context.Context,
	cmd CreateDeliveryOrderCommand,
	items []*order.Item,
	now time.Time,
) (*order.DeliveryOrder, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryOrderRepository()
	sequence, err := repo.NextSequence(ctx, cmd.Branch().Code, now)
	if err != nil {
		return nil, err
	}

	number, err := order.NewNumber(now, cmd.Branch().Code, sequence)
	if err != nil {
		return nil, fmt.Errorf("generate order number: %w", err)
	}

	aggregate, err := order.NewDeliveryOrder(cmd.OrderID(), number, cmd.Details(items), cmd.Actor(), now)
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

func isNumberCollision(err error) bool {
	var conflict *errs.ConflictError
	return errors.As(err, &conflict) && conflict.Resource == ports.ConflictOrderNumber
}

func buildItems(details []order.ItemDetails, actor kernel.UUID, now time.Time) ([]*order.Item, error) {
	items := make([]*order.Item, 0, len(details))
	var err error
	for i, d := range details {
		item, e := order.NewItem(kernel.NewUUID(), d, actor, now)
		if e != nil {
			err = errors.Join(err, fmt.Errorf("items[%d]: %w", i, e))
			continue
		}
		items = append(items, item)
	}
	return items, err
}
