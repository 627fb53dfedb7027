// Package ports defines the contracts between the delivery order core and
// its collaborators: persistence, locking, reference resolution, time and
// event publication.
package ports

import (
	"context"
	"time"

	"fleetdelivery/internal/core/domain/model/eta"
	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/order"
)

// Resources of the errs.ConflictError returned by DeliveryOrderRepository.Add.
// Only a number collision is worth retrying with a fresh sequence.
const (
	ConflictOrderID     = "delivery order"
	ConflictOrderNumber = "delivery order number"
)

// DeliveryOrderRepository persists DeliveryOrder aggregates, including their
// items, route, tracking log and activity log.
type DeliveryOrderRepository interface {
	// Add stores a new order. A duplicate id or order number yields
	// errs.ErrConflict on ConflictOrderID or ConflictOrderNumber.
	Add(ctx context.Context, aggregate *order.DeliveryOrder) error

	// Update stores the changes of a loaded order. If the stored version no
	// longer matches the aggregate's version the call fails with
	// errs.ErrConflict and nothing is written. On success the aggregate's
	// version is advanced.
	Update(ctx context.Context, aggregate *order.DeliveryOrder) error

	// Get loads an order without locking it. Unknown ids yield errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*order.DeliveryOrder, error)

	// GetForUpdate loads an order and locks its row until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.DeliveryOrder, error)

	// NextSequence returns the highest order-number sequence used for the
	// branch on the date, plus one.
	NextSequence(ctx context.Context, branchCode string, date time.Time) (int, error)
}

// ETAScheduleRepository persists ETA schedules of non-order entities.
type ETAScheduleRepository interface {
	// Get returns errs.ErrObjectNotFound when the entity has no schedule yet.
	Get(ctx context.Context, entityType string, entityID kernel.UUID) (*eta.Schedule, error)

	// Save inserts or updates the schedule with the same version rules as
	// DeliveryOrderRepository.Update.
	Save(ctx context.Context, schedule *eta.Schedule) error
}
