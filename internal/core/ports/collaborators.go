package ports

import (
	"context"
	"time"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/order"
)

// Locker provides mutual exclusion per key across every process sharing
// the lock backend. Lock blocks until the lock is held or ctx ends; a lock
// that cannot be obtained in time yields errs.ErrConflict. The returned
// release func is safe to call more than once.
type Locker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}

// ReferenceKind names the external entity a reference points to.
type ReferenceKind string

const (
	ReferenceBranch   ReferenceKind = "branch"
	ReferenceVehicle  ReferenceKind = "vehicle"
	ReferenceDriver   ReferenceKind = "driver"
	ReferenceHelper   ReferenceKind = "helper"
	ReferenceShipment ReferenceKind = "shipment"
)

// ReferenceChecker confirms that referenced entities owned by other
// services exist.
type ReferenceChecker interface {
	Exists(ctx context.Context, kind ReferenceKind, id kernel.UUID) (bool, error)
}

// Clock supplies the time used for every state-transition timestamp.
type Clock interface {
	Now() time.Time
}

// EventPublisher hands committed domain events to other services.
type EventPublisher interface {
	Publish(ctx context.Context, event order.StatusChanged) error
}
