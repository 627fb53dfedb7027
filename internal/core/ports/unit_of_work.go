package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Client code controls the
// lifecycle explicitly; Rollback after a successful Commit is a no-op.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction if one is active.
	Rollback(ctx context.Context) error

	// DeliveryOrderRepository returns a repository bound to the current transaction.
	DeliveryOrderRepository() DeliveryOrderRepository

	// ETAScheduleRepository returns a repository bound to the current transaction.
	ETAScheduleRepository() ETAScheduleRepository
}
