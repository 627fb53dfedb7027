// Package commands contains the operations that modify delivery orders.
// Every command follows the same pattern: a guarded command value built by
// its constructor, and a handler that validates, runs the change inside a
// unit of work and returns the updated aggregate.
package commands

import (
	"context"

	"fleetdelivery/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DeliveryOrderRepoFactory provides the order repository within a transaction.
	DeliveryOrderRepoFactory interface {
		DeliveryOrderRepository() ports.DeliveryOrderRepository
	}

	// ETARepoFactory provides the ETA schedule repository within a transaction.
	ETARepoFactory interface {
		ETAScheduleRepository() ports.ETAScheduleRepository
	}

	// DeliveryOrderUoW manages transactions for order operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.DeliveryOrderRepository()
	//   // ... load, change, update
	//
	//   err = uow.Commit(ctx)
	DeliveryOrderUoW interface {
		TxManager
		DeliveryOrderRepoFactory
	}

	DeliveryOrderUoWFactory interface {
		Create() DeliveryOrderUoW
	}

	// ETAUoW manages transactions for ETA schedule updates.
	ETAUoW interface {
		TxManager
		ETARepoFactory
	}

	ETAUoWFactory interface {
		Create() ETAUoW
	}
)
