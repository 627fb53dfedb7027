// Package postgres provides the GORM-based Unit of Work shared by the
// delivery order and ETA repositories.
//
// Each command obtains a fresh UnitOfWork from the factory, begins a
// transaction, works through the repositories bound to it and commits.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.DeliveryOrderRepository().GetForUpdate(ctx, id)
//	if err != nil {
//	    return err
//	}
//	// ... change o
//	if err := uow.DeliveryOrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Instances are not safe for concurrent use; concurrent operations use
// separate units of work.
package postgres

import (
	"context"

	"fleetdelivery/internal/adapters/out/postgres/etarepo"
	"fleetdelivery/internal/adapters/out/postgres/orderrepo"
	"fleetdelivery/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances on one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    return err
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts the transaction. Calling Begin again on an active unit of
// work does not nest.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	return nil
}

// Commit finalizes the transaction. It fails when none is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the active transaction. Without one it does nothing,
// so it can be deferred right after Begin.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// DeliveryOrderRepository returns a repository bound to the active
// transaction, or to the pool when none is active.
func (uow *GormUnitOfWork) DeliveryOrderRepository() ports.DeliveryOrderRepository {
	return orderrepo.NewGormDeliveryOrderRepository(uow.conn())
}

// ETAScheduleRepository returns a repository bound to the active
// transaction, or to the pool when none is active.
func (uow *GormUnitOfWork) ETAScheduleRepository() ports.ETAScheduleRepository {
	return etarepo.NewGormETAScheduleRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// Migrate creates or updates the tables owned by the repositories.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.DeliveryOrderDTO{},
		&orderrepo.DeliveryItemDTO{},
		&etarepo.ETAScheduleDTO{},
	)
}
