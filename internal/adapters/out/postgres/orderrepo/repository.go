package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleetdelivery/internal/adapters/out/postgres/dberr"
	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/order"
	"fleetdelivery/internal/core/ports"
	"fleetdelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDeliveryOrderRepository implements ports.DeliveryOrderRepository.
type GormDeliveryOrderRepository struct {
	db *gorm.DB
}

// NewGormDeliveryOrderRepository creates a repository on db, which is
// usually the transaction of a unit of work.
func NewGormDeliveryOrderRepository(db *gorm.DB) *GormDeliveryOrderRepository {
	return &GormDeliveryOrderRepository{db: db}
}

// Add inserts a new order with its items. A taken id yields a Conflict on
// ports.ConflictOrderID, a taken order number one on
// ports.ConflictOrderNumber.
func (r *GormDeliveryOrderRepository) Add(ctx context.Context, aggregate *order.DeliveryOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	var taken int64
	if err := db.Model(&DeliveryOrderDTO{}).Where("id = ?", dto.ID).Count(&taken).Error; err != nil {
		return fmt.Errorf("check delivery order id: %w", err)
	}
	if taken > 0 {
		return errs.NewConflictError(ports.ConflictOrderID, aggregate.ID().String())
	}

	dto.Version = 1
	if err := db.Create(&dto).Error; err != nil {
		if dberr.IsUniqueViolation(err) {
			return errs.NewConflictErrorWithCause(ports.ConflictOrderNumber, dto.Number, err)
		}
		return fmt.Errorf("insert delivery order: %w", err)
	}

	aggregate.SetVersion(dto.Version)
	return nil
}

// Update writes the order row only if the stored version still matches the
// aggregate, then replaces the item rows.
func (r *GormDeliveryOrderRepository) Update(ctx context.Context, aggregate *order.DeliveryOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	expected := dto.Version
	dto.Version = expected + 1

	db := r.db.WithContext(ctx)
	result := db.Model(&DeliveryOrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, expected).
		Select("*").
		Omit("id", "created_at", "created_by", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return fmt.Errorf("update delivery order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate.ID())
	}

	if err := db.Where("order_id = ?", dto.ID).Delete(&DeliveryItemDTO{}).Error; err != nil {
		return fmt.Errorf("replace delivery items: %w", err)
	}
	if len(dto.Items) > 0 {
		if err := db.Create(&dto.Items).Error; err != nil {
			return fmt.Errorf("replace delivery items: %w", err)
		}
	}

	aggregate.SetVersion(dto.Version)
	return nil
}

func (r *GormDeliveryOrderRepository) missingOrStale(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&DeliveryOrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return fmt.Errorf("check delivery order: %w", err)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("orderId", id.String())
	}
	return errs.NewConflictError(ports.ConflictOrderID, id.String())
}

// Get loads an order without locking it.
func (r *GormDeliveryOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.DeliveryOrder, error) {
	return r.load(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate loads an order and holds its row lock until the transaction
// ends.
func (r *GormDeliveryOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.DeliveryOrder, error) {
	return r.load(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormDeliveryOrderRepository) load(ctx context.Context, db *gorm.DB, id kernel.UUID) (*order.DeliveryOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryOrderDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id.String())
		}
		return nil, fmt.Errorf("load delivery order: %w", err)
	}

	if err := r.db.WithContext(ctx).Where("order_id = ?", dto.ID).Order("position").Find(&dto.Items).Error; err != nil {
		return nil, fmt.Errorf("load delivery items: %w", err)
	}

	return toDomain(dto)
}

// NextSequence returns the highest sequence stored for the branch and day
// plus one. The day is the calendar day of date in its own location, the
// same day order.NewNumber stamps on the number.
func (r *GormDeliveryOrderRepository) NextSequence(ctx context.Context, branchCode string, date time.Time) (int, error) {
	var highest int
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(MAX(number_sequence), 0)
		FROM delivery_orders
		WHERE branch_code = ? AND number_day = ?
	`, branchCode, date.Format(numberDayLayout)).Scan(&highest).Error
	if err != nil {
		return 0, fmt.Errorf("next order sequence: %w", err)
	}
	return highest + 1, nil
}
