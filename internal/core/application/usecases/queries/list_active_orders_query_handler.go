package queries

import (
	"context"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListActiveOrdersQueryHandler reads the delivery_orders table directly; the
// summary counters stored with each row make loading items unnecessary.
type ListActiveOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListActiveOrdersQueryHandler(db *gorm.DB) ListActiveOrdersQueryHandler {
	return ListActiveOrdersQueryHandler{db: db}
}

func (h ListActiveOrdersQueryHandler) Handle(ctx context.Context, query ListActiveOrdersQuery) ([]ActiveOrder, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := make([]string, 0, len(query.statuses))
	for _, s := range query.statuses {
		statuses = append(statuses, s.String())
	}

	db := h.db.WithContext(ctx).
		Table("delivery_orders").
		Select(`id, number, branch_code, status, priority, scheduled_date, scheduled_time,
			vehicle_id, driver_id, total_items, delivered_count, failed_count, returned_count,
			pending_count, cod_expected_amount, cod_collected_amount, updated_at`).
		Where("status IN ?", statuses)
	if query.branchCode != "" {
		db = db.Where("branch_code = ?", query.branchCode)
	}
	if query.driver != nil {
		db = db.Where("driver_id = ?", query.driver.Bytes())
	}
	if query.scheduledDate != nil {
		db = db.Where("scheduled_date >= ? AND scheduled_date < ?", *query.scheduledDate, query.scheduledDate.AddDate(0, 0, 1))
	}

	rows, err := db.Order("scheduled_date, number").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]ActiveOrder, 0)
	for rows.Next() {
		var (
			o                      ActiveOrder
			id                     uuid.UUID
			vehicle, driver        uuid.NullUUID
			status, priority       string
			codExpected, collected decimal.Decimal
		)
		err = rows.Scan(
			&id, &o.Number, &o.BranchCode, &status, &priority, &o.ScheduledDate, &o.ScheduledTime,
			&vehicle, &driver, &o.TotalItems, &o.DeliveredCount, &o.FailedCount, &o.ReturnedCount,
			&o.PendingCount, &codExpected, &collected, &o.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if o.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if o.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}
		if o.Priority, err = order.ParsePriority(priority); err != nil {
			return nil, err
		}
		if o.Vehicle, err = nullableID(vehicle); err != nil {
			return nil, err
		}
		if o.Driver, err = nullableID(driver); err != nil {
			return nil, err
		}
		if o.CODExpectedAmount, err = kernel.NewMoney(codExpected); err != nil {
			return nil, err
		}
		if o.CODCollectedAmount, err = kernel.NewMoney(collected); err != nil {
			return nil, err
		}
		o.ScheduledDate = o.ScheduledDate.UTC()
		o.UpdatedAt = o.UpdatedAt.UTC()
		orders = append(orders, o)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func nullableID(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil
	}
	k, err := kernel.UUIDFromBytes(id.UUID[:])
	if err != nil {
		return nil, err
	}
	return &k, nil
}
