package queries_test

import (
	"fmt"
	"testing"
	"time"

	"fleetdelivery/internal/adapters/out/postgres/orderrepo"
	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/order"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	day   = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	actor = kernel.NewUUID()
)

func setupDB(t *testing.T) (*gorm.DB, *orderrepo.GormDeliveryOrderRepository) {
	t.Helper()
	dsn := fmt.Sprintf("file:queries_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&orderrepo.DeliveryOrderDTO{}, &orderrepo.DeliveryItemDTO{}))
	return db, orderrepo.NewGormDeliveryOrderRepository(db)
}

// newOrder builds a pending order with one cash item and one COD item.
func newOrder(t *testing.T, code string, sequence int, scheduled time.Time) *order.DeliveryOrder {
	t.Helper()

	cod, err := kernel.MoneyFromString("50000")
	require.NoError(t, err)
	items := make([]*order.Item, 0, 2)
	for i, payment := range []order.PaymentType{order.PaymentCash, order.PaymentCOD} {
		amount := kernel.ZeroMoney()
		if payment == order.PaymentCOD {
			amount = cod
		}
		item, err := order.NewItem(kernel.NewUUID(), order.ItemDetails{
			ShipmentOrderRef: kernel.NewUUID(),
			WaybillNumber:    fmt.Sprintf("WB-%s-%d-%d", code, sequence, i),
			Receiver:         order.Receiver{Name: "Receiver", Address: "Jl. Melati 3"},
			Quantity:         1,
			PaymentType:      payment,
			CODAmount:        amount,
		}, actor, day)
		require.NoError(t, err)
		items = append(items, item)
	}

	number, err := order.NewNumber(day, code, sequence)
	require.NoError(t, err)
	schedule, err := order.NewSchedule(scheduled, "08:00")
	require.NoError(t, err)

	o, err := order.NewDeliveryOrder(kernel.NewUUID(), number, order.Details{
		Branch:   order.BranchRef{ID: kernel.NewUUID(), Code: code},
		Schedule: schedule,
		Items:    items,
	}, actor, day)
	require.NoError(t, err)
	return o
}
