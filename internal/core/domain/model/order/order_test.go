package order_test

import (
	"testing"
	"time"

	"fleetdelivery/internal/core/domain/model/geo"
	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/order"
	"fleetdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	t0    = time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)
	actor = kernel.NewUUID()
)

func mustLocation(t *testing.T, lon, lat float64) *kernel.Location {
	t.Helper()
	l, err := kernel.NewLocation(lon, lat)
	require.NoError(t, err)
	return &l
}

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func itemDetails(waybill string) order.ItemDetails {
	return order.ItemDetails{
		ShipmentOrderRef: kernel.NewUUID(),
		WaybillNumber:    waybill,
		Receiver:         order.Receiver{Name: "Siti", Address: "Jl. Melati 4", Phone: "0812"},
		Description:      "documents",
		WeightKg:         1.5,
		Quantity:         1,
		PaymentType:      order.PaymentCash,
		CODAmount:        kernel.ZeroMoney(),
	}
}

func newItem(t *testing.T, details order.ItemDetails) *order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), details, actor, t0)
	require.NoError(t, err)
	return item
}

func codItem(t *testing.T, amount string) *order.Item {
	t.Helper()
	d := itemDetails("WB-COD")
	d.PaymentType = order.PaymentCOD
	d.CODAmount = mustMoney(t, amount)
	return newItem(t, d)
}

func newOrder(t *testing.T, items ...*order.Item) *order.DeliveryOrder {
	t.Helper()
	number, err := order.NewNumber(t0, "JK", 1)
	require.NoError(t, err)
	schedule, err := order.NewSchedule(t0, "09:30")
	require.NoError(t, err)

	o, err := order.NewDeliveryOrder(kernel.NewUUID(), number, order.Details{
		Branch:        order.BranchRef{ID: kernel.NewUUID(), Code: "JK"},
		Schedule:      schedule,
		StartLocation: mustLocation(t, 106.8, -6.2),
		Items:         items,
	}, actor, t0)
	require.NoError(t, err)
	return o
}

func assignment() order.Assignment {
	return order.Assignment{Vehicle: kernel.NewUUID(), Driver: kernel.NewUUID()}
}

func inProgressOrder(t *testing.T, items ...*order.Item) *order.DeliveryOrder {
	t.Helper()
	o := newOrder(t, items...)
	require.NoError(t, o.Assign(assignment(), actor, t0.Add(time.Minute)))
	require.NoError(t, o.Start(mustLocation(t, 106.8, -6.2), actor, t0.Add(2*time.Minute)))
	return o
}

func proof() order.ProofData {
	return order.ProofData{DeliveredTo: "Siti", SignatureRef: "sig/1.png"}
}

// assertSummaryMatchesItems recomputes the counters from the items.
func assertSummaryMatchesItems(t *testing.T, o *order.DeliveryOrder) {
	t.Helper()
	var delivered, failed, returned, pending int
	collected := kernel.ZeroMoney()
	for _, item := range o.Items() {
		switch item.Status() {
		case order.ItemStatusDelivered:
			delivered++
		case order.ItemStatusFailed:
			failed++
		case order.ItemStatusReturned:
			returned++
		default:
			pending++
		}
		if p := item.ProofOfDelivery(); p != nil && p.CODCollected {
			collected = collected.Add(p.CODAmount)
		}
	}

	s := o.Summary()
	assert.Equal(t, len(o.Items()), s.TotalItems)
	assert.Equal(t, delivered, s.DeliveredCount)
	assert.Equal(t, failed, s.FailedCount)
	assert.Equal(t, returned, s.ReturnedCount)
	assert.Equal(t, pending, s.PendingCount)
	assert.True(t, collected.IsEqual(s.CODCollectedAmount), "collected %s != %s", collected, s.CODCollectedAmount)
}

func TestNewItem(t *testing.T) {
	t.Run("cod item needs an amount", func(t *testing.T) {
		d := itemDetails("WB-1")
		d.PaymentType = order.PaymentCOD

		_, err := order.NewItem(kernel.NewUUID(), d, actor, t0)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "codAmount")
	})

	t.Run("cash item cannot carry an amount", func(t *testing.T) {
		d := itemDetails("WB-1")
		d.CODAmount = mustMoney(t, "10")

		_, err := order.NewItem(kernel.NewUUID(), d, actor, t0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("collects every problem", func(t *testing.T) {
		d := itemDetails("")
		d.Quantity = 0
		d.Receiver.Name = ""

		_, err := order.NewItem(kernel.NewUUID(), d, actor, t0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "waybillNumber")
		assert.Contains(t, err.Error(), "quantity")
		assert.Contains(t, err.Error(), "receiver.name")
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("starts pending with history", func(t *testing.T) {
		item := codItem(t, "25000")

		assert.Equal(t, order.ItemStatusPending, item.Status())
		require.Len(t, item.History(), 1)
		assert.Equal(t, order.ItemStatusPending, item.History()[0].Status)
		assert.Equal(t, "25000.00", item.CODAmount().String())
	})
}

func TestNewDeliveryOrder(t *testing.T) {
	t.Run("creates pending order", func(t *testing.T) {
		o := newOrder(t, newItem(t, itemDetails("WB-1")), codItem(t, "50000"))

		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, "SM250314JK0001", o.Number().String())
		assert.Equal(t, order.PriorityNormal, o.Priority())
		require.Len(t, o.StatusHistory(), 1)
		require.Len(t, o.ActivityLog(), 1)
		assert.Equal(t, order.ActivityCreated, o.ActivityLog()[0].Kind)
		assert.Equal(t, 2, o.Summary().TotalItems)
		assert.Equal(t, "50000.00", o.Summary().CODExpectedAmount.String())
		assert.Empty(t, o.PullEvents())
		assertSummaryMatchesItems(t, o)
	})

	t.Run("branch code must match the number", func(t *testing.T) {
		number, _ := order.NewNumber(t0, "JK", 1)
		schedule, _ := order.NewSchedule(t0, "")

		_, err := order.NewDeliveryOrder(kernel.NewUUID(), number, order.Details{
			Branch:   order.BranchRef{ID: kernel.NewUUID(), Code: "BD"},
			Schedule: schedule,
		}, actor, t0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("schedule is required", func(t *testing.T) {
		number, _ := order.NewNumber(t0, "JK", 1)

		_, err := order.NewDeliveryOrder(kernel.NewUUID(), number, order.Details{
			Branch: order.BranchRef{ID: kernel.NewUUID(), Code: "JK"},
		}, actor, t0)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("items are copied", func(t *testing.T) {
		item := newItem(t, itemDetails("WB-1"))
		o := newOrder(t, item)

		items := o.Items()
		require.Len(t, items, 1)
		assert.True(t, items[0].ID().IsEqual(item.ID()))
		assert.NotSame(t, item, items[0])
	})
}

func TestDeliveryOrder_Assign(t *testing.T) {
	o := newOrder(t, newItem(t, itemDetails("WB-1")), newItem(t, itemDetails("WB-2")))
	a := assignment()
	helper := kernel.NewUUID()
	a.Helper = &helper

	require.NoError(t, o.Assign(a, actor, t0.Add(time.Minute)))

	assert.Equal(t, order.StatusAssigned, o.Status())
	assert.True(t, o.Vehicle().IsEqual(a.Vehicle))
	assert.True(t, o.Driver().IsEqual(a.Driver))
	assert.True(t, o.Helper().IsEqual(helper))
	for _, item := range o.Items() {
		assert.Equal(t, order.ItemStatusAssigned, item.Status())
		assert.Len(t, item.History(), 2)
	}
	events := o.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, order.StatusPending, events[0].From)
	assert.Equal(t, order.StatusAssigned, events[0].To)
	assert.Empty(t, o.PullEvents())

	t.Run("requires vehicle and driver", func(t *testing.T) {
		fresh := newOrder(t)

		err := fresh.Assign(order.Assignment{}, actor, t0)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.StatusPending, fresh.Status())
	})

	t.Run("second assign is an invalid transition", func(t *testing.T) {
		err := o.Assign(assignment(), actor, t0)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestDeliveryOrder_Start(t *testing.T) {
	t.Run("start from pending is rejected and leaves the order untouched", func(t *testing.T) {
		o := newOrder(t, newItem(t, itemDetails("WB-1")))
		historyBefore := o.StatusHistory()
		activityBefore := o.ActivityLog()

		err := o.Start(mustLocation(t, 106.8, -6.2), actor, t0.Add(time.Hour))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, historyBefore, o.StatusHistory())
		assert.Equal(t, activityBefore, o.ActivityLog())
		assert.Empty(t, o.TrackingLocations())
		assert.Nil(t, o.Route().ActualStart)
		assert.Equal(t, order.ItemStatusPending, o.Items()[0].Status())
	})

	t.Run("start without a location is rejected", func(t *testing.T) {
		o := newOrder(t, newItem(t, itemDetails("WB-1")))
		require.NoError(t, o.Assign(assignment(), actor, t0))

		err := o.Start(nil, actor, t0.Add(time.Hour))

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.StatusAssigned, o.Status())
		assert.Empty(t, o.TrackingLocations())
		assert.Nil(t, o.Route().ActualStart)
	})

	t.Run("records start and puts items in transit", func(t *testing.T) {
		o := inProgressOrder(t, newItem(t, itemDetails("WB-1")))

		assert.Equal(t, order.StatusInProgress, o.Status())
		require.NotNil(t, o.Route().ActualStart)
		assert.Equal(t, t0.Add(2*time.Minute), *o.Route().ActualStart)
		assert.Equal(t, order.ItemStatusInTransit, o.Items()[0].Status())
		require.Len(t, o.TrackingLocations(), 1)
		assert.Equal(t, order.TrackingTagStarted, o.TrackingLocations()[0].Tag)
		assert.Len(t, o.StatusHistory(), 3)
	})
}

func TestDeliveryOrder_Complete(t *testing.T) {
	t.Run("delivered and failed items give partially completed", func(t *testing.T) {
		delivered := newItem(t, itemDetails("WB-1"))
		failed := newItem(t, itemDetails("WB-2"))
		o := inProgressOrder(t, delivered, failed)
		require.NoError(t, o.RecordProofOfDelivery(delivered.ID(), proof(), actor, t0.Add(time.Hour)))
		require.NoError(t, o.RecordDeliveryFailure(failed.ID(), "receiver absent", false, actor, t0.Add(time.Hour)))

		err := o.Complete(mustLocation(t, 106.8, -6.2), "done", actor, t0.Add(2*time.Hour))

		require.NoError(t, err)
		assert.Equal(t, order.StatusPartiallyCompleted, o.Status())
		require.NotNil(t, o.Route().ActualEnd)
		assertSummaryMatchesItems(t, o)
	})

	t.Run("all delivered gives completed", func(t *testing.T) {
		item := newItem(t, itemDetails("WB-1"))
		o := inProgressOrder(t, item)
		require.NoError(t, o.RecordProofOfDelivery(item.ID(), proof(), actor, t0.Add(time.Hour)))
		assert.True(t, o.ReadyToComplete())
		assert.Equal(t, order.StatusInProgress, o.Status())

		require.NoError(t, o.Complete(nil, "", actor, t0.Add(2*time.Hour)))

		assert.Equal(t, order.StatusCompleted, o.Status())
	})

	t.Run("unresolved items block completion", func(t *testing.T) {
		o := inProgressOrder(t, newItem(t, itemDetails("WB-1")))
		assert.False(t, o.ReadyToComplete())

		err := o.Complete(nil, "", actor, t0.Add(time.Hour))

		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
		assert.Contains(t, err.Error(), "incomplete items")
		assert.Equal(t, order.StatusInProgress, o.Status())
	})

	t.Run("no items completes directly", func(t *testing.T) {
		o := inProgressOrder(t)

		require.NoError(t, o.Complete(nil, "", actor, t0.Add(time.Hour)))
		assert.Equal(t, order.StatusCompleted, o.Status())
	})

	t.Run("completing a pending order is an invalid transition", func(t *testing.T) {
		o := newOrder(t)

		require.ErrorIs(t, o.Complete(nil, "", actor, t0), errs.ErrInvalidTransition)
	})
}

func TestDeliveryOrder_CancelFailReopen(t *testing.T) {
	t.Run("cancel then reopen", func(t *testing.T) {
		o := newOrder(t, newItem(t, itemDetails("WB-1")))
		require.NoError(t, o.Assign(assignment(), actor, t0))

		require.ErrorIs(t, o.Cancel("", actor, t0), errs.ErrValueIsRequired)
		require.NoError(t, o.Cancel("vehicle broke down", actor, t0.Add(time.Minute)))
		assert.Equal(t, order.StatusCancelled, o.Status())

		require.NoError(t, o.Reopen("replacement found", actor, t0.Add(2*time.Minute)))
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, order.ItemStatusPending, o.Items()[0].Status())
	})

	t.Run("fail keeps item statuses and reopen resets open ones", func(t *testing.T) {
		delivered := newItem(t, itemDetails("WB-1"))
		open := newItem(t, itemDetails("WB-2"))
		o := inProgressOrder(t, delivered, open)
		require.NoError(t, o.RecordProofOfDelivery(delivered.ID(), proof(), actor, t0.Add(time.Hour)))

		require.NoError(t, o.Fail("accident", nil, actor, t0.Add(2*time.Hour)))
		assert.Equal(t, order.StatusFailed, o.Status())

		require.NoError(t, o.Reopen("", actor, t0.Add(3*time.Hour)))
		byID := map[kernel.UUID]order.ItemStatus{}
		for _, item := range o.Items() {
			byID[item.ID()] = item.Status()
		}
		assert.Equal(t, order.ItemStatusDelivered, byID[delivered.ID()])
		assert.Equal(t, order.ItemStatusPending, byID[open.ID()])
		assert.Nil(t, o.Route().ActualStart)
		assertSummaryMatchesItems(t, o)
	})

	t.Run("cancel in progress is rejected", func(t *testing.T) {
		o := inProgressOrder(t)

		require.ErrorIs(t, o.Cancel("why", actor, t0), errs.ErrInvalidTransition)
	})
}

func TestDeliveryOrder_Items(t *testing.T) {
	t.Run("added item follows the order status", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Assign(assignment(), actor, t0))
		item := newItem(t, itemDetails("WB-9"))

		require.NoError(t, o.AddItem(item, actor, t0))

		got, err := o.Item(item.ID())
		require.NoError(t, err)
		assert.Equal(t, order.ItemStatusAssigned, got.Status())
		assert.Equal(t, 1, o.Summary().TotalItems)
	})

	t.Run("duplicate item is rejected", func(t *testing.T) {
		item := newItem(t, itemDetails("WB-1"))
		o := newOrder(t, item)

		require.ErrorIs(t, o.AddItem(item, actor, t0), errs.ErrValueIsInvalid)
	})

	t.Run("items are frozen once in progress", func(t *testing.T) {
		item := newItem(t, itemDetails("WB-1"))
		o := inProgressOrder(t, item)

		require.ErrorIs(t, o.AddItem(newItem(t, itemDetails("WB-2")), actor, t0), errs.ErrPreconditionFailed)
		require.ErrorIs(t, o.RemoveItem(item.ID(), actor, t0), errs.ErrPreconditionFailed)
		assert.Equal(t, 1, o.Summary().TotalItems)
	})

	t.Run("remove drops the item and its stop", func(t *testing.T) {
		a := itemDetails("WB-A")
		a.Receiver.Location = mustLocation(t, 106.81, -6.2)
		b := itemDetails("WB-B")
		b.Receiver.Location = mustLocation(t, 106.82, -6.2)
		itemA, itemB := newItem(t, a), newItem(t, b)
		o := newOrder(t, itemA, itemB)
		applyPlan(t, o)

		require.NoError(t, o.RemoveItem(itemA.ID(), actor, t0))

		route := o.Route()
		require.Len(t, route.Stops, 1)
		assert.Equal(t, "WB-B", route.Stops[0].WaybillNumber)
		assert.Equal(t, 1, route.Stops[0].Sequence)
		assert.False(t, route.Optimized)
		assert.Equal(t, 1, o.Summary().TotalItems)
	})

	t.Run("unknown item is not found", func(t *testing.T) {
		o := newOrder(t)

		require.ErrorIs(t, o.RemoveItem(kernel.NewUUID(), actor, t0), errs.ErrObjectNotFound)
	})
}

func applyPlan(t *testing.T, o *order.DeliveryOrder) {
	t.Helper()
	var stops []order.RouteStop
	for i, item := range o.Items() {
		id := item.ID()
		stops = append(stops, order.RouteStop{
			ID:            kernel.NewUUID(),
			Location:      *item.Receiver().Location,
			ItemID:        &id,
			WaybillNumber: item.WaybillNumber(),
			Sequence:      i + 1,
			Status:        order.StopStatusPending,
		})
	}
	require.NoError(t, o.ApplyRoutePlan(order.RoutePlan{Stops: stops, TotalDistanceKm: 3}, actor, t0))
}

func TestDeliveryOrder_ProofOfDelivery(t *testing.T) {
	t.Run("requires an in progress order", func(t *testing.T) {
		item := newItem(t, itemDetails("WB-1"))
		o := newOrder(t, item)

		require.ErrorIs(t, o.RecordProofOfDelivery(item.ID(), proof(), actor, t0), errs.ErrPreconditionFailed)
	})

	t.Run("signature is required", func(t *testing.T) {
		item := newItem(t, itemDetails("WB-1"))
		o := inProgressOrder(t, item)
		data := proof()
		data.SignatureRef = ""

		require.ErrorIs(t, o.RecordProofOfDelivery(item.ID(), data, actor, t0), errs.ErrValueIsRequired)
		assert.Equal(t, order.ItemStatusInTransit, o.Items()[0].Status())
	})

	t.Run("collected cod needs a payment method", func(t *testing.T) {
		item := codItem(t, "30000")
		o := inProgressOrder(t, item)
		data := proof()
		data.CODCollected = true

		err := o.RecordProofOfDelivery(item.ID(), data, actor, t0)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "paymentMethod")
	})

	t.Run("collected cod defaults to the expected amount", func(t *testing.T) {
		item := codItem(t, "30000")
		o := inProgressOrder(t, item)
		data := proof()
		data.CODCollected = true
		data.PaymentMethod = "cash"

		require.NoError(t, o.RecordProofOfDelivery(item.ID(), data, actor, t0.Add(time.Hour)))

		got, _ := o.Item(item.ID())
		require.NotNil(t, got.ProofOfDelivery())
		assert.Equal(t, "30000.00", got.ProofOfDelivery().CODAmount.String())
		assert.Equal(t, "30000.00", o.Summary().CODCollectedAmount.String())
		assertSummaryMatchesItems(t, o)
	})

	t.Run("delivered item cannot be delivered again", func(t *testing.T) {
		item := newItem(t, itemDetails("WB-1"))
		o := inProgressOrder(t, item)
		require.NoError(t, o.RecordProofOfDelivery(item.ID(), proof(), actor, t0))

		require.ErrorIs(t, o.RecordProofOfDelivery(item.ID(), proof(), actor, t0), errs.ErrInvalidTransition)
	})
}

func TestDeliveryOrder_CODPayment(t *testing.T) {
	payment := func(t *testing.T) order.CODPaymentData {
		return order.CODPaymentData{Amount: mustMoney(t, "45000"), PaymentMethod: "transfer", ReceiptNumber: "RCPT-1"}
	}

	t.Run("payment before proof of delivery fails", func(t *testing.T) {
		item := codItem(t, "45000")
		o := inProgressOrder(t, item)

		err := o.RecordCODPayment(item.ID(), payment(t), actor, t0)

		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
		assert.True(t, o.Summary().CODCollectedAmount.IsZero())
	})

	t.Run("non cod item fails", func(t *testing.T) {
		item := newItem(t, itemDetails("WB-1"))
		o := inProgressOrder(t, item)
		require.NoError(t, o.RecordProofOfDelivery(item.ID(), proof(), actor, t0))

		require.ErrorIs(t, o.RecordCODPayment(item.ID(), payment(t), actor, t0), errs.ErrPreconditionFailed)
	})

	t.Run("updates the proof record", func(t *testing.T) {
		item := codItem(t, "45000")
		o := inProgressOrder(t, item)
		require.NoError(t, o.RecordProofOfDelivery(item.ID(), proof(), actor, t0))

		require.NoError(t, o.RecordCODPayment(item.ID(), payment(t), actor, t0.Add(time.Minute)))

		got, _ := o.Item(item.ID())
		pod := got.ProofOfDelivery()
		assert.True(t, pod.CODCollected)
		assert.Equal(t, "transfer", pod.PaymentMethod)
		assert.Equal(t, "RCPT-1", pod.ReceiptNumber)
		assert.Equal(t, order.ItemStatusDelivered, got.Status())
		assert.Equal(t, "45000.00", o.Summary().CODCollectedAmount.String())
	})

	t.Run("amount must be positive", func(t *testing.T) {
		item := codItem(t, "45000")
		o := inProgressOrder(t, item)
		require.NoError(t, o.RecordProofOfDelivery(item.ID(), proof(), actor, t0))

		err := o.RecordCODPayment(item.ID(), order.CODPaymentData{Amount: kernel.ZeroMoney(), PaymentMethod: "cash"}, actor, t0)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestDeliveryOrder_DeliveryFailure(t *testing.T) {
	d := itemDetails("WB-1")
	d.Receiver.Location = mustLocation(t, 106.81, -6.2)
	item := newItem(t, d)
	o := newOrder(t, item)
	applyPlan(t, o)
	require.NoError(t, o.Assign(assignment(), actor, t0))
	require.NoError(t, o.Start(mustLocation(t, 106.8, -6.2), actor, t0))

	require.ErrorIs(t, o.RecordDeliveryFailure(item.ID(), " ", true, actor, t0), errs.ErrValueIsRequired)
	require.NoError(t, o.RecordDeliveryFailure(item.ID(), "address not found", true, actor, t0.Add(time.Hour)))

	got, _ := o.Item(item.ID())
	assert.Equal(t, order.ItemStatusReturned, got.Status())
	assert.Equal(t, "address not found", got.FailureReason())
	assert.Equal(t, order.StopStatusSkipped, o.Route().Stops[0].Status)
	assert.Equal(t, 1, o.Summary().ReturnedCount)
	assert.Len(t, o.TrackingLocations(), 1)
}

func TestDeliveryOrder_RoutePlanning(t *testing.T) {
	t.Run("start location is required", func(t *testing.T) {
		number, _ := order.NewNumber(t0, "JK", 1)
		schedule, _ := order.NewSchedule(t0, "")
		o, err := order.NewDeliveryOrder(kernel.NewUUID(), number, order.Details{
			Branch:   order.BranchRef{ID: kernel.NewUUID(), Code: "JK"},
			Schedule: schedule,
		}, actor, t0)
		require.NoError(t, err)

		require.ErrorIs(t, o.ApplyRoutePlan(order.RoutePlan{}, actor, t0), errs.ErrPreconditionFailed)

		require.NoError(t, o.SetRouteEndpoints(mustLocation(t, 106.8, -6.2), nil, actor, t0))
		require.NoError(t, o.ApplyRoutePlan(order.RoutePlan{}, actor, t0))
		assert.True(t, o.Route().Optimized)
	})

	t.Run("cannot plan an order in progress", func(t *testing.T) {
		o := inProgressOrder(t)

		require.ErrorIs(t, o.ApplyRoutePlan(order.RoutePlan{}, actor, t0), errs.ErrPreconditionFailed)
		require.ErrorIs(t, o.SetRouteEndpoints(mustLocation(t, 1, 1), nil, actor, t0), errs.ErrPreconditionFailed)
	})

	t.Run("departure waits for the scheduled start", func(t *testing.T) {
		o := newOrder(t)

		assert.Equal(t, t0.Add(90*time.Minute), o.DepartureTime(t0))
		late := t0.Add(5 * time.Hour)
		assert.Equal(t, late, o.DepartureTime(late))
	})
}

func TestDeliveryOrder_ArriveAtStop(t *testing.T) {
	d := itemDetails("WB-1")
	d.Receiver.Location = mustLocation(t, 106.81, -6.2)
	o := newOrder(t, newItem(t, d))
	applyPlan(t, o)
	stopID := o.Route().Stops[0].ID

	require.ErrorIs(t, o.ArriveAtStop(stopID, actor, t0), errs.ErrPreconditionFailed)

	require.NoError(t, o.Assign(assignment(), actor, t0))
	require.NoError(t, o.Start(mustLocation(t, 106.8, -6.2), actor, t0))
	require.NoError(t, o.ArriveAtStop(stopID, actor, t0.Add(time.Hour)))

	stop := o.Route().Stops[0]
	assert.Equal(t, order.StopStatusArrived, stop.Status)
	require.NotNil(t, stop.ActualArrival)
	require.ErrorIs(t, o.ArriveAtStop(stopID, actor, t0), errs.ErrPreconditionFailed)
	require.ErrorIs(t, o.ArriveAtStop(kernel.NewUUID(), actor, t0), errs.ErrObjectNotFound)
}

func TestDeliveryOrder_RecordTrackingLocation(t *testing.T) {
	params := geo.DefaultParams()

	t.Run("accepted before start without touching the route", func(t *testing.T) {
		o := newOrder(t)

		err := o.RecordTrackingLocation(order.TrackingLocation{Location: *mustLocation(t, 106.8, -6.2), Actor: actor}, params, t0)

		require.NoError(t, err)
		require.Len(t, o.TrackingLocations(), 1)
		assert.Equal(t, t0, o.TrackingLocations()[0].Timestamp)
		assert.Len(t, o.ActivityLog(), 1)
	})

	t.Run("reprojects open stops while in progress", func(t *testing.T) {
		first := itemDetails("WB-1")
		first.Receiver.Location = mustLocation(t, 0, 1)
		second := itemDetails("WB-2")
		second.Receiver.Location = mustLocation(t, 0, 2)
		itemA, itemB := newItem(t, first), newItem(t, second)
		o := newOrder(t, itemA, itemB)
		applyPlan(t, o)
		require.NoError(t, o.Assign(assignment(), actor, t0))
		require.NoError(t, o.Start(mustLocation(t, 106.8, -6.2), actor, t0))
		require.NoError(t, o.RecordProofOfDelivery(itemA.ID(), proof(), actor, t0.Add(time.Hour)))

		speed := 60.0
		observedAt := t0.Add(2 * time.Hour)
		err := o.RecordTrackingLocation(order.TrackingLocation{
			Location:  *mustLocation(t, 0, 1),
			SpeedKmh:  &speed,
			Timestamp: observedAt,
			Actor:     actor,
		}, params, observedAt)

		require.NoError(t, err)
		stops := o.Route().Stops
		assert.Nil(t, stops[0].EstimatedArrival)
		require.NotNil(t, stops[1].EstimatedArrival)
		leg := params.DistanceKm(*mustLocation(t, 0, 1), *mustLocation(t, 0, 2)) / speed
		assert.WithinDuration(t, observedAt.Add(time.Duration(leg*float64(time.Hour))), *stops[1].EstimatedArrival, time.Millisecond)
		assert.Equal(t, "WB-1", stops[0].WaybillNumber)
	})

	t.Run("negative speed is rejected", func(t *testing.T) {
		o := newOrder(t)
		speed := -1.0

		err := o.RecordTrackingLocation(order.TrackingLocation{Location: *mustLocation(t, 1, 1), SpeedKmh: &speed, Actor: actor}, params, t0)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Empty(t, o.TrackingLocations())
	})
}

func TestDeliveryOrder_SummaryHoldsAcrossOperations(t *testing.T) {
	items := []*order.Item{
		newItem(t, itemDetails("WB-1")),
		codItem(t, "10000"),
		newItem(t, itemDetails("WB-3")),
		codItem(t, "20000"),
	}
	o := newOrder(t, items[0], items[1])
	assertSummaryMatchesItems(t, o)

	steps := []func() error{
		func() error { return o.AddItem(items[2], actor, t0) },
		func() error { return o.Assign(assignment(), actor, t0) },
		func() error { return o.AddItem(items[3], actor, t0) },
		func() error { return o.RemoveItem(items[0].ID(), actor, t0) },
		func() error { return o.Start(mustLocation(t, 106.8, -6.2), actor, t0) },
		func() error { return o.RecordCODPayment(items[1].ID(), order.CODPaymentData{}, actor, t0) },
		func() error { return o.RecordProofOfDelivery(items[1].ID(), proof(), actor, t0) },
		func() error {
			return o.RecordCODPayment(items[1].ID(), order.CODPaymentData{Amount: mustMoney(t, "10000"), PaymentMethod: "cash"}, actor, t0)
		},
		func() error { return o.RecordDeliveryFailure(items[2].ID(), "refused", false, actor, t0) },
		func() error { return o.Complete(nil, "", actor, t0) },
		func() error { return o.RecordDeliveryFailure(items[3].ID(), "closed", true, actor, t0) },
		func() error { return o.Complete(nil, "", actor, t0) },
	}

	for _, step := range steps {
		_ = step()
		assertSummaryMatchesItems(t, o)
	}

	assert.Equal(t, order.StatusPartiallyCompleted, o.Status())
	assert.Equal(t, "10000.00", o.Summary().CODCollectedAmount.String())
	assert.Equal(t, "30000.00", o.Summary().CODExpectedAmount.String())
}

func TestRestoreDeliveryOrder(t *testing.T) {
	original := inProgressOrder(t, codItem(t, "5000"))

	restored, err := order.RestoreDeliveryOrder(order.State{
		ID:            original.ID(),
		Number:        original.Number(),
		Branch:        original.Branch(),
		Vehicle:       original.Vehicle(),
		Driver:        original.Driver(),
		Schedule:      original.Schedule(),
		Priority:      original.Priority(),
		Status:        original.Status(),
		StatusHistory: original.StatusHistory(),
		Items:         original.Items(),
		Route:         original.Route(),
		Tracking:      original.TrackingLocations(),
		Activity:      original.ActivityLog(),
		CreatedBy:     original.CreatedBy(),
		UpdatedBy:     original.UpdatedBy(),
		CreatedAt:     original.CreatedAt(),
		UpdatedAt:     original.UpdatedAt(),
		Version:       3,
	})

	require.NoError(t, err)
	require.NoError(t, restored.Validate())
	assert.Equal(t, original.Summary(), restored.Summary())
	assert.Equal(t, int64(3), restored.Version())
	assert.Equal(t, original.StatusHistory(), restored.StatusHistory())

	_, err = order.RestoreDeliveryOrder(order.State{})
	require.Error(t, err)
	require.ErrorIs(t, (*order.DeliveryOrder)(nil).Validate(), order.ErrDeliveryOrderIsNotConstructed)
}
