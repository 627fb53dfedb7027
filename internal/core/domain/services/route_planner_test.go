package services_test

import (
	"testing"
	"time"

	"fleetdelivery/internal/core/domain/model/geo"
	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/order"
	"fleetdelivery/internal/core/domain/services"
	"fleetdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now   = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	actor = kernel.NewUUID()
)

func location(t *testing.T, lon, lat float64) *kernel.Location {
	t.Helper()
	l, err := kernel.NewLocation(lon, lat)
	require.NoError(t, err)
	return &l
}

func itemAt(t *testing.T, waybill string, at *kernel.Location) *order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), order.ItemDetails{
		ShipmentOrderRef: kernel.NewUUID(),
		WaybillNumber:    waybill,
		Receiver:         order.Receiver{Name: "Budi", Address: "Jl. Kenanga 2", Location: at},
		Quantity:         1,
		PaymentType:      order.PaymentCash,
		CODAmount:        kernel.ZeroMoney(),
	}, actor, now)
	require.NoError(t, err)
	return item
}

func orderWith(t *testing.T, start, end *kernel.Location, scheduledTime string, items ...*order.Item) *order.DeliveryOrder {
	t.Helper()
	number, err := order.NewNumber(now, "BR", 1)
	require.NoError(t, err)
	schedule, err := order.NewSchedule(now, scheduledTime)
	require.NoError(t, err)
	o, err := order.NewDeliveryOrder(kernel.NewUUID(), number, order.Details{
		Branch:        order.BranchRef{ID: kernel.NewUUID(), Code: "BR"},
		Schedule:      schedule,
		StartLocation: start,
		EndLocation:   end,
		Items:         items,
	}, actor, now)
	require.NoError(t, err)
	return o
}

func waybills(stops []order.RouteStop) []string {
	out := make([]string, len(stops))
	for i, s := range stops {
		out[i] = s.WaybillNumber
	}
	return out
}

func TestRoutePlanner_Optimize(t *testing.T) {
	params := geo.DefaultParams()
	planner := services.NewRoutePlanner(params, nil)

	t.Run("should visit stops in nearest neighbor order", func(t *testing.T) {
		start := location(t, 0, 0)
		a := itemAt(t, "A", location(t, 0, 0.02))
		b := itemAt(t, "B", location(t, 0, 0.01))
		c := itemAt(t, "C", location(t, 0, 0.05))
		o := orderWith(t, start, nil, "", a, b, c)

		require.NoError(t, planner.Optimize(o, actor, now))

		route := o.Route()
		assert.Equal(t, []string{"B", "A", "C"}, waybills(route.Stops))
		for i, stop := range route.Stops {
			assert.Equal(t, i+1, stop.Sequence)
			assert.Equal(t, order.StopStatusPending, stop.Status)
			require.NotNil(t, stop.EstimatedArrival)
		}
		assert.True(t, route.Optimized)
		require.NotNil(t, route.OptimizedAt)
		assert.Equal(t, now, *route.OptimizedAt)
		assert.InDelta(t, params.DistanceKm(*start, *location(t, 0, 0.05)), route.TotalDistanceKm, 1e-9)
		assert.Equal(t, params.EstimateDurationMinutes(route.TotalDistanceKm, 30), route.EstimatedDurationMin)
	})

	t.Run("should be deterministic", func(t *testing.T) {
		items := []*order.Item{
			itemAt(t, "1", location(t, 106.80, -6.20)),
			itemAt(t, "2", location(t, 106.85, -6.10)),
			itemAt(t, "3", location(t, 106.70, -6.30)),
			itemAt(t, "4", location(t, 106.90, -6.25)),
		}
		first := orderWith(t, location(t, 106.82, -6.18), nil, "", items...)
		second := orderWith(t, location(t, 106.82, -6.18), nil, "", items...)

		require.NoError(t, planner.Optimize(first, actor, now))
		require.NoError(t, planner.Optimize(second, actor, now))

		assert.Equal(t, waybills(first.Route().Stops), waybills(second.Route().Stops))
		assert.Equal(t, first.Route().TotalDistanceKm, second.Route().TotalDistanceKm)
	})

	t.Run("should add the leg to the end location", func(t *testing.T) {
		start := location(t, 0, 0)
		o := orderWith(t, start, start, "", itemAt(t, "A", location(t, 0, 1)))

		require.NoError(t, planner.Optimize(o, actor, now))

		assert.InDelta(t, 2*params.DistanceKm(*start, *location(t, 0, 1)), o.Route().TotalDistanceKm, 1e-9)
	})

	t.Run("should skip items without location", func(t *testing.T) {
		o := orderWith(t, location(t, 0, 0), nil, "", itemAt(t, "A", nil), itemAt(t, "B", location(t, 0, 1)))

		require.NoError(t, planner.Optimize(o, actor, now))

		assert.Equal(t, []string{"B"}, waybills(o.Route().Stops))
	})

	t.Run("should handle an order without stops", func(t *testing.T) {
		o := orderWith(t, location(t, 0, 0), nil, "")

		require.NoError(t, planner.Optimize(o, actor, now))

		assert.Empty(t, o.Route().Stops)
		assert.Zero(t, o.Route().TotalDistanceKm)
		assert.Zero(t, o.Route().EstimatedDurationMin)
		assert.True(t, o.Route().Optimized)
	})

	t.Run("should project arrivals from a future scheduled start", func(t *testing.T) {
		start := location(t, 0, 0)
		o := orderWith(t, start, nil, "13:00", itemAt(t, "A", location(t, 0, 1)))

		require.NoError(t, planner.Optimize(o, actor, now))

		legHours := params.DistanceKm(*start, *location(t, 0, 1)) / 30
		want := time.Date(2025, 3, 14, 13, 0, 0, 0, time.UTC).Add(time.Duration(legHours * float64(time.Hour)))
		assert.WithinDuration(t, want, *o.Route().Stops[0].EstimatedArrival, time.Millisecond)
	})

	t.Run("should fail without a start location", func(t *testing.T) {
		o := orderWith(t, nil, nil, "", itemAt(t, "A", location(t, 0, 1)))

		err := planner.Optimize(o, actor, now)

		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
		assert.False(t, o.Route().Optimized)
	})

	t.Run("should refuse an order in progress", func(t *testing.T) {
		o := orderWith(t, location(t, 0, 0), nil, "", itemAt(t, "A", location(t, 0, 1)))
		require.NoError(t, o.Assign(order.Assignment{Vehicle: kernel.NewUUID(), Driver: kernel.NewUUID()}, actor, now))
		require.NoError(t, o.Start(location(t, 0, 0), actor, now))

		require.ErrorIs(t, planner.Optimize(o, actor, now), errs.ErrPreconditionFailed)
	})

	t.Run("should refuse an order that was not constructed", func(t *testing.T) {
		require.ErrorIs(t, planner.Optimize(&order.DeliveryOrder{}, actor, now), order.ErrDeliveryOrderIsNotConstructed)
	})
}

type reverseSequencer struct{}

func (reverseSequencer) Sequence(_ kernel.Location, stops []kernel.Location) []int {
	out := make([]int, len(stops))
	for i := range stops {
		out[i] = len(stops) - 1 - i
	}
	return out
}

func TestRoutePlanner_CustomSequencer(t *testing.T) {
	planner := services.NewRoutePlanner(geo.Params{}, reverseSequencer{})
	o := orderWith(t, location(t, 0, 0), nil, "",
		itemAt(t, "A", location(t, 0, 1)),
		itemAt(t, "B", location(t, 0, 2)),
	)

	require.NoError(t, planner.Optimize(o, actor, now))

	assert.Equal(t, []string{"B", "A"}, waybills(o.Route().Stops))
	assert.Equal(t, geo.DefaultParams(), planner.Params())
}
