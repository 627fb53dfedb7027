package services

import (
	"time"

	"fleetdelivery/internal/core/domain/model/geo"
	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/order"
	"fleetdelivery/internal/pkg/errs"
)

// RoutePlanner builds the stop list of a delivery order from its items,
// sequences it and projects distance, duration and per-stop arrival times.
//
// The sequencing strategy is pluggable through geo.Sequencer; the default is
// the deterministic nearest-neighbor heuristic.
//
// Example usage:
//
//	planner := services.NewRoutePlanner(geo.DefaultParams(), nil)
//	if err := planner.Optimize(o, actor, clock.Now()); err != nil {
//	    return err
//	}
//	route := o.Route() // route.Optimized == true
type RoutePlanner struct {
	params    geo.Params
	sequencer geo.Sequencer
}

// NewRoutePlanner returns a planner. A nil sequencer selects nearest neighbor.
func NewRoutePlanner(params geo.Params, sequencer geo.Sequencer) RoutePlanner {
	params = params.Normalized()
	if sequencer == nil {
		sequencer = geo.NewNearestNeighborSequencer(params)
	}
	return RoutePlanner{params: params, sequencer: sequencer}
}

// Params returns the geospatial parameters the planner was built with.
func (p RoutePlanner) Params() geo.Params {
	return p.params
}

// Optimize plans the route of o and stores the result on it.
//
// Rules:
//   - the order must be pending or assigned
//   - the route start location must be set
//   - items without a receiver location are left out of the stops
//   - arrival times start from the scheduled start, or now when that has passed
func (p RoutePlanner) Optimize(o *order.DeliveryOrder, actor kernel.UUID, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.RequireRoutePlanning(); err != nil {
		return err
	}
	route := o.Route()
	if route.StartLocation == nil {
		return errs.NewPreconditionFailedError("route start location is not set")
	}

	plan := p.Plan(*route.StartLocation, route.EndLocation, o.Items(), o.DepartureTime(now))
	return o.ApplyRoutePlan(plan, actor, now)
}

// Plan computes a route over items without touching any order.
func (p RoutePlanner) Plan(start kernel.Location, end *kernel.Location, items []*order.Item, departAt time.Time) order.RoutePlan {
	candidates := make([]order.RouteStop, 0, len(items))
	locations := make([]kernel.Location, 0, len(items))
	for _, item := range items {
		receiver := item.Receiver()
		if receiver.Location == nil {
			continue
		}
		itemID := item.ID()
		candidates = append(candidates, order.RouteStop{
			ID:            kernel.NewUUID(),
			Location:      *receiver.Location,
			ItemID:        &itemID,
			WaybillNumber: item.WaybillNumber(),
			Status:        order.StopStatusPending,
		})
		locations = append(locations, *receiver.Location)
	}

	sequence := p.sequencer.Sequence(start, locations)

	stops := make([]order.RouteStop, len(sequence))
	ordered := make([]kernel.Location, len(sequence))
	for n, idx := range sequence {
		stops[n] = candidates[idx]
		stops[n].Sequence = n + 1
		ordered[n] = locations[idx]
	}

	arrivals := p.params.ProjectArrivals(start, departAt, ordered, p.params.DefaultSpeedKmh)
	for n := range stops {
		eta := arrivals[n]
		stops[n].EstimatedArrival = &eta
	}

	distance := p.params.PathDistanceKm(start, ordered, end)
	return order.RoutePlan{
		Stops:                stops,
		TotalDistanceKm:      distance,
		EstimatedDurationMin: p.params.EstimateDurationMinutes(distance, p.params.DefaultSpeedKmh),
	}
}
