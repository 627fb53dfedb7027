// Package geo holds the pure geospatial functions the route engine relies on:
// great-circle distance, nearest-neighbor sequencing and speed-based ETA
// projection. Nothing here keeps state; tunables travel in Params.
package geo

import (
	"math"
	"time"

	"fleetdelivery/internal/core/domain/model/kernel"
)

const (
	DefaultEarthRadiusKm   = 6371.0
	DefaultSpeedKmh        = 30.0
	minutesPerHour         = 60.0
	degreesToRadiansFactor = math.Pi / 180
)

// Params carries the constants of the geospatial model.
type Params struct {
	EarthRadiusKm   float64
	DefaultSpeedKmh float64
}

// DefaultParams returns a 6371 km sphere and a 30 km/h assumed speed.
func DefaultParams() Params {
	return Params{EarthRadiusKm: DefaultEarthRadiusKm, DefaultSpeedKmh: DefaultSpeedKmh}
}

// Normalized replaces non-positive or non-finite fields with the defaults.
func (p Params) Normalized() Params {
	if !isPositiveFinite(p.EarthRadiusKm) {
		p.EarthRadiusKm = DefaultEarthRadiusKm
	}
	if !isPositiveFinite(p.DefaultSpeedKmh) {
		p.DefaultSpeedKmh = DefaultSpeedKmh
	}
	return p
}

// DistanceKm is the haversine distance between a and b.
func (p Params) DistanceKm(a, b kernel.Location) float64 {
	lat1 := a.Lat() * degreesToRadiansFactor
	lat2 := b.Lat() * degreesToRadiansFactor
	dLat := (b.Lat() - a.Lat()) * degreesToRadiansFactor
	dLon := (b.Lon() - a.Lon()) * degreesToRadiansFactor

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can push h marginally outside [0, 1] for antipodal points
	h = math.Min(1, math.Max(0, h))

	return 2 * p.EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// NearestNeighbor returns the visiting order of stops as indexes into stops.
// From start it repeatedly moves to the closest unvisited stop; on equal
// distance the stop appearing first in the input wins.
func (p Params) NearestNeighbor(start kernel.Location, stops []kernel.Location) []int {
	order := make([]int, 0, len(stops))
	visited := make([]bool, len(stops))
	current := start

	for range stops {
		best := -1
		bestDistance := math.Inf(1)
		for i, stop := range stops {
			if visited[i] {
				continue
			}
			d := p.DistanceKm(current, stop)
			if d < bestDistance {
				best, bestDistance = i, d
			}
		}
		visited[best] = true
		order = append(order, best)
		current = stops[best]
	}

	return order
}

// PathDistanceKm sums the legs start → ordered[0] → … → ordered[n-1] and, if
// end is given, the final leg to end.
func (p Params) PathDistanceKm(start kernel.Location, ordered []kernel.Location, end *kernel.Location) float64 {
	total := 0.0
	current := start
	for _, stop := range ordered {
		total += p.DistanceKm(current, stop)
		current = stop
	}
	if end != nil {
		total += p.DistanceKm(current, *end)
	}
	return total
}

// EffectiveSpeed returns speedKmh, or the default when it is unusable.
func (p Params) EffectiveSpeed(speedKmh float64) float64 {
	if isPositiveFinite(speedKmh) {
		return speedKmh
	}
	return p.DefaultSpeedKmh
}

// EstimateDurationMinutes computes ceil(distance / speed * 60).
func (p Params) EstimateDurationMinutes(distanceKm, speedKmh float64) int {
	if !isPositiveFinite(distanceKm) {
		return 0
	}
	return int(math.Ceil(distanceKm / p.EffectiveSpeed(speedKmh) * minutesPerHour))
}

// ProjectArrivals walks stops in the given order starting at from at departAt
// and returns the cumulative arrival time for each stop.
func (p Params) ProjectArrivals(from kernel.Location, departAt time.Time, stops []kernel.Location, speedKmh float64) []time.Time {
	speed := p.EffectiveSpeed(speedKmh)
	arrivals := make([]time.Time, len(stops))

	elapsedHours := 0.0
	current := from
	for i, stop := range stops {
		elapsedHours += p.DistanceKm(current, stop) / speed
		arrivals[i] = departAt.Add(time.Duration(elapsedHours * float64(time.Hour)))
		current = stop
	}

	return arrivals
}

func isPositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
