package order

import (
	"fmt"
	"time"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/errs"
)

type StopStatus int

const (
	StopStatusUnknown StopStatus = iota
	StopStatusPending
	StopStatusArrived
	StopStatusCompleted
	StopStatusSkipped
)

var stopStatusNames = map[StopStatus]string{
	StopStatusPending:   "pending",
	StopStatusArrived:   "arrived",
	StopStatusCompleted: "completed",
	StopStatusSkipped:   "skipped",
}

func ParseStopStatus(s string) (StopStatus, error) {
	for status, name := range stopStatusNames {
		if name == s {
			return status, nil
		}
	}
	return StopStatusUnknown, errs.NewValueIsInvalidErrorWithCause("stop status", fmt.Errorf("%q is not a stop status", s))
}

func (s StopStatus) String() string {
	if name, ok := stopStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsOpen reports whether the driver still has to reach the stop.
func (s StopStatus) IsOpen() bool {
	return s == StopStatusPending || s == StopStatusArrived
}

// RouteStop is one point of the route, usually tied to a delivery item.
type RouteStop struct {
	ID               kernel.UUID
	Location         kernel.Location
	ItemID           *kernel.UUID
	WaybillNumber    string
	Sequence         int
	EstimatedArrival *time.Time
	ActualArrival    *time.Time
	Status           StopStatus
}

// Route is the planned and actual path of an order.
type Route struct {
	StartLocation        *kernel.Location
	EndLocation          *kernel.Location
	Stops                []RouteStop
	Optimized            bool
	OptimizedAt          *time.Time
	TotalDistanceKm      float64
	EstimatedDurationMin int
	ActualStart          *time.Time
	ActualEnd            *time.Time
}

func (r Route) clone() Route {
	c := r
	c.StartLocation = cloneLocation(r.StartLocation)
	c.EndLocation = cloneLocation(r.EndLocation)
	c.OptimizedAt = cloneTime(r.OptimizedAt)
	c.ActualStart = cloneTime(r.ActualStart)
	c.ActualEnd = cloneTime(r.ActualEnd)
	c.Stops = make([]RouteStop, len(r.Stops))
	for i, s := range r.Stops {
		s.EstimatedArrival = cloneTime(s.EstimatedArrival)
		s.ActualArrival = cloneTime(s.ActualArrival)
		if s.ItemID != nil {
			id := *s.ItemID
			s.ItemID = &id
		}
		c.Stops[i] = s
	}
	return c
}

func (r *Route) stopIndexForItem(itemID kernel.UUID) int {
	for i, s := range r.Stops {
		if s.ItemID != nil && s.ItemID.IsEqual(itemID) {
			return i
		}
	}
	return -1
}

func (r *Route) stopIndex(stopID kernel.UUID) int {
	for i, s := range r.Stops {
		if s.ID.IsEqual(stopID) {
			return i
		}
	}
	return -1
}

// invalidate drops the optimization result after the stop set changed.
func (r *Route) invalidate() {
	r.Optimized = false
	r.OptimizedAt = nil
}

// RoutePlan is a computed route ready to be applied to an order.
type RoutePlan struct {
	Stops                []RouteStop
	TotalDistanceKm      float64
	EstimatedDurationMin int
}
