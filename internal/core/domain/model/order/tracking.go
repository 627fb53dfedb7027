package order

import (
	"errors"
	"time"

	"fleetdelivery/internal/core/domain/model/geo"
	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/errs"
)

// RecordTrackingLocation appends a position observation. It is accepted in
// every status. While the order is in progress the estimated arrival of
// every open stop is projected again from the observed position, keeping the
// current stop order.
func (o *DeliveryOrder) RecordTrackingLocation(obs TrackingLocation, params geo.Params, now time.Time) error {
	if err := validateObservation(obs); err != nil {
		return err
	}
	if obs.Timestamp.IsZero() {
		obs.Timestamp = now
	}

	o.tracking = append(o.tracking, obs)
	if o.status == StatusInProgress {
		o.reprojectOpenStops(obs, params.Normalized())
	}
	o.touch(obs.Actor, now)
	return nil
}

func validateObservation(obs TrackingLocation) error {
	var err error
	if e := obs.Location.Validate(); e != nil {
		err = errs.NewValueIsRequiredErrorWithCause("coordinates", e)
	}
	if e := obs.Actor.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("actor", e))
	}
	if obs.SpeedKmh != nil && *obs.SpeedKmh < 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("speed", *obs.SpeedKmh, 0, "unbounded"))
	}
	if obs.Accuracy != nil && *obs.Accuracy < 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("accuracy", *obs.Accuracy, 0, "unbounded"))
	}
	return err
}

func (o *DeliveryOrder) reprojectOpenStops(obs TrackingLocation, params geo.Params) {
	var (
		indexes   []int
		locations []kernel.Location
	)
	for i, stop := range o.route.Stops {
		if stop.Status.IsOpen() {
			indexes = append(indexes, i)
			locations = append(locations, stop.Location)
		}
	}
	if len(indexes) == 0 {
		return
	}

	speed := 0.0
	if obs.SpeedKmh != nil {
		speed = *obs.SpeedKmh
	}
	arrivals := params.ProjectArrivals(obs.Location, obs.Timestamp, locations, speed)
	for n, i := range indexes {
		eta := arrivals[n]
		o.route.Stops[i].EstimatedArrival = &eta
	}
}
