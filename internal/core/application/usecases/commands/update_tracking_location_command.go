package commands

import (
	"errors"
	"time"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/order"
	"fleetdelivery/internal/pkg/errs"
	"fleetdelivery/internal/pkg/guard"
)

var ErrUpdateTrackingLocationCommandIsNotConstructed = errors.New(
	"UpdateTrackingLocationCommand must be created via NewUpdateTrackingLocationCommand constructor",
)

type UpdateTrackingLocationCommand struct { //nolint:recvcheck //using for validation
	orderTarget
	location  kernel.Location
	speedKmh  *float64
	accuracy  *float64
	timestamp time.Time

	guard guard.ConstructorGuard
}

// NewUpdateTrackingLocationCommand builds a position report. A zero
// timestamp is replaced with the handler's clock.
func NewUpdateTrackingLocationCommand(
	orderID, actor kernel.UUID,
	location kernel.Location,
	speedKmh, accuracy *float64,
	timestamp time.Time,
) (UpdateTrackingLocationCommand, error) {
	target, err := newOrderTarget(orderID, actor)
	if e := location.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("coordinates", e))
	}
	if speedKmh != nil && *speedKmh < 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("speed", *speedKmh, 0, "unbounded"))
	}
	if accuracy != nil && *accuracy < 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("accuracy", *accuracy, 0, "unbounded"))
	}
	if err != nil {
		return UpdateTrackingLocationCommand{}, err
	}
	return UpdateTrackingLocationCommand{
		orderTarget: target,
		location:    location,
		speedKmh:    speedKmh,
		accuracy:    accuracy,
		timestamp:   timestamp,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateTrackingLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTrackingLocationCommandIsNotConstructed)
}

// Observation converts the command into the aggregate's tracking entry.
func (c UpdateTrackingLocationCommand) Observation() order.TrackingLocation {
	return order.TrackingLocation{
		Location:  c.location,
		SpeedKmh:  c.speedKmh,
		Accuracy:  c.accuracy,
		Timestamp: c.timestamp,
		Actor:     c.Actor(),
	}
}
