package commands

import (
	"errors"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/errs"
	"fleetdelivery/internal/pkg/guard"
)

var ErrStartDeliveryOrderCommandIsNotConstructed = errors.New(
	"StartDeliveryOrderCommand must be created via NewStartDeliveryOrderCommand constructor",
)

// StartDeliveryOrderCommand sends an assigned order on its way. The location
// becomes the first tracking point.
type StartDeliveryOrderCommand struct { //nolint:recvcheck //using for validation
	orderTarget
	location *kernel.Location

	guard guard.ConstructorGuard
}

func NewStartDeliveryOrderCommand(orderID, actor kernel.UUID, location *kernel.Location) (StartDeliveryOrderCommand, error) {
	target, err := newOrderTarget(orderID, actor)
	if location == nil {
		err = errors.Join(err, errs.NewValueIsRequiredError("location"))
	}
	if err != nil {
		return StartDeliveryOrderCommand{}, err
	}
	return StartDeliveryOrderCommand{orderTarget: target, location: location, guard: guard.NewConstructorGuard()}, nil
}

func (c StartDeliveryOrderCommand) Validate() error {
	return c.guard.Validate(ErrStartDeliveryOrderCommandIsNotConstructed)
}

func (c StartDeliveryOrderCommand) Location() *kernel.Location { return c.location }
