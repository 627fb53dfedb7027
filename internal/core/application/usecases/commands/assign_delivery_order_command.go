package commands

import (
	"errors"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/order"
	"fleetdelivery/internal/core/ports"
	"fleetdelivery/internal/pkg/errs"
	"fleetdelivery/internal/pkg/guard"
)

var ErrAssignDeliveryOrderCommandIsNotConstructed = errors.New(
	"AssignDeliveryOrderCommand must be created via NewAssignDeliveryOrderCommand constructor",
)

// AssignDeliveryOrderCommand gives a pending order its vehicle, driver and
// optional helper, optionally moving the schedule at the same time.
type AssignDeliveryOrderCommand struct { //nolint:recvcheck //using for validation
	orderTarget
	assignment order.Assignment

	guard guard.ConstructorGuard
}

func NewAssignDeliveryOrderCommand(
	orderID, actor, vehicle, driver kernel.UUID,
	helper *kernel.UUID,
	schedule *order.Schedule,
) (AssignDeliveryOrderCommand, error) {
	target, err := newOrderTarget(orderID, actor)
	if e := vehicle.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("vehicleId", e))
	}
	if e := driver.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("driverId", e))
	}
	if err != nil {
		return AssignDeliveryOrderCommand{}, err
	}

	return AssignDeliveryOrderCommand{
		orderTarget: target,
		assignment:  order.Assignment{Vehicle: vehicle, Driver: driver, Helper: helper, Schedule: schedule},
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c AssignDeliveryOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignDeliveryOrderCommandIsNotConstructed)
}

func (c AssignDeliveryOrderCommand) Assignment() order.Assignment { return c.assignment }

func (c AssignDeliveryOrderCommand) references() []reference {
	refs := []reference{
		{kind: ports.ReferenceVehicle, id: c.assignment.Vehicle},
		{kind: ports.ReferenceDriver, id: c.assignment.Driver},
	}
	if c.assignment.Helper != nil {
		refs = append(refs, reference{kind: ports.ReferenceHelper, id: *c.assignment.Helper})
	}
	return refs
}
