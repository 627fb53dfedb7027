package commands

import (
	"errors"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/errs"
	"fleetdelivery/internal/pkg/guard"
)

var ErrSetRouteEndpointsCommandIsNotConstructed = errors.New(
	"SetRouteEndpointsCommand must be created via NewSetRouteEndpointsCommand constructor",
)

type SetRouteEndpointsCommand struct { //nolint:recvcheck //using for validation
	orderTarget
	start kernel.Location
	end   *kernel.Location

	guard guard.ConstructorGuard
}

func NewSetRouteEndpointsCommand(orderID, actor kernel.UUID, start kernel.Location, end *kernel.Location) (SetRouteEndpointsCommand, error) {
	target, err := newOrderTarget(orderID, actor)
	if e := start.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("startLocation", e))
	}
	if end != nil {
		err = errors.Join(err, end.Validate())
	}
	if err != nil {
		return SetRouteEndpointsCommand{}, err
	}
	return SetRouteEndpointsCommand{orderTarget: target, start: start, end: end, guard: guard.NewConstructorGuard()}, nil
}

func (c SetRouteEndpointsCommand) Validate() error {
	return c.guard.Validate(ErrSetRouteEndpointsCommandIsNotConstructed)
}

func (c SetRouteEndpointsCommand) Start() kernel.Location { return c.start }
func (c SetRouteEndpointsCommand) End() *kernel.Location  { return c.end }
