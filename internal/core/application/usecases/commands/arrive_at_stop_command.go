package commands

import (
	"errors"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/errs"
	"fleetdelivery/internal/pkg/guard"
)

var ErrArriveAtStopCommandIsNotConstructed = errors.New(
	"ArriveAtStopCommand must be created via NewArriveAtStopCommand constructor",
)

// ArriveAtStopCommand marks a pending route stop as reached by the driver.
type ArriveAtStopCommand struct { //nolint:recvcheck //using for validation
	orderTarget
	stopID kernel.UUID

	guard guard.ConstructorGuard
}

func NewArriveAtStopCommand(orderID, actor, stopID kernel.UUID) (ArriveAtStopCommand, error) {
	target, err := newOrderTarget(orderID, actor)
	if e := stopID.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("stopId", e))
	}
	if err != nil {
		return ArriveAtStopCommand{}, err
	}
	return ArriveAtStopCommand{orderTarget: target, stopID: stopID, guard: guard.NewConstructorGuard()}, nil
}

func (c ArriveAtStopCommand) Validate() error {
	return c.guard.Validate(ErrArriveAtStopCommandIsNotConstructed)
}

func (c ArriveAtStopCommand) StopID() kernel.UUID { return c.stopID }
