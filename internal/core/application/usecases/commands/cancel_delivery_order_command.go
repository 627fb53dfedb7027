package commands

import (
	"errors"
	"strings"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/errs"
	"fleetdelivery/internal/pkg/guard"
)

var ErrCancelDeliveryOrderCommandIsNotConstructed = errors.New(
	"CancelDeliveryOrderCommand must be created via NewCancelDeliveryOrderCommand constructor",
)

type CancelDeliveryOrderCommand struct { //nolint:recvcheck //using for validation
	orderTarget
	reason string

	guard guard.ConstructorGuard
}

func NewCancelDeliveryOrderCommand(orderID, actor kernel.UUID, reason string) (CancelDeliveryOrderCommand, error) {
	target, err := newOrderTarget(orderID, actor)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("reason"))
	}
	if err != nil {
		return CancelDeliveryOrderCommand{}, err
	}
	return CancelDeliveryOrderCommand{orderTarget: target, reason: reason, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelDeliveryOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelDeliveryOrderCommandIsNotConstructed)
}

func (c CancelDeliveryOrderCommand) Reason() string { return c.reason }
