package commands

import (
	"errors"
	"strings"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/errs"
	"fleetdelivery/internal/pkg/guard"
)

var ErrFailDeliveryOrderCommandIsNotConstructed = errors.New(
	"FailDeliveryOrderCommand must be created via NewFailDeliveryOrderCommand constructor",
)

// FailDeliveryOrderCommand aborts an order that is on the road, e.g. after a
// breakdown. Items keep their status until the order is reopened.
type FailDeliveryOrderCommand struct { //nolint:recvcheck //using for validation
	orderTarget
	reason   string
	location *kernel.Location

	guard guard.ConstructorGuard
}

func NewFailDeliveryOrderCommand(orderID, actor kernel.UUID, reason string, location *kernel.Location) (FailDeliveryOrderCommand, error) {
	target, err := newOrderTarget(orderID, actor)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("reason"))
	}
	if err != nil {
		return FailDeliveryOrderCommand{}, err
	}
	return FailDeliveryOrderCommand{
		orderTarget: target,
		reason:      reason,
		location:    location,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c FailDeliveryOrderCommand) Validate() error {
	return c.guard.Validate(ErrFailDeliveryOrderCommandIsNotConstructed)
}

func (c FailDeliveryOrderCommand) Reason() string             { return c.reason }
func (c FailDeliveryOrderCommand) Location() *kernel.Location { return c.location }
