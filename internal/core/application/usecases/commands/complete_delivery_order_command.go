package commands

import (
	"errors"
	"strings"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/guard"
)

var ErrCompleteDeliveryOrderCommandIsNotConstructed = errors.New(
	"CompleteDeliveryOrderCommand must be created via NewCompleteDeliveryOrderCommand constructor",
)

// CompleteDeliveryOrderCommand closes an in-progress order once every item
// is resolved.
type CompleteDeliveryOrderCommand struct { //nolint:recvcheck //using for validation
	orderTarget
	location *kernel.Location
	notes    string

	guard guard.ConstructorGuard
}

func NewCompleteDeliveryOrderCommand(orderID, actor kernel.UUID, location *kernel.Location, notes string) (CompleteDeliveryOrderCommand, error) {
	target, err := newOrderTarget(orderID, actor)
	if err != nil {
		return CompleteDeliveryOrderCommand{}, err
	}
	return CompleteDeliveryOrderCommand{
		orderTarget: target,
		location:    location,
		notes:       strings.TrimSpace(notes),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteDeliveryOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryOrderCommandIsNotConstructed)
}

func (c CompleteDeliveryOrderCommand) Location() *kernel.Location { return c.location }
func (c CompleteDeliveryOrderCommand) Notes() string              { return c.notes }
