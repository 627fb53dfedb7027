package commands

import (
	"errors"
	"strings"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/guard"
)

var ErrReopenDeliveryOrderCommandIsNotConstructed = errors.New(
	"ReopenDeliveryOrderCommand must be created via NewReopenDeliveryOrderCommand constructor",
)

// ReopenDeliveryOrderCommand returns a failed or cancelled order to pending.
type ReopenDeliveryOrderCommand struct { //nolint:recvcheck //using for validation
	orderTarget
	note string

	guard guard.ConstructorGuard
}

func NewReopenDeliveryOrderCommand(orderID, actor kernel.UUID, note string) (ReopenDeliveryOrderCommand, error) {
	target, err := newOrderTarget(orderID, actor)
	if err != nil {
		return ReopenDeliveryOrderCommand{}, err
	}
	return ReopenDeliveryOrderCommand{orderTarget: target, note: strings.TrimSpace(note), guard: guard.NewConstructorGuard()}, nil
}

func (c ReopenDeliveryOrderCommand) Validate() error {
	return c.guard.Validate(ErrReopenDeliveryOrderCommandIsNotConstructed)
}

func (c ReopenDeliveryOrderCommand) Note() string { return c.note }
