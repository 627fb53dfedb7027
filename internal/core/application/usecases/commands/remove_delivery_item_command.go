package commands

import (
	"errors"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/errs"
	"fleetdelivery/internal/pkg/guard"
)

var ErrRemoveDeliveryItemCommandIsNotConstructed = errors.New(
	"RemoveDeliveryItemCommand must be created via NewRemoveDeliveryItemCommand constructor",
)

type RemoveDeliveryItemCommand struct { //nolint:recvcheck //using for validation
	orderTarget
	itemID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveDeliveryItemCommand(orderID, actor, itemID kernel.UUID) (RemoveDeliveryItemCommand, error) {
	target, err := newOrderTarget(orderID, actor)
	if e := itemID.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("itemId", e))
	}
	if err != nil {
		return RemoveDeliveryItemCommand{}, err
	}
	return RemoveDeliveryItemCommand{orderTarget: target, itemID: itemID, guard: guard.NewConstructorGuard()}, nil
}

func (c RemoveDeliveryItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveDeliveryItemCommandIsNotConstructed)
}

func (c RemoveDeliveryItemCommand) ItemID() kernel.UUID { return c.itemID }
