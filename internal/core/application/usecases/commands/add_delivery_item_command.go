package commands

import (
	"errors"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/order"
	"fleetdelivery/internal/pkg/guard"
)

var ErrAddDeliveryItemCommandIsNotConstructed = errors.New(
	"AddDeliveryItemCommand must be created via NewAddDeliveryItemCommand constructor",
)

// AddDeliveryItemCommand adds a shipment item to a pending or assigned order.
type AddDeliveryItemCommand struct { //nolint:recvcheck //using for validation
	orderTarget
	itemID  kernel.UUID
	details order.ItemDetails

	guard guard.ConstructorGuard
}

func NewAddDeliveryItemCommand(orderID, actor, itemID kernel.UUID, details order.ItemDetails) (AddDeliveryItemCommand, error) {
	target, err := newOrderTarget(orderID, actor)
	err = errors.Join(err, itemID.Validate())
	if err != nil {
		return AddDeliveryItemCommand{}, err
	}
	return AddDeliveryItemCommand{orderTarget: target, itemID: itemID, details: details, guard: guard.NewConstructorGuard()}, nil
}

func (c AddDeliveryItemCommand) Validate() error {
	return c.guard.Validate(ErrAddDeliveryItemCommandIsNotConstructed)
}

func (c AddDeliveryItemCommand) ItemID() kernel.UUID        { return c.itemID }
func (c AddDeliveryItemCommand) Details() order.ItemDetails { return c.details }
