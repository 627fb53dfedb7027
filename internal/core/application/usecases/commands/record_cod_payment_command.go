package commands

import (
	"errors"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/order"
	"fleetdelivery/internal/pkg/errs"
	"fleetdelivery/internal/pkg/guard"
)

var ErrRecordCODPaymentCommandIsNotConstructed = errors.New(
	"RecordCODPaymentCommand must be created via NewRecordCODPaymentCommand constructor",
)

type RecordCODPaymentCommand struct { //nolint:recvcheck //using for validation
	orderTarget
	itemID  kernel.UUID
	payment order.CODPaymentData

	guard guard.ConstructorGuard
}

func NewRecordCODPaymentCommand(orderID, actor, itemID kernel.UUID, payment order.CODPaymentData) (RecordCODPaymentCommand, error) {
	target, err := newOrderTarget(orderID, actor)
	if e := itemID.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("itemId", e))
	}
	if err != nil {
		return RecordCODPaymentCommand{}, err
	}
	return RecordCODPaymentCommand{orderTarget: target, itemID: itemID, payment: payment, guard: guard.NewConstructorGuard()}, nil
}

func (c RecordCODPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordCODPaymentCommandIsNotConstructed)
}

func (c RecordCODPaymentCommand) ItemID() kernel.UUID           { return c.itemID }
func (c RecordCODPaymentCommand) Payment() order.CODPaymentData { return c.payment }
