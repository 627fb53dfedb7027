package commands

import (
	"errors"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/errs"
)

// orderTarget is embedded by every command that changes an existing order.
type orderTarget struct {
	orderID kernel.UUID
	actor   kernel.UUID
}

func newOrderTarget(orderID, actor kernel.UUID) (orderTarget, error) {
	var err error
	if e := orderID.Validate(); e != nil {
		err = errs.NewValueIsRequiredErrorWithCause("orderId", e)
	}
	if e := actor.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("actor", e))
	}
	if err != nil {
		return orderTarget{}, err
	}
	return orderTarget{orderID: orderID, actor: actor}, nil
}

// OrderID returns the order the command applies to.
func (t orderTarget) OrderID() kernel.UUID { return t.orderID }

// Actor returns the user issuing the command.
func (t orderTarget) Actor() kernel.UUID { return t.actor }
