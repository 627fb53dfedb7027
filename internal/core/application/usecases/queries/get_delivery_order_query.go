// Package queries contains the read operations of the delivery order core.
// Queries take no locks and never change state.
package queries

import (
	"errors"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/errs"
	"fleetdelivery/internal/pkg/guard"
)

var ErrGetDeliveryOrderQueryIsNotConstructed = errors.New(
	"GetDeliveryOrderQuery must be created via NewGetDeliveryOrderQuery constructor",
)

// GetDeliveryOrderQuery loads one order with its items, route and logs.
//
// Example:
//
//	query, err := NewGetDeliveryOrderQuery(id)
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, query)
type GetDeliveryOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDeliveryOrderQuery(orderID kernel.UUID) (GetDeliveryOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetDeliveryOrderQuery{}, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	return GetDeliveryOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDeliveryOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryOrderQueryIsNotConstructed)
}

func (q GetDeliveryOrderQuery) OrderID() kernel.UUID { return q.orderID }
