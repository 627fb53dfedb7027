package commands

import (
	"context"
	"time"

	"fleetdelivery/internal/core/domain/model/order"
)

type RecordCODPaymentCommandHandler struct {
	mutator *OrderMutator
}

func NewRecordCODPaymentCommandHandler(mutator *OrderMutator) RecordCODPaymentCommandHandler {
	return RecordCODPaymentCommandHandler{mutator: mutator}
}

func (h RecordCODPaymentCommandHandler) Handle(ctx context.Context, cmd RecordCODPaymentCommand) (*order.DeliveryOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutator.Mutate(ctx, cmd.OrderID(), func(o *order.DeliveryOrder, now time.Time) error {
		return o.RecordCODPayment(cmd.ItemID(), cmd.Payment(), cmd.Actor(), now)
	})
}
