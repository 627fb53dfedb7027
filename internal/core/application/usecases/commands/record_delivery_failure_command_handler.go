package commands

import (
	"context"
	"time"

	"fleetdelivery/internal/core/domain/model/order"
)

type RecordDeliveryFailureCommandHandler struct {
	mutator *OrderMutator
}

func NewRecordDeliveryFailureCommandHandler(mutator *OrderMutator) RecordDeliveryFailureCommandHandler {
	return RecordDeliveryFailureCommandHandler{mutator: mutator}
}

func (h RecordDeliveryFailureCommandHandler) Handle(ctx context.Context, cmd RecordDeliveryFailureCommand) (*order.DeliveryOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutator.Mutate(ctx, cmd.OrderID(), func(o *order.DeliveryOrder, now time.Time) error {
		return o.RecordDeliveryFailure(cmd.ItemID(), cmd.Reason(), cmd.Returned(), cmd.Actor(), now)
	})
}
