package commands

import (
	"context"
	"time"

	"fleetdelivery/internal/core/domain/model/order"
)

type CancelDeliveryOrderCommandHandler struct {
	mutator *OrderMutator
}

func NewCancelDeliveryOrderCommandHandler(mutator *OrderMutator) CancelDeliveryOrderCommandHandler {
	return CancelDeliveryOrderCommandHandler{mutator: mutator}
}

func (h CancelDeliveryOrderCommandHandler) Handle(ctx context.Context, cmd CancelDeliveryOrderCommand) (*order.DeliveryOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutator.Mutate(ctx, cmd.OrderID(), func(o *order.DeliveryOrder, now time.Time) error {
		return o.Cancel(cmd.Reason(), cmd.Actor(), now)
	})
}
