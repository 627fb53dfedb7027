package commands

import (
	"context"
	"time"

	"fleetdelivery/internal/core/domain/model/order"
)

type StartDeliveryOrderCommandHandler struct {
	mutator *OrderMutator
}

func NewStartDeliveryOrderCommandHandler(mutator *OrderMutator) StartDeliveryOrderCommandHandler {
	return StartDeliveryOrderCommandHandler{mutator: mutator}
}

func (h StartDeliveryOrderCommandHandler) Handle(ctx context.Context, cmd StartDeliveryOrderCommand) (*order.DeliveryOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutator.Mutate(ctx, cmd.OrderID(), func(o *order.DeliveryOrder, now time.Time) error {
		return o.Start(cmd.Location(), cmd.Actor(), now)
	})
}
