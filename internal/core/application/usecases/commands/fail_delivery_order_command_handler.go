package commands

import (
	"context"
	"time"

	"fleetdelivery/internal/core/domain/model/order"
)

type FailDeliveryOrderCommandHandler struct {
	mutator *OrderMutator
}

func NewFailDeliveryOrderCommandHandler(mutator *OrderMutator) FailDeliveryOrderCommandHandler {
	return FailDeliveryOrderCommandHandler{mutator: mutator}
}

func (h FailDeliveryOrderCommandHandler) Handle(ctx context.Context, cmd FailDeliveryOrderCommand) (*order.DeliveryOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutator.Mutate(ctx, cmd.OrderID(), func(o *order.DeliveryOrder, now time.Time) error {
		return o.Fail(cmd.Reason(), cmd.Location(), cmd.Actor(), now)
	})
}
