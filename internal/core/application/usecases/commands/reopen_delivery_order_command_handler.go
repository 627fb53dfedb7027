package commands

import (
	"context"
	"time"

	"fleetdelivery/internal/core/domain/model/order"
)

type ReopenDeliveryOrderCommandHandler struct {
	mutator *OrderMutator
}

func NewReopenDeliveryOrderCommandHandler(mutator *OrderMutator) ReopenDeliveryOrderCommandHandler {
	return ReopenDeliveryOrderCommandHandler{mutator: mutator}
}

func (h ReopenDeliveryOrderCommandHandler) Handle(ctx context.Context, cmd ReopenDeliveryOrderCommand) (*order.DeliveryOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutator.Mutate(ctx, cmd.OrderID(), func(o *order.DeliveryOrder, now time.Time) error {
		return o.Reopen(cmd.Note(), cmd.Actor(), now)
	})
}
