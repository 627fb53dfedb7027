package commands

import (
	"context"
	"time"

	"fleetdelivery/internal/core/domain/model/order"
)

type RemoveDeliveryItemCommandHandler struct {
	mutator *OrderMutator
}

func NewRemoveDeliveryItemCommandHandler(mutator *OrderMutator) RemoveDeliveryItemCommandHandler {
	return RemoveDeliveryItemCommandHandler{mutator: mutator}
}

func (h RemoveDeliveryItemCommandHandler) Handle(ctx context.Context, cmd RemoveDeliveryItemCommand) (*order.DeliveryOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutator.Mutate(ctx, cmd.OrderID(), func(o *order.DeliveryOrder, now time.Time) error {
		return o.RemoveItem(cmd.ItemID(), cmd.Actor(), now)
	})
}
