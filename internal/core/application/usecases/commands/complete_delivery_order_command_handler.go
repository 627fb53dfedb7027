package commands

import (
	"context"
	"time"

	"fleetdelivery/internal/core/domain/model/order"
)

// CompleteDeliveryOrderCommandHandler closes an order. The resulting status
// is completed when every item was delivered and partially_completed
// otherwise.
type CompleteDeliveryOrderCommandHandler struct {
	mutator *OrderMutator
}

func NewCompleteDeliveryOrderCommandHandler(mutator *OrderMutator) CompleteDeliveryOrderCommandHandler {
	return CompleteDeliveryOrderCommandHandler{mutator: mutator}
}

func (h CompleteDeliveryOrderCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryOrderCommand) (*order.DeliveryOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutator.Mutate(ctx, cmd.OrderID(), func(o *order.DeliveryOrder, now time.Time) error {
		return o.Complete(cmd.Location(), cmd.Notes(), cmd.Actor(), now)
	})
}
