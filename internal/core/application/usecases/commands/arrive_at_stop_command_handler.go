package commands

import (
	"context"
	"time"

	"fleetdelivery/internal/core/domain/model/order"
)

type ArriveAtStopCommandHandler struct {
	mutator *OrderMutator
}

func NewArriveAtStopCommandHandler(mutator *OrderMutator) ArriveAtStopCommandHandler {
	return ArriveAtStopCommandHandler{mutator: mutator}
}

func (h ArriveAtStopCommandHandler) Handle(ctx context.Context, cmd ArriveAtStopCommand) (*order.DeliveryOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutator.Mutate(ctx, cmd.OrderID(), func(o *order.DeliveryOrder, now time.Time) error {
		return o.ArriveAtStop(cmd.StopID(), cmd.Actor(), now)
	})
}
