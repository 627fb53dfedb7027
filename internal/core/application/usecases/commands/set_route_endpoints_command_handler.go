package commands

import (
	"context"
	"time"

	"fleetdelivery/internal/core/domain/model/order"
)

type SetRouteEndpointsCommandHandler struct {
	mutator *OrderMutator
}

func NewSetRouteEndpointsCommandHandler(mutator *OrderMutator) SetRouteEndpointsCommandHandler {
	return SetRouteEndpointsCommandHandler{mutator: mutator}
}

func (h SetRouteEndpointsCommandHandler) Handle(ctx context.Context, cmd SetRouteEndpointsCommand) (*order.DeliveryOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutator.Mutate(ctx, cmd.OrderID(), func(o *order.DeliveryOrder, now time.Time) error {
		start := cmd.Start()
		return o.SetRouteEndpoints(&start, cmd.End(), cmd.Actor(), now)
	})
}
