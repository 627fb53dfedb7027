package commands

import (
	"context"
	"time"

	"fleetdelivery/internal/core/domain/model/order"
	"fleetdelivery/internal/core/domain/services"
)

type OptimizeRouteCommandHandler struct {
	mutator *OrderMutator
	planner services.RoutePlanner
}

func NewOptimizeRouteCommandHandler(mutator *OrderMutator, planner services.RoutePlanner) OptimizeRouteCommandHandler {
	return OptimizeRouteCommandHandler{mutator: mutator, planner: planner}
}

func (h OptimizeRouteCommandHandler) Handle(ctx context.Context, cmd OptimizeRouteCommand) (*order.DeliveryOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutator.Mutate(ctx, cmd.OrderID(), func(o *order.DeliveryOrder, now time.Time) error {
		return h.planner.Optimize(o, cmd.Actor(), now)
	})
}
