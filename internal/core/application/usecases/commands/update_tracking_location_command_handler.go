package commands

import (
	"context"
	"time"

	"fleetdelivery/internal/core/domain/model/geo"
	"fleetdelivery/internal/core/domain/model/order"
)

type UpdateTrackingLocationCommandHandler struct {
	mutator *OrderMutator
	params  geo.Params
}

func NewUpdateTrackingLocationCommandHandler(mutator *OrderMutator, params geo.Params) UpdateTrackingLocationCommandHandler {
	return UpdateTrackingLocationCommandHandler{mutator: mutator, params: params.Normalized()}
}

func (h UpdateTrackingLocationCommandHandler) Handle(ctx context.Context, cmd UpdateTrackingLocationCommand) (*order.DeliveryOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutator.Mutate(ctx, cmd.OrderID(), func(o *order.DeliveryOrder, now time.Time) error {
		return o.RecordTrackingLocation(cmd.Observation(), h.params, now)
	})
}
