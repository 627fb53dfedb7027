package commands

import (
	"context"
	"time"

	"fleetdelivery/internal/core/domain/model/order"
	"fleetdelivery/internal/core/ports"
)

// AssignDeliveryOrderCommandHandler assigns a crew after confirming the
// vehicle, driver and helper exist.
type AssignDeliveryOrderCommandHandler struct {
	mutator    *OrderMutator
	references ports.ReferenceChecker
}

func NewAssignDeliveryOrderCommandHandler(mutator *OrderMutator, references ports.ReferenceChecker) AssignDeliveryOrderCommandHandler {
	return AssignDeliveryOrderCommandHandler{mutator: mutator, references: references}
}

func (h AssignDeliveryOrderCommandHandler) Handle(ctx context.Context, cmd AssignDeliveryOrderCommand) (*order.DeliveryOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := checkReferences(ctx, h.references, cmd.references()...); err != nil {
		return nil, err
	}

	return h.mutator.Mutate(ctx, cmd.OrderID(), func(o *order.DeliveryOrder, now time.Time) error {
		return o.Assign(cmd.Assignment(), cmd.Actor(), now)
	})
}
