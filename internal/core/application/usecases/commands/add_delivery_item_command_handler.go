package commands

import (
	"context"
	"time"

	"fleetdelivery/internal/core/domain/model/order"
	"fleetdelivery/internal/core/ports"
)

type AddDeliveryItemCommandHandler struct {
	mutator    *OrderMutator
	references ports.ReferenceChecker
}

func NewAddDeliveryItemCommandHandler(mutator *OrderMutator, references ports.ReferenceChecker) AddDeliveryItemCommandHandler {
	return AddDeliveryItemCommandHandler{mutator: mutator, references: references}
}

// Handle validates the item, confirms its shipment exists and appends it.
func (h AddDeliveryItemCommandHandler) Handle(ctx context.Context, cmd AddDeliveryItemCommand) (*order.DeliveryOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := checkReferences(ctx, h.references, reference{kind: ports.ReferenceShipment, id: cmd.Details().ShipmentOrderRef}); err != nil {
		return nil, err
	}

	return h.mutator.Mutate(ctx, cmd.OrderID(), func(o *order.DeliveryOrder, now time.Time) error {
		item, err := order.NewItem(cmd.ItemID(), cmd.Details(), cmd.Actor(), now)
		if err != nil {
			return err
		}
		return o.AddItem(item, cmd.Actor(), now)
	})
}
