package commands

import (
	"context"
	"time"

	"fleetdelivery/internal/core/domain/model/order"
)

type RecordProofOfDeliveryCommandHandler struct {
	mutator *OrderMutator
}

func NewRecordProofOfDeliveryCommandHandler(mutator *OrderMutator) RecordProofOfDeliveryCommandHandler {
	return RecordProofOfDeliveryCommandHandler{mutator: mutator}
}

func (h RecordProofOfDeliveryCommandHandler) Handle(ctx context.Context, cmd RecordProofOfDeliveryCommand) (*order.DeliveryOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutator.Mutate(ctx, cmd.OrderID(), func(o *order.DeliveryOrder, now time.Time) error {
		return o.RecordProofOfDelivery(cmd.ItemID(), cmd.Proof(), cmd.Actor(), now)
	})
}
