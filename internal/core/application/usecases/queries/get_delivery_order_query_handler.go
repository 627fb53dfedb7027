package queries

import (
	"context"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/order"
)

// DeliveryOrderReader is the read side of the order repository.
type DeliveryOrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.DeliveryOrder, error)
}

type GetDeliveryOrderQueryHandler struct {
	reader DeliveryOrderReader
}

func NewGetDeliveryOrderQueryHandler(reader DeliveryOrderReader) GetDeliveryOrderQueryHandler {
	return GetDeliveryOrderQueryHandler{reader: reader}
}

// Handle returns the order, or errs.ErrObjectNotFound for an unknown id.
func (h GetDeliveryOrderQueryHandler) Handle(ctx context.Context, query GetDeliveryOrderQuery) (*order.DeliveryOrder, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.reader.Get(ctx, query.OrderID())
}
