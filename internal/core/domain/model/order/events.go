package order

import (
	"time"

	"fleetdelivery/internal/core/domain/model/kernel"
)

// StatusChanged is raised for every accepted order status transition.
// Handlers drain it with PullEvents after the change is committed.
type StatusChanged struct {
	OrderID     kernel.UUID
	OrderNumber string
	From        Status
	To          Status
	Actor       kernel.UUID
	At          time.Time
}
