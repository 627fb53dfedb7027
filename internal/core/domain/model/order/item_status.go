package order

import (
	"fmt"
	"slices"

	"fleetdelivery/internal/pkg/errs"
)

const itemEntity = "delivery item"

// ItemStatus is the delivery state of a single item.
//
//	Pending ──> Assigned ──> InTransit ──┬──> Delivered
//	                                     ├──> Failed
//	                                     └──> Returned
//
// Delivered, Failed and Returned are terminal. A delivery confirmation is
// accepted from any non-terminal state. The edges back to Pending exist only
// for the reopen cascade of the owning order.
type ItemStatus int

const (
	ItemStatusUnknown ItemStatus = iota
	ItemStatusPending
	ItemStatusAssigned
	ItemStatusInTransit
	ItemStatusDelivered
	ItemStatusFailed
	ItemStatusReturned
)

var itemStatusNames = map[ItemStatus]string{
	ItemStatusPending:   "pending",
	ItemStatusAssigned:  "assigned",
	ItemStatusInTransit: "in_transit",
	ItemStatusDelivered: "delivered",
	ItemStatusFailed:    "failed",
	ItemStatusReturned:  "returned",
}

var itemStatusTransitions = map[ItemStatus][]ItemStatus{
	ItemStatusPending:   {ItemStatusAssigned, ItemStatusDelivered},
	ItemStatusAssigned:  {ItemStatusInTransit, ItemStatusDelivered, ItemStatusPending},
	ItemStatusInTransit: {ItemStatusDelivered, ItemStatusFailed, ItemStatusReturned, ItemStatusPending},
}

func ParseItemStatus(s string) (ItemStatus, error) {
	for status, name := range itemStatusNames {
		if name == s {
			return status, nil
		}
	}
	return ItemStatusUnknown, errs.NewValueIsInvalidErrorWithCause("item status", fmt.Errorf("%q is not a delivery item status", s))
}

func AllItemStatuses() []ItemStatus {
	return []ItemStatus{
		ItemStatusPending, ItemStatusAssigned, ItemStatusInTransit,
		ItemStatusDelivered, ItemStatusFailed, ItemStatusReturned,
	}
}

func (s ItemStatus) String() string {
	if name, ok := itemStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s ItemStatus) Validate() error {
	if _, ok := itemStatusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("item status", fmt.Errorf("%d is not a valid item status", s))
	}
	return nil
}

func (s ItemStatus) CanTransitionTo(target ItemStatus) bool {
	return slices.Contains(itemStatusTransitions[s], target)
}

// IsTerminal reports whether the item has reached the end of its delivery.
func (s ItemStatus) IsTerminal() bool {
	return s == ItemStatusDelivered || s == ItemStatusFailed || s == ItemStatusReturned
}

func (s ItemStatus) transitionTo(target ItemStatus) (ItemStatus, error) {
	if !s.CanTransitionTo(target) {
		return ItemStatusUnknown, errs.NewInvalidTransitionError(itemEntity, s, target)
	}
	return target, nil
}
