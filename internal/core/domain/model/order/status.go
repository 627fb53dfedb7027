package order

import (
	"fmt"
	"slices"

	"fleetdelivery/internal/pkg/errs"
)

const orderEntity = "delivery order"

// Status is the lifecycle state of a delivery order.
//
// Transitions:
//
//	Pending ──> Assigned ──> InProgress ──┬──> Completed
//	   │  ^        │                      ├──> PartiallyCompleted
//	   │  │        │                      └──> Failed ──┐
//	   v  │        v                                    │
//	Cancelled <────┘                                    │
//	   │                                                │
//	   └──────────────> (reopen) Pending <──────────────┘
//
// Completed and PartiallyCompleted are final.
type Status int

const (
	// StatusUnknown is the zero value and never a valid state.
	StatusUnknown Status = iota
	StatusPending
	StatusAssigned
	StatusInProgress
	StatusCompleted
	StatusPartiallyCompleted
	StatusFailed
	StatusCancelled
)

var statusNames = map[Status]string{
	StatusPending:            "pending",
	StatusAssigned:           "assigned",
	StatusInProgress:         "in_progress",
	StatusCompleted:          "completed",
	StatusPartiallyCompleted: "partially_completed",
	StatusFailed:             "failed",
	StatusCancelled:          "cancelled",
}

var statusTransitions = map[Status][]Status{
	StatusPending:    {StatusAssigned, StatusCancelled},
	StatusAssigned:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusPartiallyCompleted, StatusFailed},
	StatusFailed:     {StatusPending},
	StatusCancelled:  {StatusPending},
}

// ParseStatus converts the persisted or wire name back into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a delivery order status", s))
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusPending, StatusAssigned, StatusInProgress, StatusCompleted,
		StatusPartiallyCompleted, StatusFailed, StatusCancelled,
	}
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Validate rejects StatusUnknown and values outside the enumeration.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// CanTransitionTo reports whether target is reachable from s in one step.
func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(statusTransitions[s], target)
}

// IsFinal reports whether s has no outgoing transitions.
func (s Status) IsFinal() bool {
	return s == StatusCompleted || s == StatusPartiallyCompleted
}

// IsActive reports whether the order is still being worked on.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusAssigned || s == StatusInProgress
}

// AcceptsItemChanges reports whether items may be added or removed.
func (s Status) AcceptsItemChanges() bool {
	return s == StatusPending || s == StatusAssigned
}

func (s Status) transitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return StatusUnknown, errs.NewInvalidTransitionError(orderEntity, s, target)
	}
	return target, nil
}

// Assign moves Pending to Assigned.
func (s Status) Assign() (Status, error) { return s.transitionTo(StatusAssigned) }

// Start moves Assigned to InProgress.
func (s Status) Start() (Status, error) { return s.transitionTo(StatusInProgress) }

// Complete closes an in-progress order. The result is Completed when every
// item was delivered and PartiallyCompleted otherwise.
func (s Status) Complete(allDelivered bool) (Status, error) {
	if allDelivered {
		return s.transitionTo(StatusCompleted)
	}
	return s.transitionTo(StatusPartiallyCompleted)
}

// Fail moves InProgress to Failed.
func (s Status) Fail() (Status, error) { return s.transitionTo(StatusFailed) }

// Cancel moves Pending or Assigned to Cancelled.
func (s Status) Cancel() (Status, error) { return s.transitionTo(StatusCancelled) }

// Reopen moves Failed or Cancelled back to Pending.
func (s Status) Reopen() (Status, error) { return s.transitionTo(StatusPending) }
