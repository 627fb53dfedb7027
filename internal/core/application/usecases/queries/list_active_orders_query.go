package queries

import (
	"errors"
	"fmt"
	"time"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/order"
	"fleetdelivery/internal/pkg/errs"
	"fleetdelivery/internal/pkg/guard"
)

var ErrListActiveOrdersQueryIsNotConstructed = errors.New(
	"ListActiveOrdersQuery must be created via NewListActiveOrdersQuery constructor",
)

// ActiveOrdersFilter narrows ListActiveOrders. Zero fields do not filter.
type ActiveOrdersFilter struct {
	BranchCode    string
	Driver        *kernel.UUID
	ScheduledDate *time.Time
	Statuses      []order.Status
}

// ListActiveOrdersQuery lists orders that are pending, assigned or in
// progress, ordered by scheduled date and order number.
//
// Example:
//
//	query, err := NewListActiveOrdersQuery(ActiveOrdersFilter{BranchCode: "JK"})
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type ListActiveOrdersQuery struct {
	branchCode    string
	driver        *kernel.UUID
	scheduledDate *time.Time
	statuses      []order.Status

	guard guard.ConstructorGuard
}

func NewListActiveOrdersQuery(filter ActiveOrdersFilter) (ListActiveOrdersQuery, error) {
	var err error
	q := ListActiveOrdersQuery{guard: guard.NewConstructorGuard()}

	if filter.BranchCode != "" {
		code, e := order.NormalizeBranchCode(filter.BranchCode)
		if e != nil {
			err = e
		}
		q.branchCode = code
	}
	if filter.Driver != nil {
		if e := filter.Driver.Validate(); e != nil {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("driver", e))
		}
		d := *filter.Driver
		q.driver = &d
	}
	if filter.ScheduledDate != nil {
		day := filter.ScheduledDate.UTC().Truncate(24 * time.Hour)
		q.scheduledDate = &day
	}
	for _, s := range filter.Statuses {
		if !s.IsActive() {
			err = errors.Join(err, errs.NewValueIsInvalidError(fmt.Sprintf("status %s is not active", s)))
			continue
		}
		q.statuses = append(q.statuses, s)
	}
	if len(q.statuses) == 0 {
		q.statuses = []order.Status{order.StatusPending, order.StatusAssigned, order.StatusInProgress}
	}

	if err != nil {
		return ListActiveOrdersQuery{}, err
	}
	return q, nil
}

func (q ListActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListActiveOrdersQueryIsNotConstructed)
}

func (q ListActiveOrdersQuery) BranchCode() string { return q.branchCode }

func (q ListActiveOrdersQuery) Statuses() []order.Status {
	out := make([]order.Status, len(q.statuses))
	copy(out, q.statuses)
	return out
}

// ActiveOrder is the read model of one listed order.
type ActiveOrder struct {
	ID                 kernel.UUID
	Number             string
	BranchCode         string
	Status             order.Status
	Priority           order.Priority
	ScheduledDate      time.Time
	ScheduledTime      string
	Vehicle            *kernel.UUID
	Driver             *kernel.UUID
	TotalItems         int
	DeliveredCount     int
	FailedCount        int
	ReturnedCount      int
	PendingCount       int
	CODExpectedAmount  kernel.Money
	CODCollectedAmount kernel.Money
	UpdatedAt          time.Time
}
