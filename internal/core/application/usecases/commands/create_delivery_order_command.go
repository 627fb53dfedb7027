package commands

import (
	"errors"
	"strings"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/order"
	"fleetdelivery/internal/core/ports"
	"fleetdelivery/internal/pkg/errs"
	"fleetdelivery/internal/pkg/guard"
)

var ErrCreateDeliveryOrderCommandIsNotConstructed = errors.New(
	"CreateDeliveryOrderCommand must be created via NewCreateDeliveryOrderCommand constructor",
)

// CreateDeliveryOrderInput is the raw creation payload.
type CreateDeliveryOrderInput struct {
	OrderID       kernel.UUID
	Actor         kernel.UUID
	Branch        order.BranchRef
	Vehicle       *kernel.UUID
	Driver        *kernel.UUID
	Helper        *kernel.UUID
	Schedule      order.Schedule
	Priority      order.Priority
	Notes         string
	StartLocation *kernel.Location
	EndLocation   *kernel.Location
	Items         []order.ItemDetails
}

// CreateDeliveryOrderCommand requests a new pending delivery order. The
// order number is generated by the handler.
//
// Example:
//
//	cmd, err := NewCreateDeliveryOrderCommand(CreateDeliveryOrderInput{
//	    OrderID:  kernel.NewUUID(),
//	    Actor:    actorID,
//	    Branch:   order.BranchRef{ID: branchID, Code: "JK"},
//	    Schedule: schedule,
//	    Items:    items,
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateDeliveryOrderCommand struct { //nolint:recvcheck //using for validation
	input CreateDeliveryOrderInput

	guard guard.ConstructorGuard
}

// NewCreateDeliveryOrderCommand checks the fields the handler relies on
// before it touches storage. Item details are validated when the items are
// built.
func NewCreateDeliveryOrderCommand(input CreateDeliveryOrderInput) (CreateDeliveryOrderCommand, error) {
	var err error
	if e := input.OrderID.Validate(); e != nil {
		err = errs.NewValueIsRequiredErrorWithCause("orderId", e)
	}
	if e := input.Actor.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("actor", e))
	}
	if e := input.Branch.ID.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("branchId", e))
	}
	code, e := order.NormalizeBranchCode(input.Branch.Code)
	err = errors.Join(err, e)
	if input.Schedule.Date.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("scheduledDate"))
	}
	if err != nil {
		return CreateDeliveryOrderCommand{}, err
	}

	input.Branch.Code = code
	input.Notes = strings.TrimSpace(input.Notes)
	input.Items = append([]order.ItemDetails(nil), input.Items...)
	return CreateDeliveryOrderCommand{input: input, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateDeliveryOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryOrderCommandIsNotConstructed)
}

func (c CreateDeliveryOrderCommand) OrderID() kernel.UUID       { return c.input.OrderID }
func (c CreateDeliveryOrderCommand) Actor() kernel.UUID         { return c.input.Actor }
func (c CreateDeliveryOrderCommand) Branch() order.BranchRef    { return c.input.Branch }
func (c CreateDeliveryOrderCommand) Schedule() order.Schedule   { return c.input.Schedule }
func (c CreateDeliveryOrderCommand) Items() []order.ItemDetails { return c.input.Items }

// Details converts the command into the aggregate's creation payload.
func (c CreateDeliveryOrderCommand) Details(items []*order.Item) order.Details {
	return order.Details{
		Branch:        c.input.Branch,
		Vehicle:       c.input.Vehicle,
		Driver:        c.input.Driver,
		Helper:        c.input.Helper,
		Schedule:      c.input.Schedule,
		Priority:      c.input.Priority,
		Notes:         c.input.Notes,
		StartLocation: c.input.StartLocation,
		EndLocation:   c.input.EndLocation,
		Items:         items,
	}
}

func (c CreateDeliveryOrderCommand) references() []reference {
	refs := []reference{{kind: ports.ReferenceBranch, id: c.input.Branch.ID}}
	if c.input.Vehicle != nil {
		refs = append(refs, reference{kind: ports.ReferenceVehicle, id: *c.input.Vehicle})
	}
	if c.input.Driver != nil {
		refs = append(refs, reference{kind: ports.ReferenceDriver, id: *c.input.Driver})
	}
	if c.input.Helper != nil {
		refs = append(refs, reference{kind: ports.ReferenceHelper, id: *c.input.Helper})
	}
	for _, item := range c.input.Items {
		refs = append(refs, reference{kind: ports.ReferenceShipment, id: item.ShipmentOrderRef})
	}
	return refs
}
