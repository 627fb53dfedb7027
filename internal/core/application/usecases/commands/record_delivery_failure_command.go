package commands

import (
	"errors"
	"strings"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/errs"
	"fleetdelivery/internal/pkg/guard"
)

var ErrRecordDeliveryFailureCommandIsNotConstructed = errors.New(
	"RecordDeliveryFailureCommand must be created via NewRecordDeliveryFailureCommand constructor",
)

// RecordDeliveryFailureCommand marks an in-transit item as failed, or as
// returned to the branch when returned is set.
type RecordDeliveryFailureCommand struct { //nolint:recvcheck //using for validation
	orderTarget
	itemID   kernel.UUID
	reason   string
	returned bool

	guard guard.ConstructorGuard
}

func NewRecordDeliveryFailureCommand(
	orderID, actor, itemID kernel.UUID,
	reason string,
	returned bool,
) (RecordDeliveryFailureCommand, error) {
	target, err := newOrderTarget(orderID, actor)
	if e := itemID.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("itemId", e))
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("reason"))
	}
	if err != nil {
		return RecordDeliveryFailureCommand{}, err
	}
	return RecordDeliveryFailureCommand{
		orderTarget: target,
		itemID:      itemID,
		reason:      reason,
		returned:    returned,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RecordDeliveryFailureCommand) Validate() error {
	return c.guard.Validate(ErrRecordDeliveryFailureCommandIsNotConstructed)
}

func (c RecordDeliveryFailureCommand) ItemID() kernel.UUID { return c.itemID }
func (c RecordDeliveryFailureCommand) Reason() string      { return c.reason }
func (c RecordDeliveryFailureCommand) Returned() bool      { return c.returned }
