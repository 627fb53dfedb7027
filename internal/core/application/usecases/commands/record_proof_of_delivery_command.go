package commands

import (
	"errors"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/order"
	"fleetdelivery/internal/pkg/errs"
	"fleetdelivery/internal/pkg/guard"
)

var ErrRecordProofOfDeliveryCommandIsNotConstructed = errors.New(
	"RecordProofOfDeliveryCommand must be created via NewRecordProofOfDeliveryCommand constructor",
)

// RecordProofOfDeliveryCommand confirms the hand-over of one item. The proof
// itself is validated by the aggregate against the item's payment type.
type RecordProofOfDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderTarget
	itemID kernel.UUID
	proof  order.ProofData

	guard guard.ConstructorGuard
}

func NewRecordProofOfDeliveryCommand(orderID, actor, itemID kernel.UUID, proof order.ProofData) (RecordProofOfDeliveryCommand, error) {
	target, err := newOrderTarget(orderID, actor)
	if e := itemID.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("itemId", e))
	}
	if err != nil {
		return RecordProofOfDeliveryCommand{}, err
	}
	return RecordProofOfDeliveryCommand{orderTarget: target, itemID: itemID, proof: proof, guard: guard.NewConstructorGuard()}, nil
}

func (c RecordProofOfDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRecordProofOfDeliveryCommandIsNotConstructed)
}

func (c RecordProofOfDeliveryCommand) ItemID() kernel.UUID    { return c.itemID }
func (c RecordProofOfDeliveryCommand) Proof() order.ProofData { return c.proof }
