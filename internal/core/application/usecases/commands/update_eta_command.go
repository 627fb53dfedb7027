package commands

import (
	"errors"
	"strings"
	"time"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/errs"
	"fleetdelivery/internal/pkg/guard"
)

var ErrUpdateETACommandIsNotConstructed = errors.New(
	"UpdateETACommand must be created via NewUpdateETACommand constructor",
)

// UpdateETACommand sets the expected arrival of an entity that is not a
// delivery order, e.g. an inter-branch shipment.
type UpdateETACommand struct { //nolint:recvcheck //using for validation
	entityType string
	entityID   kernel.UUID
	eta        time.Time
	actor      kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

func NewUpdateETACommand(entityType string, entityID kernel.UUID, eta time.Time, actor kernel.UUID, reason string) (UpdateETACommand, error) {
	entityType = strings.TrimSpace(entityType)

	var err error
	if entityType == "" {
		err = errs.NewValueIsRequiredError("entityType")
	}
	if e := entityID.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("entityId", e))
	}
	if eta.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("eta"))
	}
	if e := actor.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("actor", e))
	}
	if err != nil {
		return UpdateETACommand{}, err
	}

	return UpdateETACommand{
		entityType: entityType,
		entityID:   entityID,
		eta:        eta,
		actor:      actor,
		reason:     strings.TrimSpace(reason),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateETACommand) Validate() error {
	return c.guard.Validate(ErrUpdateETACommandIsNotConstructed)
}

func (c UpdateETACommand) EntityType() string    { return c.entityType }
func (c UpdateETACommand) EntityID() kernel.UUID { return c.entityID }
func (c UpdateETACommand) ETA() time.Time        { return c.eta }
func (c UpdateETACommand) Actor() kernel.UUID    { return c.actor }
func (c UpdateETACommand) Reason() string        { return c.reason }
