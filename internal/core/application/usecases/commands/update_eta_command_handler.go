package commands

import (
	"context"
	"errors"

	"fleetdelivery/internal/core/domain/model/eta"
	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/ports"
	"fleetdelivery/internal/pkg/errs"
)

// ETALockKey is the Locker key guarding the ETA schedule of one entity.
func ETALockKey(entityType string, entityID kernel.UUID) string {
	return "eta:" + entityType + ":" + entityID.String()
}

type UpdateETACommandHandler struct {
	uowFactory ETAUoWFactory
	locker     ports.Locker
	clock      ports.Clock
}

func NewUpdateETACommandHandler(uowFactory ETAUoWFactory, locker ports.Locker, clock ports.Clock) UpdateETACommandHandler {
	return UpdateETACommandHandler{uowFactory: uowFactory, locker: locker, clock: clock}
}

// Handle loads the entity's schedule, creating it on first use, and records
// the new ETA.
func (h UpdateETACommandHandler) Handle(ctx context.Context, cmd UpdateETACommand) (*eta.Schedule, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	release, err := h.locker.Lock(ctx, ETALockKey(cmd.EntityType(), cmd.EntityID()))
	if err != nil {
		return nil, err
	}
	defer release()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ETAScheduleRepository()
	schedule, err := repo.Get(ctx, cmd.EntityType(), cmd.EntityID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		schedule, err = eta.NewSchedule(cmd.EntityType(), cmd.EntityID())
	}
	if err != nil {
		return nil, err
	}

	if err = schedule.Update(cmd.ETA(), cmd.Actor(), h.clock.Now(), cmd.Reason()); err != nil {
		return nil, err
	}

	if err = repo.Save(ctx, schedule); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return schedule, nil
}
