package commands

import (
	"errors"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/guard"
)

var ErrOptimizeRouteCommandIsNotConstructed = errors.New(
	"OptimizeRouteCommand must be created via NewOptimizeRouteCommand constructor",
)

// OptimizeRouteCommand rebuilds the stop sequence of an order from its
// current items.
type OptimizeRouteCommand struct { //nolint:recvcheck //using for validation
	orderTarget

	guard guard.ConstructorGuard
}

func NewOptimizeRouteCommand(orderID, actor kernel.UUID) (OptimizeRouteCommand, error) {
	target, err := newOrderTarget(orderID, actor)
	if err != nil {
		return OptimizeRouteCommand{}, err
	}
	return OptimizeRouteCommand{orderTarget: target, guard: guard.NewConstructorGuard()}, nil
}

func (c OptimizeRouteCommand) Validate() error {
	return c.guard.Validate(ErrOptimizeRouteCommandIsNotConstructed)
}
