package commands

import (
	"context"
	"errors"
	"fmt"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/ports"
	"fleetdelivery/internal/pkg/errs"
)

type reference struct {
	kind ports.ReferenceKind
	id   kernel.UUID
}

// checkReferences reports every reference the checker does not know as a
// validation failure. Checker errors are returned as they are.
func checkReferences(ctx context.Context, checker ports.ReferenceChecker, refs ...reference) error {
	if checker == nil {
		return nil
	}

	var missing error
	for _, ref := range refs {
		if ref.id.IsZero() {
			continue
		}
		ok, err := checker.Exists(ctx, ref.kind, ref.id)
		if err != nil {
			return fmt.Errorf("check %s reference: %w", ref.kind, err)
		}
		if !ok {
			missing = errors.Join(missing, errs.NewValueIsInvalidError(fmt.Sprintf("%s %s does not exist", ref.kind, ref.id)))
		}
	}
	return missing
}
