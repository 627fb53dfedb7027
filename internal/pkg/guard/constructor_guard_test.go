package guard_test

import (
	"errors"
	"testing"

	"fleetdelivery/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		guard := guard.NewConstructorGuard()

		// Then
		assert.NotNil(t, guard)

		// Test with custom error
		customError := errors.New("test object not constructed")
		require.NoError(t, guard.Validate(customError))

		// Test with nil error (should use default)
		require.NoError(t, guard.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		guard := guard.NewConstructorGuard()
		customError := errors.New("not constructed")

		// When
		err := guard.Validate(customError)

		// Then
		require.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var guard guard.ConstructorGuard // zero value
		expectedError := errors.New("entity not constructed")

		// When
		err := guard.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type Waybill struct {
		number string
		guard  guard.ConstructorGuard
	}

	errWaybillNotConstructed := errors.New("Waybill must be created via NewWaybill")

	newWaybill := func(number string) (Waybill, error) {
		if number == "" {
			return Waybill{}, errors.New("waybill number is required")
		}
		return Waybill{number: number, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_waybill_is_valid", func(t *testing.T) {
		w, err := newWaybill("WB-0001")

		require.NoError(t, err)
		require.NoError(t, w.guard.Validate(errWaybillNotConstructed))
		assert.Equal(t, "WB-0001", w.number)
	})

	t.Run("zero_value_waybill_is_rejected", func(t *testing.T) {
		var w Waybill

		err := w.guard.Validate(errWaybillNotConstructed)

		require.ErrorIs(t, err, errWaybillNotConstructed)
	})

	t.Run("constructor_enforces_rules", func(t *testing.T) {
		_, err := newWaybill("")

		require.EqualError(t, err, "waybill number is required")
	})
}
