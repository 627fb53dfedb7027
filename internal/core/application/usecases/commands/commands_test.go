package commands_test

import (
	"testing"
	"time"

	"fleetdelivery/internal/core/application/usecases/commands"
	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/order"
	"fleetdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateDeliveryOrderCommand(t *testing.T) {
	t.Run("should normalize the branch code", func(t *testing.T) {
		cmd, err := commands.NewCreateDeliveryOrderCommand(createInput(t))

		require.NoError(t, err)
		assert.Equal(t, "JK", cmd.Branch().Code)
		require.NoError(t, cmd.Validate())
	})

	t.Run("should collect every missing field", func(t *testing.T) {
		_, err := commands.NewCreateDeliveryOrderCommand(commands.CreateDeliveryOrderInput{
			Branch: order.BranchRef{Code: "J1"},
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "orderId")
		assert.Contains(t, err.Error(), "actor")
		assert.Contains(t, err.Error(), "branchId")
		assert.Contains(t, err.Error(), "scheduledDate")
	})
}

func TestOrderCommandConstructors(t *testing.T) {
	orderID := kernel.NewUUID()
	negative := -1.0

	tests := []struct {
		name  string
		build func() error
		want  error
	}{
		{
			name: "should require an order id",
			build: func() error {
				_, err := commands.NewStartDeliveryOrderCommand(kernel.UUID{}, actor, nil)
				return err
			},
			want: errs.ErrValueIsRequired,
		},
		{
			name: "should require a start location",
			build: func() error {
				_, err := commands.NewStartDeliveryOrderCommand(orderID, actor, nil)
				return err
			},
			want: errs.ErrValueIsRequired,
		},
		{
			name: "should require an actor",
			build: func() error {
				_, err := commands.NewOptimizeRouteCommand(orderID, kernel.UUID{})
				return err
			},
			want: errs.ErrValueIsRequired,
		},
		{
			name: "should require a cancel reason",
			build: func() error {
				_, err := commands.NewCancelDeliveryOrderCommand(orderID, actor, "  ")
				return err
			},
			want: errs.ErrValueIsRequired,
		},
		{
			name: "should require a failure reason for the order",
			build: func() error {
				_, err := commands.NewFailDeliveryOrderCommand(orderID, actor, "", nil)
				return err
			},
			want: errs.ErrValueIsRequired,
		},
		{
			name: "should require a failure reason for an item",
			build: func() error {
				_, err := commands.NewRecordDeliveryFailureCommand(orderID, actor, kernel.NewUUID(), "", true)
				return err
			},
			want: errs.ErrValueIsRequired,
		},
		{
			name: "should require a driver",
			build: func() error {
				_, err := commands.NewAssignDeliveryOrderCommand(orderID, actor, kernel.NewUUID(), kernel.UUID{}, nil, nil)
				return err
			},
			want: errs.ErrValueIsRequired,
		},
		{
			name: "should require an item id for proof of delivery",
			build: func() error {
				_, err := commands.NewRecordProofOfDeliveryCommand(orderID, actor, kernel.UUID{}, order.ProofData{})
				return err
			},
			want: errs.ErrValueIsRequired,
		},
		{
			name: "should require a stop id",
			build: func() error {
				_, err := commands.NewArriveAtStopCommand(orderID, actor, kernel.UUID{})
				return err
			},
			want: errs.ErrValueIsRequired,
		},
		{
			name: "should reject a negative speed",
			build: func() error {
				_, err := commands.NewUpdateTrackingLocationCommand(orderID, actor, mustLocation(t, 1, 1), &negative, nil, time.Time{})
				return err
			},
			want: errs.ErrValueIsOutOfRange,
		},
		{
			name: "should require tracking coordinates",
			build: func() error {
				_, err := commands.NewUpdateTrackingLocationCommand(orderID, actor, kernel.Location{}, nil, nil, time.Time{})
				return err
			},
			want: errs.ErrValueIsRequired,
		},
		{
			name: "should require a start location for the route",
			build: func() error {
				_, err := commands.NewSetRouteEndpointsCommand(orderID, actor, kernel.Location{}, nil)
				return err
			},
			want: errs.ErrValueIsRequired,
		},
		{
			name: "should require an ETA entity type",
			build: func() error {
				_, err := commands.NewUpdateETACommand(" ", kernel.NewUUID(), t0, actor, "")
				return err
			},
			want: errs.ErrValueIsRequired,
		},
		{
			name: "should require an ETA",
			build: func() error {
				_, err := commands.NewUpdateETACommand("shipment", kernel.NewUUID(), time.Time{}, actor, "")
				return err
			},
			want: errs.ErrValueIsRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		})
	}
}

func TestCommandsBuiltWithoutConstructor(t *testing.T) {
	assert.ErrorIs(t, commands.StartDeliveryOrderCommand{}.Validate(), commands.ErrStartDeliveryOrderCommandIsNotConstructed)
	assert.ErrorIs(t, commands.RecordCODPaymentCommand{}.Validate(), commands.ErrRecordCODPaymentCommandIsNotConstructed)
	assert.ErrorIs(t, commands.UpdateETACommand{}.Validate(), commands.ErrUpdateETACommandIsNotConstructed)
}

func TestUpdateTrackingLocationCommand_Observation(t *testing.T) {
	orderID := kernel.NewUUID()
	speed := 42.0
	seen := t0.Add(time.Minute)

	cmd, err := commands.NewUpdateTrackingLocationCommand(orderID, actor, mustLocation(t, 106.8, -6.2), &speed, nil, seen)
	require.NoError(t, err)

	obs := cmd.Observation()
	assert.Equal(t, actor, obs.Actor)
	assert.Equal(t, seen, obs.Timestamp)
	require.NotNil(t, obs.SpeedKmh)
	assert.InDelta(t, 42.0, *obs.SpeedKmh, 1e-9)
	assert.Nil(t, obs.Accuracy)
	assert.Equal(t, orderID, cmd.OrderID())
}
