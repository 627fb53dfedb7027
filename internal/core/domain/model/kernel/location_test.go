package kernel_test

import (
	"math"
	"testing"

	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	tests := []struct {
		name     string
		lon, lat float64
		wantErr  error
	}{
		{"jakarta", 106.8229, -6.1944, nil},
		{"lower bounds", -180, -90, nil},
		{"upper bounds", 180, 90, nil},
		{"longitude too small", -180.0001, 0, errs.ErrValueIsOutOfRange},
		{"longitude too big", 180.5, 0, errs.ErrValueIsOutOfRange},
		{"latitude too small", 0, -90.1, errs.ErrValueIsOutOfRange},
		{"latitude too big", 0, 91, errs.ErrValueIsOutOfRange},
		{"nan longitude", math.NaN(), 0, errs.ErrValueIsInvalid},
		{"infinite latitude", 0, math.Inf(1), errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := kernel.NewLocation(tt.lon, tt.lat)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, loc.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.lon, loc.Lon())
			assert.Equal(t, tt.lat, loc.Lat())
			assert.Equal(t, [2]float64{tt.lon, tt.lat}, loc.Coordinates())
			require.NoError(t, loc.Validate())
		})
	}
}

func TestNewLocation_BothInvalid(t *testing.T) {
	_, err := kernel.NewLocation(200, -100)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "longitude")
	assert.Contains(t, err.Error(), "latitude")
}

func TestNewLocationFromCoordinates(t *testing.T) {
	loc, err := kernel.NewLocationFromCoordinates([]float64{106.8, -6.2})
	require.NoError(t, err)
	assert.Equal(t, 106.8, loc.Lon())

	_, err = kernel.NewLocationFromCoordinates([]float64{106.8})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestLocation_ZeroValue(t *testing.T) {
	var loc kernel.Location

	require.ErrorIs(t, loc.Validate(), kernel.ErrLocationIsNotConstructed)
	assert.True(t, loc.IsZero())
}

func TestLocation_IsEqualAndString(t *testing.T) {
	a, _ := kernel.NewLocation(1.5, 2.5)
	b, _ := kernel.NewLocation(1.5, 2.5)
	c, _ := kernel.NewLocation(2.5, 1.5)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
	assert.Equal(t, "Location(1.500000,2.500000)", a.String())
}
