package kernel

import (
	"errors"
	"fmt"
	"math"

	"fleetdelivery/internal/pkg/errs"
	"fleetdelivery/internal/pkg/guard"
)

const (
	MinLongitude = -180.0
	MaxLongitude = 180.0
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
)

// ErrLocationIsNotConstructed is returned when a zero-value Location is validated.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation")

// Location is a validated geographic point in decimal degrees.
// Coordinates are kept in [longitude, latitude] order throughout the system.
//
// Example:
//
//	depot, err := kernel.NewLocation(106.8229, -6.1944)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(depot) // Location(106.822900,-6.194400)
type Location struct { //nolint:recvcheck //using for validation
	lon   float64
	lat   float64
	guard guard.ConstructorGuard
}

// NewLocation validates both coordinates and returns the point.
// NaN and infinite values are rejected along with out-of-range ones.
func NewLocation(lon, lat float64) (Location, error) {
	loc := Location{guard: guard.NewConstructorGuard()}

	if err := errors.Join(loc.setLon(lon), loc.setLat(lat)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// NewLocationFromCoordinates accepts the [lon, lat] pair used on the wire.
func NewLocationFromCoordinates(coordinates []float64) (Location, error) {
	if len(coordinates) != 2 {
		return Location{}, errs.NewValueIsInvalidError(fmt.Sprintf("coordinates must hold [lon, lat], got %d values", len(coordinates)))
	}
	return NewLocation(coordinates[0], coordinates[1])
}

func (l *Location) setLon(lon float64) error {
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return errs.NewValueIsInvalidError("longitude must be a finite number")
	}
	if lon < MinLongitude || lon > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", lon, MinLongitude, MaxLongitude)
	}
	l.lon = lon
	return nil
}

func (l *Location) setLat(lat float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) {
		return errs.NewValueIsInvalidError("latitude must be a finite number")
	}
	if lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", lat, MinLatitude, MaxLatitude)
	}
	l.lat = lat
	return nil
}

func (l Location) Lon() float64 { return l.lon }

func (l Location) Lat() float64 { return l.lat }

// Coordinates returns the point as [lon, lat].
func (l Location) Coordinates() [2]float64 {
	return [2]float64{l.lon, l.lat}
}

func (l Location) IsEqual(other Location) bool {
	return l.lon == other.lon && l.lat == other.lat
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.lon, l.lat)
}

// Validate reports whether the location was built through NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// IsZero reports whether l is the zero value (no location set).
func (l Location) IsZero() bool {
	return l.Validate() != nil
}
