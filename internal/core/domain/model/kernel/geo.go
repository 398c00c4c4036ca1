package kernel

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the minimum valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in degrees.
	LongitudeMax = 180.0
)

// ErrGeoPointIsNotConstructed is returned when using a GeoPoint that was
// not created via the NewGeoPoint constructor.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable value object representing a coordinate pair in
// degrees. It is used for courier positions and simulated delivery routes.
//
// The zero value is invalid; use NewGeoPoint.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(41.015137, 28.979530)
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(point) // Output: GeoPoint(41.015137,28.979530)
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with validated coordinates.
// Latitude must be within [-90, 90] and longitude within [-180, 180].
func NewGeoPoint(lat float64, lng float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLat(lat), p.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks that the point was created via the constructor.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in degrees.
func (p GeoPoint) Latitude() float64 {
	return p.lat
}

// Longitude returns the longitude in degrees.
func (p GeoPoint) Longitude() float64 {
	return p.lng
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.lat, p.lng)
}

// IsEqual compares two points for exact coordinate equality.
// Both points must be properly constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.lat == other.lat && p.lng == other.lng, nil
}

// InterpolateToward returns the point at the given fraction of the straight
// line from p to target. A fraction of 0 returns p, 1 returns target.
// Used by the live tracking simulation to advance a courier step by step.
func (p GeoPoint) InterpolateToward(target GeoPoint, fraction float64) (GeoPoint, error) {
	if err := errors.Join(p.Validate(), target.Validate()); err != nil {
		return GeoPoint{}, err
	}
	if fraction < 0 || fraction > 1 {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("fraction", fraction, 0, 1)
	}

	return NewGeoPoint(
		p.lat+(target.lat-p.lat)*fraction,
		p.lng+(target.lng-p.lng)*fraction,
	)
}

// WithJitter returns the point displaced by a random delta in
// [-maxDelta, maxDelta] on both axes, clamped to valid coordinate bounds.
// The simulation applies a small jitter each tick so tracked couriers do
// not move along a perfectly straight line.
func (p GeoPoint) WithJitter(maxDelta float64) (GeoPoint, error) {
	if err := p.Validate(); err != nil {
		return GeoPoint{}, err
	}
	if maxDelta < 0 {
		return GeoPoint{}, errs.NewValueIsInvalidError("maxDelta")
	}

	return NewGeoPoint(
		clamp(p.lat+randomDelta(maxDelta), LatitudeMin, LatitudeMax),
		clamp(p.lng+randomDelta(maxDelta), LongitudeMin, LongitudeMax),
	)
}

// RandomOffset returns a new point displaced by a random delta of up to
// maxDelta degrees on both axes. In the absence of real geocoding the
// simulation uses this to pick a delivery destination near the start point.
func (p GeoPoint) RandomOffset(maxDelta float64) (GeoPoint, error) {
	return p.WithJitter(maxDelta)
}

// setLat sets the latitude with validation.
// Pointer receiver on purpose: private setters mutate during construction
// while the public surface stays value-based.
func (p *GeoPoint) setLat(lat float64) error {
	if lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, LatitudeMin, LatitudeMax)
	}

	p.lat = lat
	return nil
}

// setLng sets the longitude with validation.
func (p *GeoPoint) setLng(lng float64) error {
	if lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("lng", lng, LongitudeMin, LongitudeMax)
	}

	p.lng = lng
	return nil
}

func randomDelta(maxDelta float64) float64 {
	return (rand.Float64()*2 - 1) * maxDelta //nolint:gosec // simulation jitter, not crypto
}

func clamp(v, minValue, maxValue float64) float64 {
	if v < minValue {
		return minValue
	}
	if v > maxValue {
		return maxValue
	}
	return v
}
