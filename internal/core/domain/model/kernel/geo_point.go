package kernel

import (
	"errors"
	"fmt"
	"math"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	earthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when using a GeoPoint built as a struct literal.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError("geo point must be created via NewGeoPoint")

// GeoPoint is an immutable WGS84 coordinate pair.
// The zero value is invalid; use NewGeoPoint.
//
// Example:
//
//	plant, _ := kernel.NewGeoPoint(-17.7833, -63.1821)
//	store, _ := kernel.NewGeoPoint(-17.3895, -66.1568)
//	half := plant.Interpolate(store, 0.5)
type GeoPoint struct { //nolint:recvcheck //setters use pointer receivers during construction
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint validates latitude in [-90, 90] and longitude in [-180, 180].
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	p := GeoPoint{guard: guard.NewConstructorGuard()}

	if err := errors.Join(p.setLatitude(latitude), p.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate fails for a GeoPoint that was not built by NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.latitude, p.longitude)
}

// Interpolate returns the point at fraction t of the straight segment p -> to.
// t is clamped to [0, 1]; t=0 yields p and t=1 yields to.
func (p GeoPoint) Interpolate(to GeoPoint, t float64) GeoPoint {
	t = math.Max(0, math.Min(1, t))
	return GeoPoint{
		latitude:  p.latitude + (to.latitude-p.latitude)*t,
		longitude: p.longitude + (to.longitude-p.longitude)*t,
		guard:     guard.NewConstructorGuard(),
	}
}

// DistanceKm is the great-circle (haversine) distance between two points.
func (p GeoPoint) DistanceKm(to GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), to.Validate()); err != nil {
		return 0, err
	}

	lat1, lat2 := radians(p.latitude), radians(to.latitude)
	dLat := lat2 - lat1
	dLon := radians(to.longitude - p.longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a)), nil
}

func (p *GeoPoint) setLatitude(v float64) error {
	if math.IsNaN(v) || v < MinLatitude || v > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", v, MinLatitude, MaxLatitude)
	}
	p.latitude = v
	return nil
}

func (p *GeoPoint) setLongitude(v float64) error {
	if math.IsNaN(v) || v < MinLongitude || v > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", v, MinLongitude, MaxLongitude)
	}
	p.longitude = v
	return nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
