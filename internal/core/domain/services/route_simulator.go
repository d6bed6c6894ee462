package services

import (
	"errors"
	"math/rand/v2"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/tracking"
	"shipping/internal/pkg/errs"
)

const (
	DefaultPoints   = 10
	DefaultMinSpeed = 30.0
	DefaultMaxSpeed = 50.0

	// pointInterval separates consecutive captured_at stamps.
	pointInterval = time.Second
)

// RouteSimulator interpolates a straight route and attaches a random speed to every point.
//
// Business rules:
//   - at least two points, so that both endpoints are always emitted
//   - the first point is the origin and the last one the destination
//   - speeds are uniform in [minSpeed, maxSpeed] km/h
//   - captured_at grows by one second per point starting at the simulation start
//
// Example:
//
//	sim, _ := services.NewRouteSimulator(10, 30, 50, nil)
//	points, err := sim.Simulate(shipmentID, plant, warehouse, time.Now(), kernel.NewUUID)
type RouteSimulator struct {
	points   int
	minSpeed float64
	maxSpeed float64
	rnd      func() float64
}

// NewRouteSimulator validates the tunables. A nil rnd uses math/rand/v2.
func NewRouteSimulator(points int, minSpeed, maxSpeed float64, rnd func() float64) (RouteSimulator, error) {
	if points < 2 {
		return RouteSimulator{}, errs.NewValueIsOutOfRangeError("points", points, 2, "unbounded")
	}
	if minSpeed < 0 || maxSpeed < minSpeed {
		return RouteSimulator{}, errs.NewValueIsOutOfRangeError("max_speed", maxSpeed, minSpeed, "unbounded")
	}
	if rnd == nil {
		rnd = rand.Float64
	}

	return RouteSimulator{
		points:   points,
		minSpeed: minSpeed,
		maxSpeed: maxSpeed,
		rnd:      rnd,
	}, nil
}

// Points is the number of points generated per shipment.
func (r RouteSimulator) Points() int {
	return r.points
}

// Simulate returns the points from origin to destination in capture order.
func (r RouteSimulator) Simulate(
	shipmentID kernel.UUID,
	origin, destination kernel.GeoPoint,
	start time.Time,
	newID func() kernel.UUID,
) ([]*tracking.Point, error) {
	if err := errors.Join(shipmentID.Validate(), origin.Validate(), destination.Validate()); err != nil {
		return nil, err
	}

	out := make([]*tracking.Point, 0, r.points)
	last := float64(r.points - 1)
	for i := range r.points {
		pos := origin.Interpolate(destination, float64(i)/last)
		speed := r.minSpeed + r.rnd()*(r.maxSpeed-r.minSpeed)

		p, err := tracking.NewPoint(newID(), shipmentID, pos, speed, start.Add(time.Duration(i)*pointInterval))
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, nil
}
