// Package tracking holds the append-only position log of shipments in transit.
package tracking

import (
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

// Point is one simulated GPS fix. Points are never updated or deleted.
type Point struct {
	id         kernel.UUID
	shipmentID kernel.UUID
	position   kernel.GeoPoint
	speed      float64
	capturedAt time.Time
}

// NewPoint validates the position and a non-negative speed in km/h.
func NewPoint(id, shipmentID kernel.UUID, position kernel.GeoPoint, speed float64, capturedAt time.Time) (*Point, error) {
	p := &Point{capturedAt: capturedAt}

	if err := errors.Join(
		p.setID(id),
		p.setShipmentID(shipmentID),
		p.setPosition(position),
		p.setSpeed(speed),
	); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Point) ID() kernel.UUID {
	return p.id
}

func (p *Point) ShipmentID() kernel.UUID {
	return p.shipmentID
}

func (p *Point) Position() kernel.GeoPoint {
	return p.position
}

func (p *Point) Speed() float64 {
	return p.speed
}

func (p *Point) CapturedAt() time.Time {
	return p.capturedAt
}

func (p *Point) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Point) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipment_id", err)
	}
	p.shipmentID = id
	return nil
}

func (p *Point) setPosition(pos kernel.GeoPoint) error {
	if err := pos.Validate(); err != nil {
		return err
	}
	p.position = pos
	return nil
}

func (p *Point) setSpeed(speed float64) error {
	if speed < 0 {
		return errs.NewValueIsInvalidErrorWithCause("speed", fmt.Errorf("%v is negative", speed))
	}
	p.speed = speed
	return nil
}
