package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrGetTrackingQueryIsNotConstructed = errors.New(
	"GetTrackingQuery must be created via NewGetTrackingQuery constructor",
)

// GetTrackingQuery reads the latest simulated positions of a shipment.
type GetTrackingQuery struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetTrackingQuery(shipmentID kernel.UUID) (GetTrackingQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetTrackingQuery{}, err
	}
	return GetTrackingQuery{shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingQueryIsNotConstructed)
}

type TrackingPointView struct {
	ID         kernel.UUID
	Latitude   float64
	Longitude  float64
	Speed      float64
	CapturedAt time.Time
}
