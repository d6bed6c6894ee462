package queries

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/pgerr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultTrackingReadLimit is used when the handler is built with a non-positive limit.
const DefaultTrackingReadLimit = 50

// GetTrackingQueryHandler returns up to limit points, newest first.
//
// An unknown shipment is *errs.ObjectNotFoundError. A shipment that was never simulated, or a
// database where the tracking table does not exist, yields an empty slice.
type GetTrackingQueryHandler struct {
	db    *gorm.DB
	limit int
}

func NewGetTrackingQueryHandler(db *gorm.DB, limit int) GetTrackingQueryHandler {
	if limit <= 0 {
		limit = DefaultTrackingReadLimit
	}
	return GetTrackingQueryHandler{db: db, limit: limit}
}

func (h GetTrackingQueryHandler) Handle(ctx context.Context, query GetTrackingQuery) ([]TrackingPointView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := ensureShipmentExists(ctx, h.db, query.shipmentID); err != nil {
		return nil, err
	}

	points := make([]TrackingPointView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, latitude, longitude, speed, captured_at
		FROM tracking_points
		WHERE shipment_id = ?
		ORDER BY captured_at DESC
		LIMIT ?
	`, query.shipmentID.Bytes(), h.limit).Rows()
	if err != nil {
		if pgerr.IsUndefinedTable(err) {
			return points, nil
		}
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p TrackingPointView
		var id uuid.UUID
		if err = rows.Scan(&id, &p.Latitude, &p.Longitude, &p.Speed, &p.CapturedAt); err != nil {
			return nil, err
		}
		p.ID = kernel.MustUUIDFromRaw(id)
		points = append(points, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}
