package trackingrepo

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/tracking"

	"gorm.io/gorm"
)

const insertBatchSize = 100

type GormTrackingRepository struct {
	db *gorm.DB
}

func NewGormTrackingRepository(db *gorm.DB) *GormTrackingRepository {
	return &GormTrackingRepository{db: db}
}

// AddAll inserts the points in order.
func (r *GormTrackingRepository) AddAll(ctx context.Context, points []*tracking.Point) error {
	if len(points) == 0 {
		return nil
	}

	dtos := make([]PointDTO, 0, len(points))
	for _, p := range points {
		dtos = append(dtos, fromDomain(p))
	}

	return r.db.WithContext(ctx).CreateInBatches(&dtos, insertBatchSize).Error
}

func (r *GormTrackingRepository) HasPoints(ctx context.Context, shipmentID kernel.UUID) (bool, error) {
	var exists bool
	err := r.db.WithContext(ctx).
		Raw("SELECT EXISTS (SELECT 1 FROM tracking_points WHERE shipment_id = ?)", shipmentID.Bytes()).
		Scan(&exists).Error
	return exists, err
}
