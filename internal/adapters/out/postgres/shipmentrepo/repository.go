package shipmentrepo

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/pgerr"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShipmentRepository implements ports.ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a repository bound to db, which may be a transaction.
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// Add inserts the shipment and its line items.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Conflict(err, "shipment")
	}

	return nil
}

// Update writes the mutable columns when the stored version still matches the one the
// aggregate was loaded with, then brings the assignment row in line with the aggregate.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&ShipmentDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":                dto.Status,
			"notes":                 dto.Notes,
			"estimated_delivery_at": dto.EstimatedDeliveryAt,
			"transit_started_at":    dto.TransitStartedAt,
			"delivered_at":          dto.DeliveredAt,
			"cancelled_at":          dto.CancelledAt,
			"version":               gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate.ID())
	}

	if dto.Assignment == nil {
		return db.Where("shipment_id = ?", dto.ID).Delete(&AssignmentDTO{}).Error
	}

	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "shipment_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"id", "carrier_id", "vehicle_id", "assigned_at", "accepted_at", "rejected_at",
		}),
	}).Create(dto.Assignment).Error
	return pgerr.Conflict(err, "assignment")
}

func (r *GormShipmentRepository) missingOrStale(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ShipmentDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("shipment", id.String())
	}
	return errs.NewConflictError("shipment", "was modified concurrently")
}

// Get retrieves a shipment by id.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	return r.load(ctx, id, r.db.WithContext(ctx))
}

// GetForUpdate retrieves a shipment holding a row lock until the surrounding transaction ends.
func (r *GormShipmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	return r.load(ctx, id, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}))
}

func (r *GormShipmentRepository) load(ctx context.Context, id kernel.UUID, head *gorm.DB) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := head.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("shipment_id = ?", dto.ID).Order("position").Find(&dto.Items).Error; err != nil {
		return nil, err
	}

	var assignments []AssignmentDTO
	if err := db.Where("shipment_id = ?", dto.ID).Limit(1).Find(&assignments).Error; err != nil {
		return nil, err
	}
	if len(assignments) > 0 {
		dto.Assignment = &assignments[0]
	}

	return toDomain(dto)
}

// IsVehicleBusy reports whether the vehicle is held by another shipment that has not finished.
func (r *GormShipmentRepository) IsVehicleBusy(ctx context.Context, vehicleID, exceptID kernel.UUID) (bool, error) {
	var busy bool
	err := r.db.WithContext(ctx).Raw(`
		SELECT EXISTS (
			SELECT 1
			FROM shipment_assignments a
			JOIN shipments s ON s.id = a.shipment_id
			WHERE a.vehicle_id = ?
				AND a.shipment_id <> ?
				AND s.status IN ?
		)
	`, vehicleID.Bytes(), exceptID.Bytes(), activeStatuses()).Scan(&busy).Error
	return busy, err
}

// ListInTransitWithoutTracking returns in-transit shipments that have no tracking points.
func (r *GormShipmentRepository) ListInTransitWithoutTracking(ctx context.Context, limit int) ([]kernel.UUID, error) {
	return r.listIDs(ctx, `
		SELECT s.id
		FROM shipments s
		WHERE s.status = ?
			AND NOT EXISTS (SELECT 1 FROM tracking_points p WHERE p.shipment_id = s.id)
		ORDER BY s.transit_started_at
		LIMIT ?
	`, shipment.InTransit.String(), limit)
}

// ListDeliveredWithoutSalesNote returns delivered shipments that have no sales note.
func (r *GormShipmentRepository) ListDeliveredWithoutSalesNote(ctx context.Context, limit int) ([]kernel.UUID, error) {
	return r.listIDs(ctx, `
		SELECT s.id
		FROM shipments s
		WHERE s.status = ?
			AND NOT EXISTS (SELECT 1 FROM sales_notes n WHERE n.shipment_id = s.id)
		ORDER BY s.delivered_at
		LIMIT ?
	`, shipment.Delivered.String(), limit)
}

func (r *GormShipmentRepository) listIDs(ctx context.Context, sql string, args ...any) ([]kernel.UUID, error) {
	rows, err := r.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]kernel.UUID, 0)
	for rows.Next() {
		var raw uuid.UUID
		if err = rows.Scan(&raw); err != nil {
			return nil, err
		}
		ids = append(ids, kernel.MustUUIDFromRaw(raw))
	}

	return ids, rows.Err()
}

func activeStatuses() []string {
	return []string{shipment.Assigned.String(), shipment.Accepted.String(), shipment.InTransit.String()}
}
