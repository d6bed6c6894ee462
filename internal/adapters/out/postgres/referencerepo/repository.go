package referencerepo

import (
	"context"
	"errors"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errInactive = errors.New("inactive")

type GormReferenceRepository struct {
	db *gorm.DB
}

func NewGormReferenceRepository(db *gorm.DB) *GormReferenceRepository {
	return &GormReferenceRepository{db: db}
}

// GetWarehouse returns the warehouse with its address line and, when the address carries
// both coordinates, its location.
func (r *GormReferenceRepository) GetWarehouse(ctx context.Context, id kernel.UUID) (ports.Warehouse, error) {
	if err := id.Validate(); err != nil {
		return ports.Warehouse{}, err
	}

	var row struct {
		Name      string
		Street    *string
		City      *string
		Latitude  *float64
		Longitude *float64
	}
	result := r.db.WithContext(ctx).Raw(`
		SELECT w.name, a.street, a.city, a.latitude, a.longitude
		FROM warehouses w
		LEFT JOIN addresses a ON a.id = w.address_id
		WHERE w.id = ?
	`, id.Bytes()).Scan(&row)
	if result.Error != nil {
		return ports.Warehouse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ports.Warehouse{}, errs.NewObjectNotFoundError("warehouse", id.String())
	}

	w := ports.Warehouse{
		ID:          id,
		Name:        row.Name,
		AddressLine: addressLine(row.Street, row.City),
	}
	if row.Latitude != nil && row.Longitude != nil {
		if loc, err := kernel.NewGeoPoint(*row.Latitude, *row.Longitude); err == nil {
			w.Location = &loc
		}
	}
	return w, nil
}

// EnsureCarrierActive fails with *errs.ObjectNotFoundError for an unknown or inactive carrier.
func (r *GormReferenceRepository) EnsureCarrierActive(ctx context.Context, id kernel.UUID) error {
	return r.ensureActive(r.db.WithContext(ctx), "carriers", "carrier", id)
}

// EnsureVehicleActive fails with *errs.ObjectNotFoundError for an unknown or inactive vehicle.
// The vehicle row stays locked (SELECT ... FOR UPDATE) until the surrounding transaction ends,
// so concurrent assignments of one vehicle run one after the other.
func (r *GormReferenceRepository) EnsureVehicleActive(ctx context.Context, id kernel.UUID) error {
	db := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.ensureActive(db, "vehicles", "vehicle", id)
}

func (r *GormReferenceRepository) ensureActive(db *gorm.DB, table, name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	var active []bool
	if err := db.Table(table).Where("id = ?", id.Bytes()).Limit(1).Pluck("active", &active).Error; err != nil {
		return err
	}
	if len(active) == 0 {
		return errs.NewObjectNotFoundError(name, id.String())
	}
	if !active[0] {
		return errs.NewObjectNotFoundErrorWithCause(name, id.String(), errInactive)
	}
	return nil
}

func addressLine(street, city *string) string {
	parts := make([]string, 0, 2)
	for _, p := range []*string{street, city} {
		if p != nil && strings.TrimSpace(*p) != "" {
			parts = append(parts, strings.TrimSpace(*p))
		}
	}
	return strings.Join(parts, ", ")
}
