package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
)

// Warehouse is the read-only view of a destination warehouse and its linked address.
// Location is nil when the address has no coordinates.
type Warehouse struct {
	ID          kernel.UUID
	Name        string
	AddressLine string
	Location    *kernel.GeoPoint
}

// ReferenceRepository reads master data owned by other services.
// Every lookup returns *errs.ObjectNotFoundError for unknown or inactive records.
type ReferenceRepository interface {
	GetWarehouse(ctx context.Context, id kernel.UUID) (Warehouse, error)
	EnsureCarrierActive(ctx context.Context, id kernel.UUID) error
	// EnsureVehicleActive also holds the vehicle row until the transaction ends.
	EnsureVehicleActive(ctx context.Context, id kernel.UUID) error
}
