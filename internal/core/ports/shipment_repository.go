// Package ports defines the contracts between the shipment core and its adapters.
// Repositories are bound to the transaction of the unit of work that created them.
package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates together with
// their line items and active assignment.
type ShipmentRepository interface {
	// Add persists a new shipment with its line items.
	// A duplicate code is reported as *errs.ConflictError.
	Add(ctx context.Context, s *shipment.Shipment) error

	// Update writes status, timestamps and the assignment of an existing shipment.
	// The write is conditional on the version the aggregate was loaded with; a concurrent
	// modification is reported as *errs.ConflictError. A shipment without an assignment has
	// its assignment row removed.
	Update(ctx context.Context, s *shipment.Shipment) error

	// Get retrieves a shipment by id.
	// Returns *errs.ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetForUpdate retrieves a shipment and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// IsVehicleBusy reports whether the vehicle holds an assignment on a shipment other than
	// exceptID whose status is assigned, accepted or in_transit.
	IsVehicleBusy(ctx context.Context, vehicleID, exceptID kernel.UUID) (bool, error)

	// ListInTransitWithoutTracking returns ids of in_transit shipments with no tracking points,
	// oldest transit start first.
	ListInTransitWithoutTracking(ctx context.Context, limit int) ([]kernel.UUID, error)

	// ListDeliveredWithoutSalesNote returns ids of delivered shipments with no sales note,
	// oldest delivery first.
	ListDeliveredWithoutSalesNote(ctx context.Context, limit int) ([]kernel.UUID, error)
}
