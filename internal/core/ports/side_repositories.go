package ports

import (
	"context"

	"shipping/internal/core/domain/model/checklist"
	"shipping/internal/core/domain/model/inventory"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/salesnote"
	"shipping/internal/core/domain/model/tracking"
)

// TrackingRepository appends simulated tracking points.
type TrackingRepository interface {
	// AddAll inserts the points in the given order.
	AddAll(ctx context.Context, points []*tracking.Point) error

	// HasPoints reports whether any point exists for the shipment.
	HasPoints(ctx context.Context, shipmentID kernel.UUID) (bool, error)
}

// InventoryRepository records stock received at destination warehouses.
type InventoryRepository interface {
	// AddAll inserts every entry; a second entry for the same line item is a *errs.ConflictError.
	AddAll(ctx context.Context, entries []*inventory.Entry) error
}

// SalesNoteRepository stores issued sales notes, at most one per shipment.
type SalesNoteRepository interface {
	// Add inserts the note. A duplicate shipment or number is a *errs.ConflictError.
	Add(ctx context.Context, note *salesnote.SalesNote) error

	// GetByShipment returns *errs.ObjectNotFoundError when no note was issued yet.
	GetByShipment(ctx context.Context, shipmentID kernel.UUID) (*salesnote.SalesNote, error)
}

// ChecklistRepository stores inspection records.
type ChecklistRepository interface {
	Add(ctx context.Context, c *checklist.Checklist) error
	Update(ctx context.Context, c *checklist.Checklist) error
	Get(ctx context.Context, id kernel.UUID) (*checklist.Checklist, error)
}
