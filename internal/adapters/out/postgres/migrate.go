package postgres

import (
	"context"

	"shipping/internal/adapters/out/postgres/checklistrepo"
	"shipping/internal/adapters/out/postgres/inventoryrepo"
	"shipping/internal/adapters/out/postgres/referencerepo"
	"shipping/internal/adapters/out/postgres/salesnoterepo"
	"shipping/internal/adapters/out/postgres/shipmentrepo"
	"shipping/internal/adapters/out/postgres/trackingrepo"

	"gorm.io/gorm"
)

// Models lists every table owned by the shipment engine, parents first.
func Models() []any {
	return []any{
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.ItemDTO{},
		&shipmentrepo.AssignmentDTO{},
		&trackingrepo.PointDTO{},
		&inventoryrepo.EntryDTO{},
		&salesnoterepo.SalesNoteDTO{},
		&checklistrepo.ChecklistDTO{},
	}
}

// Migrate creates or updates the engine tables. When withReference is set the master data
// tables are created too, which local environments and tests rely on.
func Migrate(ctx context.Context, db *gorm.DB, withReference bool) error {
	models := Models()
	if withReference {
		models = append(referencerepo.Models(), models...)
	}
	return db.WithContext(ctx).AutoMigrate(models...)
}

// Tables lists the table names in an order that TRUNCATE ... CASCADE accepts.
func Tables() []string {
	return []string{
		"shipment_checklists",
		"sales_notes",
		"inventory_entries",
		"tracking_points",
		"shipment_assignments",
		"shipment_items",
		"shipments",
		"vehicles",
		"carriers",
		"warehouses",
		"addresses",
	}
}
