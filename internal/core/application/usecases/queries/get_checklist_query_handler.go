package queries

import (
	"context"
	"database/sql"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const checklistColumns = `
	id,
	shipment_id,
	warehouse_id,
	products_complete,
	packaging_intact,
	temperature_adequate,
	no_visible_damage,
	documentation_complete,
	condition,
	reviewer_id,
	notes,
	created_at,
	updated_at
`

type GetChecklistQueryHandler struct {
	db *gorm.DB
}

func NewGetChecklistQueryHandler(db *gorm.DB) GetChecklistQueryHandler {
	return GetChecklistQueryHandler{db: db}
}

func (h GetChecklistQueryHandler) Handle(ctx context.Context, query GetChecklistQuery) (ChecklistView, error) {
	if err := query.Validate(); err != nil {
		return ChecklistView{}, err
	}

	rows, err := h.db.WithContext(ctx).
		Raw("SELECT "+checklistColumns+" FROM shipment_checklists WHERE id = ?", query.checklistID.Bytes()).
		Rows()
	if err != nil {
		return ChecklistView{}, err
	}
	defer rows.Close()

	views, err := scanChecklists(rows)
	if err != nil {
		return ChecklistView{}, err
	}
	if len(views) == 0 {
		return ChecklistView{}, errs.NewObjectNotFoundError("checklist", query.checklistID.String())
	}
	return views[0], nil
}

type ListShipmentChecklistsQueryHandler struct {
	db *gorm.DB
}

func NewListShipmentChecklistsQueryHandler(db *gorm.DB) ListShipmentChecklistsQueryHandler {
	return ListShipmentChecklistsQueryHandler{db: db}
}

// Handle returns *errs.ObjectNotFoundError for an unknown shipment and an empty slice for a
// shipment that was never inspected.
func (h ListShipmentChecklistsQueryHandler) Handle(
	ctx context.Context,
	query ListShipmentChecklistsQuery,
) ([]ChecklistView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := ensureShipmentExists(ctx, h.db, query.shipmentID); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).
		Raw("SELECT "+checklistColumns+" FROM shipment_checklists WHERE shipment_id = ? ORDER BY created_at, id",
			query.shipmentID.Bytes()).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanChecklists(rows)
}

func scanChecklists(rows *sql.Rows) ([]ChecklistView, error) {
	views := make([]ChecklistView, 0)
	for rows.Next() {
		var v ChecklistView
		var id, shipmentID, warehouseID uuid.UUID
		var reviewerID uuid.NullUUID

		if err := rows.Scan(
			&id,
			&shipmentID,
			&warehouseID,
			&v.ProductsComplete,
			&v.PackagingIntact,
			&v.TemperatureAdequate,
			&v.NoVisibleDamage,
			&v.DocumentationComplete,
			&v.Condition,
			&reviewerID,
			&v.Notes,
			&v.CreatedAt,
			&v.UpdatedAt,
		); err != nil {
			return nil, err
		}

		v.ID = kernel.MustUUIDFromRaw(id)
		v.ShipmentID = kernel.MustUUIDFromRaw(shipmentID)
		v.WarehouseID = kernel.MustUUIDFromRaw(warehouseID)
		if reviewerID.Valid {
			r := kernel.MustUUIDFromRaw(reviewerID.UUID)
			v.ReviewerID = &r
		}
		views = append(views, v)
	}

	return views, rows.Err()
}
