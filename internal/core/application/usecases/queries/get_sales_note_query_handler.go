package queries

import (
	"context"
	"database/sql"
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetSalesNoteQueryHandler struct {
	db *gorm.DB
}

func NewGetSalesNoteQueryHandler(db *gorm.DB) GetSalesNoteQueryHandler {
	return GetSalesNoteQueryHandler{db: db}
}

// Handle returns *errs.ObjectNotFoundError when the shipment is unknown or has no note yet.
func (h GetSalesNoteQueryHandler) Handle(ctx context.Context, query GetSalesNoteQuery) (SalesNoteView, error) {
	if err := query.Validate(); err != nil {
		return SalesNoteView{}, err
	}

	var v SalesNoteView
	var id, shipmentID, warehouseID uuid.UUID

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			shipment_id,
			shipment_code,
			warehouse_id,
			warehouse_name,
			address_line,
			total_quantity,
			total_weight,
			total_price,
			issued_at
		FROM sales_notes
		WHERE shipment_id = ?
	`, query.shipmentID.Bytes()).Row().Scan(
		&id,
		&v.Number,
		&shipmentID,
		&v.ShipmentCode,
		&warehouseID,
		&v.WarehouseName,
		&v.AddressLine,
		&v.TotalQuantity,
		&v.TotalWeight,
		&v.TotalPrice,
		&v.IssuedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return SalesNoteView{}, errs.NewObjectNotFoundError("sales note for shipment", query.shipmentID.String())
	}
	if err != nil {
		return SalesNoteView{}, err
	}

	v.ID = kernel.MustUUIDFromRaw(id)
	v.ShipmentID = kernel.MustUUIDFromRaw(shipmentID)
	v.WarehouseID = kernel.MustUUIDFromRaw(warehouseID)
	return v, nil
}
