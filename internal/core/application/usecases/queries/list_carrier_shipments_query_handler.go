package queries

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListCarrierShipmentsQueryHandler struct {
	db *gorm.DB
}

func NewListCarrierShipmentsQueryHandler(db *gorm.DB) ListCarrierShipmentsQueryHandler {
	return ListCarrierShipmentsQueryHandler{db: db}
}

// Handle returns an empty slice for a carrier without shipments; carriers are not checked
// for existence.
func (h ListCarrierShipmentsQueryHandler) Handle(
	ctx context.Context,
	query ListCarrierShipmentsQuery,
) ([]CarrierShipmentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.code,
			s.status,
			s.warehouse_id,
			s.total_quantity,
			s.total_weight,
			s.estimated_delivery_at,
			a.vehicle_id,
			a.assigned_at,
			a.accepted_at
		FROM shipments s
		JOIN shipment_assignments a ON a.shipment_id = s.id
		WHERE a.carrier_id = ?
			AND s.status <> ?
		ORDER BY (s.status = ?), a.assigned_at DESC
	`, query.carrierID.Bytes(), shipment.Cancelled.String(), shipment.Delivered.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]CarrierShipmentView, 0)
	for rows.Next() {
		var v CarrierShipmentView
		var id, warehouseID, vehicleID uuid.UUID

		if err = rows.Scan(
			&id,
			&v.Code,
			&v.Status,
			&warehouseID,
			&v.TotalQuantity,
			&v.TotalWeight,
			&v.EstimatedDeliveryAt,
			&vehicleID,
			&v.AssignedAt,
			&v.AcceptedAt,
		); err != nil {
			return nil, err
		}

		v.ID = kernel.MustUUIDFromRaw(id)
		v.WarehouseID = kernel.MustUUIDFromRaw(warehouseID)
		v.VehicleID = kernel.MustUUIDFromRaw(vehicleID)
		result = append(result, v)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
