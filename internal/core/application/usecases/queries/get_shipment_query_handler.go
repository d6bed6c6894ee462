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

type GetShipmentQueryHandler struct {
	db *gorm.DB
}

func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

// Handle returns *errs.ObjectNotFoundError when no shipment matches.
func (h GetShipmentQueryHandler) Handle(ctx context.Context, query GetShipmentQuery) (ShipmentView, error) {
	if err := query.Validate(); err != nil {
		return ShipmentView{}, err
	}

	where, arg, lookup := "s.code = ?", any(query.code.String()), query.code.String()
	if query.shipmentID != nil {
		where, arg, lookup = "s.id = ?", query.shipmentID.Bytes(), query.shipmentID.String()
	}

	db := h.db.WithContext(ctx)

	var (
		view      ShipmentView
		id        uuid.UUID
		warehouse uuid.UUID
		address   uuid.NullUUID
	)
	err := db.Raw(`
		SELECT
			s.id,
			s.code,
			s.warehouse_id,
			s.address_id,
			s.status,
			s.total_quantity,
			s.total_weight,
			s.total_price,
			s.notes,
			s.created_at,
			s.estimated_delivery_at,
			s.transit_started_at,
			s.delivered_at,
			s.cancelled_at
		FROM shipments s
		WHERE `+where, arg).Row().Scan(
		&id,
		&view.Code,
		&warehouse,
		&address,
		&view.Status,
		&view.TotalQuantity,
		&view.TotalWeight,
		&view.TotalPrice,
		&view.Notes,
		&view.CreatedAt,
		&view.EstimatedDeliveryAt,
		&view.TransitStartedAt,
		&view.DeliveredAt,
		&view.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ShipmentView{}, errs.NewObjectNotFoundError("shipment", lookup)
		}
		return ShipmentView{}, err
	}

	view.ID = kernel.MustUUIDFromRaw(id)
	view.WarehouseID = kernel.MustUUIDFromRaw(warehouse)
	if address.Valid {
		a := kernel.MustUUIDFromRaw(address.UUID)
		view.AddressID = &a
	}

	if view.Items, err = h.items(ctx, id); err != nil {
		return ShipmentView{}, err
	}
	if view.Assignment, err = h.assignment(ctx, id); err != nil {
		return ShipmentView{}, err
	}

	return view, nil
}

func (h GetShipmentQueryHandler) items(ctx context.Context, shipmentID uuid.UUID) ([]LineItemView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, product_id, quantity, unit_weight, unit_price, subtotal, total_weight
		FROM shipment_items
		WHERE shipment_id = ?
		ORDER BY position
	`, shipmentID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]LineItemView, 0)
	for rows.Next() {
		var item LineItemView
		var id, productID uuid.UUID
		if err = rows.Scan(
			&id,
			&productID,
			&item.Quantity,
			&item.UnitWeight,
			&item.UnitPrice,
			&item.Subtotal,
			&item.TotalWeight,
		); err != nil {
			return nil, err
		}
		item.ID = kernel.MustUUIDFromRaw(id)
		item.ProductID = kernel.MustUUIDFromRaw(productID)
		items = append(items, item)
	}

	return items, rows.Err()
}

func (h GetShipmentQueryHandler) assignment(ctx context.Context, shipmentID uuid.UUID) (*AssignmentView, error) {
	var a AssignmentView
	var id, carrierID, vehicleID uuid.UUID

	err := h.db.WithContext(ctx).Raw(`
		SELECT id, carrier_id, vehicle_id, assigned_at, accepted_at
		FROM shipment_assignments
		WHERE shipment_id = ?
	`, shipmentID).Row().Scan(&id, &carrierID, &vehicleID, &a.AssignedAt, &a.AcceptedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil //a shipment without assignment is not an error
	}
	if err != nil {
		return nil, err
	}

	a.ID = kernel.MustUUIDFromRaw(id)
	a.CarrierID = kernel.MustUUIDFromRaw(carrierID)
	a.VehicleID = kernel.MustUUIDFromRaw(vehicleID)
	return &a, nil
}
