package http

import (
	"encoding/json"
	"time"

	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

type ShipmentResponse struct {
	ID                  string              `json:"id"`
	Code                string              `json:"code"`
	WarehouseID         string              `json:"warehouse_id"`
	AddressID           *string             `json:"address_id,omitempty"`
	Status              string              `json:"status"`
	TotalQuantity       json.Number         `json:"total_quantity"`
	TotalWeight         json.Number         `json:"total_weight"`
	TotalPrice          json.Number         `json:"total_price"`
	Notes               string              `json:"notes,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
	EstimatedDeliveryAt *time.Time          `json:"estimated_delivery_at,omitempty"`
	TransitStartedAt    *time.Time          `json:"transit_started_at,omitempty"`
	DeliveredAt         *time.Time          `json:"delivered_at,omitempty"`
	CancelledAt         *time.Time          `json:"cancelled_at,omitempty"`
	Items               []LineItemResponse  `json:"items"`
	Assignment          *AssignmentResponse `json:"assignment,omitempty"`
}

// DecisionResponse answers accept and reject. AlreadyAccepted is set only by accept.
type DecisionResponse struct {
	Success         bool             `json:"success"`
	AlreadyAccepted *bool            `json:"already_accepted,omitempty"`
	Shipment        ShipmentResponse `json:"shipment"`
}

type LineItemResponse struct {
	ID          string      `json:"id"`
	ProductID   string      `json:"product_id"`
	Quantity    json.Number `json:"quantity"`
	UnitWeight  json.Number `json:"unit_weight"`
	UnitPrice   json.Number `json:"unit_price"`
	Subtotal    json.Number `json:"subtotal"`
	TotalWeight json.Number `json:"total_weight"`
}

type AssignmentResponse struct {
	ID         string     `json:"id"`
	CarrierID  string     `json:"carrier_id"`
	VehicleID  string     `json:"vehicle_id"`
	AssignedAt time.Time  `json:"assigned_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
}

type CarrierShipmentResponse struct {
	ID                  string      `json:"id"`
	Code                string      `json:"code"`
	Status              string      `json:"status"`
	WarehouseID         string      `json:"warehouse_id"`
	TotalQuantity       json.Number `json:"total_quantity"`
	TotalWeight         json.Number `json:"total_weight"`
	EstimatedDeliveryAt *time.Time  `json:"estimated_delivery_at,omitempty"`
	VehicleID           string      `json:"vehicle_id"`
	AssignedAt          time.Time   `json:"assigned_at"`
	AcceptedAt          *time.Time  `json:"accepted_at,omitempty"`
}

type TrackingPointResponse struct {
	ID         string    `json:"id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Speed      float64   `json:"speed"`
	CapturedAt time.Time `json:"captured_at"`
}

type SalesNoteResponse struct {
	ID            string      `json:"id"`
	Number        string      `json:"number"`
	ShipmentID    string      `json:"shipment_id"`
	ShipmentCode  string      `json:"shipment_code"`
	WarehouseID   string      `json:"warehouse_id"`
	WarehouseName string      `json:"warehouse_name"`
	AddressLine   string      `json:"address_line"`
	TotalQuantity json.Number `json:"total_quantity"`
	TotalWeight   json.Number `json:"total_weight"`
	TotalPrice    json.Number `json:"total_price"`
	IssuedAt      time.Time   `json:"issued_at"`
}

type ChecklistResponse struct {
	ID                    string    `json:"id"`
	ShipmentID            string    `json:"shipment_id"`
	WarehouseID           string    `json:"warehouse_id"`
	ProductsComplete      bool      `json:"products_complete"`
	PackagingIntact       bool      `json:"packaging_intact"`
	TemperatureAdequate   bool      `json:"temperature_adequate"`
	NoVisibleDamage       bool      `json:"no_visible_damage"`
	DocumentationComplete bool      `json:"documentation_complete"`
	Condition             string    `json:"condition"`
	ReviewerID            *string   `json:"reviewer_id,omitempty"`
	Notes                 string    `json:"notes,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func newShipmentResponse(v queries.ShipmentView) ShipmentResponse {
	resp := ShipmentResponse{
		ID:                  v.ID.String(),
		Code:                v.Code,
		WarehouseID:         v.WarehouseID.String(),
		AddressID:           optionalID(v.AddressID),
		Status:              v.Status,
		TotalQuantity:       number(v.TotalQuantity),
		TotalWeight:         number(v.TotalWeight),
		TotalPrice:          number(v.TotalPrice),
		Notes:               v.Notes,
		CreatedAt:           v.CreatedAt,
		EstimatedDeliveryAt: v.EstimatedDeliveryAt,
		TransitStartedAt:    v.TransitStartedAt,
		DeliveredAt:         v.DeliveredAt,
		CancelledAt:         v.CancelledAt,
		Items:               make([]LineItemResponse, len(v.Items)),
	}

	for i, it := range v.Items {
		resp.Items[i] = LineItemResponse{
			ID:          it.ID.String(),
			ProductID:   it.ProductID.String(),
			Quantity:    number(it.Quantity),
			UnitWeight:  number(it.UnitWeight),
			UnitPrice:   number(it.UnitPrice),
			Subtotal:    number(it.Subtotal),
			TotalWeight: number(it.TotalWeight),
		}
	}

	if a := v.Assignment; a != nil {
		resp.Assignment = &AssignmentResponse{
			ID:         a.ID.String(),
			CarrierID:  a.CarrierID.String(),
			VehicleID:  a.VehicleID.String(),
			AssignedAt: a.AssignedAt,
			AcceptedAt: a.AcceptedAt,
		}
	}

	return resp
}

func newCarrierShipmentResponse(v queries.CarrierShipmentView) CarrierShipmentResponse {
	return CarrierShipmentResponse{
		ID:                  v.ID.String(),
		Code:                v.Code,
		Status:              v.Status,
		WarehouseID:         v.WarehouseID.String(),
		TotalQuantity:       number(v.TotalQuantity),
		TotalWeight:         number(v.TotalWeight),
		EstimatedDeliveryAt: v.EstimatedDeliveryAt,
		VehicleID:           v.VehicleID.String(),
		AssignedAt:          v.AssignedAt,
		AcceptedAt:          v.AcceptedAt,
	}
}

func newTrackingPointResponse(v queries.TrackingPointView) TrackingPointResponse {
	return TrackingPointResponse{
		ID:         v.ID.String(),
		Latitude:   v.Latitude,
		Longitude:  v.Longitude,
		Speed:      v.Speed,
		CapturedAt: v.CapturedAt,
	}
}

func newSalesNoteResponse(v queries.SalesNoteView) SalesNoteResponse {
	return SalesNoteResponse{
		ID:            v.ID.String(),
		Number:        v.Number,
		ShipmentID:    v.ShipmentID.String(),
		ShipmentCode:  v.ShipmentCode,
		WarehouseID:   v.WarehouseID.String(),
		WarehouseName: v.WarehouseName,
		AddressLine:   v.AddressLine,
		TotalQuantity: number(v.TotalQuantity),
		TotalWeight:   number(v.TotalWeight),
		TotalPrice:    number(v.TotalPrice),
		IssuedAt:      v.IssuedAt,
	}
}

func newChecklistResponse(v queries.ChecklistView) ChecklistResponse {
	return ChecklistResponse{
		ID:                    v.ID.String(),
		ShipmentID:            v.ShipmentID.String(),
		WarehouseID:           v.WarehouseID.String(),
		ProductsComplete:      v.ProductsComplete,
		PackagingIntact:       v.PackagingIntact,
		TemperatureAdequate:   v.TemperatureAdequate,
		NoVisibleDamage:       v.NoVisibleDamage,
		DocumentationComplete: v.DocumentationComplete,
		Condition:             v.Condition,
		ReviewerID:            optionalID(v.ReviewerID),
		Notes:                 v.Notes,
		CreatedAt:             v.CreatedAt,
		UpdatedAt:             v.UpdatedAt,
	}
}
