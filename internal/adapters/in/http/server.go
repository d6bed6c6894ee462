package http

import (
	"net/http"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/checklist"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"github.com/shopspring/decimal"
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateShipment  commands.CreateShipmentCommandHandler
	AssignShipment  commands.AssignShipmentCommandHandler
	AcceptShipment  commands.AcceptAssignmentCommandHandler
	RejectShipment  commands.RejectAssignmentCommandHandler
	StartTransit    commands.StartTransitCommandHandler
	DeliverShipment commands.DeliverShipmentCommandHandler
	CancelShipment  commands.CancelShipmentCommandHandler
	CreateChecklist commands.CreateChecklistCommandHandler
	UpdateChecklist commands.UpdateChecklistCommandHandler

	GetShipment            queries.GetShipmentQueryHandler
	ListCarrierShipments   queries.ListCarrierShipmentsQueryHandler
	GetTracking            queries.GetTrackingQueryHandler
	GetSalesNote           queries.GetSalesNoteQueryHandler
	GetChecklist           queries.GetChecklistQueryHandler
	ListShipmentChecklists queries.ListShipmentChecklistsQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
// Mutating endpoints answer with the state read back after the command committed.
type Server struct {
	h Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

type NewLineItemRequest struct {
	ProductID  uuid.UUID       `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitWeight decimal.Decimal `json:"unit_weight"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

type NewShipmentRequest struct {
	WarehouseID         uuid.UUID            `json:"warehouse_id"`
	AddressID           *uuid.UUID           `json:"address_id"`
	Notes               string               `json:"notes"`
	EstimatedDeliveryAt *time.Time           `json:"estimated_delivery_at"`
	Items               []NewLineItemRequest `json:"items"`
}

type AssignRequest struct {
	CarrierID uuid.UUID `json:"carrier_id"`
	VehicleID uuid.UUID `json:"vehicle_id"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

type NewChecklistRequest struct {
	ShipmentID            uuid.UUID  `json:"shipment_id"`
	WarehouseID           *uuid.UUID `json:"warehouse_id"`
	ProductsComplete      bool       `json:"products_complete"`
	PackagingIntact       bool       `json:"packaging_intact"`
	TemperatureAdequate   bool       `json:"temperature_adequate"`
	NoVisibleDamage       bool       `json:"no_visible_damage"`
	DocumentationComplete bool       `json:"documentation_complete"`
	Condition             string     `json:"condition"`
	ReviewerID            *uuid.UUID `json:"reviewer_id"`
	Notes                 string     `json:"notes"`
}

type ChecklistPatchRequest struct {
	ProductsComplete      *bool      `json:"products_complete"`
	PackagingIntact       *bool      `json:"packaging_intact"`
	TemperatureAdequate   *bool      `json:"temperature_adequate"`
	NoVisibleDamage       *bool      `json:"no_visible_damage"`
	DocumentationComplete *bool      `json:"documentation_complete"`
	Condition             *string    `json:"condition"`
	ReviewerID            *uuid.UUID `json:"reviewer_id"`
	Notes                 *string    `json:"notes"`
}

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(c echo.Context) error {
	var req NewShipmentRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	warehouseID, err := toKernelID(req.WarehouseID, "warehouse_id")
	if err != nil {
		return err
	}
	addressID, err := toOptionalKernelID(req.AddressID, "address_id")
	if err != nil {
		return err
	}

	items := make([]commands.LineItemInput, len(req.Items))
	for i, it := range req.Items {
		productID, idErr := toKernelID(it.ProductID, "product_id")
		if idErr != nil {
			return idErr
		}
		items[i] = commands.LineItemInput{
			ProductID:  productID,
			Quantity:   it.Quantity,
			UnitWeight: it.UnitWeight,
			UnitPrice:  it.UnitPrice,
		}
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(
		shipmentID, warehouseID, addressID, items, req.Notes, req.EstimatedDeliveryAt,
	)
	if err != nil {
		return err
	}
	if err = s.h.CreateShipment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondShipment(c, http.StatusCreated, shipmentID)
}

// GetShipment handles GET /api/v1/shipments/{id}.
func (s *Server) GetShipment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	return s.respondShipment(c, http.StatusOK, id)
}

// GetShipmentByCode handles GET /api/v1/shipments/code/{code}.
func (s *Server) GetShipmentByCode(c echo.Context) error {
	query, err := queries.NewGetShipmentByCodeQuery(c.Param("code"))
	if err != nil {
		return err
	}

	view, err := s.h.GetShipment.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newShipmentResponse(view))
}

// AssignShipment handles PUT /api/v1/shipments/{id}/assign.
func (s *Server) AssignShipment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req AssignRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	carrierID, err := toKernelID(req.CarrierID, "carrier_id")
	if err != nil {
		return err
	}
	vehicleID, err := toKernelID(req.VehicleID, "vehicle_id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignShipmentCommand(id, carrierID, vehicleID)
	if err != nil {
		return err
	}
	if err = s.h.AssignShipment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondShipment(c, http.StatusOK, id)
}

// AcceptAssignment handles POST /api/v1/shipments/{id}/accept.
func (s *Server) AcceptAssignment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewAcceptAssignmentCommand(id)
	if err != nil {
		return err
	}
	alreadyAccepted, err := s.h.AcceptShipment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return s.respondDecision(c, id, &alreadyAccepted)
}

// RejectAssignment handles POST /api/v1/shipments/{id}/reject.
func (s *Server) RejectAssignment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req ReasonRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRejectAssignmentCommand(id, req.Reason)
	if err != nil {
		return err
	}
	if err = s.h.RejectShipment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondDecision(c, id, nil)
}

// StartTransit handles POST /api/v1/shipments/{id}/start-transit.
func (s *Server) StartTransit(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewStartTransitCommand(id)
	if err != nil {
		return err
	}
	if err = s.h.StartTransit.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondShipment(c, http.StatusOK, id)
}

// DeliverShipment handles POST /api/v1/shipments/{id}/deliver.
func (s *Server) DeliverShipment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeliverShipmentCommand(id)
	if err != nil {
		return err
	}
	if err = s.h.DeliverShipment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondShipment(c, http.StatusOK, id)
}

// CancelShipment handles POST /api/v1/shipments/{id}/cancel. The body is optional.
func (s *Server) CancelShipment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req ReasonRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCancelShipmentCommand(id, req.Reason)
	if err != nil {
		return err
	}
	if err = s.h.CancelShipment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondShipment(c, http.StatusOK, id)
}

// GetTracking handles GET /api/v1/shipments/{id}/tracking.
func (s *Server) GetTracking(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetTrackingQuery(id)
	if err != nil {
		return err
	}

	points, err := s.h.GetTracking.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]TrackingPointResponse, len(points))
	for i, p := range points {
		response[i] = newTrackingPointResponse(p)
	}
	return c.JSON(http.StatusOK, response)
}

// GetSalesNote handles GET /api/v1/shipments/{id}/sales-note.
func (s *Server) GetSalesNote(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetSalesNoteQuery(id)
	if err != nil {
		return err
	}

	note, err := s.h.GetSalesNote.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSalesNoteResponse(note))
}

// ListShipmentChecklists handles GET /api/v1/shipments/{id}/checklists.
func (s *Server) ListShipmentChecklists(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewListShipmentChecklistsQuery(id)
	if err != nil {
		return err
	}

	views, err := s.h.ListShipmentChecklists.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]ChecklistResponse, len(views))
	for i, v := range views {
		response[i] = newChecklistResponse(v)
	}
	return c.JSON(http.StatusOK, response)
}

// ListCarrierShipments handles GET /api/v1/carriers/{id}/shipments.
func (s *Server) ListCarrierShipments(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewListCarrierShipmentsQuery(id)
	if err != nil {
		return err
	}

	views, err := s.h.ListCarrierShipments.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]CarrierShipmentResponse, len(views))
	for i, v := range views {
		response[i] = newCarrierShipmentResponse(v)
	}
	return c.JSON(http.StatusOK, response)
}

// CreateChecklist handles POST /api/v1/checklists.
func (s *Server) CreateChecklist(c echo.Context) error {
	var req NewChecklistRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	shipmentID, err := toKernelID(req.ShipmentID, "shipment_id")
	if err != nil {
		return err
	}
	warehouseID, err := toOptionalKernelID(req.WarehouseID, "warehouse_id")
	if err != nil {
		return err
	}
	reviewerID, err := toOptionalKernelID(req.ReviewerID, "reviewer_id")
	if err != nil {
		return err
	}

	checklistID := kernel.NewUUID()
	cmd, err := commands.NewCreateChecklistCommand(
		checklistID,
		shipmentID,
		warehouseID,
		checklist.Flags{
			ProductsComplete:      req.ProductsComplete,
			PackagingIntact:       req.PackagingIntact,
			TemperatureAdequate:   req.TemperatureAdequate,
			NoVisibleDamage:       req.NoVisibleDamage,
			DocumentationComplete: req.DocumentationComplete,
		},
		req.Condition,
		reviewerID,
		req.Notes,
	)
	if err != nil {
		return err
	}
	if err = s.h.CreateChecklist.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondChecklist(c, http.StatusCreated, checklistID)
}

// GetChecklist handles GET /api/v1/checklists/{id}.
func (s *Server) GetChecklist(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	return s.respondChecklist(c, http.StatusOK, id)
}

// UpdateChecklist handles PUT /api/v1/checklists/{id}. Only fields present in the body change.
func (s *Server) UpdateChecklist(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req ChecklistPatchRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	reviewerID, err := toOptionalKernelID(req.ReviewerID, "reviewer_id")
	if err != nil {
		return err
	}

	patch := checklist.Patch{
		ProductsComplete:      req.ProductsComplete,
		PackagingIntact:       req.PackagingIntact,
		TemperatureAdequate:   req.TemperatureAdequate,
		NoVisibleDamage:       req.NoVisibleDamage,
		DocumentationComplete: req.DocumentationComplete,
		ReviewerID:            reviewerID,
		Notes:                 req.Notes,
	}
	if req.Condition != nil {
		grade := checklist.Grade(*req.Condition)
		patch.Condition = &grade
	}

	cmd, err := commands.NewUpdateChecklistCommand(id, patch)
	if err != nil {
		return err
	}
	if err = s.h.UpdateChecklist.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondChecklist(c, http.StatusOK, id)
}

func (s *Server) respondShipment(c echo.Context, status int, id kernel.UUID) error {
	view, err := s.shipmentView(c, id)
	if err != nil {
		return err
	}
	return c.JSON(status, newShipmentResponse(view))
}

func (s *Server) respondDecision(c echo.Context, id kernel.UUID, alreadyAccepted *bool) error {
	view, err := s.shipmentView(c, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, DecisionResponse{
		Success:         true,
		AlreadyAccepted: alreadyAccepted,
		Shipment:        newShipmentResponse(view),
	})
}

func (s *Server) shipmentView(c echo.Context, id kernel.UUID) (queries.ShipmentView, error) {
	query, err := queries.NewGetShipmentQuery(id)
	if err != nil {
		return queries.ShipmentView{}, err
	}
	return s.h.GetShipment.Handle(c.Request().Context(), query)
}

func (s *Server) respondChecklist(c echo.Context, status int, id kernel.UUID) error {
	query, err := queries.NewGetChecklistQuery(id)
	if err != nil {
		return err
	}

	view, err := s.h.GetChecklist.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(status, newChecklistResponse(view))
}

func bindBody(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}

func pathID(c echo.Context, name string) (kernel.UUID, error) {
	var raw uuid.UUID
	err := runtime.BindStyledParameterWithLocation("simple", false, name, runtime.ParamLocationPath, c.Param(name), &raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return toKernelID(raw, name)
}

func toKernelID(raw uuid.UUID, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func toOptionalKernelID(raw *uuid.UUID, name string) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := toKernelID(*raw, name)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
