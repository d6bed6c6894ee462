package commands

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/checklist"
)

// CreateChecklistCommandHandler stores a new inspection. Checklists are accepted in any
// shipment status and never change the shipment itself.
type CreateChecklistCommandHandler struct {
	uowFactory ChecklistUoWFactory
}

func NewCreateChecklistCommandHandler(uowFactory ChecklistUoWFactory) CreateChecklistCommandHandler {
	return CreateChecklistCommandHandler{uowFactory: uowFactory}
}

func (h CreateChecklistCommandHandler) Handle(ctx context.Context, cmd CreateChecklistCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	warehouseID := s.WarehouseID()
	if cmd.WarehouseID() != nil {
		warehouse, whErr := uow.ReferenceRepository().GetWarehouse(ctx, *cmd.WarehouseID())
		if whErr != nil {
			return whErr
		}
		warehouseID = warehouse.ID
	}

	c, err := checklist.NewChecklist(
		cmd.ChecklistID(),
		s.ID(),
		warehouseID,
		cmd.Flags(),
		cmd.Condition(),
		cmd.ReviewerID(),
		cmd.Notes(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = uow.ChecklistRepository().Add(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
