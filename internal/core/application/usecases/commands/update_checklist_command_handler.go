package commands

import (
	"context"
	"time"
)

// UpdateChecklistCommandHandler applies a partial update to a stored checklist.
type UpdateChecklistCommandHandler struct {
	uowFactory ChecklistUoWFactory
}

func NewUpdateChecklistCommandHandler(uowFactory ChecklistUoWFactory) UpdateChecklistCommandHandler {
	return UpdateChecklistCommandHandler{uowFactory: uowFactory}
}

func (h UpdateChecklistCommandHandler) Handle(ctx context.Context, cmd UpdateChecklistCommand) error {
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

	checklists := uow.ChecklistRepository()

	c, err := checklists.Get(ctx, cmd.ChecklistID())
	if err != nil {
		return err
	}

	if err = c.Apply(cmd.Patch(), time.Now().UTC()); err != nil {
		return err
	}

	if err = checklists.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
