package commands

import (
	"errors"

	"shipping/internal/core/domain/model/checklist"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrCreateChecklistCommandIsNotConstructed = errors.New(
	"CreateChecklistCommand must be created via NewCreateChecklistCommand constructor",
)

// CreateChecklistCommand records a condition inspection of a shipment.
// A nil warehouse means the shipment destination.
type CreateChecklistCommand struct { //nolint:recvcheck //using for validation
	checklistID kernel.UUID
	shipmentID  kernel.UUID
	warehouseID *kernel.UUID
	flags       checklist.Flags
	condition   checklist.Grade
	reviewerID  *kernel.UUID
	notes       string

	guard guard.ConstructorGuard
}

func NewCreateChecklistCommand(
	checklistID, shipmentID kernel.UUID,
	warehouseID *kernel.UUID,
	flags checklist.Flags,
	condition string,
	reviewerID *kernel.UUID,
	notes string,
) (CreateChecklistCommand, error) {
	cmd := CreateChecklistCommand{
		flags: flags,
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(checklistID, shipmentID),
		cmd.setWarehouseID(warehouseID),
		cmd.setCondition(condition),
		cmd.setReviewerID(reviewerID),
	); err != nil {
		return CreateChecklistCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateChecklistCommand) Validate() error {
	return c.guard.Validate(ErrCreateChecklistCommandIsNotConstructed)
}

func (c CreateChecklistCommand) ChecklistID() kernel.UUID {
	return c.checklistID
}

func (c CreateChecklistCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c CreateChecklistCommand) WarehouseID() *kernel.UUID {
	return c.warehouseID
}

func (c CreateChecklistCommand) Flags() checklist.Flags {
	return c.flags
}

func (c CreateChecklistCommand) Condition() checklist.Grade {
	return c.condition
}

func (c CreateChecklistCommand) ReviewerID() *kernel.UUID {
	return c.reviewerID
}

func (c CreateChecklistCommand) Notes() string {
	return c.notes
}

func (c *CreateChecklistCommand) setIDs(checklistID, shipmentID kernel.UUID) error {
	if err := checklistID.Validate(); err != nil {
		return err
	}
	if err := shipmentID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipment_id", err)
	}
	c.checklistID = checklistID
	c.shipmentID = shipmentID
	return nil
}

func (c *CreateChecklistCommand) setWarehouseID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("warehouse_id", err)
	}
	c.warehouseID = id
	return nil
}

func (c *CreateChecklistCommand) setCondition(condition string) error {
	g, err := checklist.ParseGrade(condition)
	if err != nil {
		return err
	}
	c.condition = g
	return nil
}

func (c *CreateChecklistCommand) setReviewerID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("reviewer_id", err)
	}
	c.reviewerID = id
	return nil
}
