package commands

import (
	"errors"

	"shipping/internal/core/domain/model/checklist"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	ErrUpdateChecklistCommandIsNotConstructed = errors.New(
		"UpdateChecklistCommand must be created via NewUpdateChecklistCommand constructor",
	)
	ErrEmptyChecklistPatch = errs.NewValueIsRequiredError("at least one checklist field")
)

// UpdateChecklistCommand replaces the fields set in the patch and keeps the rest.
type UpdateChecklistCommand struct {
	checklistID kernel.UUID
	patch       checklist.Patch

	guard guard.ConstructorGuard
}

func NewUpdateChecklistCommand(checklistID kernel.UUID, patch checklist.Patch) (UpdateChecklistCommand, error) {
	var emptyErr error
	if patch.IsEmpty() {
		emptyErr = ErrEmptyChecklistPatch
	}
	var gradeErr error
	if patch.Condition != nil {
		_, gradeErr = checklist.ParseGrade(patch.Condition.String())
	}

	if err := errors.Join(checklistID.Validate(), emptyErr, gradeErr); err != nil {
		return UpdateChecklistCommand{}, err
	}

	return UpdateChecklistCommand{
		checklistID: checklistID,
		patch:       patch,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateChecklistCommand) Validate() error {
	return c.guard.Validate(ErrUpdateChecklistCommandIsNotConstructed)
}

func (c UpdateChecklistCommand) ChecklistID() kernel.UUID {
	return c.checklistID
}

func (c UpdateChecklistCommand) Patch() checklist.Patch {
	return c.patch
}
