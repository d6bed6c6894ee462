package commands

import (
	"errors"

	"shipping/internal/pkg/guard"
)

var ErrResumeSideEffectsCommandIsNotConstructed = errors.New(
	"ResumeSideEffectsCommand must be created via NewResumeSideEffectsCommand constructor",
)

// ResumeSideEffectsCommand re-runs the post-commit work that may have been lost: tracking
// simulations of shipments in transit and sales notes of delivered shipments.
// This is a parameterless command triggered by the retry job.
type ResumeSideEffectsCommand struct {
	guard guard.ConstructorGuard
}

func NewResumeSideEffectsCommand() ResumeSideEffectsCommand {
	return ResumeSideEffectsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ResumeSideEffectsCommand) Validate() error {
	return c.guard.Validate(ErrResumeSideEffectsCommandIsNotConstructed)
}
