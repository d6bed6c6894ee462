package commands

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/guard"
)

var ErrRejectAssignmentCommandIsNotConstructed = errors.New(
	"RejectAssignmentCommand must be created via NewRejectAssignmentCommand constructor",
)

// RejectAssignmentCommand drops the assignment of an assigned shipment so that it can be
// assigned again. The reason is mandatory.
type RejectAssignmentCommand struct {
	shipmentID kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

func NewRejectAssignmentCommand(shipmentID kernel.UUID, reason string) (RejectAssignmentCommand, error) {
	reason = strings.TrimSpace(reason)

	var reasonErr error
	if reason == "" {
		reasonErr = shipment.ErrReasonIsRequired
	}
	if err := errors.Join(shipmentID.Validate(), reasonErr); err != nil {
		return RejectAssignmentCommand{}, err
	}

	return RejectAssignmentCommand{
		shipmentID: shipmentID,
		reason:     reason,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrRejectAssignmentCommandIsNotConstructed)
}

func (c RejectAssignmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c RejectAssignmentCommand) Reason() string {
	return c.reason
}
