package shipment

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
)

// StatusChanged is recorded by every successful transition and published once the
// transaction that persisted it has committed.
type StatusChanged struct {
	ShipmentID kernel.UUID
	Code       Code
	From       Status
	To         Status
	CarrierID  *kernel.UUID
	Reason     string
	OccurredAt time.Time
}
