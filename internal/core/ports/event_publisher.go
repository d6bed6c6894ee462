package ports

import (
	"context"

	"shipping/internal/core/domain/model/shipment"
)

// EventPublisher delivers committed status changes to other services.
// Implementations must be safe for concurrent use.
type EventPublisher interface {
	Publish(ctx context.Context, events ...shipment.StatusChanged) error
}
