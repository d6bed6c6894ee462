package queries

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
)

func ensureShipmentExists(ctx context.Context, db *gorm.DB, id kernel.UUID) error {
	var exists bool
	if err := db.WithContext(ctx).
		Raw("SELECT EXISTS (SELECT 1 FROM shipments WHERE id = ?)", id.Bytes()).
		Scan(&exists).Error; err != nil {
		return err
	}
	if !exists {
		return errs.NewObjectNotFoundError("shipment", id.String())
	}
	return nil
}
