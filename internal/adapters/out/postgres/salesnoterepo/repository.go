package salesnoterepo

import (
	"context"
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/salesnote"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/pgerr"

	"gorm.io/gorm"
)

const shipmentUniqueIndex = "idx_sales_notes_shipment_id"

type GormSalesNoteRepository struct {
	db *gorm.DB
}

func NewGormSalesNoteRepository(db *gorm.DB) *GormSalesNoteRepository {
	return &GormSalesNoteRepository{db: db}
}

// Add inserts the note. A second note for the same shipment fails with salesnote.ErrAlreadyIssued;
// any other unique violation is a plain *errs.ConflictError.
func (r *GormSalesNoteRepository) Add(ctx context.Context, note *salesnote.SalesNote) error {
	dto := fromDomain(note)
	err := r.db.WithContext(ctx).Create(&dto).Error
	if pgerr.IsUniqueViolation(err) && pgerr.ConstraintName(err) == shipmentUniqueIndex {
		return fmt.Errorf("%w: %w", salesnote.ErrAlreadyIssued, err)
	}
	return pgerr.Conflict(err, "sales note")
}

func (r *GormSalesNoteRepository) GetByShipment(ctx context.Context, shipmentID kernel.UUID) (*salesnote.SalesNote, error) {
	var dto SalesNoteDTO
	if err := r.db.WithContext(ctx).First(&dto, "shipment_id = ?", shipmentID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("sales note for shipment", shipmentID.String())
		}
		return nil, err
	}
	return toDomain(dto)
}
