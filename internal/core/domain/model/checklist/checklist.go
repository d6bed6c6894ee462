// Package checklist models warehouse-side condition inspections of a shipment.
//
// Checklists are independent of the shipment state machine: they can be recorded in any status,
// and several may exist for the same shipment to represent repeat inspections.
package checklist

import (
	"errors"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

// Flags are the boolean inspection results.
type Flags struct {
	ProductsComplete      bool
	PackagingIntact       bool
	TemperatureAdequate   bool
	NoVisibleDamage       bool
	DocumentationComplete bool
}

// Checklist is one inspection record.
type Checklist struct {
	id          kernel.UUID
	shipmentID  kernel.UUID
	warehouseID kernel.UUID
	flags       Flags
	condition   Grade
	reviewerID  *kernel.UUID
	notes       string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewChecklist creates a record for the shipment at the given warehouse.
// The caller resolves the warehouse, falling back to the shipment destination.
func NewChecklist(
	id, shipmentID, warehouseID kernel.UUID,
	flags Flags,
	condition Grade,
	reviewerID *kernel.UUID,
	notes string,
	now time.Time,
) (*Checklist, error) {
	c := &Checklist{
		flags:      flags,
		reviewerID: reviewerID,
		notes:      strings.TrimSpace(notes),
		createdAt:  now,
		updatedAt:  now,
	}

	if err := errors.Join(
		c.setID(id),
		c.setShipmentID(shipmentID),
		c.setWarehouseID(warehouseID),
		c.setCondition(condition),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Restore rebuilds a checklist from storage.
func Restore(
	id, shipmentID, warehouseID kernel.UUID,
	flags Flags,
	condition Grade,
	reviewerID *kernel.UUID,
	notes string,
	createdAt, updatedAt time.Time,
) (*Checklist, error) {
	c, err := NewChecklist(id, shipmentID, warehouseID, flags, condition, reviewerID, notes, createdAt)
	if err != nil {
		return nil, err
	}
	c.notes = notes
	c.updatedAt = updatedAt
	return c, nil
}

// Patch is a partial update. Nil fields keep their current value.
type Patch struct {
	ProductsComplete      *bool
	PackagingIntact       *bool
	TemperatureAdequate   *bool
	NoVisibleDamage       *bool
	DocumentationComplete *bool
	Condition             *Grade
	ReviewerID            *kernel.UUID
	Notes                 *string
}

// IsEmpty reports whether the patch sets no field.
func (p Patch) IsEmpty() bool {
	return p.ProductsComplete == nil && p.PackagingIntact == nil && p.TemperatureAdequate == nil &&
		p.NoVisibleDamage == nil && p.DocumentationComplete == nil && p.Condition == nil &&
		p.ReviewerID == nil && p.Notes == nil
}

// Apply replaces the set fields and stamps updatedAt. Nothing changes when the patch is invalid.
func (c *Checklist) Apply(p Patch, now time.Time) error {
	if p.Condition != nil {
		if _, err := ParseGrade(p.Condition.String()); err != nil {
			return err
		}
	}
	if p.ReviewerID != nil {
		if err := p.ReviewerID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("reviewer_id", err)
		}
	}

	setBool(&c.flags.ProductsComplete, p.ProductsComplete)
	setBool(&c.flags.PackagingIntact, p.PackagingIntact)
	setBool(&c.flags.TemperatureAdequate, p.TemperatureAdequate)
	setBool(&c.flags.NoVisibleDamage, p.NoVisibleDamage)
	setBool(&c.flags.DocumentationComplete, p.DocumentationComplete)
	if p.Condition != nil {
		c.condition = *p.Condition
	}
	if p.ReviewerID != nil {
		reviewer := *p.ReviewerID
		c.reviewerID = &reviewer
	}
	if p.Notes != nil {
		c.notes = strings.TrimSpace(*p.Notes)
	}
	c.updatedAt = now
	return nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// ID returns the checklist identifier.
func (c *Checklist) ID() kernel.UUID {
	return c.id
}

// ShipmentID returns the inspected shipment.
func (c *Checklist) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// WarehouseID returns where the inspection happened, defaulting to the shipment destination.
func (c *Checklist) WarehouseID() kernel.UUID {
	return c.warehouseID
}

// Flags returns the five yes/no inspection results.
func (c *Checklist) Flags() Flags {
	return c.flags
}

// Condition returns the overall grade.
func (c *Checklist) Condition() Grade {
	return c.condition
}

// ReviewerID returns the reviewer, or nil when unknown.
func (c *Checklist) ReviewerID() *kernel.UUID {
	return c.reviewerID
}

// Notes returns the reviewer's remarks.
func (c *Checklist) Notes() string {
	return c.notes
}

// CreatedAt returns when the inspection was first recorded.
func (c *Checklist) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt returns the time of the last Apply, or CreatedAt when never patched.
func (c *Checklist) UpdatedAt() time.Time {
	return c.updatedAt
}

func (c *Checklist) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Checklist) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipment_id", err)
	}
	c.shipmentID = id
	return nil
}

func (c *Checklist) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("warehouse_id", err)
	}
	c.warehouseID = id
	return nil
}

func (c *Checklist) setCondition(g Grade) error {
	parsed, err := ParseGrade(g.String())
	if err != nil {
		return err
	}
	c.condition = parsed
	return nil
}
