package shipment

import (
	"errors"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or Restore")
	ErrItemsAreRequired         = errs.NewValueIsRequiredError("items")
	ErrWarehouseIsRequired      = errs.NewValueIsRequiredError("warehouse_id")
	ErrReasonIsRequired         = errs.NewValueIsRequiredError("reason")
)

// Shipment is the aggregate root of the lifecycle engine. It owns its line items and its
// (at most one) active assignment, and it is mutated only through transition methods that
// delegate legality to Status.
//
// Each successful transition appends a StatusChanged event; the application layer publishes
// them after commit and then discards the aggregate.
type Shipment struct {
	id                  kernel.UUID
	code                Code
	warehouseID         kernel.UUID
	addressID           *kernel.UUID
	status              Status
	items               []*LineItem
	assignment          *Assignment
	notes               string
	createdAt           time.Time
	estimatedDeliveryAt *time.Time
	transitStartedAt    *time.Time
	deliveredAt         *time.Time
	cancelledAt         *time.Time
	version             int64

	events        []StatusChanged
	isConstructed bool
}

// NewShipment creates a pending shipment.
//
// Business rules:
//   - a destination warehouse is mandatory
//   - at least one line item is mandatory
//   - totals are derived from the line items
//
// Example:
//
//	item, _ := shipment.NewLineItem(kernel.NewUUID(), productID, decimal.NewFromInt(10), w, p)
//	s, err := shipment.NewShipment(kernel.NewUUID(), shipment.NewCode(now, kernel.NewUUID()),
//	    warehouseID, nil, []*shipment.LineItem{item}, "fragile", nil, now)
func NewShipment(
	id kernel.UUID,
	code Code,
	warehouseID kernel.UUID,
	addressID *kernel.UUID,
	items []*LineItem,
	notes string,
	estimatedDeliveryAt *time.Time,
	now time.Time,
) (*Shipment, error) {
	s := &Shipment{
		status:              Pending,
		addressID:           addressID,
		notes:               strings.TrimSpace(notes),
		createdAt:           now,
		estimatedDeliveryAt: estimatedDeliveryAt,
		isConstructed:       true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setCode(code),
		s.setWarehouseID(warehouseID),
		s.setItems(items),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Snapshot carries the persisted state used by Restore.
type Snapshot struct {
	ID                  kernel.UUID
	Code                Code
	WarehouseID         kernel.UUID
	AddressID           *kernel.UUID
	Status              Status
	Items               []*LineItem
	Assignment          *Assignment
	Notes               string
	CreatedAt           time.Time
	EstimatedDeliveryAt *time.Time
	TransitStartedAt    *time.Time
	DeliveredAt         *time.Time
	CancelledAt         *time.Time
	Version             int64
}

// Restore rebuilds a shipment from storage and checks that status and assignment agree.
func Restore(snap Snapshot) (*Shipment, error) {
	s := &Shipment{
		addressID:           snap.AddressID,
		notes:               snap.Notes,
		createdAt:           snap.CreatedAt,
		estimatedDeliveryAt: snap.EstimatedDeliveryAt,
		transitStartedAt:    snap.TransitStartedAt,
		deliveredAt:         snap.DeliveredAt,
		cancelledAt:         snap.CancelledAt,
		version:             snap.Version,
		isConstructed:       true,
	}

	if err := errors.Join(
		s.setID(snap.ID),
		s.setCode(snap.Code),
		s.setWarehouseID(snap.WarehouseID),
		s.setItems(snap.Items),
		s.setStatus(snap.Status, snap.Assignment),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate fails for a nil or literal-built shipment.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// Code returns the human readable code, for example "ENV-20261016-4F3A9C".
// It never changes after creation and is unique across shipments.
func (s *Shipment) Code() Code {
	return s.code
}

// WarehouseID returns the destination warehouse. Tracking and inventory entries use it.
func (s *Shipment) WarehouseID() kernel.UUID {
	return s.warehouseID
}

// AddressID returns the explicit delivery address, or nil when the warehouse address applies.
func (s *Shipment) AddressID() *kernel.UUID {
	return s.addressID
}

// Status returns the current lifecycle status.
//
// Example:
//
//	if s.Status() == shipment.InTransit {
//	    // tracking points may still be arriving
//	}
func (s *Shipment) Status() Status {
	return s.status
}

// Items returns a copy of the line item slice.
func (s *Shipment) Items() []*LineItem {
	out := make([]*LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Assignment returns the active assignment, or nil.
func (s *Shipment) Assignment() *Assignment {
	return s.assignment
}

// Notes returns the free-text notes, trimmed at creation.
func (s *Shipment) Notes() string {
	return s.notes
}

// CreatedAt returns the creation instant.
func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

// EstimatedDeliveryAt returns the estimate given at creation, or nil.
func (s *Shipment) EstimatedDeliveryAt() *time.Time {
	return s.estimatedDeliveryAt
}

// TransitStartedAt returns when the shipment left the plant, or nil before StartTransit.
func (s *Shipment) TransitStartedAt() *time.Time {
	return s.transitStartedAt
}

// DeliveredAt returns the delivery instant, or nil before Deliver.
// The sales note number is derived from this date.
func (s *Shipment) DeliveredAt() *time.Time {
	return s.deliveredAt
}

// CancelledAt returns the cancellation instant, or nil.
func (s *Shipment) CancelledAt() *time.Time {
	return s.cancelledAt
}

// Version is the optimistic concurrency token read from storage.
func (s *Shipment) Version() int64 {
	return s.version
}

// TotalQuantity sums the line item quantities.
//
// Example:
//
//	// items: 10 units and 5 units
//	s.TotalQuantity() // 15
func (s *Shipment) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.Quantity())
	}
	return total
}

// TotalWeight sums quantity times unit weight over the line items.
func (s *Shipment) TotalWeight() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.TotalWeight())
	}
	return total
}

// TotalPrice sums the line item subtotals.
//
// Example:
//
//	// items: 10 @ 5 and 5 @ 8
//	s.TotalPrice() // 90
func (s *Shipment) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Events returns the status changes recorded since the aggregate was loaded.
func (s *Shipment) Events() []StatusChanged {
	out := make([]StatusChanged, len(s.events))
	copy(out, s.events)
	return out
}

// Assign binds the shipment to a carrier and vehicle. Only legal from Pending.
func (s *Shipment) Assign(assignmentID, carrierID, vehicleID kernel.UUID, now time.Time) error {
	next, err := s.status.Assign()
	if err != nil {
		return err
	}

	a, err := newAssignment(assignmentID, carrierID, vehicleID, now)
	if err != nil {
		return err
	}

	s.assignment = a
	s.moveTo(next, now, "")
	return nil
}

// Accept confirms the assignment. Accepting an already accepted shipment succeeds without
// changes and reports alreadyAccepted=true.
func (s *Shipment) Accept(now time.Time) (alreadyAccepted bool, err error) {
	if s.status == Accepted {
		return true, nil
	}

	next, err := s.status.Accept()
	if err != nil {
		return false, err
	}

	s.assignment.acceptedAt = &now
	s.moveTo(next, now, "")
	return false, nil
}

// Reject drops the active assignment and returns the shipment to Pending.
// The removed assignment is returned so the caller can delete it from storage.
func (s *Shipment) Reject(reason string, now time.Time) (*Assignment, error) {
	next, err := s.status.Reject()
	if err != nil {
		return nil, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonIsRequired
	}

	removed := s.assignment
	removed.rejectedAt = &now
	s.moveTo(next, now, reason)
	s.assignment = nil
	return removed, nil
}

// StartTransit marks the shipment as departed and stamps the transit start time.
func (s *Shipment) StartTransit(now time.Time) error {
	next, err := s.status.StartTransit()
	if err != nil {
		return err
	}

	s.transitStartedAt = &now
	s.moveTo(next, now, "")
	return nil
}

// Deliver completes the shipment and stamps the delivery time.
func (s *Shipment) Deliver(now time.Time) error {
	next, err := s.status.Deliver()
	if err != nil {
		return err
	}

	s.deliveredAt = &now
	s.moveTo(next, now, "")
	return nil
}

// Cancel terminates a non-terminal shipment. The assignment, if any, is kept as history.
func (s *Shipment) Cancel(reason string, now time.Time) error {
	next, err := s.status.Cancel()
	if err != nil {
		return err
	}

	s.cancelledAt = &now
	s.moveTo(next, now, strings.TrimSpace(reason))
	return nil
}

func (s *Shipment) moveTo(next Status, now time.Time, reason string) {
	ev := StatusChanged{
		ShipmentID: s.id,
		Code:       s.code,
		From:       s.status,
		To:         next,
		Reason:     reason,
		OccurredAt: now,
	}
	if s.assignment != nil {
		carrierID := s.assignment.carrierID
		ev.CarrierID = &carrierID
	}

	s.status = next
	s.events = append(s.events, ev)
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setCode(code Code) error {
	parsed, err := ParseCode(string(code))
	if err != nil {
		return err
	}
	s.code = parsed
	return nil
}

func (s *Shipment) setWarehouseID(id kernel.UUID) error {
	if id.Validate() != nil {
		return ErrWarehouseIsRequired
	}
	s.warehouseID = id
	return nil
}

func (s *Shipment) setItems(items []*LineItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, it := range items {
		if it == nil {
			return errs.NewValueIsInvalidError("items")
		}
	}
	s.items = append([]*LineItem(nil), items...)
	return nil
}

func (s *Shipment) setStatus(status Status, assignment *Assignment) error {
	if err := status.Validate(); err != nil {
		return err
	}
	// Cancelled shipments may or may not keep their assignment.
	if status != Cancelled && status.HasAssignment() != (assignment != nil) {
		return errs.NewValueIsInvalidError("assignment does not match status " + status.String())
	}
	s.status = status
	s.assignment = assignment
	return nil
}
