package shipment

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
)

// Assignment binds a shipment to a carrier and a vehicle. A shipment holds at most one;
// a rejected assignment is removed from the shipment and deleted from storage.
type Assignment struct {
	id         kernel.UUID
	carrierID  kernel.UUID
	vehicleID  kernel.UUID
	assignedAt time.Time
	acceptedAt *time.Time
	rejectedAt *time.Time
}

func newAssignment(id, carrierID, vehicleID kernel.UUID, assignedAt time.Time) (*Assignment, error) {
	if err := errors.Join(id.Validate(), carrierID.Validate(), vehicleID.Validate()); err != nil {
		return nil, err
	}
	return &Assignment{
		id:         id,
		carrierID:  carrierID,
		vehicleID:  vehicleID,
		assignedAt: assignedAt,
	}, nil
}

// RestoreAssignment rebuilds an assignment read from storage.
func RestoreAssignment(
	id, carrierID, vehicleID kernel.UUID,
	assignedAt time.Time,
	acceptedAt, rejectedAt *time.Time,
) (*Assignment, error) {
	a, err := newAssignment(id, carrierID, vehicleID, assignedAt)
	if err != nil {
		return nil, err
	}
	a.acceptedAt = acceptedAt
	a.rejectedAt = rejectedAt
	return a, nil
}

// ID returns the assignment identifier.
func (a *Assignment) ID() kernel.UUID {
	return a.id
}

// CarrierID returns the carrier responsible for the shipment.
func (a *Assignment) CarrierID() kernel.UUID {
	return a.carrierID
}

// VehicleID returns the vehicle carrying the shipment. With exclusive assignment enabled
// a vehicle is held by at most one unfinished shipment.
func (a *Assignment) VehicleID() kernel.UUID {
	return a.vehicleID
}

// AssignedAt returns when the assignment was made.
func (a *Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

// AcceptedAt returns when the carrier accepted, or nil while pending acceptance.
// Repeated accepts keep the first timestamp.
func (a *Assignment) AcceptedAt() *time.Time {
	return a.acceptedAt
}

// RejectedAt is set only on the assignment handed back by Shipment.Reject.
func (a *Assignment) RejectedAt() *time.Time {
	return a.rejectedAt
}

// IsActive reports whether the assignment has not been rejected.
func (a *Assignment) IsActive() bool {
	return a.rejectedAt == nil
}
