package shipment

import (
	"fmt"

	"shipping/internal/pkg/errs"
)

// Status is the lifecycle state of a shipment. It is a closed enumeration: the only way to move
// between values is through the transition methods below, each returning the new status or an
// *errs.InvalidStateTransitionError naming the current and requested states.
//
//	Pending ──assign──> Assigned ──accept──> Accepted ──start──> InTransit ──deliver──> Delivered
//	   ^                   │
//	   └─────reject────────┘
//
//	any non-terminal ──cancel──> Cancelled
//
// Statuses are persisted by name (see String and ParseStatus), never by ordinal.
type Status int

const (
	// Unknown is the zero value and never a valid persisted status.
	Unknown Status = iota
	Pending
	Assigned
	Accepted
	InTransit
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Pending:   "pending",
	Assigned:  "assigned",
	Accepted:  "accepted",
	InTransit: "in_transit",
	Delivered: "delivered",
	Cancelled: "cancelled",
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Assigned, Accepted, InTransit, Delivered, Cancelled}
}

// ParseStatus converts a persisted name back into a Status.
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", name))
}

// String returns the persisted name, or "unknown".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Validate rejects Unknown and out of range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// HasAssignment reports whether a shipment in this status must carry an active assignment.
func (s Status) HasAssignment() bool {
	return s == Assigned || s == Accepted || s == InTransit || s == Delivered
}

// Assign moves Pending to Assigned.
func (s Status) Assign() (Status, error) {
	return s.transition(Pending, Assigned)
}

// Accept moves Assigned to Accepted.
func (s Status) Accept() (Status, error) {
	return s.transition(Assigned, Accepted)
}

// Reject moves Assigned back to Pending.
func (s Status) Reject() (Status, error) {
	return s.transition(Assigned, Pending)
}

// StartTransit moves Accepted to InTransit.
func (s Status) StartTransit() (Status, error) {
	return s.transition(Accepted, InTransit)
}

// Deliver moves InTransit to Delivered.
func (s Status) Deliver() (Status, error) {
	return s.transition(InTransit, Delivered)
}

// Cancel moves any non-terminal status to Cancelled.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil || s.IsTerminal() {
		return Unknown, errs.NewInvalidStateTransitionError(s.String(), Cancelled.String())
	}
	return Cancelled, nil
}

func (s Status) transition(from, to Status) (Status, error) {
	if s != from {
		return Unknown, errs.NewInvalidStateTransitionError(s.String(), to.String())
	}
	return to, nil
}
