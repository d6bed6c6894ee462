// Package shipment provides the Shipment aggregate root and its lifecycle state machine.
//
// The package includes:
//   - Shipment: identity, destination, line items, the active carrier assignment and lifecycle timestamps
//   - Status: a closed state machine enforcing legal transitions
//   - Code: the human readable identifier, ENV-YYYYMMDD-XXXXXX
//   - LineItem: an immutable product row with quantity, unit weight and unit price
//   - Assignment: the binding of a shipment to a carrier and vehicle
//   - StatusChanged: the event recorded by every transition
//
// Key business rules:
//   - A shipment needs a destination warehouse and at least one line item
//   - Status follows Pending -> Assigned -> Accepted -> InTransit -> Delivered
//   - Reject returns an assigned shipment to Pending and drops its assignment
//   - Any non-terminal shipment can be cancelled; Delivered and Cancelled are terminal
//   - Accepting an already accepted shipment is a no-op
package shipment
