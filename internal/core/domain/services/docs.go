// Package services provides domain services that do not belong to a single aggregate.
//
// The package includes:
//   - RouteSimulator: generates the simulated tracking points of a shipment between the
//     plant and its destination warehouse
package services
