// Package kernel holds the value objects shared by every shipment aggregate:
// UUID identifiers and GeoPoint coordinates.
//
// Both are immutable and their zero values fail Validate, so an aggregate that stores one
// can tell "never set" from "set to something".
package kernel
