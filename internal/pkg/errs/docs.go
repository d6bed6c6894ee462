// Package errs holds the error taxonomy shared by every layer of the shipment service.
//
// Each error type follows the same shape:
//   - a sentinel (ErrValueIsRequired, ErrObjectNotFound, ...) used with errors.Is
//   - a struct carrying details and an optional Cause
//   - constructors with and without cause
//   - Error() for the message and Unwrap() returning the sentinel
//
// KindOf maps any error onto the kinds reported to API clients:
//
//	validation_error          ValueIsRequired, ValueIsInvalid, ValueIsOutOfRange
//	not_found                 ObjectNotFound
//	invalid_state_transition  InvalidStateTransition
//	conflict                  Conflict
//	dependency_unavailable    DependencyUnavailable
//	internal_error            anything else
package errs
