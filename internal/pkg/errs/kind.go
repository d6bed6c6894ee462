package errs

import "errors"

// Kind is the machine-readable classification exposed to API clients.
type Kind string

const (
	KindValidation             Kind = "validation_error"
	KindNotFound               Kind = "not_found"
	KindInvalidStateTransition Kind = "invalid_state_transition"
	KindConflict               Kind = "conflict"
	KindDependencyUnavailable  Kind = "dependency_unavailable"
	KindInternal               Kind = "internal_error"
)

// KindOf classifies err. Errors that do not wrap one of the package sentinels are internal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidation
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidStateTransition):
		return KindInvalidStateTransition
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrDependencyUnavailable):
		return KindDependencyUnavailable
	default:
		return KindInternal
	}
}
