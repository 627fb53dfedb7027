// Package errs provides the typed errors shared by the domain, application
// and adapter layers of the delivery order service.
//
// Every error type follows the same pattern:
//   - a sentinel variable (ErrValueIsRequired, ErrInvalidTransition, ...)
//   - a struct carrying the details (parameter name, statuses, cause)
//   - constructors with and without a cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// KindOf maps any error onto the closed set of kinds callers react to:
// validation failure, invalid transition, precondition failed, not found,
// conflict and internal.
package errs
