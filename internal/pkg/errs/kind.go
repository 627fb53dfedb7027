package errs

import "errors"

// Kind classifies an error for callers that must decide how to react
// (reject input, reload and retry, investigate).
type Kind int

const (
	// KindInternal covers every error not produced by this package's constructors.
	// It is not retryable without investigation.
	KindInternal Kind = iota
	KindValidation
	KindInvalidTransition
	KindPreconditionFailed
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_failure"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindPreconditionFailed:
		return "precondition_failed"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// KindOf returns the kind of err. Joined errors are classified by their
// first recognised member, so a validation failure joined with others is
// still a validation failure.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidation
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrPreconditionFailed):
		return KindPreconditionFailed
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	default:
		return KindInternal
	}
}
