package common

import "errors"

// FailureKind classifies a processing failure for the delivery state machine.
type FailureKind int

const (
	// FailureRetryable leaves the record eligible for the next pass.
	FailureRetryable FailureKind = iota

	// FailureDeferred skips the record without changing its state; the
	// condition is expected to resolve externally (e.g. a credential
	// appears after the user completes an OAuth flow).
	FailureDeferred

	// FailureTerminal moves the record to a final failed state: no
	// amount of retrying will resolve the condition.
	FailureTerminal
)

func (k FailureKind) String() string {
	switch k {
	case FailureRetryable:
		return "retryable"
	case FailureDeferred:
		return "deferred"
	case FailureTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// ClassifiedError attaches a FailureKind to an underlying error. It wraps
// the cause so errors.Is/errors.As keep working through it.
type ClassifiedError struct {
	Kind FailureKind
	Err  error
}

func (e *ClassifiedError) Error() string { return e.Err.Error() }

func (e *ClassifiedError) Unwrap() error { return e.Err }

// Classified wraps err with the given kind.
func Classified(kind FailureKind, err error) error {
	return &ClassifiedError{Kind: kind, Err: err}
}

// KindOf extracts the FailureKind from err. Unclassified errors are treated
// as retryable, matching the state machine's default failure path.
func KindOf(err error) FailureKind {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return FailureRetryable
}
