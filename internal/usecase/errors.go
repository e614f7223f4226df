package usecase

import "errors"

var (
	// ErrValidation marks caller-supplied input that failed a precondition.
	ErrValidation = errors.New("invalid input")
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrNotEligible is returned when the job-switch gate denies an action.
	ErrNotEligible = errors.New("not eligible")
	// ErrInvalidState is returned when a record is not in the state the
	// operation requires, including lost compare-and-set races.
	ErrInvalidState = errors.New("invalid state")
	// ErrDuplicateAction is returned when an employee already applied to or
	// referred someone for the same job.
	ErrDuplicateAction = errors.New("duplicate action on job")
	ErrInternal        = errors.New("internal error")
)

// NotEligibleError carries the gate's human-readable reason so handlers can
// surface it without re-evaluating the decision table.
type NotEligibleError struct {
	Reason string
}

func (e *NotEligibleError) Error() string {
	if e.Reason == "" {
		return ErrNotEligible.Error()
	}
	return e.Reason
}

func (e *NotEligibleError) Unwrap() error { return ErrNotEligible }
