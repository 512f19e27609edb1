package ledger

import "errors"

// Failure taxonomy. Every operation returns exactly one of these
// (possibly wrapped); a failed operation leaves ledger state untouched.
var (
	ErrNotFound          = errors.New("task not found")
	ErrForbidden         = errors.New("caller lacks the required role for this task")
	ErrInvalidState      = errors.New("operation not valid in the task's current status")
	ErrDeadlinePassed    = errors.New("deadline has passed")
	ErrTooEarly          = errors.New("deadline has not passed yet")
	ErrInvalidParameters = errors.New("invalid parameters")
	ErrAlreadyApplied    = errors.New("applicant already applied to this task")
	ErrAlreadyRated      = errors.New("rating already recorded for this task")
	ErrNotAnApplicant    = errors.New("address is not an applicant of this task")
	ErrNoBalance         = errors.New("no pending balance to withdraw")
)
