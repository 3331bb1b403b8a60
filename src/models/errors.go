package models

import (
	"errors"
	"fmt"
)

// Business-rule violations surfaced to callers with a specific message.
// Store failures are wrapped separately and reported as a generic internal
// error so driver details never leak to clients.
var (
	ErrDuplicateMark      = errors.New("attendance already marked for this student")
	ErrAttendanceClosed   = errors.New("attendance is closed for this date")
	ErrNoEligibleStudents = errors.New("no students can be promoted based on their program duration")
	ErrActionNotFound     = errors.New("action not found")
	ErrWrongActionType    = errors.New("invalid action type for this operation")
	ErrAlreadyUndone      = errors.New("action already undone")
	ErrNotFound           = errors.New("not found")
)

// ValidationError carries an actionable message about a missing or malformed
// field. It never reaches the store.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validationf builds a ValidationError.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
