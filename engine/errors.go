/*
errors.go - Centralized error types for the engine

PURPOSE:
  All error values in one place. Callers branch with errors.Is/errors.As
  or the Is* helpers; the API layer maps these onto HTTP statuses.

ERROR CATEGORIES:
  1. NotFound   - unknown intern or leave record id; never treated as zero
  2. Conflict   - duplicate employee code or duplicate leave date
  3. Validation - malformed input, correctable by the caller
  4. Fault      - invariant violations on previously-validated data
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInternNotFound is returned for an unknown intern id.
	ErrInternNotFound = errors.New("intern not found")

	// ErrLeaveNotFound is returned for an unknown leave record id.
	ErrLeaveNotFound = errors.New("leave record not found")

	// ErrDuplicateEmployeeCode is returned when creating an intern whose
	// employee code is already taken, active or not.
	ErrDuplicateEmployeeCode = errors.New("employee code already in use")

	// ErrDuplicateLeaveDate is returned when a (intern, date) leave pair
	// already exists. A retried add lands here and reports the existing
	// record rather than storing a second one.
	ErrDuplicateLeaveDate = errors.New("leave date already recorded")

	// ErrInvalidWorkWindow signals a zero-length work window reaching the
	// accrual math. Creation-time validation makes this unreachable for
	// stored records; it is an invariant violation, not a normal error.
	ErrInvalidWorkWindow = errors.New("work window has no duration")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError reports a malformed or out-of-range input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DuplicateCodeError reports an employee code collision.
type DuplicateCodeError struct {
	EmployeeCode string
}

func (e *DuplicateCodeError) Error() string {
	return fmt.Sprintf("employee code %q already in use", e.EmployeeCode)
}

func (e *DuplicateCodeError) Unwrap() error { return ErrDuplicateEmployeeCode }

// DuplicateLeaveError reports a leave-date collision and carries the record
// that already holds the date, so retries can surface it instead of failing.
type DuplicateLeaveError struct {
	InternID InternID
	Date     Date
	Existing LeaveRecord
}

func (e *DuplicateLeaveError) Error() string {
	return fmt.Sprintf("leave already recorded for %s on %s (record %s)",
		e.InternID, e.Date, e.Existing.ID)
}

func (e *DuplicateLeaveError) Unwrap() error { return ErrDuplicateLeaveDate }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound reports whether err indicates a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrInternNotFound) || errors.Is(err, ErrLeaveNotFound)
}

// IsConflict reports whether err is a duplicate-key condition.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateEmployeeCode) || errors.Is(err, ErrDuplicateLeaveDate)
}

// IsValidation reports whether err is caller-correctable input.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
