package apperrors

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that a room/date range is already taken or a room is occupied.
var ErrConflict = errors.New("conflict")

// ErrGate indicates that an operation touched a date on or before the business day boundary.
var ErrGate = errors.New("business day gate")

// ErrInvariant indicates that a stored ledger failed its balance invariant.
var ErrInvariant = errors.New("ledger invariant violated")

// ErrDependency indicates an infrastructure failure (repository, settings, broker).
var ErrDependency = errors.New("dependency failure")

// ErrStaleVersion indicates an optimistic concurrency check failed on save.
var ErrStaleVersion = errors.New("stale version")

// ErrForbidden indicates the caller may not perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal is returned when an unexpected internal failure must not leak details.
var ErrInternal = errors.New("internal error")

// ValidationError reports bad input shape, naming the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation.Error(), e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation.Error(), e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError builds a ValidationError.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ConflictError carries the reservation (and room) that blocked the request.
type ConflictError struct {
	RoomID                   string
	ConflictingReservationID string
	Message                  string
}

func (e *ConflictError) Error() string {
	if e.ConflictingReservationID != "" {
		return fmt.Sprintf("%s: %s (room %s, reservation %s)", ErrConflict.Error(), e.Message, e.RoomID, e.ConflictingReservationID)
	}
	return fmt.Sprintf("%s: %s (room %s)", ErrConflict.Error(), e.Message, e.RoomID)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// GateError names the date that was blocked and the business day in force.
type GateError struct {
	BlockedDate time.Time
	BusinessDay time.Time
	Operation   string
}

func (e *GateError) Error() string {
	return fmt.Sprintf("%s: %s not permitted for %s (business day is %s)",
		ErrGate.Error(), e.Operation, e.BlockedDate.Format(time.DateOnly), e.BusinessDay.Format(time.DateOnly))
}

func (e *GateError) Unwrap() error { return ErrGate }

// InvariantError reports the first transaction whose stored balance-after disagrees
// with the recomputed running sum. It is never corrected automatically.
type InvariantError struct {
	FolioID       string
	TransactionID string
	Stored        string
	Expected      string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: folio %s transaction %s has balance-after %s, expected %s",
		ErrInvariant.Error(), e.FolioID, e.TransactionID, e.Stored, e.Expected)
}

func (e *InvariantError) Unwrap() error { return ErrInvariant }

// DependencyError wraps an infrastructure failure. Callers may retry it.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrDependency.Error(), e.Op, e.Err)
}

// Is lets errors.Is match both ErrDependency and the wrapped cause.
func (e *DependencyError) Is(target error) bool { return target == ErrDependency }

func (e *DependencyError) Unwrap() error { return e.Err }

// NewDependencyError wraps err unless it already carries a domain meaning
// (not found, stale version, or another typed app error), which is returned unchanged.
func NewDependencyError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrStaleVersion) || errors.Is(err, ErrDependency) ||
		errors.Is(err, ErrValidation) || errors.Is(err, ErrConflict) || errors.Is(err, ErrInvariant) {
		return err
	}
	return &DependencyError{Op: op, Err: err}
}

// AppError is the error type used by the persistence layer.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
