// Package apperror holds the failure taxonomy shared by the board, the
// departure workflow and the booking lookups. Callers match with errors.As
// and errors.Is; nothing here panics or is thrown past a package boundary.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("no encontrado")
	ErrAlreadyUsed = errors.New("ya fue usada")
)

// ValidationError - Malformed input. Never reaches the store.
type ValidationError struct {
	Field   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidation(field, rule, message string) *ValidationError {
	return &ValidationError{Field: field, Rule: rule, Message: message}
}

// StoreWriteError - Network/store failure during a write. Retryable by the
// operator; the core never retries on its own.
type StoreWriteError struct {
	Op  string
	Err error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }

func (e *StoreWriteError) Retryable() bool { return true }

// PartialWorkflowError - The departure was persisted but the queue could not
// be reorganized afterwards. The queue may need manual correction.
type PartialWorkflowError struct {
	DepartureID string
	Err         error
}

func (e *PartialWorkflowError) Error() string {
	return fmt.Sprintf("zarpe %s registrado, reorganización fallida: %v", e.DepartureID, e.Err)
}

func (e *PartialWorkflowError) Unwrap() error { return e.Err }

type ViolationKind string

const (
	ViolationMultipleBoarding  ViolationKind = "multiple_boarding"
	ViolationDuplicatePosition ViolationKind = "duplicate_position"
)

// InvariantViolation - Anomaly observed in a store snapshot. Tolerated (first
// vessel by position wins) but reported for diagnostics.
type InvariantViolation struct {
	Kind   ViolationKind
	Detail string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant %s: %s", e.Kind, e.Detail)
}

// WriteFailed wraps err as a StoreWriteError unless it is already a
// not-found, which callers report distinctly.
func WriteFailed(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}
	var swe *StoreWriteError
	if errors.As(err, &swe) {
		return err
	}
	return &StoreWriteError{Op: op, Err: err}
}
