package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is wrapped by stores when a row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied is returned when the caller does not own the row.
	ErrPermissionDenied = errors.New("permission denied")
)

// ValidationError reports invalid input. It is always returned before
// anything is written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// PersistenceError wraps a failed store call. It is surfaced as-is;
// writes that completed before the failure are not rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError wraps err for op. A nil err yields nil.
func NewPersistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// PropagationError reports that the triggering payment write succeeded
// but updating dependent records did not complete. The invoice is left
// partially settled until the next SettleInvoice or reconciliation run.
type PropagationError struct {
	InvoiceID string

	// Failed lists the IDs of splits (downward) or the invoice (upward)
	// that could not be updated.
	Failed []string

	Err error
}

func (e *PropagationError) Error() string {
	return fmt.Sprintf("settlement propagation incomplete for invoice %s (failed: %s): %v",
		e.InvoiceID, strings.Join(e.Failed, ", "), e.Err)
}

func (e *PropagationError) Unwrap() error {
	return e.Err
}
