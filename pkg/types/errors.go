package types

import (
	"errors"
	"fmt"
)

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Record operation errors. Repositories return these so callers can
// distinguish user-recoverable failures from engine failures.
var (
	ErrNotFound            = errors.New("record not found")
	ErrBlankField          = errors.New("required field is blank")
	ErrInvalidNumber       = errors.New("value must be a valid number")
	ErrDuplicateName       = errors.New("name already exists")
	ErrMissingReference    = errors.New("referenced record does not exist")
	ErrDuplicateAssignment = errors.New("exercise already assigned to routine")
)

// Session errors.
var (
	ErrAborted                = errors.New("operation aborted")
	ErrAccessDenied           = errors.New("admin login required")
	ErrLoginAttemptsExhausted = errors.New("too many failed login attempts")
	ErrUnknownUser            = errors.New("username is not registered")
	ErrUserExists             = errors.New("username is already registered")
)

// StorageError wraps a failure reported by the storage engine itself.
// The underlying message is preserved verbatim and surfaced to the user.
type StorageError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying engine error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err as a StorageError for the named operation.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// IsStorageError reports whether err is (or wraps) a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
