package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the target record does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError is a user correctable input problem. Reason is safe to show.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func Invalid(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// AuthError is a missing or rejected credential. Forbidden distinguishes a
// credential that was presented but is not acceptable (403) from none (401).
type AuthError struct {
	Reason    string
	Forbidden bool
}

func (e *AuthError) Error() string {
	return e.Reason
}

// UploadError wraps a failure of the object store during a submission.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return "upload failed: " + e.Err.Error()
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// StoreError wraps a failure of the record store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("record store %s: %s", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsAuth(err error) bool {
	var a *AuthError
	return errors.As(err, &a)
}
