package apperrors

import "fmt"

// ValidationError means the caller submitted missing or malformed fields.
// Nothing was written; the caller must correct the input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation builds a ValidationError with a formatted message.
func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError means a unique identifier already exists. Nothing was written.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError means a referenced record does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// DependencyError wraps a failure in a best-effort collaborator (email, invoice
// rendering). It occurs after the authoritative write and must never roll it back.
type DependencyError struct {
	Dependency string
	Err        error
}

func (e *DependencyError) Error() string {
	return e.Dependency + ": " + e.Err.Error()
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

func NewDependency(dependency string, err error) *DependencyError {
	return &DependencyError{Dependency: dependency, Err: err}
}
