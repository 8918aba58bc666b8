// Package domain defines core types, repository ports, and errors for the
// ship architect backend.
package domain

import "fmt"

// NotFoundError indicates a resource was not found, or exists but must be
// hidden from the caller.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// AccessDeniedError indicates insufficient permissions for an action on a
// resource the caller is allowed to know exists.
type AccessDeniedError struct {
	Message string
}

func (e *AccessDeniedError) Error() string { return e.Message }

// UnauthorizedError indicates that no principal could be established for a
// request that requires one.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string { return e.Message }

// ValidationError indicates invalid input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError indicates a conflict (e.g., duplicate registration).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// UnavailableError indicates a collaborator (store, key source) failed or
// timed out. It is a request-level failure, never a denial.
type UnavailableError struct {
	Message string
}

func (e *UnavailableError) Error() string { return e.Message }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrAccessDenied creates an AccessDeniedError with a formatted message.
func ErrAccessDenied(format string, args ...interface{}) *AccessDeniedError {
	return &AccessDeniedError{Message: fmt.Sprintf(format, args...)}
}

// ErrUnauthorized creates an UnauthorizedError with a formatted message.
func ErrUnauthorized(format string, args ...interface{}) *UnauthorizedError {
	return &UnauthorizedError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrConflict creates a ConflictError with a formatted message.
func ErrConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// ErrUnavailable creates an UnavailableError with a formatted message.
func ErrUnavailable(format string, args ...interface{}) *UnavailableError {
	return &UnavailableError{Message: fmt.Sprintf(format, args...)}
}
