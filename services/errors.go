package services

import "fmt"

// Service errors are typed so handlers can map them to distinct HTTP
// statuses with errors.As instead of matching on message text.

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func NewNotFoundError(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

func NewForbiddenError(format string, args ...interface{}) *ForbiddenError {
	return &ForbiddenError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError means the requested slot is already taken, including the
// case where a concurrent booking won the race at commit time.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func NewConflictError(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// StateError means the session's current status does not permit the
// requested lifecycle transition.
type StateError struct {
	Message string
}

func (e *StateError) Error() string { return e.Message }

func NewStateError(format string, args ...interface{}) *StateError {
	return &StateError{Message: fmt.Sprintf(format, args...)}
}
