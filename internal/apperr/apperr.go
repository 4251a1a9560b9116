package apperr

import (
	"errors"
	"fmt"
)

// ForbiddenError: caller's role may not perform the operation.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string { return e.Reason }

// NotFoundError: the named resource does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// ConflictError: a uniqueness collision the operation chose not to auto-resolve.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// PreconditionError: the target object is in a state the operation cannot act on.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string { return e.Message }

func Forbidden(reason string) error {
	return &ForbiddenError{Reason: reason}
}

func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

func Conflict(format string, args ...interface{}) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

func Precondition(format string, args ...interface{}) error {
	return &PreconditionError{Message: fmt.Sprintf(format, args...)}
}

func IsForbidden(err error) bool {
	var e *ForbiddenError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

func IsPrecondition(err error) bool {
	var e *PreconditionError
	return errors.As(err, &e)
}
