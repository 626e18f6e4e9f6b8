package domain

import (
	"errors"
	"fmt"
)

// NotFoundError reports a missing record, e.g. a trip id or vehicle number.
type NotFoundError struct {
	Resource string
	Key      any
	Err      error
}

func (e NotFoundError) Error() string {
	switch {
	case e.Resource == "":
		return "not found"
	case e.Key != nil:
		return fmt.Sprintf("%s %v not found", e.Resource, e.Key)
	default:
		return fmt.Sprintf("%s not found", e.Resource)
	}
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ValidationError rejects input at the point of mutation. It is never
// swallowed: callers surface it to the user.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// InconsistentDataError flags a stored derived field that disagrees with its
// recomputed value. Aggregations report it and continue with the recomputed value.
type InconsistentDataError struct {
	Entity   string
	ID       int64
	Field    string
	Stored   string
	Computed string
}

func (e InconsistentDataError) Error() string {
	return fmt.Sprintf("%s %d: stored %s=%s differs from computed %s", e.Entity, e.ID, e.Field, e.Stored, e.Computed)
}

// MissingReferenceError flags a record pointing at a trip or vendor that is not
// in the snapshot. The record is excluded from aggregation.
type MissingReferenceError struct {
	Entity string
	ID     int64
	Ref    string
	RefID  int64
}

func (e MissingReferenceError) Error() string {
	return fmt.Sprintf("%s %d references unknown %s %d", e.Entity, e.ID, e.Ref, e.RefID)
}

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInconsistentData(err error) bool {
	var target InconsistentDataError
	return errors.As(err, &target)
}

func IsMissingReference(err error) bool {
	var target MissingReferenceError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

// UnauthorizedError rejects missing or wrong credentials.
type UnauthorizedError struct {
	Msg string
}

func (e UnauthorizedError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "unauthorized"
}

func IsUnauthorized(err error) bool {
	var target UnauthorizedError
	return errors.As(err, &target)
}
