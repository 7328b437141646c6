package domain

import (
	"errors"
	"fmt"
)

// ValidationError is a local input problem detected before any remote call.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// RejectedError is a business rejection: the call completed but the payload
// carried success=false.
type RejectedError struct {
	Op  string
	Msg string
}

func (e RejectedError) Error() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Op != "":
		return fmt.Sprintf("%s rejected", e.Op)
	default:
		return "request rejected"
	}
}

// TransportError covers unreachable hosts, non-2xx answers and payloads that
// do not decode.
type TransportError struct {
	Op         string
	StatusCode int
	Msg        string
	Err        error
}

func (e TransportError) Error() string {
	switch {
	case e.Msg != "" && e.StatusCode > 0:
		return fmt.Sprintf("%s (HTTP %d)", e.Msg, e.StatusCode)
	case e.Msg != "":
		return e.Msg
	case e.Err != nil && e.Op != "":
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case e.StatusCode > 0:
		return fmt.Sprintf("unexpected HTTP status %d", e.StatusCode)
	default:
		return "transport error"
	}
}

func (e TransportError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

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

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsRejected(err error) bool {
	var target RejectedError
	return errors.As(err, &target)
}

func IsTransport(err error) bool {
	var target TransportError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
