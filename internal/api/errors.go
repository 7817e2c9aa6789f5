package api

import (
	"errors"
	"fmt"
)

// ErrRequestFailed matches every error returned by Client methods.
// Transport failures, unexpected statuses and undecodable bodies all collapse
// to it; use errors.As with the concrete types to tell them apart.
var ErrRequestFailed = errors.New("task api request failed")

// StatusError indicates the backend answered with a status other than the
// one the operation treats as success.
type StatusError struct {
	Op     string // "list", "create", "update" or "delete"
	Code   int    // status code received
	Want   int    // status code expected
	Status string // status line, e.g. "404 Not Found"
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s tasks: unexpected status %s (want %d)", e.Op, e.Status, e.Want)
}

func (e *StatusError) Is(target error) bool { return target == ErrRequestFailed }

// TransportError wraps a failure to reach the backend (connection refused,
// timeout, cancelled context).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s tasks: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrRequestFailed }

// DecodeError indicates a success status whose body could not be parsed.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s tasks: invalid response body: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrRequestFailed }
