package store

import (
	"errors"
	"fmt"
)

// Op names one of the four store operations.
type Op string

const (
	OpLoad   Op = "load"
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// One failure kind per operation. Transport failures and unexpected statuses
// are not distinguished at this level; unwrap to the api errors for detail.
var (
	ErrLoadFailed   = errors.New("could not load tasks")
	ErrAddFailed    = errors.New("could not add task")
	ErrUpdateFailed = errors.New("could not update task")
	ErrDeleteFailed = errors.New("could not delete task")
)

// OpError records a failed store operation.
type OpError struct {
	Op  Op
	ID  string // task id for update and delete
	Err error  // underlying api error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%v: %v", e.kind(), e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Is matches the failure sentinel for e.Op.
func (e *OpError) Is(target error) bool {
	return target == e.kind()
}

func (e *OpError) kind() error {
	switch e.Op {
	case OpLoad:
		return ErrLoadFailed
	case OpAdd:
		return ErrAddFailed
	case OpUpdate:
		return ErrUpdateFailed
	case OpDelete:
		return ErrDeleteFailed
	default:
		return fmt.Errorf("%s failed", e.Op)
	}
}
