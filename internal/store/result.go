package store

import "github.com/jacksmith/tasklist/internal/model"

// Result is the outcome of one store operation.
type Result struct {
	Op Op

	// Task is the created task for OpAdd, or the target for update/delete
	// (ID always set, Name set to the requested name for update).
	Task model.Task

	// Tasks is the collection snapshot after the operation completed.
	// On failure it equals the snapshot from before the call, unless another
	// operation changed the collection while this one was in flight.
	Tasks model.Collection

	// Err is nil on success, otherwise an *OpError.
	Err error
}

// OK reports whether the operation succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}
