// Package model defines the core data structures for tasklist.
package model

// Task is a single entry in the remote task list.
// ID is assigned by the backend and never changes once assigned.
type Task struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Collection is an ordered list of tasks.
//
// Order is the server order on load, with newly created tasks appended at the
// end. Collections are treated as immutable values: every helper below
// returns a new slice and leaves the receiver untouched, so a snapshot handed
// to a reader never changes underneath it.
type Collection []Task

// Clone returns a copy of c. A nil collection clones to an empty one.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// Find returns the task with the given id.
func (c Collection) Find(id string) (Task, bool) {
	if i := c.index(id); i >= 0 {
		return c[i], true
	}
	return Task{}, false
}

// Contains reports whether a task with the given id is present.
func (c Collection) Contains(id string) bool {
	return c.index(id) >= 0
}

// IDs returns the task ids in collection order.
func (c Collection) IDs() []string {
	ids := make([]string, len(c))
	for i, t := range c {
		ids[i] = t.ID
	}
	return ids
}

// Append returns a new collection with t at the end.
// If a task with the same id already exists it is replaced in place, so the
// collection never holds two tasks with one id.
func (c Collection) Append(t Task) Collection {
	if i := c.index(t.ID); i >= 0 {
		out := c.Clone()
		out[i] = t
		return out
	}
	out := make(Collection, len(c), len(c)+1)
	copy(out, c)
	return append(out, t)
}

// Rename returns a new collection with the name of task id replaced.
// Position is unchanged. Unknown ids leave the result equal to c.
func (c Collection) Rename(id, name string) Collection {
	out := c.Clone()
	if i := out.index(id); i >= 0 {
		out[i].Name = name
	}
	return out
}

// Remove returns a new collection without task id.
// Unknown ids leave the result equal to c.
func (c Collection) Remove(id string) Collection {
	out := make(Collection, 0, len(c))
	for _, t := range c {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// Dedupe returns a new collection keeping only the first task for each id.
// The second return value lists the ids that were dropped.
func (c Collection) Dedupe() (Collection, []string) {
	seen := make(map[string]bool, len(c))
	out := make(Collection, 0, len(c))
	var dropped []string
	for _, t := range c {
		if seen[t.ID] {
			dropped = append(dropped, t.ID)
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out, dropped
}

// Equal reports whether c and other hold the same tasks in the same order.
func (c Collection) Equal(other Collection) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

func (c Collection) index(id string) int {
	for i, t := range c {
		if t.ID == id {
			return i
		}
	}
	return -1
}
