package engine

import "fmt"

// NotFoundError indicates the referenced user or task does not exist (or the
// task belongs to another user). The rejected operation leaves no partial
// mutation behind.
type NotFoundError struct {
	Kind string // "user" or "task"
	Ref  string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.Ref)
}

// StateError indicates a task is in the wrong state for the requested
// transition, e.g. completing an already-completed task.
type StateError struct {
	TaskID int64
	Status TaskStatus
	Op     string
}

func (e StateError) Error() string {
	return fmt.Sprintf("task %d cannot be %s (status=%s)", e.TaskID, e.Op, e.Status)
}

// InsufficientPointsError is returned when a point allocation exceeds the
// user's unspent pool. Rejected atomically.
type InsufficientPointsError struct {
	Requested int
	Available int
}

func (e InsufficientPointsError) Error() string {
	return fmt.Sprintf("cannot allocate %d points (%d available)", e.Requested, e.Available)
}

// PersistenceError wraps a storage-layer failure. Write failures are surfaced
// to the caller rather than retried: a blind retry after a partial write
// could double-apply XP.
type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e PersistenceError) Unwrap() error {
	return e.Err
}
