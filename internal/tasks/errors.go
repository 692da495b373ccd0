package tasks

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrTaskNotFound is returned when the referenced task does not exist.
var ErrTaskNotFound = errors.New("task not found")

// ErrMissingFields is returned when a creation request lacks required fields.
var ErrMissingFields = errors.New("missing required fields for task creation")

// InvalidStatusError rejects an unknown status value before any lookup.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid task status %q", e.Status)
}

// DependencyNotCompletedError blocks entry into IN_PROGRESS while any
// dependency is still unfinished. Blocking lists the offending task ids.
type DependencyNotCompletedError struct {
	Blocking []uint
}

func (e *DependencyNotCompletedError) Error() string {
	return fmt.Sprintf("cannot mark task as IN_PROGRESS: dependencies %v are not COMPLETED", e.Blocking)
}

// MissingDependencyError is returned when a creation request references
// dependency ids that do not resolve to existing tasks.
type MissingDependencyError struct {
	Missing []uint
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("dependencies %v do not exist", e.Missing)
}
