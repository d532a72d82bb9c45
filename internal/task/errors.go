package task

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel validation errors. Each rejected batch wraps exactly one of
// these in a ValidationError describing where it occurred.
var (
	// ErrInvalidTaskID indicates a task id that is not a positive integer.
	ErrInvalidTaskID = errors.New("task id must be a positive integer")

	// ErrDuplicateTaskID indicates a task id that appears more than once in a batch.
	ErrDuplicateTaskID = errors.New("duplicate task id")

	// ErrEmptyTitle indicates a missing or whitespace-only title.
	ErrEmptyTitle = errors.New("title must not be empty")

	// ErrMissingDueDate indicates a task without a due date.
	ErrMissingDueDate = errors.New("due date is required")

	// ErrHoursTooSmall indicates an estimate below the accepted minimum.
	ErrHoursTooSmall = errors.New("estimated hours must be at least 0.1")

	// ErrImportanceOutOfRange indicates an importance outside 1 to 10.
	ErrImportanceOutOfRange = errors.New("importance must be between 1 and 10")

	// ErrSelfDependency indicates a task listing itself as a dependency.
	ErrSelfDependency = errors.New("task cannot depend on itself")

	// ErrDuplicateDependency indicates a dependency id listed more than once.
	ErrDuplicateDependency = errors.New("duplicate dependency id")

	// ErrUnknownDependency indicates a dependency on an id outside the batch.
	ErrUnknownDependency = errors.New("dependency id not present in batch")
)

// ValidationError reports the first field violation found in a batch.
type ValidationError struct {
	Index  int    // position of the offending task in the batch
	TaskID int64  // id of the offending task
	Field  string // field that failed validation
	Value  any    // offending value, when it aids diagnosis
	Err    error  // sentinel category
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("task %d (id %d): field %s: %v (value: %v)", e.Index, e.TaskID, e.Field, e.Err, e.Value)
	}
	return fmt.Sprintf("task %d (id %d): field %s: %v", e.Index, e.TaskID, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(index int, taskID int64, field string, err error, value any) *ValidationError {
	return &ValidationError{
		Index:  index,
		TaskID: taskID,
		Field:  field,
		Value:  value,
		Err:    err,
	}
}

// AsValidationError unwraps err as a ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

// CycleError reports the circular dependency chains found in a batch.
type CycleError struct {
	Cycles [][]int64
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependencies detected: %s", formatCycles(e.Cycles))
}

// AsCycleError unwraps err as a CycleError.
func AsCycleError(err error) (*CycleError, bool) {
	var cErr *CycleError
	if errors.As(err, &cErr) {
		return cErr, true
	}
	return nil, false
}

func formatCycles(cycles [][]int64) string {
	parts := make([]string, len(cycles))
	for i, cycle := range cycles {
		ids := make([]string, len(cycle))
		for j, id := range cycle {
			ids[j] = strconv.FormatInt(id, 10)
		}
		parts[i] = strings.Join(ids, " -> ")
	}
	return strings.Join(parts, ", ")
}
