package task

import (
	"fmt"
	"strings"
)

// Warning flags a suspicious but accepted input value.
type Warning struct {
	TaskID  int64  `json:"task_id"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateBatch checks every task in the batch and fails on the first
// violation. Ids are checked across the whole batch first so dependency
// references can be resolved; the remaining fields are checked per task
// in batch order. Advisory warnings are returned for values that are
// accepted but likely mistakes.
func ValidateBatch(tasks []Task) ([]Warning, error) {
	ids := make(map[int64]struct{}, len(tasks))
	for i, t := range tasks {
		if t.ID <= 0 {
			return nil, newValidationError(i, t.ID, "task_id", ErrInvalidTaskID, t.ID)
		}
		if _, seen := ids[t.ID]; seen {
			return nil, newValidationError(i, t.ID, "task_id", ErrDuplicateTaskID, t.ID)
		}
		ids[t.ID] = struct{}{}
	}

	var warnings []Warning
	for i, t := range tasks {
		if strings.TrimSpace(t.Title) == "" {
			return nil, newValidationError(i, t.ID, "title", ErrEmptyTitle, nil)
		}
		if t.DueDate.IsZero() {
			return nil, newValidationError(i, t.ID, "due_date", ErrMissingDueDate, nil)
		}
		if t.EstimatedHours < MinEstimatedHours {
			return nil, newValidationError(i, t.ID, "estimated_hours", ErrHoursTooSmall, t.EstimatedHours)
		}
		if t.Importance < MinImportance || t.Importance > MaxImportance {
			return nil, newValidationError(i, t.ID, "importance", ErrImportanceOutOfRange, t.Importance)
		}

		seen := make(map[int64]struct{}, len(t.Dependencies))
		for _, dep := range t.Dependencies {
			if dep == t.ID {
				return nil, newValidationError(i, t.ID, "dependencies", ErrSelfDependency, dep)
			}
			if _, dup := seen[dep]; dup {
				return nil, newValidationError(i, t.ID, "dependencies", ErrDuplicateDependency, dep)
			}
			seen[dep] = struct{}{}
			if _, ok := ids[dep]; !ok {
				return nil, newValidationError(i, t.ID, "dependencies", ErrUnknownDependency, dep)
			}
		}

		if t.EstimatedHours > MaxAdvisoryHours {
			warnings = append(warnings, Warning{
				TaskID:  t.ID,
				Field:   "estimated_hours",
				Message: fmt.Sprintf("estimated hours %g exceeds %g, verify the estimate", t.EstimatedHours, MaxAdvisoryHours),
			})
		}
	}

	return warnings, nil
}
