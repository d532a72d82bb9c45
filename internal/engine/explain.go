package engine

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/triage/internal/task"
)

// buildExplanation renders the human-readable summary for a scored task:
// a due-date phrase, an importance phrase, and an effort phrase joined
// with " | ".
func buildExplanation(t task.Task, days int) string {
	phrases := []string{
		duePhrase(days),
		importancePhrase(t.Importance),
		effortPhrase(t.EstimatedHours),
	}
	return strings.Join(phrases, " | ")
}

func duePhrase(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("Overdue by %s", dayCount(-days))
	case days == 0:
		return "Due today"
	case days <= 7:
		return fmt.Sprintf("Due in %s", dayCount(days))
	default:
		return "Due later"
	}
}

func importancePhrase(importance int) string {
	switch {
	case importance >= 8:
		return "High importance"
	case importance >= 4:
		return "Medium importance"
	default:
		return "Low importance"
	}
}

func effortPhrase(hours float64) string {
	switch {
	case hours <= 1:
		return "Quick win (<1h)"
	case hours <= 4:
		return fmt.Sprintf("Short task (%gh)", hours)
	case hours <= 8:
		return fmt.Sprintf("Half-day task (%gh)", hours)
	case hours <= 16:
		return fmt.Sprintf("Full-day task (%gh)", hours)
	default:
		return fmt.Sprintf("Multi-day task (%gh)", hours)
	}
}

func dayCount(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// actionItems derives concrete next steps for a suggested task from its
// rank, effort, due date, and dependency score. Every task yields the
// rank and effort items; the due-date and unblocking items apply only
// when their conditions hold, so the list holds two to four entries.
func actionItems(r PriorityResult, rank int, days int) []string {
	items := make([]string, 0, 4)

	if rank == 1 {
		items = append(items, "Start this task immediately")
	} else {
		items = append(items, fmt.Sprintf("Schedule this as task #%d today", rank))
	}

	switch {
	case r.EstimatedHours <= 1:
		items = append(items, "Quick win, can be completed in one sitting")
	case r.EstimatedHours <= 4:
		items = append(items, "Block focused time on your calendar")
	default:
		items = append(items, "Break this down into smaller subtasks")
	}

	switch {
	case days < 0:
		items = append(items, "Communicate the delay or adjust the scope")
	case days == 0:
		items = append(items, "Must be completed today")
	}

	if r.ComponentScores.Dependency >= 70 {
		items = append(items, "Completing this will unblock other tasks")
	}

	return items
}
