package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/felixgeelhaar/triage/internal/task"
)

// readTasksInput loads a task batch from the given file path. An empty
// path or "-" reads from stdin.
func readTasksInput(path string) ([]task.Task, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}
	return parseTasksJSON(data)
}

// parseTasksJSON accepts either a bare task array or a {"tasks": [...]}
// document, matching the API request shape.
func parseTasksJSON(data []byte) ([]task.Task, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("no task JSON provided")
	}

	if trimmed[0] == '[' {
		var tasks []task.Task
		if err := json.Unmarshal(trimmed, &tasks); err != nil {
			return nil, fmt.Errorf("invalid task JSON: %w", err)
		}
		return tasks, nil
	}

	var doc struct {
		Tasks []task.Task `json:"tasks"`
	}
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("invalid task JSON: %w", err)
	}
	return doc.Tasks, nil
}

// printJSON writes v as indented JSON.
func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
