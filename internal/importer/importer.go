// Package importer reads task lists exported from other copies of the app,
// such as a browser's localStorage "todo" entry, into task records.
//
// Decoding is lenient at the record level: items without a text are
// skipped, non-string values are stringified and missing fields are left
// for the store to fill in. A document that is not a JSON array of objects
// is an error, since importing is always an explicit user action.
package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/JamesPrial/todo-notes/internal/task"
)

// ErrNotArray is returned when the input is valid JSON but not an array.
var ErrNotArray = errors.New("import data is not a JSON array")

// Decode reads a JSON array of task-like objects from r.
//
// Returns the usable records in input order. Fields:
//   - text: required; non-string values are converted with fmt.Sprintf
//   - id: optional; numbers are accepted (legacy timestamp ids)
//   - completed: optional; a bool or the strings "true"/"false"
//   - createdAt: optional; kept verbatim
func Decode(r io.Reader) ([]task.Task, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode import data: %w", err)
	}

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "null" {
		return make([]task.Task, 0), nil
	}
	if !strings.HasPrefix(trimmed, "[") {
		return nil, ErrNotArray
	}

	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode import data: %w", err)
	}

	tasks := make([]task.Task, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok || !hasText(obj) {
			continue
		}
		tasks = append(tasks, toTask(obj))
	}
	return tasks, nil
}

// hasText reports whether item has a non-null "text" key.
func hasText(item map[string]any) bool {
	v, ok := item["text"]
	return ok && v != nil
}

func toTask(item map[string]any) task.Task {
	t := task.Task{
		Text: stringify(item["text"]),
	}
	if v, ok := item["id"]; ok && v != nil {
		t.ID = stringify(v)
	}
	if v, ok := item["createdAt"]; ok && v != nil {
		t.CreatedAt = stringify(v)
	}
	switch v := item["completed"].(type) {
	case bool:
		t.Completed = v
	case string:
		t.Completed, _ = strconv.ParseBool(strings.TrimSpace(v))
	}
	return t
}

// stringify renders JSON scalars without float formatting artifacts, so a
// numeric id like 1731580245123 stays "1731580245123".
func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}
