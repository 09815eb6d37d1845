package status

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// OverdueLabel is the legacy status text that marks a task as late. It is a
// badge, not a status.
const OverdueLabel = "ATRASADO"

// Task is the read-only view of a board task the resolver works on. The board
// data layer owns the record.
type Task struct {
	ID               string
	Title            string
	Status           string
	ColumnIdentifier string
	Overdue          bool
}

// IsOverdue reports whether the overdue badge should be shown.
func (t Task) IsOverdue() bool {
	return t.Overdue || fold(t.Status) == fold(OverdueLabel)
}

// TaskFromJSON reads a task from a decoded JSON object. Numbers are kept in
// their text form so {"id": 999, "status": 15} reads as ID "999", Status "15".
func TaskFromJSON(obj gjson.Result) Task {
	column := obj.Get("column_identifier")
	if !column.Exists() || column.Type == gjson.Null {
		column = obj.Get("column")
	}

	overdue := obj.Get("atrasado")
	if !overdue.Exists() {
		overdue = obj.Get("overdue")
	}

	return Task{
		ID:               textOf(obj.Get("id")),
		Title:            textOf(obj.Get("title")),
		Status:           textOf(obj.Get("status")),
		ColumnIdentifier: textOf(column),
		Overdue:          overdue.Bool(),
	}
}

// ParseTasks decodes a JSON array of task objects. A single object is
// accepted as a one-element board.
func ParseTasks(data []byte) ([]Task, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("task input is not valid JSON")
	}

	root := gjson.ParseBytes(data)
	switch {
	case root.IsArray():
		var tasks []Task
		var bad error
		root.ForEach(func(key, value gjson.Result) bool {
			if !value.IsObject() {
				bad = fmt.Errorf("element %d is not an object", key.Int())
				return false
			}
			tasks = append(tasks, TaskFromJSON(value))
			return true
		})
		if bad != nil {
			return nil, bad
		}
		return tasks, nil
	case root.IsObject():
		if tasks := root.Get("tasks"); tasks.IsArray() {
			return ParseTasks([]byte(tasks.Raw))
		}
		return []Task{TaskFromJSON(root)}, nil
	default:
		return nil, fmt.Errorf("task input must be an array or an object, got %s", root.Type)
	}
}

func textOf(r gjson.Result) string {
	switch r.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return r.Str
	default:
		return r.Raw
	}
}
