// Package view computes the displayed subset of the task list.
//
// A projection is derived on demand from the store contents and the
// transient State of a front end; it is never persisted.
package view

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/JamesPrial/todo-notes/internal/task"
)

// State is the filter and search text a front end currently shows.
type State struct {
	Filter task.Filter
	Search string
}

// EmptyState tells a front end which placeholder to show instead of rows.
type EmptyState int

const (
	// NotEmpty means the projection has rows.
	NotEmpty EmptyState = iota
	// NoTasks is shown when nothing matches and no search is active.
	NoTasks
	// NoMatches is shown when nothing matches an active search.
	NoMatches
)

func (e EmptyState) String() string {
	switch e {
	case NoTasks:
		return "no_tasks"
	case NoMatches:
		return "no_matches"
	default:
		return "not_empty"
	}
}

// Projection is the result of applying a State to the task list.
type Projection struct {
	Tasks []task.Task
	Empty EmptyState
}

// Project filters tasks by status, then by case-insensitive substring of the
// search text. Store order is preserved. An empty search matches everything.
func Project(tasks []task.Task, st State) Projection {
	fold := cases.Fold()
	needle := fold.String(st.Search)

	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if !st.Filter.Matches(t) {
			continue
		}
		if needle != "" && !strings.Contains(fold.String(t.Text), needle) {
			continue
		}
		out = append(out, t)
	}

	p := Projection{Tasks: out}
	switch {
	case len(out) > 0:
		p.Empty = NotEmpty
	case st.Search != "":
		p.Empty = NoMatches
	default:
		p.Empty = NoTasks
	}
	return p
}
