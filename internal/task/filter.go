package task

import (
	"fmt"
	"strings"
)

// Filter selects tasks by completion status.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists the selectable filters in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// ParseFilter converts user input into a Filter.
//
// Matching is case-insensitive and ignores surrounding whitespace. An empty
// string yields FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch v := Filter(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return FilterAll, nil
	case FilterAll, FilterActive, FilterCompleted:
		return v, nil
	default:
		return "", fmt.Errorf("unknown filter %q: expected all, active or completed", s)
	}
}

// Matches reports whether t passes the filter. Unknown filters match everything.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Next returns the filter that follows f in Filters, wrapping around.
func (f Filter) Next() Filter {
	for i, v := range Filters {
		if v == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Label is the human readable name of the filter.
func (f Filter) Label() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}
