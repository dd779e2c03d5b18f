package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/text/language"

	"github.com/JamesPrial/todo-notes/internal/store"
	"github.com/JamesPrial/todo-notes/internal/task"
	"github.com/JamesPrial/todo-notes/internal/view"
)

// Handlers serves the note tools from a single store. The store serializes
// concurrent calls.
type Handlers struct {
	store  *store.Store
	locale language.Tag
}

// NewHandlers returns tool handlers backed by st. Empty-list messages are
// rendered in locale.
func NewHandlers(st *store.Store, locale language.Tag) *Handlers {
	return &Handlers{store: st, locale: locale}
}

// stringArg returns the named string argument, or "" when it is missing or
// not a string.
func stringArg(request mcp.CallToolRequest, name string) string {
	args := request.GetArguments()
	if args == nil {
		return ""
	}
	s, _ := args[name].(string)
	return s
}

// HandleAddNote adds a task.
// Parameters:
//   - text (string, required): task text
//
// Blank text is reported as a no-op, not an error.
func (h *Handlers) HandleAddNote(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t, ok, err := h.store.Add(stringArg(request, "text"))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to save task: %v", err)), nil
	}
	if !ok {
		return mcp.NewToolResultText("Nothing added: text is blank"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Added %s: %s", t.ID, t.Text)), nil
}

// HandleListNotes formats the projected list as a table.
// Parameters:
//   - filter (string, optional): all, active or completed
//   - search (string, optional): case-insensitive substring
func (h *Handlers) HandleListNotes(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := task.FilterAll
	if raw := stringArg(request, "filter"); raw != "" {
		f, err := task.ParseFilter(raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid filter: %s", raw)), nil
		}
		filter = f
	}

	proj := view.Project(h.store.Tasks(), view.State{
		Filter: filter,
		Search: stringArg(request, "search"),
	})
	if proj.Empty != view.NotEmpty {
		return mcp.NewToolResultText(proj.Empty.Message(h.locale)), nil
	}
	return mcp.NewToolResultText(formatTasks(proj.Tasks)), nil
}

// HandleToggleNote flips a task's completed flag. Unknown ids are a no-op.
func (h *Handlers) HandleToggleNote(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := stringArg(request, "id")
	if id == "" {
		return mcp.NewToolResultError("Missing required parameter: id"), nil
	}

	t, ok, err := h.store.Toggle(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to save task: %v", err)), nil
	}
	if !ok {
		return mcp.NewToolResultText(fmt.Sprintf("No task with id %s", id)), nil
	}

	state := "active"
	if t.Completed {
		state = "completed"
	}
	return mcp.NewToolResultText(fmt.Sprintf("Task %s is now %s", t.ID, state)), nil
}

// HandleEditNote replaces a task's text and reports the edit outcome.
func (h *Handlers) HandleEditNote(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := stringArg(request, "id")
	if id == "" {
		return mcp.NewToolResultError("Missing required parameter: id"), nil
	}

	outcome, err := h.store.Edit(id, stringArg(request, "text"))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to save task: %v", err)), nil
	}

	switch outcome {
	case store.EditNotFound:
		return mcp.NewToolResultText(fmt.Sprintf("No task with id %s", id)), nil
	case store.EditDiscarded:
		return mcp.NewToolResultText("Edit discarded: text is blank"), nil
	case store.EditUnchanged:
		return mcp.NewToolResultText(fmt.Sprintf("Task %s unchanged", id)), nil
	}
	t, _ := h.store.Get(id)
	return mcp.NewToolResultText(fmt.Sprintf("Updated %s: %s", t.ID, t.Text)), nil
}

// HandleDeleteNote removes a task. Unknown ids are a no-op.
func (h *Handlers) HandleDeleteNote(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := stringArg(request, "id")
	if id == "" {
		return mcp.NewToolResultError("Missing required parameter: id"), nil
	}

	removed, err := h.store.Remove(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to save tasks: %v", err)), nil
	}
	if !removed {
		return mcp.NewToolResultText(fmt.Sprintf("No task with id %s", id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted %s", id)), nil
}

// formatTasks renders tasks as a pipe-separated table followed by a count.
func formatTasks(tasks []task.Task) string {
	var b strings.Builder
	b.WriteString("id | done | text | created_at\n")
	b.WriteString("---|------|------|-----------\n")
	for _, t := range tasks {
		done := " "
		if t.Completed {
			done = "x"
		}
		fmt.Fprintf(&b, "%s | %s | %s | %s\n", t.ID, done, t.Text, t.CreatedAt)
	}
	fmt.Fprintf(&b, "\n(%d task(s))", len(tasks))
	return b.String()
}
