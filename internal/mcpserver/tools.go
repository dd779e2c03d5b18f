// Package mcpserver exposes the task list to MCP clients over stdio.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// addNoteTool returns a tool definition for adding a task.
func addNoteTool() mcp.Tool {
	return mcp.NewTool("add_note",
		mcp.WithDescription("Add a task to the top of the list. Blank text is ignored."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Task text; surrounding whitespace is trimmed")),
	)
}

// listNotesTool returns a tool definition for listing tasks.
func listNotesTool() mcp.Tool {
	return mcp.NewTool("list_notes",
		mcp.WithDescription("List tasks, newest first. Optionally narrow by completion state and a case-insensitive search string."),
		mcp.WithString("filter",
			mcp.Description("One of all, active, completed (defaults to all)"),
			mcp.Enum("all", "active", "completed")),
		mcp.WithString("search",
			mcp.Description("Substring to match against task text")),
	)
}

func toggleNoteTool() mcp.Tool {
	return mcp.NewTool("toggle_note",
		mcp.WithDescription("Flip the completed flag of a task."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task id as shown by list_notes")),
	)
}

func editNoteTool() mcp.Tool {
	return mcp.NewTool("edit_note",
		mcp.WithDescription("Replace the text of a task. Blank text leaves the task unchanged."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task id as shown by list_notes")),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("New task text")),
	)
}

func deleteNoteTool() mcp.Tool {
	return mcp.NewTool("delete_note",
		mcp.WithDescription("Remove a task from the list."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task id as shown by list_notes")),
	)
}
