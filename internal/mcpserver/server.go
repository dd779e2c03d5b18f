package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/text/language"

	"github.com/JamesPrial/todo-notes/internal/store"
)

// Version is reported to MCP clients during initialization.
const Version = "1.0.0"

// NewServer creates an MCP server with all note tools registered against st.
func NewServer(st *store.Store, locale language.Tag) *server.MCPServer {
	h := NewHandlers(st, locale)

	s := server.NewMCPServer(
		"todo-notes",
		Version,
		server.WithToolCapabilities(true),
	)

	s.AddTool(addNoteTool(), h.HandleAddNote)
	s.AddTool(listNotesTool(), h.HandleListNotes)
	s.AddTool(toggleNoteTool(), h.HandleToggleNote)
	s.AddTool(editNoteTool(), h.HandleEditNote)
	s.AddTool(deleteNoteTool(), h.HandleDeleteNote)

	return s
}
