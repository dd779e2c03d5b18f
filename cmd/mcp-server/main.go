// Package main implements the MCP server for the notes task list.
//
// The server exposes add, list, toggle, edit and delete tools over the same
// store the notes command uses. Communicates via stdio JSON-RPC
// (Model Context Protocol).
package main

import (
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/viper"

	"github.com/JamesPrial/todo-notes/internal/app"
	"github.com/JamesPrial/todo-notes/internal/config"
	"github.com/JamesPrial/todo-notes/internal/mcpserver"
)

func run() int {
	errLogger := log.New(os.Stderr, "[mcp-server] ", log.LstdFlags)

	cfg, err := config.Load(viper.New(), os.Getenv("NOTES_CONFIG"))
	if err != nil {
		errLogger.Printf("Failed to load configuration: %v", err)
		return 1
	}

	a, err := app.Open(cfg, app.NewLogger(os.Stderr, cfg.LogLevel))
	if err != nil {
		errLogger.Printf("Failed to open task store: %v", err)
		return 1
	}

	srv := mcpserver.NewServer(a.Store, a.Locale)
	if err := server.ServeStdio(srv, server.WithErrorLogger(errLogger)); err != nil {
		errLogger.Printf("Server error: %v", err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(run())
}
