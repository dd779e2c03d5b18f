// Package app assembles the components every binary needs from a loaded
// configuration: the logger, the storage backend, the persistence adapter
// and the task store.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/text/language"

	"github.com/JamesPrial/todo-notes/internal/config"
	"github.com/JamesPrial/todo-notes/internal/storage"
	"github.com/JamesPrial/todo-notes/internal/store"
	"github.com/JamesPrial/todo-notes/internal/view"
)

// App holds the wired components.
type App struct {
	Config *config.Config
	Logger *slog.Logger
	Store  *store.Store
	Locale language.Tag
}

// NewLogger returns a text logger writing to w at the named level.
// Unknown level names fall back to warn.
func NewLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Open builds the storage backend selected by cfg and loads the store.
//
// Returns an error if the backend cannot be initialized or the storage key
// is invalid. A missing or corrupt task blob is not an error.
func Open(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = NewLogger(io.Discard, cfg.LogLevel)
	}

	backend, err := storage.GetStorageBackend(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	adapter, err := storage.NewAdapter(backend, cfg.StorageKey, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	logger.Debug("storage ready", "backend", cfg.Backend, "key", cfg.StorageKey)

	return &App{
		Config: cfg,
		Logger: logger,
		Store:  store.New(adapter, store.WithLogger(logger.With("component", "store"))),
		Locale: view.ParseLocale(cfg.Locale),
	}, nil
}
