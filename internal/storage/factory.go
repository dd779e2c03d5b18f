package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/JamesPrial/todo-notes/internal/config"
	"github.com/JamesPrial/todo-notes/internal/pathutil"
)

// GetStorageBackend returns the storage backend selected by cfg.Backend.
//
// Backends:
//   - json: one file per key under cfg.JSONDir (default: cfg.DataDir)
//   - sqlite: cfg.SQLitePath (default: <cfg.DataDir>/notes.db)
//   - postgres: cfg.PostgresDSN
//   - mysql: cfg.MySQLDSN
//
// Returns error if the backend type is unknown, a custom path escapes
// cfg.DataDir, or the database cannot be initialized.
func GetStorageBackend(cfg *config.Config) (StorageBackend, error) {
	backendType := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backendType == "" {
		backendType = "json"
	}

	switch backendType {
	case "json":
		dir, err := getJSONDir(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to determine JSON directory: %w", err)
		}
		return NewFileBackend(afero.NewOsFs(), dir), nil

	case "sqlite":
		path, err := getSQLitePath(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to determine SQLite database path: %w", err)
		}
		return NewSQLiteBackend(path)

	case "postgres":
		return NewPostgresBackend(cfg.PostgresDSN)

	case "mysql":
		return NewMySQLBackend(cfg.MySQLDSN)

	default:
		return nil, fmt.Errorf("unknown storage backend: %q. Expected 'json', 'sqlite', 'postgres' or 'mysql'", backendType)
	}
}

// getJSONDir returns the directory of the json backend.
//
// A configured json_dir must resolve inside the data directory.
func getJSONDir(cfg *config.Config) (string, error) {
	custom := strings.TrimSpace(cfg.JSONDir)
	if custom == "" {
		return cfg.DataDir, nil
	}

	safe, err := pathutil.ResolveSafePath(cfg.DataDir, custom)
	if err != nil {
		return "", fmt.Errorf("invalid json_dir: %w", err)
	}
	return safe, nil
}

// getSQLitePath returns the SQLite database file path.
//
// A configured sqlite_path must resolve inside the data directory.
func getSQLitePath(cfg *config.Config) (string, error) {
	custom := strings.TrimSpace(cfg.SQLitePath)
	if custom == "" {
		return filepath.Join(cfg.DataDir, "notes.db"), nil
	}

	safe, err := pathutil.ResolveSafePath(cfg.DataDir, custom)
	if err != nil {
		return "", fmt.Errorf("invalid sqlite_path: %w", err)
	}
	return safe, nil
}
