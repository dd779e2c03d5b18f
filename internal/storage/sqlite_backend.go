package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // register sqlite driver
)

// sqliteDialect stores each key as one row of kv_store.
var sqliteDialect = sqlDialect{
	schema: []string{`
CREATE TABLE IF NOT EXISTS kv_store (
    store_key TEXT PRIMARY KEY,
    store_value TEXT NOT NULL,
    updated_at TEXT NOT NULL
)`},
	read: `SELECT store_value FROM kv_store WHERE store_key = ?`,
	upsert: `
INSERT INTO kv_store (store_key, store_value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(store_key) DO UPDATE SET
    store_value = excluded.store_value,
    updated_at = excluded.updated_at`,
}

// sqlitePragmas is applied to every pooled connection. Concurrent writers
// wait for the lock instead of failing with SQLITE_BUSY.
const sqlitePragmas = "?_pragma=busy_timeout(5000)"

// SQLiteBackend implements StorageBackend using a SQLite database file.
//
// A connection is opened per call and closed afterwards; the database uses
// WAL mode so a CLI invocation can read while another process writes.
type SQLiteBackend struct {
	// DBPath is the absolute path to the SQLite database file.
	DBPath string
}

// NewSQLiteBackend creates a SQLiteBackend and initializes its schema.
//
// Parent directories are created automatically. Returns an error if the
// schema cannot be created.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	backend := &SQLiteBackend{
		DBPath: dbPath,
	}

	db, err := backend.connect()
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	if err := ensureSQLSchema(db, sqliteDialect); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return backend, nil
}

// connect opens the database, creating its directory and enabling WAL mode.
func (b *SQLiteBackend) connect() (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(b.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", b.DBPath+sqlitePragmas)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	return db, nil
}

// Read returns the blob stored under key.
func (b *SQLiteBackend) Read(key string) ([]byte, bool, error) {
	if err := ValidateKey(key); err != nil {
		return nil, false, err
	}

	db, err := b.connect()
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = db.Close() }()

	return readBlob(db, sqliteDialect, key)
}

// Write upserts data under key in a single statement.
func (b *SQLiteBackend) Write(key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	db, err := b.connect()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return writeBlob(db, sqliteDialect, key, data)
}
