package storage

import (
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

var mysqlDialect = sqlDialect{
	schema: []string{`
CREATE TABLE IF NOT EXISTS kv_store (
    store_key VARCHAR(128) NOT NULL PRIMARY KEY,
    store_value LONGTEXT NOT NULL,
    updated_at VARCHAR(40) NOT NULL
) CHARACTER SET utf8mb4`},
	read: `SELECT store_value FROM kv_store WHERE store_key = ?`,
	upsert: `
INSERT INTO kv_store (store_key, store_value, updated_at)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
    store_value = VALUES(store_value),
    updated_at = VALUES(updated_at)`,
}

// MySQLBackend implements StorageBackend on a MySQL or MariaDB database.
type MySQLBackend struct {
	// DSN is a go-sql-driver/mysql data source name (e.g. "user:pass@tcp(host:3306)/notes").
	DSN string
}

// NewMySQLBackend validates dsn, creates the kv_store table if needed and
// returns the backend.
func NewMySQLBackend(dsn string) (*MySQLBackend, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid MySQL DSN: %w", err)
	}
	cfg.ParseTime = false

	backend := &MySQLBackend{
		DSN: cfg.FormatDSN(),
	}

	db, err := backend.connect()
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	if err := ensureSQLSchema(db, mysqlDialect); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return backend, nil
}

func (b *MySQLBackend) connect() (*sql.DB, error) {
	db, err := sql.Open("mysql", b.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Read returns the blob stored under key.
func (b *MySQLBackend) Read(key string) ([]byte, bool, error) {
	if err := ValidateKey(key); err != nil {
		return nil, false, err
	}

	db, err := b.connect()
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = db.Close() }()

	return readBlob(db, mysqlDialect, key)
}

// Write upserts data under key.
func (b *MySQLBackend) Write(key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	db, err := b.connect()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return writeBlob(db, mysqlDialect, key, data)
}
