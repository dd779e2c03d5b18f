package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// sqlDialect holds the statements that differ between database/sql drivers.
type sqlDialect struct {
	schema []string
	read   string
	upsert string
}

// readBlob loads the value for key from an open database/sql handle.
func readBlob(db *sql.DB, d sqlDialect, key string) ([]byte, bool, error) {
	var value string
	err := db.QueryRow(d.read, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return []byte(value), true, nil
}

// writeBlob upserts data under key using an open database/sql handle.
func writeBlob(db *sql.DB, d sqlDialect, key string, data []byte) error {
	updatedAt := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := db.Exec(d.upsert, key, string(data), updatedAt); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// ensureSQLSchema runs every schema statement of d in order.
func ensureSQLSchema(db *sql.DB, d sqlDialect) error {
	for _, stmt := range d.schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema DDL: %w", err)
		}
	}
	return nil
}
