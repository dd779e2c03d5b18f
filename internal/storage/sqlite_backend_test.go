package storage_test

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/JamesPrial/todo-notes/internal/storage"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// newTestSQLiteBackend creates a SQLiteBackend in a directory managed by
// t.TempDir().
func newTestSQLiteBackend(t *testing.T) (*storage.SQLiteBackend, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	b, err := storage.NewSQLiteBackend(dbPath)
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}
	return b, dbPath
}

// openDirectDB opens a direct sql.DB connection for schema verification,
// bypassing the backend abstraction.
func openDirectDB(t *testing.T, dbPath string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open db directly: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// ---------------------------------------------------------------------------
// Schema tests
// ---------------------------------------------------------------------------

func Test_NewSQLiteBackend_CreatesKVStoreTable(t *testing.T) {
	t.Parallel()
	_, dbPath := newTestSQLiteBackend(t)

	db := openDirectDB(t, dbPath)
	var name string
	err := db.QueryRow(
		`SELECT name FROM sqlite_master WHERE type='table' AND name='kv_store'`,
	).Scan(&name)
	if err != nil {
		t.Fatalf("kv_store table not found: %v", err)
	}
}

func Test_NewSQLiteBackend_Idempotent(t *testing.T) {
	t.Parallel()
	b, dbPath := newTestSQLiteBackend(t)

	if err := b.Write("todo", []byte(`["kept"]`)); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	again, err := storage.NewSQLiteBackend(dbPath)
	if err != nil {
		t.Fatalf("second NewSQLiteBackend() error: %v", err)
	}

	got, ok, err := again.Read("todo")
	if err != nil || !ok {
		t.Fatalf("Read() = ok %v, err %v", ok, err)
	}
	if string(got) != `["kept"]` {
		t.Errorf("Read() = %q, want %q", got, `["kept"]`)
	}
}

func Test_NewSQLiteBackend_CreatesParentDirs(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "a", "b", "c", "notes.db")

	if _, err := storage.NewSQLiteBackend(dbPath); err != nil {
		t.Fatalf("NewSQLiteBackend with nested dirs: %v", err)
	}
}

func Test_NewSQLiteBackend_WALMode(t *testing.T) {
	t.Parallel()
	_, dbPath := newTestSQLiteBackend(t)

	db := openDirectDB(t, dbPath)
	var mode string
	if err := db.QueryRow(`PRAGMA journal_mode`).Scan(&mode); err != nil {
		t.Fatalf("PRAGMA journal_mode query failed: %v", err)
	}
	if mode != "wal" {
		t.Errorf("expected journal_mode 'wal', got %q", mode)
	}
}

// ---------------------------------------------------------------------------
// Read / Write
// ---------------------------------------------------------------------------

func Test_SQLiteBackend_Contract(t *testing.T) {
	t.Parallel()
	runBackendContract(t, func(t *testing.T) storage.StorageBackend {
		b, _ := newTestSQLiteBackend(t)
		return b
	})
}

func Test_SQLiteBackend_ImplementsStorageBackend(t *testing.T) {
	t.Parallel()
	var _ storage.StorageBackend = (*storage.SQLiteBackend)(nil)
}

func Test_SQLiteBackend_Write_SingleRowPerKey(t *testing.T) {
	t.Parallel()
	b, dbPath := newTestSQLiteBackend(t)

	for i := 0; i < 3; i++ {
		if err := b.Write("todo", []byte(`[]`)); err != nil {
			t.Fatalf("Write() #%d error: %v", i, err)
		}
	}

	db := openDirectDB(t, dbPath)
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM kv_store WHERE store_key = 'todo'`).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("kv_store has %d rows for key, want 1", count)
	}
}

func Test_SQLiteBackend_Write_SetsUpdatedAt(t *testing.T) {
	t.Parallel()
	b, dbPath := newTestSQLiteBackend(t)

	before := time.Now().UTC().Add(-time.Second)
	if err := b.Write("todo", []byte(`[]`)); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	db := openDirectDB(t, dbPath)
	var raw string
	if err := db.QueryRow(`SELECT updated_at FROM kv_store WHERE store_key = 'todo'`).Scan(&raw); err != nil {
		t.Fatalf("updated_at query failed: %v", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		t.Fatalf("updated_at %q is not RFC 3339: %v", raw, err)
	}
	if ts.Before(before) {
		t.Errorf("updated_at %v is before write started at %v", ts, before)
	}
}

func Test_SQLiteBackend_Read_UnreachableDatabase(t *testing.T) {
	t.Parallel()

	// A path whose parent is a regular file cannot be created.
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	broken := &storage.SQLiteBackend{DBPath: filepath.Join(blocker, "notes.db")}
	if _, _, err := broken.Read("todo"); err == nil {
		t.Error("Read() on unreachable database returned nil error")
	}
	if err := broken.Write("todo", []byte(`[]`)); err == nil {
		t.Error("Write() on unreachable database returned nil error")
	}
}

func Benchmark_SQLiteBackend_Write(b *testing.B) {
	backend, err := storage.NewSQLiteBackend(filepath.Join(b.TempDir(), "bench.db"))
	if err != nil {
		b.Fatalf("failed to create backend: %v", err)
	}
	data := []byte(`[{"id":"1","text":"bench","completed":false,"createdAt":"2025-01-01T00:00:00.000Z"}]`)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := backend.Write("todo", data); err != nil {
			b.Fatalf("Write() error: %v", err)
		}
	}
}
