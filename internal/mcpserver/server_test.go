package mcpserver

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/JamesPrial/todo-notes/internal/store"
)

// ---------------------------------------------------------------------------
// NewServer: basic construction
// ---------------------------------------------------------------------------

func Test_NewServer_ReturnsNonNil(t *testing.T) {
	t.Parallel()

	srv := NewServer(store.New(&memPersister{}), language.English)
	if srv == nil {
		t.Fatal("NewServer() returned nil server")
	}
}

func Test_NewServer_MultipleCallsCreateIndependentInstances(t *testing.T) {
	t.Parallel()

	st := store.New(&memPersister{})
	srv1 := NewServer(st, language.English)
	srv2 := NewServer(st, language.English)

	if srv1 == srv2 {
		t.Error("NewServer() returned the same pointer for two calls, expected independent instances")
	}
}
