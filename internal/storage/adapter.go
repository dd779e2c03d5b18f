package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/JamesPrial/todo-notes/internal/task"
)

// Adapter translates the task sequence to and from one JSON blob stored
// under a fixed key of a StorageBackend.
type Adapter struct {
	backend StorageBackend
	key     string
	logger  *slog.Logger
}

// NewAdapter returns an Adapter persisting under key in backend.
//
// A nil logger discards log output. Returns an error if key is not a valid
// storage key.
func NewAdapter(backend StorageBackend, key string, logger *slog.Logger) (*Adapter, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Adapter{
		backend: backend,
		key:     key,
		logger:  logger.With("component", "storage", "key", key),
	}, nil
}

// Key returns the storage key the adapter reads and writes.
func (a *Adapter) Key() string {
	return a.key
}

// Load reads and decodes the stored task sequence.
//
// Never fails: a missing key, an unreadable backend, invalid JSON, JSON null
// or a non-array value all produce an empty slice. Records that fail
// validation or repeat an earlier id are dropped; the remaining records keep
// their stored order.
func (a *Adapter) Load() []task.Task {
	data, ok, err := a.backend.Read(a.key)
	if err != nil {
		a.logger.Warn("failed to read stored tasks, starting empty", "error", err)
		return make([]task.Task, 0)
	}
	if !ok {
		a.logger.Debug("no stored tasks, starting empty")
		return make([]task.Task, 0)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		a.logger.Warn("stored tasks are not a JSON array, starting empty", "error", err)
		return make([]task.Task, 0)
	}

	tasks := make([]task.Task, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, item := range raw {
		var t task.Task
		if err := json.Unmarshal(item, &t); err != nil {
			a.logger.Warn("dropping undecodable task", "index", i, "error", err)
			continue
		}
		if err := task.Validate(t); err != nil {
			a.logger.Warn("dropping invalid task", "index", i, "error", err)
			continue
		}
		if seen[t.ID] {
			a.logger.Warn("dropping task with duplicate id", "index", i, "id", t.ID)
			continue
		}
		seen[t.ID] = true
		tasks = append(tasks, t)
	}

	a.logger.Debug("loaded tasks", "count", len(tasks))
	return tasks
}

// Save encodes tasks as a compact JSON array and replaces the stored blob.
//
// A nil or empty slice is stored as [].
func (a *Adapter) Save(tasks []task.Task) error {
	if tasks == nil {
		tasks = make([]task.Task, 0)
	}

	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}

	if err := a.backend.Write(a.key, data); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}

	a.logger.Debug("saved tasks", "count", len(tasks), "bytes", len(data))
	return nil
}
