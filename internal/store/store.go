// Package store holds the ordered task list in memory and persists the whole
// sequence after every mutation.
//
// Invalid input and unknown ids are silent no-ops reported through boolean
// results or EditOutcome values, never through errors. The only errors a
// Store returns come from its Persister.
package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/JamesPrial/todo-notes/internal/task"
)

// ErrIDExhausted is returned by Add when the id generator keeps producing
// ids that are already in use.
var ErrIDExhausted = errors.New("could not generate a unique task id")

const maxIDAttempts = 8

// Persister loads and saves the full task sequence.
//
// Load must not fail; storage.Adapter satisfies this contract.
type Persister interface {
	Load() []task.Task
	Save(tasks []task.Task) error
}

// Store is the single source of truth for the task list.
//
// The zero value is not usable; create one with New. All methods are safe
// for concurrent use and each runs to completion before the next starts.
type Store struct {
	mu        sync.Mutex
	tasks     []task.Task
	persister Persister
	newID     func() string
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock replaces time.Now as the source of creation times.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

// WithLogger sets the logger used for persistence failures and debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates a Store and loads the initial sequence from p exactly once.
func New(p Persister, opts ...Option) *Store {
	s := &Store{
		persister: p,
		newID:     task.NewID,
		now:       time.Now,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.tasks = p.Load()
	if s.tasks == nil {
		s.tasks = make([]task.Task, 0)
	}
	s.logger.Debug("store loaded", "count", len(s.tasks))
	return s
}

// Tasks returns a copy of the current sequence, newest first.
func (s *Store) Tasks() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return task.Task{}, false
	}
	return s.tasks[i], true
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Add inserts a new active task at the front of the sequence.
//
// Surrounding whitespace is trimmed from text. Blank text is a no-op and
// reports false. The task is kept in memory even when saving fails.
func (s *Store) Add(text string) (task.Task, bool, error) {
	trimmed := normalizeText(text)
	if trimmed == "" {
		return task.Task{}, false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.uniqueID()
	if err != nil {
		return task.Task{}, false, err
	}

	t := task.Task{
		ID:        id,
		Text:      trimmed,
		Completed: false,
		CreatedAt: task.FormatTimestamp(s.now()),
	}

	s.tasks = append(s.tasks, task.Task{})
	copy(s.tasks[1:], s.tasks)
	s.tasks[0] = t

	s.logger.Debug("task added", "id", id)
	return t, true, s.persist("add")
}

// Toggle flips the completion flag of the task with the given id.
//
// An unknown id is a no-op and reports false.
func (s *Store) Toggle(id string) (task.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return task.Task{}, false, nil
	}

	s.tasks[i].Completed = !s.tasks[i].Completed
	s.logger.Debug("task toggled", "id", id, "completed", s.tasks[i].Completed)
	return s.tasks[i], true, s.persist("toggle")
}

// Edit replaces the text of the task with the given id.
//
// newText is trimmed first. Blank text discards the edit and an identical
// text leaves the task untouched; neither saves.
func (s *Store) Edit(id, newText string) (EditOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return EditNotFound, nil
	}

	trimmed := normalizeText(newText)
	switch {
	case trimmed == "":
		return EditDiscarded, nil
	case trimmed == s.tasks[i].Text:
		return EditUnchanged, nil
	}

	s.tasks[i].Text = trimmed
	s.logger.Debug("task edited", "id", id)
	return EditCommitted, s.persist("edit")
}

// Remove deletes the task with the given id.
//
// An unknown id is a no-op and reports false.
func (s *Store) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return false, nil
	}

	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.logger.Debug("task removed", "id", id)
	return true, s.persist("remove")
}

// persist saves the full sequence. Callers must hold s.mu.
func (s *Store) persist(op string) error {
	if err := s.persister.Save(s.snapshot()); err != nil {
		s.logger.Error("failed to persist tasks", "op", op, "error", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) snapshot() []task.Task {
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) uniqueID() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := s.newID()
		if id != "" && s.index(id) < 0 {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

// Import adds records from another copy of the list and saves once.
//
// With replace the current sequence is discarded first. Records are
// appended after the existing tasks in their given order. Text is trimmed
// and blank records are skipped. Missing or already used ids get a fresh
// one, and a missing or malformed createdAt becomes the current time.
// Returns the number of records added; nothing is saved when that is zero
// and replace is false.
func (s *Store) Import(records []task.Task, replace bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if replace {
		s.tasks = make([]task.Task, 0, len(records))
	}

	added := 0
	for _, r := range records {
		r.Text = normalizeText(r.Text)
		if r.Text == "" {
			continue
		}
		if r.ID == "" || s.index(r.ID) >= 0 {
			id, err := s.uniqueID()
			if err != nil {
				return added, err
			}
			r.ID = id
		}
		if task.Validate(r) != nil {
			r.CreatedAt = task.FormatTimestamp(s.now())
		}
		s.tasks = append(s.tasks, r)
		added++
	}

	if added == 0 && !replace {
		return 0, nil
	}
	s.logger.Debug("tasks imported", "count", added, "replace", replace)
	return added, s.persist("import")
}

// normalizeText trims surrounding whitespace and replaces invalid UTF-8 with
// U+FFFD, so the text held in memory is exactly what the JSON blob decodes to.
func normalizeText(text string) string {
	return strings.ToValidUTF8(strings.TrimSpace(text), "\uFFFD")
}
