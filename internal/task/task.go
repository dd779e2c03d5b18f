// Package task defines the task record and the status filter shared by the
// store, the persistence adapter and every front end.
//
// The JSON field names (id, text, completed, createdAt) are the persisted
// wire format and must not change; blobs written by earlier versions of the
// app decode into the same struct.
package task

import (
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the createdAt format: ISO 8601 UTC with millisecond
// precision and a Z suffix (e.g. "2025-11-14T10:30:45.123Z").
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Task is a single to-do record.
type Task struct {
	// ID is opaque and unique within a store. It never changes after creation.
	ID string `json:"id" yaml:"id" validate:"required"`

	// Text is the note body, stored trimmed and never blank.
	Text string `json:"text" yaml:"text" validate:"notblank"`

	// Completed reports whether the task has been checked off.
	Completed bool `json:"completed" yaml:"completed"`

	// CreatedAt is the creation time formatted with TimestampLayout.
	CreatedAt string `json:"createdAt" yaml:"createdAt" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// NewID returns a fresh random task id.
func NewID() string {
	return uuid.NewString()
}

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
