// Package storage persists the task list as a single serialized blob.
//
// A StorageBackend is a plain key/value store: one key, one opaque blob,
// every write replacing the previous value. The Adapter sits on top and owns
// the JSON encoding of the task sequence, including the fail-open decoding
// rules applied on load.
package storage

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidKey is returned by backends for keys that are not safe to use as
// a file name or primary key.
var ErrInvalidKey = errors.New("invalid storage key")

// keyRegex allows letters, digits, underscore, dot and hyphen, starting with
// a letter or digit, so keys never form paths or hidden files.
var keyRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,127}$`)

// ValidateKey checks that key is usable by every backend.
func ValidateKey(key string) error {
	if !keyRegex.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// StorageBackend defines the contract for blob persistence.
//
// Implementations must make Write atomic with respect to Read: a reader sees
// either the previous blob or the new one, never a partial write.
type StorageBackend interface {
	// Read returns the blob stored under key.
	//
	// Returns ok=false and a nil error if the key has never been written.
	// Returns an error if the storage cannot be reached or read.
	Read(key string) (data []byte, ok bool, err error)

	// Write stores data under key, replacing any prior value.
	//
	// Returns an error if the key is invalid or the write fails.
	Write(key string, data []byte) error
}
