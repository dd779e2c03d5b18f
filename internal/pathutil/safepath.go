// Package pathutil resolves user-supplied storage locations and keeps them
// inside the configured data directory.
package pathutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrEmptyPath is returned for empty or whitespace-only paths.
	ErrEmptyPath = errors.New("path is empty or whitespace-only")

	// ErrNullByte is returned for paths containing \x00.
	ErrNullByte = errors.New("path contains null byte")

	// ErrEscapesBase is returned when a path resolves outside its base directory.
	ErrEscapesBase = errors.New("path escapes base directory")
)

// ResolveSafePath resolves userPath against baseDir and verifies that the
// result, after symlink resolution, is baseDir itself or lies beneath it.
//
// Relative paths are joined with baseDir; absolute paths are checked as-is.
// Neither the path nor baseDir has to exist yet: the deepest existing
// ancestor is resolved and the missing tail is re-attached, so a fresh data
// directory can be validated before the first write creates it.
//
// Example:
//
//	p, err := ResolveSafePath("/home/me/.notes", "db/notes.db")
//	// p == "/home/me/.notes/db/notes.db"
func ResolveSafePath(baseDir, userPath string) (string, error) {
	if strings.TrimSpace(userPath) == "" {
		return "", ErrEmptyPath
	}
	if strings.ContainsRune(userPath, 0) {
		return "", ErrNullByte
	}

	candidate := userPath
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(baseDir, candidate)
	}

	resolved, err := resolve(filepath.Clean(candidate))
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", userPath, err)
	}

	base, err := resolve(filepath.Clean(baseDir))
	if err != nil {
		return "", fmt.Errorf("failed to resolve base directory: %w", err)
	}

	rel, err := filepath.Rel(base, resolved)
	if err != nil {
		return "", fmt.Errorf("failed to compute relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrEscapesBase, userPath)
	}

	return resolved, nil
}

// resolve evaluates symlinks in path. When path does not exist, the deepest
// existing ancestor is resolved and the remaining elements are appended
// unchanged.
func resolve(path string) (string, error) {
	var missing []string
	current := path

	for {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			for i := len(missing) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, missing[i])
			}
			return resolved, nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no existing ancestor for %s", path)
		}
		missing = append(missing, filepath.Base(current))
		current = parent
	}
}
