package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileBackend implements StorageBackend with one JSON file per key.
//
// Key k is stored at <Dir>/<k>.json. Writes go to a temporary file in the
// same directory followed by a rename, so an interrupted write never leaves
// a truncated blob behind.
type FileBackend struct {
	// Fs is the filesystem the files live on; afero.NewOsFs() in production.
	Fs afero.Fs

	// Dir is the directory holding the key files.
	Dir string
}

// NewFileBackend creates a FileBackend rooted at dir on fsys.
//
// The directory is created lazily on the first Write.
func NewFileBackend(fsys afero.Fs, dir string) *FileBackend {
	return &FileBackend{
		Fs:  fsys,
		Dir: dir,
	}
}

// Path returns the file that holds key.
func (b *FileBackend) Path(key string) string {
	return filepath.Join(b.Dir, key+".json")
}

// Read returns the contents of the key file.
//
// A missing file reports ok=false with no error.
func (b *FileBackend) Read(key string) ([]byte, bool, error) {
	if err := ValidateKey(key); err != nil {
		return nil, false, err
	}

	data, err := afero.ReadFile(b.Fs, b.Path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return data, true, nil
}

// Write atomically replaces the key file with data.
//
// Creates the directory if needed. Returns an error if the directory, the
// temporary file or the final rename cannot be created.
func (b *FileBackend) Write(key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	if err := b.Fs.MkdirAll(b.Dir, 0o755); err != nil {
		return err
	}

	tmpFile, err := afero.TempFile(b.Fs, b.Dir, key+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()

	if writeErr != nil {
		_ = b.Fs.Remove(tmpPath)
		return writeErr
	}
	if closeErr != nil {
		_ = b.Fs.Remove(tmpPath)
		return closeErr
	}

	if err := b.Fs.Rename(tmpPath, b.Path(key)); err != nil {
		_ = b.Fs.Remove(tmpPath)
		return err
	}

	return nil
}
