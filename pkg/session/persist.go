package session

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const filePermission = 0600

// FileStore persists the session slot as a single JSON file.
type FileStore struct {
	path string
}

// NewFileStore returns a store writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultFileStore places the session file in the XDG state directory.
func DefaultFileStore() (*FileStore, error) {
	path, err := xdg.StateFile(filepath.Join("tokenmart", "session.json"))
	if err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

// Load reads the slot. A missing file yields no data and no error.
func (f *FileStore) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// Save writes the slot, creating parent directories as needed.
func (f *FileStore) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return err
	}
	return os.WriteFile(f.path, data, filePermission)
}

// Clear removes the slot. Clearing an absent slot is a no-op.
func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
