package store

import (
	"fmt"
	"os"
	"path/filepath"

	"parcelas/internal/fileutils"
	"parcelas/internal/models"
)

// FileStore keeps each key in its own JSON file inside Directory.
type FileStore struct {
	Directory string
}

// NewFileStore creates a store rooted at dir. The directory is created on
// the first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Directory: dir}
}

// Path returns the file backing key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.Directory, key+".json")
}

// Get implements KeyValueStore.
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("error reading key '%s': %w", key, err)
	}
	return data, true, nil
}

// Set implements KeyValueStore.
func (s *FileStore) Set(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := fileutils.WriteFileAtomic(s.Path(key), value, models.PermissionDataFile); err != nil {
		return fmt.Errorf("error writing key '%s': %w", key, err)
	}
	return nil
}

// Close implements KeyValueStore.
func (s *FileStore) Close() error {
	return nil
}
