// Package store provides the key-value persistence capability the ledger
// writes its collection through, with file, SQLite and in-memory backends.
package store

import (
	"errors"
	"fmt"
	"strings"
)

// KeyValueStore persists opaque values under string keys. Set replaces the
// whole value; atomicity of a single Set is the backend's responsibility.
type KeyValueStore interface {
	// Get returns the value stored under key. ok is false when the key has
	// never been written.
	Get(key string) (value []byte, ok bool, err error)

	// Set overwrites the value stored under key.
	Set(key string, value []byte) error

	// Close releases resources held by the backend.
	Close() error
}

// Backend names accepted by New.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backends lists the supported backend names.
var Backends = []string{BackendFile, BackendSQLite, BackendMemory}

// ErrInvalidKey is returned for keys that cannot be stored safely.
var ErrInvalidKey = errors.New("invalid storage key")

// Options selects and configures a backend.
type Options struct {
	Backend    string
	Directory  string
	SQLitePath string
}

// New creates the backend named in opts.
func New(opts Options) (KeyValueStore, error) {
	switch opts.Backend {
	case BackendFile, "":
		if opts.Directory == "" {
			return nil, fmt.Errorf("file backend requires a directory")
		}
		return NewFileStore(opts.Directory), nil
	case BackendSQLite:
		if opts.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite backend requires a database path")
		}
		return NewSQLiteStore(opts.SQLitePath)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend '%s': must be one of %v", opts.Backend, Backends)
	}
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: '%s'", ErrInvalidKey, key)
	}
	return nil
}
