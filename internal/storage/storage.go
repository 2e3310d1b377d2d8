// Package storage provides the key-value capability the tile store persists
// its snapshot into.
package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("not found")

// KV is a synchronous key-value store of opaque byte values.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Open creates the named backend. path is the database file for sqlite and
// the directory for file; memory ignores it.
func Open(backend, path string) (KV, error) {
	switch backend {
	case BackendSQLite, "":
		return NewSQLite(path)
	case BackendFile:
		return NewFile(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
