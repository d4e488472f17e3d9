package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned by Get when a key holds no value.
var ErrNotFound = errors.New("key not found")

// ErrNotInitialized is returned by Load when the backing store does not
// exist yet.
var ErrNotInitialized = errors.New("storage not initialized, run 'vitalit init' first")

// Provider is a key to JSON document store. Every key is independent; no
// operation spans more than one key.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Documents
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}

// Revision is a value a key held before it was overwritten or deleted.
type Revision struct {
	Key        string
	Value      []byte
	ReplacedAt time.Time
}

// Historian is implemented by providers that keep replaced values.
type Historian interface {
	History(key string, limit int) ([]Revision, error)
}
