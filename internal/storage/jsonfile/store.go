// Package jsonfile keeps every document in a single JSON object on disk.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/julianstephens/vitalit/internal/storage"
)

var errNotLoaded = errors.New("storage not loaded")

type Store struct {
	path string

	mu   sync.Mutex
	docs map[string]json.RawMessage
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Init creates an empty document file, or loads the existing one.
func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = make(map[string]json.RawMessage)
	return s.save()
}

func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return storage.ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	docs := make(map[string]json.RawMessage)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &docs); err != nil {
			return fmt.Errorf("failed to parse storage: %w", err)
		}
	}

	s.mu.Lock()
	s.docs = docs
	s.mu.Unlock()
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// save writes the whole file through a temp file and rename so a crash
// never leaves a truncated document. Callers hold mu.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.docs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *Store) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docs == nil {
		return nil, errNotLoaded
	}
	doc, ok := s.docs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return slices.Clone([]byte(doc)), nil
}

func (s *Store) Put(key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("value for %s is not valid JSON", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docs == nil {
		return errNotLoaded
	}
	prev, had := s.docs[key]
	s.docs[key] = slices.Clone(value)
	if err := s.save(); err != nil {
		if had {
			s.docs[key] = prev
		} else {
			delete(s.docs, key)
		}
		return err
	}
	return nil
}

func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docs == nil {
		return errNotLoaded
	}
	prev, ok := s.docs[key]
	if !ok {
		return storage.ErrNotFound
	}
	delete(s.docs, key)
	if err := s.save(); err != nil {
		s.docs[key] = prev
		return err
	}
	return nil
}

func (s *Store) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docs == nil {
		return nil, errNotLoaded
	}
	keys := make([]string, 0, len(s.docs))
	for k := range s.docs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}
