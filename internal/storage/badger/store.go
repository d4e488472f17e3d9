// Package badger stores documents in an embedded BadgerDB directory.
package badger

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/julianstephens/vitalit/internal/logger"
	"github.com/julianstephens/vitalit/internal/storage"
)

const (
	docPrefix     = "doc/"
	historyPrefix = "hist/"
)

type Store struct {
	path     string
	inMemory bool
	db       *badger.DB
}

// NewStore returns a store rooted at the directory path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// NewInMemoryStore returns a store that keeps nothing on disk.
func NewInMemoryStore() *Store {
	return &Store{inMemory: true}
}

// badgerLogger routes BadgerDB's own messages into the application log.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	logger.Error(strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "badger")
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	logger.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "badger")
}

func (badgerLogger) Infof(format string, args ...interface{}) {
	logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "badger")
}

func (badgerLogger) Debugf(format string, args ...interface{}) {
	logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "badger")
}

func (s *Store) open() error {
	var opts badger.Options
	if s.inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(s.path).WithSyncWrites(true)
	}
	db, err := badger.Open(opts.WithNumVersionsToKeep(1).WithLogger(badgerLogger{}))
	if err != nil {
		return fmt.Errorf("failed to open badger database: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) Init() error {
	if s.db != nil {
		return nil
	}
	if !s.inMemory {
		if err := os.MkdirAll(s.path, 0700); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	return s.open()
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if !s.inMemory {
		if _, err := os.Stat(s.path); os.IsNotExist(err) {
			return storage.ErrNotInitialized
		}
	}
	return s.open()
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) GetConfigPath() string {
	if s.inMemory {
		return ":memory:"
	}
	return s.path
}

func (s *Store) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(docPrefix + key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) Put(key string, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := archive(txn, key); err != nil {
			return err
		}
		return txn.Set([]byte(docPrefix+key), value)
	})
}

func (s *Store) Delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		found, err := archive(txn, key)
		if err != nil {
			return err
		}
		if !found {
			return storage.ErrNotFound
		}
		return txn.Delete([]byte(docPrefix + key))
	})
}

func (s *Store) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(docPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, strings.TrimPrefix(string(it.Item().Key()), docPrefix))
		}
		return nil
	})
	return keys, err
}

// History returns replaced values of key, newest first.
func (s *Store) History(key string, limit int) ([]storage.Revision, error) {
	prefix := []byte(historyPrefix + key + "/")
	var revs []storage.Revision
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		seek := append(append([]byte{}, prefix...), 0xFF)
		for it.Seek(seek); it.Valid() && len(revs) < limit; it.Next() {
			item := it.Item()
			suffix := item.Key()[len(prefix):]
			if len(suffix) != 8 {
				continue
			}
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			nanos := int64(binary.BigEndian.Uint64(suffix))
			revs = append(revs, storage.Revision{Key: key, Value: value, ReplacedAt: time.Unix(0, nanos).UTC()})
		}
		return nil
	})
	return revs, err
}

// archive copies the live value of key under a timestamped history key and
// reports whether there was one.
func archive(txn *badger.Txn, key string) (bool, error) {
	item, err := txn.Get([]byte(docPrefix + key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	prev, err := item.ValueCopy(nil)
	if err != nil {
		return false, err
	}
	histKey := make([]byte, 0, len(historyPrefix)+len(key)+9)
	histKey = append(histKey, historyPrefix+key+"/"...)
	histKey = binary.BigEndian.AppendUint64(histKey, uint64(time.Now().UnixNano()))
	return true, txn.Set(histKey, prev)
}
