package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/vitalit/internal/logger"
	"github.com/julianstephens/vitalit/internal/migration"
	"github.com/julianstephens/vitalit/internal/storage"
	"github.com/julianstephens/vitalit/migrations"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return storage.ErrNotInitialized
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.runner().ValidateVersion()
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB exposes the connection for backups and diagnostics.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) GetConfigPath() string {
	return s.path
}

func (s *Store) runner() *migration.Runner {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		// The directory is embedded at build time.
		panic(err)
	}
	return migration.NewRunner(s.db, subFS)
}

func (s *Store) runMigrations() error {
	_, err := s.runner().ApplyMigrations(func(msg string) {
		logger.Info(msg)
	})
	return err
}

// Migrate applies pending migrations to an already loaded database.
func (s *Store) Migrate(logFn func(string)) (int, error) {
	return s.runner().ApplyMigrations(logFn)
}

// SchemaVersion reports the applied and latest known schema versions.
func (s *Store) SchemaVersion() (current, latest int, err error) {
	r := s.runner()
	if current, err = r.GetCurrentVersion(); err != nil {
		return 0, 0, err
	}
	latest, err = r.GetLatestVersion()
	return current, latest, err
}

func (s *Store) Get(key string) ([]byte, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *Store) Put(key string, value []byte) error {
	return s.withTx(func(tx *sql.Tx, now string) error {
		if err := archive(tx, key, now); err != nil {
			return err
		}
		_, err := tx.Exec(`
			INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, key, string(value), now)
		return err
	})
}

func (s *Store) Delete(key string) error {
	return s.withTx(func(tx *sql.Tx, now string) error {
		if err := archive(tx, key, now); err != nil {
			return err
		}
		res, err := tx.Exec("DELETE FROM kv WHERE key = ?", key)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return storage.ErrNotFound
		}
		return nil
	})
}

func (s *Store) Keys() ([]string, error) {
	rows, err := s.db.Query("SELECT key FROM kv ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// History returns replaced values of key, newest first.
func (s *Store) History(key string, limit int) ([]storage.Revision, error) {
	rows, err := s.db.Query(
		"SELECT value, replaced_at FROM kv_history WHERE key = ? ORDER BY id DESC LIMIT ?",
		key, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var revs []storage.Revision
	for rows.Next() {
		var value, at string
		if err := rows.Scan(&value, &at); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("invalid history timestamp %q: %w", at, err)
		}
		revs = append(revs, storage.Revision{Key: key, Value: []byte(value), ReplacedAt: ts})
	}
	return revs, rows.Err()
}

func (s *Store) withTx(fn func(tx *sql.Tx, now string) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// archive copies the current value of key, if any, into kv_history.
func archive(tx *sql.Tx, key, now string) error {
	_, err := tx.Exec(
		"INSERT INTO kv_history (key, value, replaced_at) SELECT key, value, ? FROM kv WHERE key = ?",
		now, key,
	)
	if err != nil {
		return fmt.Errorf("failed to archive %s: %w", key, err)
	}
	return nil
}
