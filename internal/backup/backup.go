// Package backup keeps rotating snapshots of file-based data stores.
package backup

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/vitalit/internal/constants"
	"github.com/julianstephens/vitalit/internal/logger"
)

const timestampFormat = "20060102-150405"

// Format identifies how a data file is copied and verified.
type Format int

const (
	FormatSQLite Format = iota
	FormatJSON
)

// FormatFor picks the format from the data file's extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	case ".json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("backups are not supported for %s", filepath.Base(path))
	}
}

func (f Format) suffix() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".db"
}

// Info describes one backup file.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager creates, lists, rotates and restores backups of one data file.
type Manager struct {
	dataPath  string
	backupDir string
	format    Format
	keep      int
	now       func() time.Time
}

// NewManager returns a manager that writes backups next to dataPath.
func NewManager(dataPath string) (*Manager, error) {
	format, err := FormatFor(dataPath)
	if err != nil {
		return nil, err
	}
	return &Manager{
		dataPath:  dataPath,
		backupDir: filepath.Join(filepath.Dir(dataPath), constants.BackupDirName),
		format:    format,
		keep:      constants.MaxBackups,
		now:       time.Now,
	}, nil
}

func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup snapshots the data file and prunes the oldest backups.
func (m *Manager) CreateBackup() (string, error) {
	path, err := m.createBackup()
	if err != nil {
		return "", err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("Failed to rotate old backups", "error", err)
	}
	return path, nil
}

func (m *Manager) nextPath() (string, error) {
	stamp := m.now().Format(timestampFormat)
	base := constants.BackupFilePrefix + stamp
	path := filepath.Join(m.backupDir, base+m.format.suffix())
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", errors.New("failed to generate unique backup filename")
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s-%d%s", base, counter, m.format.suffix()))
	}
}

func (m *Manager) createBackup() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.dataPath); os.IsNotExist(err) {
		return "", fmt.Errorf("data file does not exist: %s", m.dataPath)
	}

	path, err := m.nextPath()
	if err != nil {
		return "", err
	}

	switch m.format {
	case FormatSQLite:
		err = vacuumInto(m.dataPath, path)
	case FormatJSON:
		if err = verify(m.dataPath, m.format); err == nil {
			err = copyFile(m.dataPath, path)
		}
	}
	if err != nil {
		return "", fmt.Errorf("failed to back up %s: %w", filepath.Base(m.dataPath), err)
	}
	return path, nil
}

// vacuumInto writes a clean copy of a live SQLite database, falling back to
// a plain copy for engines without VACUUM INTO.
func vacuumInto(src, dst string) error {
	db, err := sql.Open("sqlite", src+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", dst); err != nil {
		return copyFile(src, dst)
	}
	return nil
}

// parseName extracts the timestamp from a backup file name.
func (m *Manager) parseName(name string) (time.Time, bool) {
	rest, ok := strings.CutPrefix(name, constants.BackupFilePrefix)
	if !ok {
		return time.Time{}, false
	}
	rest, ok = strings.CutSuffix(rest, m.format.suffix())
	if !ok {
		return time.Time{}, false
	}
	// Drop a trailing -N collision counter.
	if i := strings.LastIndex(rest, "-"); i > 0 && len(rest)-i-1 != 6 {
		if _, err := strconv.Atoi(rest[i+1:]); err == nil {
			rest = rest[:i]
		}
	}
	ts, err := time.ParseInLocation(timestampFormat, rest, time.Local)
	return ts, err == nil
}

// ListBackups returns backups newest first.
func (m *Manager) ListBackups() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := m.parseName(entry.Name())
		if !ok {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      fi.Size(),
		})
	}

	slices.SortStableFunc(backups, func(a, b Info) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(b.Path, a.Path)
	})
	return backups, nil
}

func (m *Manager) rotate() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for _, b := range backups[min(len(backups), m.keep):] {
		if err := os.Remove(b.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", b.Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the data file with backupPath after snapshotting
// the current file. It returns the path of that pre-restore snapshot, or ""
// when there was no data file.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := verify(backupPath, m.format); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var previous string
	if _, err := os.Stat(m.dataPath); err == nil {
		// Not rotated, so the snapshot cannot evict the backup being restored.
		previous, err = m.createBackup()
		if err != nil {
			return "", fmt.Errorf("failed to back up current data before restore: %w", err)
		}
	}

	tempPath := m.dataPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return previous, fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.dataPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tempPath, "error", removeErr)
		}
		return previous, fmt.Errorf("failed to restore data file: %w", err)
	}
	return previous, nil
}

func verify(path string, format Format) error {
	if format == FormatJSON {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var docs map[string]json.RawMessage
		return json.Unmarshal(data, &docs)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()
	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
