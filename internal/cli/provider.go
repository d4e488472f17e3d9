package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/vitalit/internal/constants"
	"github.com/julianstephens/vitalit/internal/keyring"
	"github.com/julianstephens/vitalit/internal/logger"
	"github.com/julianstephens/vitalit/internal/storage"
	"github.com/julianstephens/vitalit/internal/storage/badger"
	"github.com/julianstephens/vitalit/internal/storage/jsonfile"
	"github.com/julianstephens/vitalit/internal/storage/postgres"
	"github.com/julianstephens/vitalit/internal/storage/sqlite"
)

// ConnectionEnv names the environment variable that may carry a full
// PostgreSQL connection string, password included.
const ConnectionEnv = "VITALIT_DB_CONNECTION"

const badgerScheme = "badger://"

// IsPostgres reports whether config is a PostgreSQL URI or key/value DSN.
func IsPostgres(config string) bool {
	return strings.HasPrefix(config, "postgres://") ||
		strings.HasPrefix(config, "postgresql://") ||
		strings.Contains(config, "host=")
}

// ResolveConfig picks the data location. An explicit --config wins; with the
// default path, a connection string from the environment and then from the
// OS keyring take precedence over the local SQLite file.
func ResolveConfig(flag string) (config string, trusted bool) {
	if flag != "" && flag != constants.DefaultConfigPath {
		return flag, false
	}
	if env := strings.TrimSpace(os.Getenv(ConnectionEnv)); env != "" {
		logger.Debug("Using connection string from environment")
		return env, true
	}
	if connStr, err := keyring.GetConnectionString(); err == nil {
		logger.Debug("Using connection string from keyring")
		return connStr, true
	} else if !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("Keyring lookup skipped", "error", err)
	}
	return constants.DefaultConfigPath, false
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// OpenProvider builds the storage backend config names. Connection strings
// that came from the command line must not carry a password; trusted ones
// (environment, keyring) may.
func OpenProvider(config string, trusted bool) (storage.Provider, error) {
	switch {
	case IsPostgres(config):
		if !trusted {
			if _, err := postgres.ValidateConnString(config); err != nil {
				if errors.Is(err, postgres.ErrEmbeddedCredentials) {
					return nil, fmt.Errorf("%w: store the connection string with 'vitalit keyring set' or export %s instead", err, ConnectionEnv)
				}
				return nil, err
			}
		}
		return postgres.New(config), nil
	case strings.HasPrefix(config, badgerScheme):
		dir := strings.TrimPrefix(config, badgerScheme)
		if dir == "" || dir == ":memory:" {
			return badger.NewInMemoryStore(), nil
		}
		return badger.NewStore(ExpandHome(dir)), nil
	case strings.EqualFold(filepath.Ext(config), ".json"):
		return jsonfile.NewStore(ExpandHome(config)), nil
	default:
		return sqlite.NewStore(ExpandHome(config)), nil
	}
}

// ConfigDir is the directory logs and backups live under. Remote and
// directory-backed stores fall back to the default config directory.
func ConfigDir(p storage.Provider) string {
	switch p.(type) {
	case *sqlite.Store, *jsonfile.Store:
		return filepath.Dir(p.GetConfigPath())
	}
	return filepath.Dir(ExpandHome(constants.DefaultConfigPath))
}
