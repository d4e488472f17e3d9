package system

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/julianstephens/vitalit/internal/cli"
	"github.com/julianstephens/vitalit/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing data file before initialization."`
	Source string `help:"Source data path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(cli.ExpandHome(c.Source))
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if info, err := os.Stat(dbPath); err == nil && !info.IsDir() {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized vitalit storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		source, err := cli.OpenProvider(c.Source, false)
		if err != nil {
			return err
		}
		n, err := copyKeys(source, ctx.Store)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Printf("Copied %d value(s). Migration completed successfully!\n", n)
	}

	return nil
}

// copyKeys loads src and writes every one of its values into dst.
func copyKeys(src, dst storage.Provider) (int, error) {
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source: %w", err)
	}
	defer src.Close()

	keys, err := src.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list source keys: %w", err)
	}
	slices.Sort(keys)
	for i, key := range keys {
		value, err := src.Get(key)
		if err != nil {
			return i, fmt.Errorf("failed to read %s from source: %w", key, err)
		}
		if err := dst.Put(key, value); err != nil {
			return i, fmt.Errorf("failed to write %s: %w", key, err)
		}
		fmt.Printf("  ✓ %s\n", key)
	}
	return len(keys), nil
}
