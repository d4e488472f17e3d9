package backups

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/vitalit/internal/catalog"
	"github.com/julianstephens/vitalit/internal/cli"
	"github.com/julianstephens/vitalit/internal/state"
	"github.com/julianstephens/vitalit/internal/storage"
	"github.com/julianstephens/vitalit/internal/storage/badger"
	"github.com/julianstephens/vitalit/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	ctx := cli.NewContext(store, catalog.MustDefault(), time.UTC, nil)
	ctx.OnUnlock = nil
	return ctx, func() { store.Close() }
}

func TestCreateAndList(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&CreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	mgr, err := manager(ctx)
	if err != nil {
		t.Fatalf("manager() error = %v", err)
	}
	backups, err := mgr.ListBackups()
	if err != nil || len(backups) != 1 {
		t.Fatalf("ListBackups() = %v, %v", backups, err)
	}
	if err := (&ListCmd{}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}
}

func TestRestoreCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	ctx.Dispatch(state.LogWater{Liters: 1})
	if err := (&CreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	mgr, _ := manager(ctx)
	backups, _ := mgr.ListBackups()
	name := filepath.Base(backups[0].Path)

	ctx.Dispatch(state.LogWater{Liters: 2})

	if err := (&RestoreCmd{BackupFile: name, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	restored := sqlite.NewStore(ctx.Store.GetConfigPath())
	if err := restored.Load(); err != nil {
		t.Fatalf("failed to reopen restored database: %v", err)
	}
	defer restored.Close()
	u := storage.NewRepository(restored).LoadUserData()
	if len(u.WaterLog) != 1 || u.WaterLog[0].Liters != 1 {
		t.Errorf("restored water log = %+v, want the single 1 L entry", u.WaterLog)
	}
}

func TestLocate(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()
	mgr, _ := manager(ctx)

	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	inDir := filepath.Join(mgr.GetBackupDir(), "vitalit-20260101-120000.db")
	if err := os.WriteFile(inDir, nil, 0600); err != nil {
		t.Fatal(err)
	}

	if got, err := locate(mgr, "vitalit-20260101-120000.db"); err != nil || got != inDir {
		t.Errorf("locate(name) = %q, %v", got, err)
	}
	if got, err := locate(mgr, inDir); err != nil || got != inDir {
		t.Errorf("locate(abs) = %q, %v", got, err)
	}
	if _, err := locate(mgr, "missing.db"); err == nil {
		t.Error("locate() found a missing file")
	}
}

func TestManager_UnsupportedBackend(t *testing.T) {
	store := badger.NewInMemoryStore()
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	defer store.Close()
	ctx := cli.NewContext(store, catalog.MustDefault(), time.UTC, nil)

	if err := (&CreateCmd{}).Run(ctx); err == nil {
		t.Error("backup of an in-memory store should fail")
	}
}
