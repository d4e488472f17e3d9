package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/vitalit/internal/catalog"
	"github.com/julianstephens/vitalit/internal/cli"
	"github.com/julianstephens/vitalit/internal/csvio"
	"github.com/julianstephens/vitalit/internal/models"
	"github.com/julianstephens/vitalit/internal/state"
	"github.com/julianstephens/vitalit/internal/storage/jsonfile"
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

func TestExportImportRoundTrip(t *testing.T) {
	src, cleanup := setupTestDB(t)
	defer cleanup()

	src.Dispatch(state.LogWeight{Weight: 82, Date: "2026-03-01"})
	src.Dispatch(state.LogWeight{Weight: 81, Date: "2026-03-08"})
	src.Dispatch(state.StartChallenge{ID: "hydrate-7"})
	src.Dispatch(state.CompleteTask{ChallengeID: "hydrate-7", Day: 1, TaskIndex: 0})
	src.Dispatch(state.CompleteTask{ChallengeID: "hydrate-7", Day: 1, TaskIndex: 1})
	if err := src.Repo.SaveBodyComposition(models.BodyCompositionData{Waist: 80, Hip: 100, WaistToHipRatio: 0.8, LastUpdated: "2026-03-08"}); err != nil {
		t.Fatalf("SaveBodyComposition() error = %v", err)
	}

	out := filepath.Join(t.TempDir(), "export.csv")
	if err := (&ExportCmd{Output: out}).Run(src); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	for _, section := range []string{csvio.SectionWeight, csvio.SectionChallenges, csvio.SectionBodyCalc} {
		if !strings.Contains(string(raw), section) {
			t.Errorf("export has no %q section", section)
		}
	}

	dst, cleanupDst := setupTestDB(t)
	defer cleanupDst()
	if err := (&ImportCmd{File: out}).Run(dst); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	u := dst.Repo.LoadUserData()
	if len(u.Weights) != 2 {
		t.Errorf("imported weights = %+v", u.Weights)
	}
	ch, ok := u.Challenges["hydrate-7"]
	if !ok || !ch.DayCompleted(1) || !ch.DailyTasks[0].Completed[1] {
		t.Errorf("imported challenge = %+v", ch)
	}
	if d, ok := dst.Repo.LoadBodyComposition(); !ok || d.Waist != 80 {
		t.Errorf("imported body composition = %+v, %v", d, ok)
	}
}

func TestImportCmd_MissingFile(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&ImportCmd{File: filepath.Join(t.TempDir(), "nope.csv")}).Run(ctx); err == nil {
		t.Error("import of a missing file should fail")
	}
}

func TestUndoCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	ctx.Dispatch(state.LogMood{Mood: models.MoodGood})
	ctx.Dispatch(state.LogMood{Mood: models.MoodGreat})

	if err := (&UndoCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if got := ctx.Repo.LoadUserData().Moods; len(got) != 1 || got[0].Mood != models.MoodGood {
		t.Errorf("moods after undo = %+v", got)
	}
}

func TestUndoCmd_NoHistory(t *testing.T) {
	store := jsonfile.NewStore(filepath.Join(t.TempDir(), "vitalit.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	ctx := cli.NewContext(store, catalog.MustDefault(), time.UTC, nil)
	ctx.OnUnlock = nil

	ctx.Dispatch(state.LogMood{Mood: models.MoodGood})
	if err := (&UndoCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if len(ctx.Repo.LoadUserData().Moods) != 1 {
		t.Error("undo changed data on a backend without history")
	}
}
