package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/vitalit/internal/catalog"
	"github.com/julianstephens/vitalit/internal/cli"
	"github.com/julianstephens/vitalit/internal/state"
	"github.com/julianstephens/vitalit/internal/storage/sqlite"
	"github.com/julianstephens/vitalit/internal/tui/components/tasklist"
)

func setupTestModel(t *testing.T) (Model, *cli.Context) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	ctx := cli.NewContext(store, catalog.MustDefault(), time.UTC, nil)
	ctx.OnUnlock = nil

	m := NewModel(ctx)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model), ctx
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabCycling(t *testing.T) {
	m, _ := setupTestModel(t)

	want := []SessionState{StateChallenges, StateBadges, StateToday}
	for _, s := range want {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.state != s {
			t.Fatalf("state = %d, want %d", m.state, s)
		}
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != StateBadges {
		t.Errorf("shift+tab from Today = %d, want Badges", m.state)
	}
}

func TestQuickWater(t *testing.T) {
	m, ctx := setupTestModel(t)

	m, _ = press(t, m, runes("w"))
	u := ctx.State().GetState()
	if len(u.WaterLog) != 1 || u.WaterLog[0].Liters != 0.25 {
		t.Fatalf("WaterLog = %+v, want one 0.25 L entry", u.WaterLog)
	}
	if !strings.Contains(m.notice, "250 ml") || m.warn {
		t.Errorf("notice = %q (warn %v)", m.notice, m.warn)
	}
	if len(*m.unlocked) != 0 {
		t.Error("unlocked badges were not drained")
	}
}

func TestToggleTask(t *testing.T) {
	m, ctx := setupTestModel(t)
	ctx.Dispatch(state.StartChallenge{ID: "hydrate-7"})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.day != 1 {
		t.Fatalf("day = %d, want 1", m.day)
	}

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if cmd == nil {
		t.Fatal("space produced no command")
	}
	toggle, ok := cmd().(tasklist.ToggleTaskMsg)
	if !ok || toggle.ChallengeID != "hydrate-7" || toggle.Day != 1 || !toggle.Done {
		t.Fatalf("toggle = %+v", toggle)
	}

	next, _ := m.Update(toggle)
	m = next.(Model)
	next, _ = m.Update(tasklist.ToggleTaskMsg{ChallengeID: "hydrate-7", Day: 1, Index: 1, Done: true})
	m = next.(Model)

	ch := ctx.State().GetState().Challenges["hydrate-7"]
	if !ch.DayCompleted(1) {
		t.Fatalf("day 1 not complete: %+v", ch.DailyTasks[0])
	}
	if !strings.Contains(m.notice, "Day 1 complete") && !strings.Contains(m.notice, "Badge unlocked") {
		t.Errorf("notice = %q", m.notice)
	}

	next, _ = m.Update(tasklist.ToggleTaskMsg{ChallengeID: "hydrate-7", Day: 1, Index: 0, Done: false})
	m = next.(Model)
	if ctx.State().GetState().Challenges["hydrate-7"].DayCompleted(1) {
		t.Error("uncomplete did not reopen day 1")
	}
}

func TestToggleTask_Gated(t *testing.T) {
	m, ctx := setupTestModel(t)
	if !ctx.Entitlement.Activate(1, "kick2024") {
		t.Fatal("Activate() failed")
	}
	ctx.Dispatch(state.StartChallenge{ID: "walk-14"})
	if err := ctx.Entitlement.Deactivate(); err != nil {
		t.Fatal(err)
	}

	next, _ := m.Update(tasklist.ToggleTaskMsg{ChallengeID: "walk-14", Day: 1, Index: 0, Done: true})
	m = next.(Model)
	if !m.warn || !strings.Contains(m.notice, "plan") {
		t.Errorf("notice = %q (warn %v)", m.notice, m.warn)
	}
	if ctx.State().GetState().Challenges["walk-14"].DailyTasks[0].Completed[0] {
		t.Error("gated task was completed")
	}
}

func TestPlanTick(t *testing.T) {
	m, ctx := setupTestModel(t)
	if m.plan.Active {
		t.Fatal("plan active before activation")
	}
	if !ctx.Entitlement.Activate(4, "total2024") {
		t.Fatal("Activate() failed")
	}

	next, cmd := m.Update(planTickMsg(time.Now()))
	m = next.(Model)
	if cmd == nil {
		t.Error("tick did not schedule the next poll")
	}
	if !m.plan.Active || !m.plan.Unlimited {
		t.Errorf("plan = %+v", m.plan)
	}
	if !strings.Contains(m.View(), m.plan.PlanName) {
		t.Error("banner does not name the active plan")
	}
}

func TestQuit(t *testing.T) {
	m, _ := setupTestModel(t)
	m, cmd := press(t, m, runes("q"))
	if !m.quitting || cmd == nil {
		t.Error("q did not quit")
	}
	if m.View() != "" {
		t.Error("View() after quit should be empty")
	}
}
