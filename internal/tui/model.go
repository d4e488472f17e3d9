package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/vitalit/internal/cli"
	"github.com/julianstephens/vitalit/internal/constants"
	"github.com/julianstephens/vitalit/internal/models"
	"github.com/julianstephens/vitalit/internal/state"
	"github.com/julianstephens/vitalit/internal/tui/components/journal"
	"github.com/julianstephens/vitalit/internal/tui/components/tasklist"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateChallenges
	StateBadges
)

var tabTitles = []string{"Today", "Challenges", "Badges"}

// chrome is the height taken by tabs, banner, notice and help.
const chrome = 6

// planTickMsg triggers an entitlement refresh.
type planTickMsg time.Time

func pollPlan() tea.Cmd {
	return tea.Tick(constants.PlanPollInterval, func(t time.Time) tea.Msg {
		return planTickMsg(t)
	})
}

type Model struct {
	ctx      *cli.Context
	state    SessionState
	keys     KeyMap
	help     help.Model
	journal  journal.Model
	taskList tasklist.Model
	badges   viewport.Model

	// day is the challenge day shown on the Challenges tab.
	day  int
	plan models.PlanStatus

	// unlocked collects badges earned by dispatches made from Update.
	unlocked *[]models.Badge
	notice   string
	warn     bool
	quitting bool
	width    int
	height   int
}

func NewModel(ctx *cli.Context) Model {
	unlocked := &[]models.Badge{}
	ctx.State().Subscribe(state.UnlockNotifier(func(b models.Badge) {
		*unlocked = append(*unlocked, b)
	}))

	m := Model{
		ctx:      ctx,
		state:    StateToday,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		journal:  journal.New(0, 0, ctx.Catalog.Exercise),
		taskList: tasklist.New(0, 0),
		badges:   viewport.New(0, 0),
		plan:     ctx.Entitlement.Status(),
		unlocked: unlocked,
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Water, m.keys.Quit, m.keys.Help}
	if m.state == StateChallenges {
		keys = append(keys, m.taskList.ToggleKey(), m.keys.PrevDay, m.keys.NextDay)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.PrevDay, m.keys.NextDay}
	actions := []key.Binding{m.keys.Water, m.taskList.ToggleKey()}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return pollPlan()
}

// currentChallenge returns the challenge the user is working on.
func (m Model) currentChallenge(u models.UserData) (models.Challenge, bool) {
	if u.CurrentChallenge == "" {
		return models.Challenge{}, false
	}
	ch, ok := u.Challenges[u.CurrentChallenge]
	return ch, ok
}

// refresh rebuilds every tab from the current snapshot.
func (m *Model) refresh() {
	u := m.ctx.State().GetState()
	today := m.ctx.Today()
	locale := m.ctx.Locale()

	entry := journal.Entry{Date: today, Data: u, Locale: locale}
	if d, ok := m.ctx.WaterToday(); ok {
		entry.Water = &d
	}
	m.journal.SetEntry(entry)

	if ch, ok := m.currentChallenge(u); ok {
		if m.day < 1 || m.day > ch.Days {
			m.day = max(ch.CurrentDay, 1)
		}
		if d, _, ok := ch.Task(m.day); ok {
			m.taskList.SetDay(ch, d)
		}
	} else {
		m.day = 0
		m.taskList.Clear()
	}

	m.badges.SetContent(renderBadges(m.ctx, u, locale))
}

// takeUnlocked turns badges earned since the last call into the notice.
func (m *Model) takeUnlocked() {
	for _, b := range *m.unlocked {
		m.notice = "🏅 Badge unlocked: " + b.Icon + " " + b.Name
		m.warn = false
	}
	*m.unlocked = (*m.unlocked)[:0]
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	bodyHeight := max(height-chrome, 1)
	m.journal.SetSize(width-4, bodyHeight)
	m.taskList.SetSize(width-4, bodyHeight-2)
	m.badges.Width = width - 4
	m.badges.Height = bodyHeight
}
