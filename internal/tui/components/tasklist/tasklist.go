package tasklist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/vitalit/internal/models"
)

// ToggleTaskMsg asks the parent to flip one task of the shown day.
type ToggleTaskMsg struct {
	ChallengeID string
	Day         int
	Index       int
	Done        bool
}

type Item struct {
	Index int
	Text  string
	Done  bool
}

func (i Item) Title() string {
	if i.Done {
		return "✓ " + i.Text
	}
	return "○ " + i.Text
}

func (i Item) Description() string {
	if i.Done {
		return "done"
	}
	return fmt.Sprintf("task %d", i.Index+1)
}

func (i Item) FilterValue() string { return i.Text }

type KeyMap struct {
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle task"),
		),
	}
}

// Model lists the tasks of one challenge day.
type Model struct {
	list        list.Model
	keys        KeyMap
	challengeID string
	day         int
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}
	return Model{list: l, keys: keys}
}

// SetDay shows day of ch, keeping the cursor where it was.
func (m *Model) SetDay(ch models.Challenge, day models.DailyTask) {
	m.challengeID = ch.ID
	m.day = day.Day
	items := make([]list.Item, len(day.Tasks))
	for i, t := range day.Tasks {
		items[i] = Item{Index: i, Text: t, Done: i < len(day.Completed) && day.Completed[i]}
	}
	m.list.SetItems(items)
}

// Clear empties the list.
func (m *Model) Clear() {
	m.challengeID = ""
	m.day = 0
	m.list.SetItems(nil)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Toggle) {
		if i, ok := m.list.SelectedItem().(Item); ok {
			toggle := ToggleTaskMsg{ChallengeID: m.challengeID, Day: m.day, Index: i.Index, Done: !i.Done}
			return m, func() tea.Msg { return toggle }
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No challenge in progress.\n  Start one with 'vitalit challenge start <id>'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// ToggleKey is the binding that flips the selected task.
func (m Model) ToggleKey() key.Binding {
	return m.keys.Toggle
}
