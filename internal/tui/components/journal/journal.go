// Package journal renders a scrollable view of one day's entries.
package journal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/vitalit/internal/catalog"
	"github.com/julianstephens/vitalit/internal/models"
	"github.com/julianstephens/vitalit/internal/progress"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Entry is what the journal shows for one date.
type Entry struct {
	Date   string
	Data   models.UserData
	Water  *models.WaterIntakeData
	Locale string
}

type Model struct {
	viewport viewport.Model
	exercise func(id string) (catalog.Exercise, bool)
	content  string
}

func New(width, height int, exercise func(id string) (catalog.Exercise, bool)) Model {
	return Model{viewport: viewport.New(width, height), exercise: exercise}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.viewport.SetContent(m.content)
}

func row(label, value string) string {
	return labelStyle.Render(label) + " " + valueStyle.Render(value) + "\n"
}

// SetEntry re-renders the journal for e.
func (m *Model) SetEntry(e Entry) {
	var b strings.Builder
	u := e.Data

	weight := "-"
	for _, w := range u.Weights {
		if w.Date == e.Date {
			weight = fmt.Sprintf("%.1f kg", w.Weight)
		}
	}
	b.WriteString(row("Weight", weight))

	water := fmt.Sprintf("%.2f L", u.WaterTotal(e.Date))
	if e.Water != nil && e.Water.RecommendedML > 0 {
		water += fmt.Sprintf(" of %.2f L", float64(e.Water.RecommendedML)/1000)
	}
	b.WriteString(row("Water", water))
	if e.Water != nil && e.Water.RecommendedML > 0 {
		b.WriteString(hintStyle.Render(progress.WaterIntakeMessage(e.Water.LoggedMLToday, e.Water.RecommendedML)) + "\n")
	}

	if kcal, ok := u.CaloriesOn(e.Date); ok {
		b.WriteString(row("Calories", fmt.Sprintf("%d kcal", kcal)))
	}

	var moods []string
	for _, mood := range u.Moods {
		if mood.Date == e.Date {
			moods = append(moods, mood.Mood.Emoji())
		}
	}
	if len(moods) > 0 {
		b.WriteString(row("Mood", strings.Join(moods, " ")))
	}

	for _, meal := range u.MealLogs {
		if meal.Date == e.Date {
			b.WriteString(row("Meal", fmt.Sprintf("%s %s (%d kcal)", meal.MealType, meal.MealName, meal.Calories)))
		}
	}
	for _, ex := range u.ExerciseHistory {
		if ex.Date != e.Date {
			continue
		}
		name := ex.ExerciseID
		if def, ok := m.exercise(ex.ExerciseID); ok {
			name = def.Name.Resolve(e.Locale)
		}
		b.WriteString(row("Exercise", fmt.Sprintf("%s (%d min)", name, ex.DurationMin)))
	}

	var dates []string
	for _, w := range u.WaterLog {
		dates = append(dates, w.Date)
	}
	if streak := progress.Streak(dates); streak > 0 {
		b.WriteString("\n" + hintStyle.Render(fmt.Sprintf("🔥 %d-day hydration streak", streak)) + "\n")
	}

	m.content = b.String()
	m.viewport.SetContent(m.content)
}
