package catalog

import (
	"fmt"
	"slices"
	"time"

	"github.com/julianstephens/vitalit/internal/models"
)

// TemplateDay lists the tasks for one day of a challenge template.
type TemplateDay struct {
	Day   int      `yaml:"day" validate:"gte=1"`
	Tasks []string `yaml:"tasks" validate:"min=1,dive,required"`
}

// ChallengeTemplate is the read-only definition a challenge is started from.
// Days without an explicit entry in DailyTasks get DefaultTasks.
type ChallengeTemplate struct {
	ID           string        `yaml:"id" validate:"required"`
	Name         models.Text   `yaml:"name"`
	Description  models.Text   `yaml:"description"`
	Category     string        `yaml:"category"`
	Days         int           `yaml:"days" validate:"gte=1,lte=366"`
	DefaultTasks []string      `yaml:"defaultTasks" validate:"dive,required"`
	DailyTasks   []TemplateDay `yaml:"dailyTasks" validate:"dive"`
	AccessPlans  []int         `yaml:"accessPlans"`
}

func (t ChallengeTemplate) check() error {
	if t.Name.IsZero() {
		return fmt.Errorf("challenge %q has no name", t.ID)
	}
	seen := make(map[int]bool)
	for _, d := range t.DailyTasks {
		if d.Day > t.Days {
			return fmt.Errorf("challenge %q lists day %d beyond its %d days", t.ID, d.Day, t.Days)
		}
		if seen[d.Day] {
			return fmt.Errorf("challenge %q lists day %d twice", t.ID, d.Day)
		}
		seen[d.Day] = true
	}
	if len(t.DefaultTasks) == 0 && len(t.DailyTasks) != t.Days {
		return fmt.Errorf("challenge %q has no defaultTasks and only %d of %d days listed", t.ID, len(t.DailyTasks), t.Days)
	}
	return nil
}

// expand fills in every day so DailyTasks has exactly Days entries in order.
func (t *ChallengeTemplate) expand() {
	byDay := make(map[int][]string, len(t.DailyTasks))
	for _, d := range t.DailyTasks {
		byDay[d.Day] = d.Tasks
	}
	days := make([]TemplateDay, t.Days)
	for i := range days {
		day := i + 1
		tasks, ok := byDay[day]
		if !ok {
			tasks = t.DefaultTasks
		}
		days[i] = TemplateDay{Day: day, Tasks: slices.Clone(tasks)}
	}
	t.DailyTasks = days
}

// Instantiate materializes a fresh challenge from the template: day 1,
// nothing completed, every completion flag false. The template is not shared.
func (t ChallengeTemplate) Instantiate(now time.Time) models.Challenge {
	daily := make([]models.DailyTask, len(t.DailyTasks))
	for i, d := range t.DailyTasks {
		daily[i] = models.DailyTask{
			Day:       d.Day,
			Tasks:     slices.Clone(d.Tasks),
			Completed: make([]bool, len(d.Tasks)),
		}
	}
	return models.Challenge{
		ID:            t.ID,
		Name:          t.Name.Clone(),
		Description:   t.Description.Clone(),
		Days:          t.Days,
		DailyTasks:    daily,
		CurrentDay:    1,
		CompletedDays: []int{},
		IsActive:      true,
		StartDate:     now,
		AccessPlans:   slices.Clone(t.AccessPlans),
	}
}

