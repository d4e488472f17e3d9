package models

import (
	"slices"
	"time"
)

// DailyTask is one day of a challenge. Completed[i] tracks Tasks[i].
type DailyTask struct {
	Day       int      `json:"day"`
	Tasks     []string `json:"tasks"`
	Completed []bool   `json:"completed"`
}

// AllCompleted reports whether every task of the day is checked.
func (d DailyTask) AllCompleted() bool {
	if len(d.Completed) == 0 {
		return false
	}
	for _, c := range d.Completed {
		if !c {
			return false
		}
	}
	return true
}

func (d DailyTask) clone() DailyTask {
	return DailyTask{
		Day:       d.Day,
		Tasks:     slices.Clone(d.Tasks),
		Completed: slices.Clone(d.Completed),
	}
}

// Challenge is a user's running instance of a multi-day program
type Challenge struct {
	ID            string      `json:"id"`
	Name          Text        `json:"name"`
	Description   Text        `json:"description"`
	Days          int         `json:"days"`
	DailyTasks    []DailyTask `json:"dailyTasks"`
	CurrentDay    int         `json:"currentDay"`
	CompletedDays []int       `json:"completedDays"`
	IsActive      bool        `json:"isActive"`
	StartDate     time.Time   `json:"startDate"`
	AccessPlans   []int       `json:"accessPlans,omitempty"`
}

// IsComplete reports whether every day of the challenge has been completed.
func (c Challenge) IsComplete() bool {
	return c.Days > 0 && len(c.CompletedDays) == c.Days
}

// DayCompleted reports whether day is in the completed set.
func (c Challenge) DayCompleted(day int) bool {
	return slices.Contains(c.CompletedDays, day)
}

// Task returns the daily task record for day and its index.
func (c Challenge) Task(day int) (DailyTask, int, bool) {
	for i, d := range c.DailyTasks {
		if d.Day == day {
			return d, i, true
		}
	}
	return DailyTask{}, -1, false
}

// ProgressPercent is the share of days completed, rounded down.
func (c Challenge) ProgressPercent() int {
	if c.Days <= 0 {
		return 0
	}
	return len(c.CompletedDays) * 100 / c.Days
}

// Clone returns a deep copy of c.
func (c Challenge) Clone() Challenge {
	out := c
	out.Name = c.Name.Clone()
	out.Description = c.Description.Clone()
	out.CompletedDays = slices.Clone(c.CompletedDays)
	out.AccessPlans = slices.Clone(c.AccessPlans)
	if c.DailyTasks != nil {
		out.DailyTasks = make([]DailyTask, len(c.DailyTasks))
		for i, d := range c.DailyTasks {
			out.DailyTasks[i] = d.clone()
		}
	}
	return out
}
