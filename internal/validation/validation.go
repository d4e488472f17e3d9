package validation

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/julianstephens/vitalit/internal/models"
	"github.com/julianstephens/vitalit/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictCompletedDayOutOfRange ConflictType = "completed_day_out_of_range"
	ConflictDuplicateCompletedDay  ConflictType = "duplicate_completed_day"
	ConflictCurrentDayOutOfRange   ConflictType = "current_day_out_of_range"
	ConflictTaskArity              ConflictType = "task_arity_mismatch"
	ConflictMissingChallenge       ConflictType = "missing_current_challenge"
	ConflictDuplicateBadge         ConflictType = "duplicate_badge"
	ConflictDuplicateDate          ConflictType = "duplicate_date_entry"
	ConflictInvalidDate            ConflictType = "invalid_date"
	ConflictInvalidMood            ConflictType = "invalid_mood"
	ConflictNonFinite              ConflictType = "non_finite_value"
	ConflictUnknownTemplate        ConflictType = "unknown_template"
)

// Conflict represents an inconsistency found in a user data snapshot
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // ids involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

// Validator checks user data snapshots for broken invariants
type Validator struct {
	// KnownChallenges, when set, flags started challenges with no template.
	KnownChallenges []string
}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateUserData checks every invariant the reducer is supposed to keep.
func (v *Validator) ValidateUserData(u models.UserData) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	for _, id := range u.ChallengeIDs() {
		v.validateChallenge(&result, u.Challenges[id])
	}
	if u.CurrentChallenge != "" {
		if _, ok := u.Challenges[u.CurrentChallenge]; !ok {
			result.add(Conflict{
				Type:        ConflictMissingChallenge,
				Description: fmt.Sprintf("Current challenge %q has not been started", u.CurrentChallenge),
				Items:       []string{u.CurrentChallenge},
			})
		}
	}

	seen := make(map[string]bool)
	for _, b := range u.Badges {
		if seen[b.ID] {
			result.add(Conflict{
				Type:        ConflictDuplicateBadge,
				Description: fmt.Sprintf("Badge %q is unlocked more than once", b.ID),
				Items:       []string{b.ID},
			})
		}
		seen[b.ID] = true
	}

	weightDates := make([]string, 0, len(u.Weights))
	for _, w := range u.Weights {
		weightDates = append(weightDates, w.Date)
		checkFinite(&result, "weight", w.Date, w.Weight)
	}
	checkDates(&result, "weight", weightDates, true)

	calorieDates := make([]string, 0, len(u.CaloriesLog))
	for _, c := range u.CaloriesLog {
		calorieDates = append(calorieDates, c.Date)
	}
	checkDates(&result, "calories", calorieDates, true)

	measureDates := make([]string, 0, len(u.Measurements))
	for _, m := range u.Measurements {
		measureDates = append(measureDates, m.Date)
	}
	checkDates(&result, "measurement", measureDates, true)

	waterDates := make([]string, 0, len(u.WaterLog))
	for _, w := range u.WaterLog {
		waterDates = append(waterDates, w.Date)
		checkFinite(&result, "water", w.Date, w.Liters)
	}
	checkDates(&result, "water", waterDates, false)

	for _, m := range u.Moods {
		if !m.Mood.Valid() {
			result.add(Conflict{
				Type:        ConflictInvalidMood,
				Description: fmt.Sprintf("Mood entry on %s has rating %d outside 1..5", m.Date, m.Mood),
				Date:        m.Date,
			})
		}
	}

	return result
}

func (v *Validator) validateChallenge(result *ValidationResult, c models.Challenge) {
	if len(v.KnownChallenges) > 0 && !slices.Contains(v.KnownChallenges, c.ID) {
		result.add(Conflict{
			Type:        ConflictUnknownTemplate,
			Description: fmt.Sprintf("Challenge %q has no catalog template", c.ID),
			Items:       []string{c.ID},
		})
	}

	seen := make(map[int]bool)
	for _, d := range c.CompletedDays {
		if d < 1 || d > c.Days {
			result.add(Conflict{
				Type:        ConflictCompletedDayOutOfRange,
				Description: fmt.Sprintf("Challenge %q lists completed day %d outside 1..%d", c.ID, d, c.Days),
				Items:       []string{c.ID},
			})
		}
		if seen[d] {
			result.add(Conflict{
				Type:        ConflictDuplicateCompletedDay,
				Description: fmt.Sprintf("Challenge %q lists day %d as completed twice", c.ID, d),
				Items:       []string{c.ID},
			})
		}
		seen[d] = true
	}

	if c.Days > 0 && (c.CurrentDay < 1 || c.CurrentDay > c.Days) {
		result.add(Conflict{
			Type:        ConflictCurrentDayOutOfRange,
			Description: fmt.Sprintf("Challenge %q current day %d is outside 1..%d", c.ID, c.CurrentDay, c.Days),
			Items:       []string{c.ID},
		})
	}

	for _, d := range c.DailyTasks {
		if len(d.Tasks) != len(d.Completed) {
			result.add(Conflict{
				Type: ConflictTaskArity,
				Description: fmt.Sprintf("Challenge %q day %d has %d tasks but %d completion flags",
					c.ID, d.Day, len(d.Tasks), len(d.Completed)),
				Items: []string{c.ID},
			})
		}
	}
}

func checkDates(result *ValidationResult, kind string, dates []string, unique bool) {
	counts := make(map[string]int)
	for _, d := range dates {
		if !utils.ValidateDate(d) {
			result.add(Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("%s entry has invalid date %q", kind, d),
				Date:        d,
			})
			continue
		}
		counts[d]++
	}
	if !unique {
		return
	}
	dups := make([]string, 0)
	for d, n := range counts {
		if n > 1 {
			dups = append(dups, d)
		}
	}
	sort.Strings(dups)
	for _, d := range dups {
		result.add(Conflict{
			Type:        ConflictDuplicateDate,
			Description: fmt.Sprintf("%s log has %d entries for %s", kind, counts[d], d),
			Date:        d,
		})
	}
}

func checkFinite(result *ValidationResult, kind, date string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		result.add(Conflict{
			Type:        ConflictNonFinite,
			Description: fmt.Sprintf("%s entry on %s is not a finite number", kind, date),
			Date:        date,
		})
	}
}
