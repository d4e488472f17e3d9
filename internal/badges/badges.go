// Package badges decides which achievements a snapshot newly qualifies for.
package badges

import (
	"slices"
	"strings"

	"github.com/julianstephens/vitalit/internal/constants"
	"github.com/julianstephens/vitalit/internal/models"
	"github.com/julianstephens/vitalit/internal/progress"
	"github.com/julianstephens/vitalit/internal/utils"
)

// Badge ids awarded by the fixed rules. Challenge completion badges are
// dynamic and use ChallengeBadgeID.
const (
	HydrationHero      = "hydration-hero"
	FirstStep          = "first_step"
	Halfway            = "halfway"
	WeekWarrior        = "week_warrior"
	MonthMaster        = "month_master"
	NoSugarHero        = "no_sugar_hero"
	Hydrated           = "hydrated"
	Consistent         = "consistent"
	HealthyEater       = "healthy_eater"
	WaterChampion      = "water_champion"
	ExerciseEnthusiast = "exercise_enthusiast"

	challengePrefix = "challenge-"
	noSugarID       = "no-sugar-30"
)

// ChallengeBadgeID is the badge awarded for finishing challenge id.
func ChallengeBadgeID(challengeID string) string {
	return challengePrefix + challengeID
}

// ChallengeFromBadgeID reverses ChallengeBadgeID.
func ChallengeFromBadgeID(badgeID string) (string, bool) {
	return strings.CutPrefix(badgeID, challengePrefix)
}

type rule struct {
	id    string
	check func(u models.UserData, today string) bool
}

// Engine evaluates the rule set. It holds no counters; the same snapshot
// always yields the same answer.
type Engine struct {
	clock utils.Clock
	rules []rule
}

func NewEngine(clock utils.Clock) *Engine {
	return &Engine{clock: clock, rules: fixedRules()}
}

// Evaluate returns the ids of badges u qualifies for that are not yet
// unlocked, challenge badges first in challenge id order, then the fixed
// rules in declaration order.
func (e *Engine) Evaluate(u models.UserData) []string {
	today := utils.Today(e.clock)
	var out []string
	add := func(id string) {
		if !u.HasBadge(id) && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}

	for _, id := range u.ChallengeIDs() {
		c := u.Challenges[id]
		if c.IsActive && c.IsComplete() {
			add(ChallengeBadgeID(id))
		}
	}
	for _, r := range e.rules {
		if r.check(u, today) {
			add(r.id)
		}
	}
	return out
}

// The progress rules below count every challenge, active or not. Only the
// per-challenge completion badge requires an active challenge.
func fixedRules() []rule {
	return []rule{
		{HydrationHero, func(u models.UserData, today string) bool {
			return u.WaterTotal(today) >= constants.HydrationHeroLiters
		}},
		{FirstStep, func(u models.UserData, _ string) bool {
			return anyChallenge(u, func(c models.Challenge) bool { return len(c.CompletedDays) >= 1 })
		}},
		{Halfway, func(u models.UserData, _ string) bool {
			return anyChallenge(u, func(c models.Challenge) bool {
				return c.Days > 0 && len(c.CompletedDays)*2 >= c.Days
			})
		}},
		{WeekWarrior, func(u models.UserData, _ string) bool {
			return anyChallenge(u, func(c models.Challenge) bool { return c.Days == 7 && c.IsComplete() })
		}},
		{MonthMaster, func(u models.UserData, _ string) bool {
			return anyChallenge(u, func(c models.Challenge) bool { return c.Days == 30 && c.IsComplete() })
		}},
		{NoSugarHero, func(u models.UserData, _ string) bool {
			c, ok := u.Challenges[noSugarID]
			return ok && c.IsComplete()
		}},
		{Hydrated, func(u models.UserData, _ string) bool {
			return progress.LongestStreak(waterDates(u)) >= 7
		}},
		{Consistent, func(u models.UserData, _ string) bool {
			return progress.LongestStreak(activityDates(u)) >= 7
		}},
		{HealthyEater, func(u models.UserData, _ string) bool {
			return progress.LongestStreak(mealDates(u)) >= 14
		}},
		{WaterChampion, func(u models.UserData, _ string) bool {
			return waterGoalDays(u) >= 30
		}},
		{ExerciseEnthusiast, func(u models.UserData, _ string) bool {
			return distinctExercises(u) >= 20
		}},
	}
}

func anyChallenge(u models.UserData, pred func(models.Challenge) bool) bool {
	for _, c := range u.Challenges {
		if pred(c) {
			return true
		}
	}
	return false
}

func waterDates(u models.UserData) []string {
	out := make([]string, len(u.WaterLog))
	for i, w := range u.WaterLog {
		out[i] = w.Date
	}
	return out
}

func mealDates(u models.UserData) []string {
	out := make([]string, len(u.MealLogs))
	for i, m := range u.MealLogs {
		out[i] = m.Date
	}
	return out
}

// activityDates collects the date of every log entry of any kind.
func activityDates(u models.UserData) []string {
	out := slices.Concat(waterDates(u), mealDates(u))
	for _, w := range u.Weights {
		out = append(out, w.Date)
	}
	for _, m := range u.Moods {
		out = append(out, m.Date)
	}
	for _, c := range u.CaloriesLog {
		out = append(out, c.Date)
	}
	for _, e := range u.ExerciseHistory {
		out = append(out, e.Date)
	}
	for _, m := range u.Measurements {
		out = append(out, m.Date)
	}
	return out
}

// waterGoalDays counts the dates whose water total met the profile target.
func waterGoalDays(u models.UserData) int {
	p := u.Profile
	target := progress.WaterIntakeML(p.Weight, p.ActivityLevel, p.Goal)
	if target <= 0 {
		return 0
	}
	totals := make(map[string]float64)
	for _, w := range u.WaterLog {
		totals[w.Date] += w.Liters
	}
	n := 0
	for _, liters := range totals {
		if liters*1000 >= float64(target) {
			n++
		}
	}
	return n
}

func distinctExercises(u models.UserData) int {
	seen := make(map[string]bool)
	for _, e := range u.ExerciseHistory {
		if e.ExerciseID != "" {
			seen[e.ExerciseID] = true
		}
	}
	return len(seen)
}
