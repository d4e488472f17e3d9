package badges

import (
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/julianstephens/vitalit/internal/models"
	"github.com/julianstephens/vitalit/internal/utils"
)

var now = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func engine() *Engine {
	return NewEngine(utils.NewManualClock(now))
}

func challenge(id string, days int, completed ...int) models.Challenge {
	return models.Challenge{
		ID:            id,
		Name:          models.Plain(id),
		Days:          days,
		CompletedDays: completed,
		IsActive:      true,
	}
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// dates returns n consecutive dates ending on the day before now.
func dates(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = utils.FormatDate(now.AddDate(0, 0, -n+i))
	}
	return out
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		setup func(u *models.UserData)
		want  []string
	}{
		{
			name:  "empty",
			setup: func(u *models.UserData) {},
			want:  nil,
		},
		{
			name: "first day of a challenge",
			setup: func(u *models.UserData) {
				u.Challenges["walk-14"] = challenge("walk-14", 14, 1)
			},
			want: []string{FirstStep},
		},
		{
			name: "halfway",
			setup: func(u *models.UserData) {
				u.Challenges["walk-14"] = challenge("walk-14", 14, seq(7)...)
			},
			want: []string{FirstStep, Halfway},
		},
		{
			name: "finished week challenge",
			setup: func(u *models.UserData) {
				u.Challenges["hydrate-7"] = challenge("hydrate-7", 7, seq(7)...)
			},
			want: []string{"challenge-hydrate-7", FirstStep, Halfway, WeekWarrior},
		},
		{
			name: "finished no sugar",
			setup: func(u *models.UserData) {
				u.Challenges["no-sugar-30"] = challenge("no-sugar-30", 30, seq(30)...)
			},
			want: []string{"challenge-no-sugar-30", FirstStep, Halfway, MonthMaster, NoSugarHero},
		},
		{
			name: "inactive complete challenge gives no challenge badge",
			setup: func(u *models.UserData) {
				c := challenge("hydrate-7", 7, seq(7)...)
				c.IsActive = false
				u.Challenges["hydrate-7"] = c
			},
			want: []string{FirstStep, Halfway, WeekWarrior},
		},
		{
			name: "two litres today",
			setup: func(u *models.UserData) {
				today := utils.FormatDate(now)
				u.WaterLog = []models.WaterLog{{Date: today, Liters: 1.25}, {Date: today, Liters: 0.75}}
			},
			want: []string{HydrationHero},
		},
		{
			name: "two litres spread over days is not hydration hero",
			setup: func(u *models.UserData) {
				u.WaterLog = []models.WaterLog{{Date: "2024-03-14", Liters: 1.5}, {Date: utils.FormatDate(now), Liters: 0.5}}
			},
			want: nil,
		},
		{
			name: "week of water",
			setup: func(u *models.UserData) {
				for _, d := range dates(7) {
					u.WaterLog = append(u.WaterLog, models.WaterLog{Date: d, Liters: 0.5})
				}
			},
			want: []string{Hydrated, Consistent},
		},
		{
			name: "mixed activity week",
			setup: func(u *models.UserData) {
				ds := dates(7)
				u.Weights = []models.WeightLog{{Date: ds[0], Weight: 80}, {Date: ds[3], Weight: 79}}
				u.Moods = []models.MoodLog{{Date: ds[1], Mood: models.MoodGood}, {Date: ds[4], Mood: models.MoodOkay}}
				u.CaloriesLog = []models.CaloriesLog{{Date: ds[2], Calories: 1800}}
				u.ExerciseHistory = []models.ExerciseLog{{ExerciseID: "squats", Date: ds[5]}}
				u.Measurements = []models.Measurement{{Date: ds[6], Waist: 80}}
			},
			want: []string{Consistent},
		},
		{
			name: "fortnight of meals",
			setup: func(u *models.UserData) {
				for _, d := range dates(14) {
					u.MealLogs = append(u.MealLogs, models.MealLog{MealID: "moi-moi", Date: d})
				}
			},
			want: []string{Consistent, HealthyEater},
		},
		{
			name: "twenty distinct exercises",
			setup: func(u *models.UserData) {
				for i := range 20 {
					u.ExerciseHistory = append(u.ExerciseHistory, models.ExerciseLog{ExerciseID: fmt.Sprintf("ex-%d", i), Date: "2024-01-01"})
				}
			},
			want: []string{ExerciseEnthusiast},
		},
		{
			name: "repeated exercise does not count twice",
			setup: func(u *models.UserData) {
				for range 25 {
					u.ExerciseHistory = append(u.ExerciseHistory, models.ExerciseLog{ExerciseID: "squats", Date: "2024-01-01"})
				}
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := models.NewUserData()
			tt.setup(&u)
			got := engine().Evaluate(u)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWaterChampion(t *testing.T) {
	u := models.NewUserData()
	u.Profile.Weight = 60 // 2100 ml target when sedentary and maintaining
	for i := range 30 {
		d := utils.FormatDate(now.AddDate(0, 0, -2*i-1))
		u.WaterLog = append(u.WaterLog,
			models.WaterLog{Date: d, Liters: 1.5},
			models.WaterLog{Date: d, Liters: 0.75},
		)
	}

	got := engine().Evaluate(u)
	if !slices.Contains(got, WaterChampion) {
		t.Errorf("Evaluate() = %v, want %s", got, WaterChampion)
	}

	u.Profile.Weight = 0
	if slices.Contains(engine().Evaluate(u), WaterChampion) {
		t.Error("water champion awarded without a water target")
	}
}

func TestEvaluateSkipsUnlocked(t *testing.T) {
	u := models.NewUserData()
	u.Challenges["hydrate-7"] = challenge("hydrate-7", 7, seq(7)...)
	for _, id := range []string{"challenge-hydrate-7", FirstStep, Halfway} {
		u.Badges = append(u.Badges, models.Badge{ID: id, IsUnlocked: true})
	}

	got := engine().Evaluate(u)
	if !slices.Equal(got, []string{WeekWarrior}) {
		t.Errorf("Evaluate() = %v, want [%s]", got, WeekWarrior)
	}
}

func TestEvaluateIsRepeatable(t *testing.T) {
	u := models.NewUserData()
	u.Challenges["walk-14"] = challenge("walk-14", 14, seq(14)...)
	e := engine()
	first := e.Evaluate(u)
	second := e.Evaluate(u)
	if !slices.Equal(first, second) {
		t.Errorf("Evaluate() not deterministic: %v then %v", first, second)
	}
}

func TestChallengeBadgeID(t *testing.T) {
	id := ChallengeBadgeID("walk-14")
	if id != "challenge-walk-14" {
		t.Errorf("ChallengeBadgeID() = %q", id)
	}
	back, ok := ChallengeFromBadgeID(id)
	if !ok || back != "walk-14" {
		t.Errorf("ChallengeFromBadgeID(%q) = %q, %v", id, back, ok)
	}
	if _, ok := ChallengeFromBadgeID(FirstStep); ok {
		t.Error("fixed badge parsed as challenge badge")
	}
}

func TestEvaluateInactiveChallenge(t *testing.T) {
	u := models.NewUserData()
	c := challenge("hydrate-7", 7, seq(7)...)
	c.IsActive = false
	u.Challenges["hydrate-7"] = c

	got := engine().Evaluate(u)
	want := []string{FirstStep, Halfway, WeekWarrior}
	if !slices.Equal(got, want) {
		t.Errorf("Evaluate() = %v, want %v", got, want)
	}
}
