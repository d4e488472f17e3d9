package validation

import (
	"math"
	"strings"
	"testing"

	"github.com/julianstephens/vitalit/internal/models"
)

func TestValidateUserData_Clean(t *testing.T) {
	u := models.NewUserData()
	u.Challenges["hydrate-7"] = models.Challenge{
		ID:            "hydrate-7",
		Days:          2,
		CurrentDay:    2,
		CompletedDays: []int{1},
		DailyTasks: []models.DailyTask{
			{Day: 1, Tasks: []string{"a"}, Completed: []bool{true}},
			{Day: 2, Tasks: []string{"b"}, Completed: []bool{false}},
		},
	}
	u.CurrentChallenge = "hydrate-7"
	u.Weights = []models.WeightLog{{Date: "2024-01-01", Weight: 70}}
	u.WaterLog = []models.WaterLog{{Date: "2024-01-01", Liters: 1}, {Date: "2024-01-01", Liters: 1}}

	result := New().ValidateUserData(u)
	if result.HasConflicts() {
		t.Errorf("unexpected conflicts: %s", result.FormatReport())
	}
	if result.FormatReport() != "No conflicts detected." {
		t.Errorf("FormatReport() = %q", result.FormatReport())
	}
}

func TestValidateUserData_Conflicts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(u *models.UserData)
		want   ConflictType
	}{
		{
			name: "completed day out of range",
			mutate: func(u *models.UserData) {
				u.Challenges["c"] = models.Challenge{ID: "c", Days: 1, CurrentDay: 1, CompletedDays: []int{3}}
			},
			want: ConflictCompletedDayOutOfRange,
		},
		{
			name: "duplicate completed day",
			mutate: func(u *models.UserData) {
				u.Challenges["c"] = models.Challenge{ID: "c", Days: 3, CurrentDay: 1, CompletedDays: []int{1, 1}}
			},
			want: ConflictDuplicateCompletedDay,
		},
		{
			name: "task arity",
			mutate: func(u *models.UserData) {
				u.Challenges["c"] = models.Challenge{ID: "c", Days: 1, CurrentDay: 1,
					DailyTasks: []models.DailyTask{{Day: 1, Tasks: []string{"a", "b"}, Completed: []bool{false}}}}
			},
			want: ConflictTaskArity,
		},
		{
			name:   "dangling current challenge",
			mutate: func(u *models.UserData) { u.CurrentChallenge = "nope" },
			want:   ConflictMissingChallenge,
		},
		{
			name: "duplicate badge",
			mutate: func(u *models.UserData) {
				u.Badges = []models.Badge{{ID: "first_step"}, {ID: "first_step"}}
			},
			want: ConflictDuplicateBadge,
		},
		{
			name: "two weights on one date",
			mutate: func(u *models.UserData) {
				u.Weights = []models.WeightLog{{Date: "2024-01-01", Weight: 70}, {Date: "2024-01-01", Weight: 71}}
			},
			want: ConflictDuplicateDate,
		},
		{
			name:   "bad date",
			mutate: func(u *models.UserData) { u.CaloriesLog = []models.CaloriesLog{{Date: "01/02/2024"}} },
			want:   ConflictInvalidDate,
		},
		{
			name:   "mood out of range",
			mutate: func(u *models.UserData) { u.Moods = []models.MoodLog{{Date: "2024-01-01", Mood: 7}} },
			want:   ConflictInvalidMood,
		},
		{
			name: "NaN weight",
			mutate: func(u *models.UserData) {
				u.Weights = []models.WeightLog{{Date: "2024-01-01", Weight: math.NaN()}}
			},
			want: ConflictNonFinite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := models.NewUserData()
			tt.mutate(&u)
			result := New().ValidateUserData(u)
			found := false
			for _, c := range result.Conflicts {
				if c.Type == tt.want {
					found = true
				}
			}
			if !found {
				t.Errorf("expected conflict %s, got %+v", tt.want, result.Conflicts)
			}
		})
	}
}

func TestValidateUserData_UnknownTemplate(t *testing.T) {
	u := models.NewUserData()
	u.Challenges["retired"] = models.Challenge{ID: "retired", Days: 1, CurrentDay: 1}
	v := &Validator{KnownChallenges: []string{"no-sugar-30"}}
	result := v.ValidateUserData(u)
	if len(result.Conflicts) != 1 || result.Conflicts[0].Type != ConflictUnknownTemplate {
		t.Errorf("conflicts = %+v, want one unknown_template", result.Conflicts)
	}
}

func TestStruct(t *testing.T) {
	type entry struct {
		Date   string  `validate:"required,isodate"`
		Liters float64 `validate:"gt=0,lte=10"`
	}

	if err := Struct(entry{Date: "2024-05-01", Liters: 0.5}); err != nil {
		t.Errorf("Struct() error = %v, want nil", err)
	}

	err := Struct(entry{Date: "May 1", Liters: 0})
	if err == nil {
		t.Fatal("Struct() error = nil, want failure")
	}
	for _, want := range []string{"entry.Date: must be a YYYY-MM-DD date", "entry.Liters: must be greater than 0"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Struct() error = %q, want it to contain %q", err, want)
		}
	}
}

func TestVar(t *testing.T) {
	if err := Var("weight", 70.0, "gt=0,lte=500"); err != nil {
		t.Errorf("Var() error = %v", err)
	}
	if err := Var("weight", -1.0, "gt=0,lte=500"); err == nil || !strings.Contains(err.Error(), "invalid weight") {
		t.Errorf("Var() error = %v, want invalid weight", err)
	}
}
