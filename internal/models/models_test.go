package models

import (
	"testing"
)

func TestParseMood(t *testing.T) {
	tests := []struct {
		in      string
		want    Mood
		wantErr bool
	}{
		{in: "1", want: MoodAwful},
		{in: " 5 ", want: MoodGreat},
		{in: "😊", want: MoodGood},
		{in: "😐", want: MoodMeh},
		{in: "0", wantErr: true},
		{in: "6", wantErr: true},
		{in: "happy", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMood(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMood(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMood(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestMoodEmoji(t *testing.T) {
	if MoodOkay.Emoji() != "🙂" {
		t.Errorf("MoodOkay.Emoji() = %q", MoodOkay.Emoji())
	}
	if Mood(9).Emoji() != "" {
		t.Errorf("out of range mood should have no emoji")
	}
}

func TestProfileUpdateApply(t *testing.T) {
	base := DefaultProfile()
	base.Name = "Ada"
	base.Weight = 70

	name := "Tunde"
	height := 175.0
	updated := ProfileUpdate{Name: &name, Height: &height}.Apply(base)

	if updated.Name != "Tunde" || updated.Height != 175 {
		t.Errorf("set fields not applied: %+v", updated)
	}
	if updated.Weight != 70 || updated.Goal != GoalMaintain {
		t.Errorf("unset fields changed: %+v", updated)
	}
	if base.Name != "Ada" {
		t.Errorf("Apply mutated its input")
	}
	if !(ProfileUpdate{}).IsEmpty() {
		t.Errorf("zero ProfileUpdate should be empty")
	}
}

func TestUserDataCloneIsIndependent(t *testing.T) {
	u := NewUserData()
	u.Challenges["c"] = Challenge{
		ID:         "c",
		Days:       1,
		DailyTasks: []DailyTask{{Day: 1, Tasks: []string{"a"}, Completed: []bool{false}}},
	}
	u.Favorites.Meals = append(u.Favorites.Meals, "jollof")

	c := u.Clone()
	c.Challenges["c"].DailyTasks[0].Completed[0] = true
	c.Favorites.Meals[0] = "eba"

	if u.Challenges["c"].DailyTasks[0].Completed[0] {
		t.Error("clone shares task completion slice")
	}
	if u.Favorites.Meals[0] != "jollof" {
		t.Error("clone shares favorites slice")
	}
}

func TestNormalizeFillsNilCollections(t *testing.T) {
	u := UserData{}.Normalize()
	if u.Challenges == nil || u.WaterLog == nil || u.Favorites.Quotes == nil {
		t.Errorf("Normalize() left nil collections: %+v", u)
	}
	if u.Profile.Language != "en-NG" {
		t.Errorf("Language = %q, want en-NG", u.Profile.Language)
	}
}

func TestWaterTotal(t *testing.T) {
	u := NewUserData()
	u.WaterLog = []WaterLog{
		{Date: "2024-01-01", Liters: 0.5},
		{Date: "2024-01-01", Liters: 0.75},
		{Date: "2024-01-02", Liters: 2},
	}
	if got := u.WaterTotal("2024-01-01"); got != 1.25 {
		t.Errorf("WaterTotal() = %v, want 1.25", got)
	}
}
