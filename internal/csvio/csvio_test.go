package csvio

import (
	"bytes"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/vitalit/internal/catalog"
	"github.com/julianstephens/vitalit/internal/models"
)

var exportTime = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

func sampleData() models.UserData {
	u := models.NewUserData()
	u.Profile.Name = "Ada, Obi"
	u.Profile.Age = 34
	u.Profile.Height = 170
	u.Profile.Sex = models.SexFemale
	u.Profile.Diet = []string{"vegetarian", "low-salt"}
	u.Weights = []models.WeightLog{{Date: "2024-03-14", Weight: 71.2}, {Date: "2024-03-15", Weight: 70.9}}
	u.CaloriesLog = []models.CaloriesLog{{Date: "2024-03-15", Calories: 1800}}
	u.WaterLog = []models.WaterLog{{ID: "w1", Date: "2024-03-15", Liters: 0.5, Time: "08:00:00"}}
	u.Moods = []models.MoodLog{{Date: "2024-03-15", Mood: models.MoodGood, Time: "08:05:00"}}
	u.MealLogs = []models.MealLog{{
		ID: "m1", MealID: "moi-moi", MealName: "Moi Moi", Calories: 320, Protein: 18, Carbs: 40, Fat: 9,
		MealType: models.MealBreakfast, Date: "2024-03-15", Time: "07:30:00",
	}}
	u.ExerciseHistory = []models.ExerciseLog{{ExerciseID: "squats", Date: "2024-03-15", DurationMin: 15, Completed: true}}
	u.Measurements = []models.Measurement{{Date: "2024-03-15", Waist: 80, Hips: 98}}
	unlocked := exportTime
	u.Badges = []models.Badge{{ID: "first_step", Name: "First Step", IsUnlocked: true, UnlockedAt: &unlocked}}
	u.Favorites.Meals = []string{"jollof-rice", "moi-moi"}
	return u
}

func exportString(t *testing.T, u models.UserData, caches Caches) string {
	t.Helper()
	var buf bytes.Buffer
	if err := (Exporter{Now: exportTime}).Export(&buf, u, caches); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	return buf.String()
}

func testImporter(t *testing.T) Importer {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	return Importer{Templates: c, Location: time.UTC}
}

func TestExportLayout(t *testing.T) {
	out := exportString(t, sampleData(), Caches{Water: &models.WaterIntakeData{Weight: 70, RecommendedML: 2450}})

	for _, want := range []string{
		"vitalit - Complete Health Data Export\nExport Date: 2024-03-15\n\n",
		"USER PROFILE\nField,Value\nName,\"Ada, Obi\"\n",
		"Diet Preferences,\"vegetarian, low-salt\"\n",
		"WEIGHT TRACKING\nDate,Weight (kg)\n2024-03-14,71.2\n2024-03-15,70.9\n\n",
		"WATER INTAKE CALCULATOR\nMetric,Value\nWeight (kg),70\n",
		"BODY MEASUREMENTS\nDate,Waist (cm),Hips (cm),Chest (cm),Arms (cm),Thighs (cm)\n2024-03-15,80,98,,,\n",
		"FAVORITES\nType,Item IDs\nExercises,\nMeals,\"jollof-rice, moi-moi\"\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, SectionBodyCalc) {
		t.Error("export includes a calculator section with no snapshot")
	}
}

func TestParseRows(t *testing.T) {
	in := "Date, Weight\n2024-03-14,71\n2024-03-15,70,extra\n\"2024-03-16\",\"69.5\"\n"
	rows, dropped, err := ParseRows(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseRows() error = %v", err)
	}
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
	if len(rows) != 2 || rows[1]["Weight"] != "69.5" || rows[0]["Date"] != "2024-03-14" {
		t.Errorf("rows = %v", rows)
	}

	if _, _, err := ParseRows(strings.NewReader("Date,Weight\n")); err == nil {
		t.Error("ParseRows() accepted a header-only file")
	}
}

func TestParseSections(t *testing.T) {
	sections, _, err := ParseSections(strings.NewReader(exportString(t, sampleData(), Caches{})))
	if err != nil {
		t.Fatalf("ParseSections() error = %v", err)
	}
	var titles []string
	for _, s := range sections {
		titles = append(titles, s.Title)
	}
	want := []string{
		SectionProfile, SectionWeight, SectionMood, SectionWater, SectionCalories,
		SectionMeasurements, SectionBadges, SectionChallenges, SectionExercise, SectionMeals, SectionFavorites,
	}
	if !slices.Equal(titles, want) {
		t.Errorf("titles = %v, want %v", titles, want)
	}

	if _, _, err := ParseSections(strings.NewReader("a,b\n1,2\n")); err == nil {
		t.Error("ParseSections() accepted a file with no sections")
	}
}

func TestImportIntoEmptyRestoresData(t *testing.T) {
	src := sampleData()
	res, err := testImporter(t).Import(strings.NewReader(exportString(t, src, Caches{})), models.NewUserData())
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	u := res.Data

	if u.Profile.Name != "Ada, Obi" || u.Profile.Sex != models.SexFemale || !slices.Equal(u.Profile.Diet, src.Profile.Diet) {
		t.Errorf("profile = %+v", u.Profile)
	}
	if !slices.Equal(u.Weights, src.Weights) || !slices.Equal(u.CaloriesLog, src.CaloriesLog) {
		t.Errorf("weights = %v calories = %v", u.Weights, u.CaloriesLog)
	}
	if len(u.WaterLog) != 1 || u.WaterLog[0].Liters != 0.5 || u.WaterLog[0].ID == "" {
		t.Errorf("water = %+v", u.WaterLog)
	}
	wantStamp := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	if !u.WaterLog[0].Timestamp.Equal(wantStamp) {
		t.Errorf("water timestamp = %v, want %v", u.WaterLog[0].Timestamp, wantStamp)
	}
	if len(u.Moods) != 1 || u.Moods[0].Mood != models.MoodGood {
		t.Errorf("moods = %+v", u.Moods)
	}
	if len(u.MealLogs) != 1 || u.MealLogs[0].MealName != "Moi Moi" || u.MealLogs[0].Fat != 9 {
		t.Errorf("meals = %+v", u.MealLogs)
	}
	if !slices.Equal(u.ExerciseHistory, src.ExerciseHistory) || !slices.Equal(u.Measurements, src.Measurements) {
		t.Errorf("exercise = %v measurements = %v", u.ExerciseHistory, u.Measurements)
	}
	if !u.HasBadge("first_step") || u.Badges[0].UnlockedAt == nil || !u.Badges[0].UnlockedAt.Equal(exportTime) {
		t.Errorf("badges = %+v", u.Badges)
	}
	if !slices.Equal(u.Favorites.Meals, src.Favorites.Meals) {
		t.Errorf("favorites = %+v", u.Favorites)
	}
	if res.Skipped != 0 {
		t.Errorf("skipped = %d, want 0", res.Skipped)
	}
}

func TestImportMergePolicy(t *testing.T) {
	im := testImporter(t)
	export := exportString(t, sampleData(), Caches{})

	base := models.NewUserData()
	base.Weights = []models.WeightLog{{Date: "2024-03-15", Weight: 99}, {Date: "2024-03-01", Weight: 75}}
	base.WaterLog = []models.WaterLog{{ID: "mine", Date: "2024-03-15", Liters: 0.5, Time: "08:00:00"}}
	base.Favorites.Meals = []string{"pepper-soup", "moi-moi"}
	base.Profile.Age = 40

	res, err := im.Import(strings.NewReader(export), base)
	if err != nil {
		t.Fatal(err)
	}
	u := res.Data

	wantWeights := []models.WeightLog{{Date: "2024-03-15", Weight: 70.9}, {Date: "2024-03-01", Weight: 75}, {Date: "2024-03-14", Weight: 71.2}}
	if !slices.Equal(u.Weights, wantWeights) {
		t.Errorf("weights = %v, want %v", u.Weights, wantWeights)
	}
	if len(u.WaterLog) != 1 || u.WaterLog[0].ID != "mine" {
		t.Errorf("identical water row was not skipped: %+v", u.WaterLog)
	}
	if want := []string{"pepper-soup", "moi-moi", "jollof-rice"}; !slices.Equal(u.Favorites.Meals, want) {
		t.Errorf("favorites = %v, want %v", u.Favorites.Meals, want)
	}
	if u.Profile.Age != 34 {
		t.Errorf("age = %d, want 34 from the import", u.Profile.Age)
	}
	if len(base.Weights) != 2 || base.Weights[0].Weight != 99 {
		t.Error("Import() mutated the base snapshot")
	}

	// Importing the same file twice changes nothing further.
	again, err := im.Import(strings.NewReader(export), u)
	if err != nil {
		t.Fatal(err)
	}
	if len(again.Data.WaterLog) != len(u.WaterLog) || len(again.Data.MealLogs) != len(u.MealLogs) ||
		len(again.Data.Moods) != len(u.Moods) || len(again.Data.ExerciseHistory) != len(u.ExerciseHistory) {
		t.Errorf("second import appended duplicates: %+v", again.Data)
	}
}

func TestImportRebuildsChallenges(t *testing.T) {
	u := models.NewUserData()
	c, _ := catalog.MustDefault().Challenge("hydrate-7")
	ch := c.Instantiate(exportTime)
	ch.CompletedDays = []int{1, 2}
	ch.CurrentDay = 3
	u.Challenges["hydrate-7"] = ch
	u.CurrentChallenge = "hydrate-7"

	res, err := testImporter(t).Import(strings.NewReader(exportString(t, u, Caches{})), models.NewUserData())
	if err != nil {
		t.Fatal(err)
	}
	got, ok := res.Data.Challenges["hydrate-7"]
	if !ok {
		t.Fatalf("challenge not imported: %+v", res.Data.Challenges)
	}
	if !slices.Equal(got.CompletedDays, []int{1, 2}) || got.CurrentDay != 3 || !got.IsActive {
		t.Errorf("challenge = %+v", got)
	}
	day1, _, _ := got.Task(1)
	day3, _, _ := got.Task(3)
	if !day1.AllCompleted() || day3.AllCompleted() {
		t.Errorf("task flags not rebuilt: day1=%v day3=%v", day1.Completed, day3.Completed)
	}
	if !got.StartDate.Equal(exportTime) {
		t.Errorf("start date = %v", got.StartDate)
	}
	if res.Data.CurrentChallenge != "hydrate-7" {
		t.Errorf("current challenge = %q", res.Data.CurrentChallenge)
	}
}

func TestImportSkipsInvalidRows(t *testing.T) {
	in := strings.Join([]string{
		"WEIGHT TRACKING",
		"Date,Weight (kg)",
		"2024-03-15,70",
		"not-a-date,70",
		"2024-03-16,-1",
		"2024-03-17,70,extra",
		"",
		"MOOD TRACKING",
		"Date,Time,Mood,Emoji",
		"2024-03-15,08:00:00,9,",
		"2024-03-15,08:00:00,😄,",
		"",
		"CHALLENGES",
		"Challenge ID,Challenge Name,Description,Days,Current Day,Completed Days,Status,Start Date",
		"unknown-1,X,Y,3,1,,Active,",
		"",
	}, "\n")

	res, err := testImporter(t).Import(strings.NewReader(in), models.NewUserData())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Data.Weights) != 1 || len(res.Data.Moods) != 1 || res.Data.Moods[0].Mood != models.MoodGreat {
		t.Errorf("data = %+v", res.Data)
	}
	if res.Imported != 2 || res.Skipped != 5 {
		t.Errorf("imported = %d skipped = %d, want 2 and 5", res.Imported, res.Skipped)
	}
}

func TestImportCalculatorSnapshots(t *testing.T) {
	caches := Caches{
		Water:    &models.WaterIntakeData{Weight: 70, Activity: models.ActivityModerate, Goal: models.GoalMaintain, RecommendedML: 2450, LastUpdated: "2024-03-15"},
		Calories: &models.DailyCaloriesData{Weight: 70, Height: 175, Age: 30, Sex: models.SexMale, BMI: 22.86, RecommendedCalories: 2556},
		Body:     &models.BodyCompositionData{Waist: 80, Hip: 100, WaistToHipRatio: 0.8, BodyFatPercentage: 18.5},
	}
	res, err := testImporter(t).Import(strings.NewReader(exportString(t, models.NewUserData(), caches)), models.NewUserData())
	if err != nil {
		t.Fatal(err)
	}
	if res.Caches.Water == nil || *res.Caches.Water != *caches.Water {
		t.Errorf("water cache = %+v", res.Caches.Water)
	}
	if res.Caches.Calories == nil || res.Caches.Calories.RecommendedCalories != 2556 || res.Caches.Calories.BMI != 22.86 {
		t.Errorf("calories cache = %+v", res.Caches.Calories)
	}
	if res.Caches.Body == nil || res.Caches.Body.BodyFatPercentage != 18.5 {
		t.Errorf("body cache = %+v", res.Caches.Body)
	}
}

func TestImportBadProfileFieldKeepsCurrentValue(t *testing.T) {
	in := strings.Join([]string{
		"USER PROFILE",
		"Field,Value",
		"Name,Ada",
		"Age,thirty",
		"Sex,f",
		"Height (cm),tall",
		"Goal,bulk",
		"",
	}, "\n")

	base := models.NewUserData()
	base.Profile.Age = 34
	base.Profile.Sex = models.SexFemale
	base.Profile.Height = 170
	base.Profile.Goal = models.GoalLose

	res, err := testImporter(t).Import(strings.NewReader(in), base)
	if err != nil {
		t.Fatal(err)
	}
	p := res.Data.Profile
	if p.Name != "Ada" {
		t.Errorf("name = %q, want the valid row applied", p.Name)
	}
	if p.Age != 34 || p.Sex != models.SexFemale || p.Height != 170 || p.Goal != models.GoalLose {
		t.Errorf("profile = %+v, want unparsable fields left unchanged", p)
	}
	if res.Imported != 1 || res.Skipped != 4 {
		t.Errorf("imported = %d skipped = %d, want 1 and 4", res.Imported, res.Skipped)
	}
}

func TestImportKeepsExistingTaskProgress(t *testing.T) {
	tmpl, _ := catalog.MustDefault().Challenge("no-sugar-30")

	base := models.NewUserData()
	mine := tmpl.Instantiate(exportTime)
	for j := range mine.DailyTasks[0].Completed {
		mine.DailyTasks[0].Completed[j] = true
	}
	mine.CompletedDays = []int{1}
	mine.CurrentDay = 3
	mine.DailyTasks[2].Completed[0] = true
	mine.DailyTasks[2].Completed[1] = true
	base.Challenges["no-sugar-30"] = mine

	in := strings.Join([]string{
		"CHALLENGES",
		"Challenge ID,Challenge Name,Description,Days,Current Day,Completed Days,Status,Start Date",
		`no-sugar-30,30-Day No Sugar,x,30,3,"1, 2",Active,` + exportTime.Format(time.RFC3339),
		"",
	}, "\n")

	res, err := testImporter(t).Import(strings.NewReader(in), base)
	if err != nil {
		t.Fatal(err)
	}
	got := res.Data.Challenges["no-sugar-30"]
	if !slices.Equal(got.CompletedDays, []int{1, 2}) {
		t.Fatalf("completed days = %v, want [1 2]", got.CompletedDays)
	}
	day2, _, _ := got.Task(2)
	if !day2.AllCompleted() {
		t.Errorf("day 2 = %v, want every task done", day2.Completed)
	}
	day3, _, _ := got.Task(3)
	if !day3.Completed[0] || !day3.Completed[1] || day3.Completed[2] {
		t.Errorf("day 3 = %v, want the two existing checks kept", day3.Completed)
	}
	if base.Challenges["no-sugar-30"].DailyTasks[1].Completed[0] {
		t.Error("Import() mutated the base snapshot")
	}
}
