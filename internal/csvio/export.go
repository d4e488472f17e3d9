// Package csvio writes and reads the sectioned CSV export of a user's data.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/vitalit/internal/constants"
	"github.com/julianstephens/vitalit/internal/models"
)

// Section titles. Importers match on these exact strings.
const (
	SectionProfile      = "USER PROFILE"
	SectionWeight       = "WEIGHT TRACKING"
	SectionMood         = "MOOD TRACKING"
	SectionWater        = "WATER INTAKE TRACKING"
	SectionCalories     = "CALORIES TRACKING"
	SectionWaterCalc    = "WATER INTAKE CALCULATOR"
	SectionCaloriesCalc = "DAILY CALORIES & BMI DATA"
	SectionBodyCalc     = "BODY COMPOSITION DATA"
	SectionMeasurements = "BODY MEASUREMENTS"
	SectionBadges       = "BADGES & ACHIEVEMENTS"
	SectionChallenges   = "CHALLENGES"
	SectionExercise     = "EXERCISE HISTORY"
	SectionMeals        = "MEAL HISTORY"
	SectionFavorites    = "FAVORITES"
)

var knownSections = []string{
	SectionProfile, SectionWeight, SectionMood, SectionWater, SectionCalories,
	SectionWaterCalc, SectionCaloriesCalc, SectionBodyCalc, SectionMeasurements,
	SectionBadges, SectionChallenges, SectionExercise, SectionMeals, SectionFavorites,
}

// Caches are the optional calculator snapshots included in an export.
type Caches struct {
	Water    *models.WaterIntakeData
	Calories *models.DailyCaloriesData
	Body     *models.BodyCompositionData
}

// Exporter writes user data as labeled CSV sections.
type Exporter struct {
	// Locale resolves localized challenge names.
	Locale string
	// Now stamps the export header.
	Now time.Time
}

type sectionWriter struct {
	w   io.Writer
	csv *csv.Writer
	err error
}

func (s *sectionWriter) line(text string) {
	if s.err != nil {
		return
	}
	s.csv.Flush()
	if s.err = s.csv.Error(); s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, text+"\n")
}

func (s *sectionWriter) section(title string, header []string, rows [][]string) {
	s.line(title)
	if s.err != nil {
		return
	}
	if s.err = s.csv.Write(header); s.err != nil {
		return
	}
	if s.err = s.csv.WriteAll(rows); s.err != nil {
		return
	}
	s.line("")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// optional renders zero as an empty cell.
func optional(v float64) string {
	if v == 0 {
		return ""
	}
	return num(v)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// Export writes every section of u, plus the calculator snapshots present in
// caches, to w.
func (e Exporter) Export(w io.Writer, u models.UserData, caches Caches) error {
	locale := e.Locale
	if locale == "" {
		locale = constants.DefaultLocale
	}
	now := e.Now
	if now.IsZero() {
		now = time.Now()
	}

	sw := &sectionWriter{w: w, csv: csv.NewWriter(w)}
	sw.line(constants.AppName + " - Complete Health Data Export")
	sw.line("Export Date: " + now.Format(constants.DateFormat))
	sw.line("")

	p := u.Profile
	sw.section(SectionProfile, []string{"Field", "Value"}, [][]string{
		{"Name", p.Name},
		{"Age", strconv.Itoa(p.Age)},
		{"Height (cm)", num(p.Height)},
		{"Weight (kg)", num(p.Weight)},
		{"Target Weight (kg)", num(p.TargetWeight)},
		{"Sex", string(p.Sex)},
		{"Activity Level", string(p.ActivityLevel)},
		{"Goal", string(p.Goal)},
		{"Diet Preferences", strings.Join(p.Diet, ", ")},
		{"Language", p.Language},
	})

	rows := make([][]string, 0, len(u.Weights))
	for _, l := range u.Weights {
		rows = append(rows, []string{l.Date, num(l.Weight)})
	}
	sw.section(SectionWeight, []string{"Date", "Weight (kg)"}, rows)

	rows = rows[:0:0]
	for _, l := range u.Moods {
		rows = append(rows, []string{l.Date, l.Time, strconv.Itoa(int(l.Mood)), l.Mood.Emoji()})
	}
	sw.section(SectionMood, []string{"Date", "Time", "Mood", "Emoji"}, rows)

	rows = rows[:0:0]
	for _, l := range u.WaterLog {
		rows = append(rows, []string{l.Date, l.Time, num(l.Liters)})
	}
	sw.section(SectionWater, []string{"Date", "Time", "Liters"}, rows)

	rows = rows[:0:0]
	for _, l := range u.CaloriesLog {
		rows = append(rows, []string{l.Date, strconv.Itoa(l.Calories)})
	}
	sw.section(SectionCalories, []string{"Date", "Calories"}, rows)

	if d := caches.Water; d != nil {
		sw.section(SectionWaterCalc, []string{"Metric", "Value"}, [][]string{
			{"Weight (kg)", num(d.Weight)},
			{"Activity Level", string(d.Activity)},
			{"Goal", string(d.Goal)},
			{"Recommended Daily (ml)", strconv.Itoa(d.RecommendedML)},
			{"Logged Today (ml)", strconv.Itoa(d.LoggedMLToday)},
			{"Last Updated", d.LastUpdated},
		})
	}
	if d := caches.Calories; d != nil {
		sw.section(SectionCaloriesCalc, []string{"Metric", "Value"}, [][]string{
			{"Weight (kg)", num(d.Weight)},
			{"Height (cm)", num(d.Height)},
			{"Age", strconv.Itoa(d.Age)},
			{"Sex", string(d.Sex)},
			{"Activity Level", string(d.Activity)},
			{"Goal", string(d.Goal)},
			{"BMI", num(d.BMI)},
			{"Recommended Calories", strconv.Itoa(d.RecommendedCalories)},
			{"Last Updated", d.LastUpdated},
		})
	}
	if d := caches.Body; d != nil {
		sw.section(SectionBodyCalc, []string{"Metric", "Value"}, [][]string{
			{"Waist (cm)", num(d.Waist)},
			{"Hip (cm)", num(d.Hip)},
			{"Neck (cm)", num(d.Neck)},
			{"Height (cm)", num(d.Height)},
			{"Sex", string(d.Sex)},
			{"Waist-to-Hip Ratio", num(d.WaistToHipRatio)},
			{"Body Fat Percentage", num(d.BodyFatPercentage) + "%"},
			{"Last Updated", d.LastUpdated},
		})
	}

	rows = rows[:0:0]
	for _, m := range u.Measurements {
		rows = append(rows, []string{m.Date, optional(m.Waist), optional(m.Hips), optional(m.Chest), optional(m.Arms), optional(m.Thighs)})
	}
	sw.section(SectionMeasurements, []string{"Date", "Waist (cm)", "Hips (cm)", "Chest (cm)", "Arms (cm)", "Thighs (cm)"}, rows)

	rows = rows[:0:0]
	for _, b := range u.Badges {
		at := ""
		if b.UnlockedAt != nil {
			at = b.UnlockedAt.Format(time.RFC3339)
		}
		rows = append(rows, []string{b.ID, b.Name, b.Description, yesNo(b.IsUnlocked), at})
	}
	sw.section(SectionBadges, []string{"Badge ID", "Badge Name", "Description", "Unlocked", "Date Unlocked"}, rows)

	rows = rows[:0:0]
	for _, id := range slices.Sorted(maps.Keys(u.Challenges)) {
		c := u.Challenges[id]
		days := make([]string, len(c.CompletedDays))
		for i, d := range c.CompletedDays {
			days[i] = strconv.Itoa(d)
		}
		status := "Inactive"
		if c.IsActive {
			status = "Active"
		}
		start := ""
		if !c.StartDate.IsZero() {
			start = c.StartDate.Format(time.RFC3339)
		}
		rows = append(rows, []string{
			c.ID, c.Name.Resolve(locale), c.Description.Resolve(locale),
			strconv.Itoa(c.Days), strconv.Itoa(c.CurrentDay), strings.Join(days, ", "), status, start,
		})
	}
	sw.section(SectionChallenges, []string{"Challenge ID", "Challenge Name", "Description", "Days", "Current Day", "Completed Days", "Status", "Start Date"}, rows)

	rows = rows[:0:0]
	for _, l := range u.ExerciseHistory {
		rows = append(rows, []string{l.ExerciseID, l.Date, strconv.Itoa(l.DurationMin), yesNo(l.Completed)})
	}
	sw.section(SectionExercise, []string{"Exercise ID", "Date", "Duration (minutes)", "Completed"}, rows)

	rows = rows[:0:0]
	for _, l := range u.MealLogs {
		rows = append(rows, []string{
			l.MealID, l.MealName, l.Date, l.Time, string(l.MealType),
			strconv.Itoa(l.Calories), num(l.Protein), num(l.Carbs), num(l.Fat),
		})
	}
	sw.section(SectionMeals, []string{"Meal ID", "Meal Name", "Date", "Time", "Meal Type", "Calories", "Protein", "Carbs", "Fat"}, rows)

	sw.section(SectionFavorites, []string{"Type", "Item IDs"}, [][]string{
		{"Exercises", strings.Join(u.Favorites.Exercises, ", ")},
		{"Meals", strings.Join(u.Favorites.Meals, ", ")},
		{"Quotes", strings.Join(u.Favorites.Quotes, ", ")},
	})

	if sw.err != nil {
		return fmt.Errorf("failed to write export: %w", sw.err)
	}
	sw.csv.Flush()
	return sw.csv.Error()
}
