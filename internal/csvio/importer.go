package csvio

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/vitalit/internal/catalog"
	"github.com/julianstephens/vitalit/internal/constants"
	"github.com/julianstephens/vitalit/internal/logger"
	"github.com/julianstephens/vitalit/internal/models"
	"github.com/julianstephens/vitalit/internal/utils"
	"github.com/julianstephens/vitalit/internal/validation"
)

// Templates looks up challenge templates for rebuilding imported challenges.
type Templates interface {
	Challenge(id string) (catalog.ChallengeTemplate, bool)
}

// Result is the outcome of merging an export into a snapshot.
type Result struct {
	Data     models.UserData
	Caches   Caches
	Imported int
	Skipped  int
}

// Importer merges a sectioned export into an existing snapshot. Weight,
// calories and measurements replace same-date entries. Water, mood, meal and
// exercise rows append unless an identical entry exists. Profile fields
// overwrite when set, favorites and badges only grow, and challenges are
// rebuilt from their templates.
type Importer struct {
	Templates Templates
	Location  *time.Location
}

func (im Importer) location() *time.Location {
	if im.Location == nil {
		return time.Local
	}
	return im.Location
}

// Import reads r and merges it into base.
func (im Importer) Import(r io.Reader, base models.UserData) (Result, error) {
	sections, dropped, err := ParseSections(r)
	if err != nil {
		return Result{}, err
	}
	res := im.Merge(base, sections)
	res.Skipped += dropped
	return res, nil
}

// Merge applies parsed sections to a copy of base.
func (im Importer) Merge(base models.UserData, sections []Section) Result {
	m := merger{im: im, u: base.Normalize().Clone()}
	for _, s := range sections {
		switch s.Title {
		case SectionProfile:
			m.profile(s.Rows)
		case SectionWeight:
			m.each(s.Rows, m.weight)
		case SectionCalories:
			m.each(s.Rows, m.calories)
		case SectionMeasurements:
			m.each(s.Rows, m.measurement)
		case SectionWater:
			m.each(s.Rows, m.water)
		case SectionMood:
			m.each(s.Rows, m.mood)
		case SectionMeals:
			m.each(s.Rows, m.meal)
		case SectionExercise:
			m.each(s.Rows, m.exercise)
		case SectionBadges:
			m.each(s.Rows, m.badge)
		case SectionFavorites:
			m.each(s.Rows, m.favorite)
		case SectionChallenges:
			m.each(s.Rows, m.challenge)
		case SectionWaterCalc:
			m.waterCalc(metrics(s.Rows))
		case SectionCaloriesCalc:
			m.caloriesCalc(metrics(s.Rows))
		case SectionBodyCalc:
			m.bodyCalc(metrics(s.Rows))
		}
	}
	return Result{Data: m.u, Caches: m.caches, Imported: m.imported, Skipped: m.skipped}
}

type merger struct {
	im       Importer
	u        models.UserData
	caches   Caches
	imported int
	skipped  int
}

// outcome of one row
type outcome int

const (
	applied outcome = iota
	duplicate
	invalid
	empty
)

func (m *merger) each(rows []Row, fn func(Row) (outcome, error)) {
	for _, row := range rows {
		out, err := fn(row)
		switch {
		case err != nil:
			logger.Debug("Skipping CSV row", "row", row, "error", err)
			m.skipped++
		case out == applied:
			m.imported++
		case out == empty:
		default:
			m.skipped++
		}
	}
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
}

func requireDate(s string) (string, error) {
	if !utils.ValidateDate(s) {
		return "", fmt.Errorf("invalid date %q", s)
	}
	return s, nil
}

func (m *merger) stamp(date, clock string) time.Time {
	loc := m.im.location()
	if t, err := time.ParseInLocation(constants.DateFormat+" "+constants.TimeFormat, date+" "+clock, loc); err == nil {
		return t
	}
	t, _ := utils.ParseDateInLocation(date, loc)
	return t
}

// assign stores the parsed value in dst only when parsing succeeds.
func assign[T any](dst *T, value string, parse func(string) (T, error)) error {
	v, err := parse(value)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func (m *merger) profile(rows []Row) {
	p := m.u.Profile
	for _, row := range rows {
		field, value := row["Field"], row["Value"]
		if value == "" || value == "0" {
			continue
		}
		var err error
		switch field {
		case "Name":
			p.Name = value
		case "Age":
			err = assign(&p.Age, value, strconv.Atoi)
		case "Height (cm)":
			err = assign(&p.Height, value, parseFloat)
		case "Weight (kg)":
			err = assign(&p.Weight, value, parseFloat)
		case "Target Weight (kg)":
			err = assign(&p.TargetWeight, value, parseFloat)
		case "Sex":
			err = assign(&p.Sex, value, models.ParseSex)
		case "Activity Level":
			err = assign(&p.ActivityLevel, value, models.ParseActivityLevel)
		case "Goal":
			err = assign(&p.Goal, value, models.ParseGoal)
		case "Diet Preferences":
			p.Diet = splitList(value)
		case "Language":
			p.Language = value
		default:
			continue
		}
		if err != nil {
			logger.Debug("Skipping profile field", "field", field, "error", err)
			m.skipped++
			continue
		}
		m.imported++
	}
	if err := validation.Struct(p); err != nil {
		logger.Warn("Imported profile is invalid, keeping the current one", "error", err)
		return
	}
	m.u.Profile = p
}

func (m *merger) weight(row Row) (outcome, error) {
	date, err := requireDate(row["Date"])
	if err != nil {
		return invalid, err
	}
	w, err := parseFloat(row["Weight (kg)"])
	if err != nil || w <= 0 || w > 500 {
		return invalid, fmt.Errorf("invalid weight %q", row["Weight (kg)"])
	}
	entry := models.WeightLog{Date: date, Weight: w}
	if i := slices.IndexFunc(m.u.Weights, func(l models.WeightLog) bool { return l.Date == date }); i >= 0 {
		m.u.Weights[i] = entry
	} else {
		m.u.Weights = append(m.u.Weights, entry)
	}
	return applied, nil
}

func (m *merger) calories(row Row) (outcome, error) {
	date, err := requireDate(row["Date"])
	if err != nil {
		return invalid, err
	}
	c, err := strconv.Atoi(row["Calories"])
	if err != nil || c < 0 {
		return invalid, fmt.Errorf("invalid calories %q", row["Calories"])
	}
	entry := models.CaloriesLog{Date: date, Calories: c}
	if i := slices.IndexFunc(m.u.CaloriesLog, func(l models.CaloriesLog) bool { return l.Date == date }); i >= 0 {
		m.u.CaloriesLog[i] = entry
	} else {
		m.u.CaloriesLog = append(m.u.CaloriesLog, entry)
	}
	return applied, nil
}

func (m *merger) measurement(row Row) (outcome, error) {
	date, err := requireDate(row["Date"])
	if err != nil {
		return invalid, err
	}
	entry := models.Measurement{Date: date}
	for _, f := range []struct {
		col string
		dst *float64
	}{
		{"Waist (cm)", &entry.Waist},
		{"Hips (cm)", &entry.Hips},
		{"Chest (cm)", &entry.Chest},
		{"Arms (cm)", &entry.Arms},
		{"Thighs (cm)", &entry.Thighs},
	} {
		v, err := parseFloat(row[f.col])
		if err != nil || v < 0 {
			return invalid, fmt.Errorf("invalid %s %q", f.col, row[f.col])
		}
		*f.dst = v
	}
	if entry == (models.Measurement{Date: date}) {
		return invalid, fmt.Errorf("measurement on %s has no values", date)
	}
	if i := slices.IndexFunc(m.u.Measurements, func(l models.Measurement) bool { return l.Date == date }); i >= 0 {
		m.u.Measurements[i] = entry
	} else {
		m.u.Measurements = append(m.u.Measurements, entry)
	}
	return applied, nil
}

func (m *merger) water(row Row) (outcome, error) {
	date, err := requireDate(row["Date"])
	if err != nil {
		return invalid, err
	}
	liters, err := parseFloat(row["Liters"])
	if err != nil || liters <= 0 || liters > 10 {
		return invalid, fmt.Errorf("invalid liters %q", row["Liters"])
	}
	clock := row["Time"]
	if slices.ContainsFunc(m.u.WaterLog, func(l models.WaterLog) bool {
		return l.Date == date && l.Time == clock && l.Liters == liters
	}) {
		return duplicate, nil
	}
	m.u.WaterLog = append(m.u.WaterLog, models.WaterLog{
		ID: uuid.NewString(), Date: date, Liters: liters, Time: clock, Timestamp: m.stamp(date, clock),
	})
	return applied, nil
}

func (m *merger) mood(row Row) (outcome, error) {
	date, err := requireDate(row["Date"])
	if err != nil {
		return invalid, err
	}
	mood, err := models.ParseMood(row["Mood"])
	if err != nil {
		return invalid, err
	}
	clock := row["Time"]
	if slices.ContainsFunc(m.u.Moods, func(l models.MoodLog) bool {
		return l.Date == date && l.Time == clock && l.Mood == mood
	}) {
		return duplicate, nil
	}
	m.u.Moods = append(m.u.Moods, models.MoodLog{Date: date, Mood: mood, Time: clock, Timestamp: m.stamp(date, clock)})
	return applied, nil
}

func (m *merger) meal(row Row) (outcome, error) {
	date, err := requireDate(row["Date"])
	if err != nil {
		return invalid, err
	}
	id := row["Meal ID"]
	if id == "" {
		return invalid, fmt.Errorf("meal row without an id")
	}
	mealType, err := models.ParseMealType(row["Meal Type"])
	if err != nil {
		return invalid, err
	}
	clock := row["Time"]
	if slices.ContainsFunc(m.u.MealLogs, func(l models.MealLog) bool {
		return l.MealID == id && l.Date == date && l.Time == clock && l.MealType == mealType
	}) {
		return duplicate, nil
	}

	entry := models.MealLog{
		ID: uuid.NewString(), MealID: id, MealName: row["Meal Name"], MealType: mealType,
		Date: date, Time: clock, Timestamp: m.stamp(date, clock),
	}
	if entry.MealName == "" {
		entry.MealName = id
	}
	if v := row["Calories"]; v != "" {
		if entry.Calories, err = strconv.Atoi(v); err != nil {
			return invalid, fmt.Errorf("invalid calories %q", v)
		}
	}
	for col, dst := range map[string]*float64{"Protein": &entry.Protein, "Carbs": &entry.Carbs, "Fat": &entry.Fat} {
		if *dst, err = parseFloat(row[col]); err != nil {
			return invalid, fmt.Errorf("invalid %s %q", col, row[col])
		}
	}
	m.u.MealLogs = append(m.u.MealLogs, entry)
	return applied, nil
}

func (m *merger) exercise(row Row) (outcome, error) {
	date, err := requireDate(row["Date"])
	if err != nil {
		return invalid, err
	}
	id := row["Exercise ID"]
	if id == "" {
		return invalid, fmt.Errorf("exercise row without an id")
	}
	duration, err := strconv.Atoi(row["Duration (minutes)"])
	if err != nil || duration < 0 {
		return invalid, fmt.Errorf("invalid duration %q", row["Duration (minutes)"])
	}
	entry := models.ExerciseLog{ExerciseID: id, Date: date, DurationMin: duration, Completed: row["Completed"] == "Yes"}
	if slices.Contains(m.u.ExerciseHistory, entry) {
		return duplicate, nil
	}
	m.u.ExerciseHistory = append(m.u.ExerciseHistory, entry)
	return applied, nil
}

func (m *merger) badge(row Row) (outcome, error) {
	id := row["Badge ID"]
	if id == "" || row["Unlocked"] != "Yes" {
		return invalid, fmt.Errorf("badge row %q is not an unlocked badge", id)
	}
	if m.u.HasBadge(id) {
		return duplicate, nil
	}
	b := models.Badge{ID: id, Name: row["Badge Name"], Description: row["Description"], IsUnlocked: true}
	if b.Name == "" {
		b.Name = id
	}
	if at, err := time.Parse(time.RFC3339, row["Date Unlocked"]); err == nil {
		b.UnlockedAt = &at
	}
	m.u.Badges = append(m.u.Badges, b)
	return applied, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (m *merger) favorite(row Row) (outcome, error) {
	var list *[]string
	switch row["Type"] {
	case "Exercises":
		list = &m.u.Favorites.Exercises
	case "Meals":
		list = &m.u.Favorites.Meals
	case "Quotes":
		list = &m.u.Favorites.Quotes
	default:
		return invalid, fmt.Errorf("unknown favorite type %q", row["Type"])
	}
	ids := splitList(row["Item IDs"])
	if len(ids) == 0 {
		return empty, nil
	}
	added := false
	for _, id := range ids {
		if !slices.Contains(*list, id) {
			*list = append(*list, id)
			added = true
		}
	}
	if !added {
		return duplicate, nil
	}
	return applied, nil
}

// challenge rebuilds a challenge from its template, keeping the union of
// already-recorded and imported completed days and any task checks the
// existing challenge holds.
func (m *merger) challenge(row Row) (outcome, error) {
	id := row["Challenge ID"]
	if m.im.Templates == nil {
		return invalid, fmt.Errorf("no templates to rebuild challenge %q", id)
	}
	tmpl, ok := m.im.Templates.Challenge(id)
	if !ok {
		return invalid, fmt.Errorf("unknown challenge %q", id)
	}

	start, err := time.Parse(time.RFC3339, row["Start Date"])
	if err != nil {
		start = time.Time{}
	}
	c := tmpl.Instantiate(start)
	c.IsActive = row["Status"] == "Active"

	existing, had := m.u.Challenges[id]
	days := splitList(row["Completed Days"])
	completed := make([]int, 0, len(days))
	for _, d := range days {
		n, err := strconv.Atoi(d)
		if err != nil || n < 1 || n > c.Days {
			return invalid, fmt.Errorf("invalid completed day %q", d)
		}
		completed = append(completed, n)
	}
	if had {
		completed = append(completed, existing.CompletedDays...)
		if existing.StartDate.Before(c.StartDate) || c.StartDate.IsZero() {
			c.StartDate = existing.StartDate
		}
		c.IsActive = c.IsActive || existing.IsActive
		keepTaskProgress(&c, existing)
	}
	slices.Sort(completed)
	completed = slices.Compact(completed)

	for _, day := range completed {
		if _, i, ok := c.Task(day); ok {
			for j := range c.DailyTasks[i].Completed {
				c.DailyTasks[i].Completed[j] = true
			}
		}
	}
	c.CompletedDays = completed

	current, err := strconv.Atoi(row["Current Day"])
	if err != nil || current < 1 {
		current = 1
	}
	if had {
		current = max(current, existing.CurrentDay)
	}
	c.CurrentDay = min(current, c.Days)

	if had && slices.Equal(existing.CompletedDays, c.CompletedDays) && existing.CurrentDay == c.CurrentDay {
		return duplicate, nil
	}
	m.u.Challenges[id] = c
	if c.IsActive && m.u.CurrentChallenge == "" {
		m.u.CurrentChallenge = id
	}
	return applied, nil
}

// keepTaskProgress carries the task checks already recorded in existing
// over to the rebuilt challenge c.
func keepTaskProgress(c *models.Challenge, existing models.Challenge) {
	for _, old := range existing.DailyTasks {
		_, i, ok := c.Task(old.Day)
		if !ok {
			continue
		}
		flags := c.DailyTasks[i].Completed
		for j := range min(len(flags), len(old.Completed)) {
			flags[j] = flags[j] || old.Completed[j]
		}
	}
}

func metrics(rows []Row) map[string]string {
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r["Metric"]] = r["Value"]
	}
	return out
}

func (m *merger) waterCalc(v map[string]string) {
	d := models.WaterIntakeData{
		Activity:    models.ActivityLevel(v["Activity Level"]),
		Goal:        models.Goal(v["Goal"]),
		LastUpdated: v["Last Updated"],
	}
	var errs []error
	var err error
	d.Weight, err = parseFloat(v["Weight (kg)"])
	errs = append(errs, err)
	d.RecommendedML, err = strconv.Atoi(v["Recommended Daily (ml)"])
	errs = append(errs, err)
	d.LoggedMLToday, err = strconv.Atoi(v["Logged Today (ml)"])
	errs = append(errs, err)
	if m.cacheOK(errs) {
		m.caches.Water = &d
	}
}

func (m *merger) caloriesCalc(v map[string]string) {
	d := models.DailyCaloriesData{
		Sex:         models.Sex(v["Sex"]),
		Activity:    models.ActivityLevel(v["Activity Level"]),
		Goal:        models.Goal(v["Goal"]),
		LastUpdated: v["Last Updated"],
	}
	var errs []error
	var err error
	d.Weight, err = parseFloat(v["Weight (kg)"])
	errs = append(errs, err)
	d.Height, err = parseFloat(v["Height (cm)"])
	errs = append(errs, err)
	d.Age, err = strconv.Atoi(v["Age"])
	errs = append(errs, err)
	d.BMI, err = parseFloat(v["BMI"])
	errs = append(errs, err)
	d.RecommendedCalories, err = strconv.Atoi(v["Recommended Calories"])
	errs = append(errs, err)
	if m.cacheOK(errs) {
		m.caches.Calories = &d
	}
}

func (m *merger) bodyCalc(v map[string]string) {
	d := models.BodyCompositionData{Sex: models.Sex(v["Sex"]), LastUpdated: v["Last Updated"]}
	var errs []error
	for col, dst := range map[string]*float64{
		"Waist (cm)":          &d.Waist,
		"Hip (cm)":            &d.Hip,
		"Neck (cm)":           &d.Neck,
		"Height (cm)":         &d.Height,
		"Waist-to-Hip Ratio":  &d.WaistToHipRatio,
		"Body Fat Percentage": &d.BodyFatPercentage,
	} {
		var err error
		*dst, err = parseFloat(v[col])
		errs = append(errs, err)
	}
	if m.cacheOK(errs) {
		m.caches.Body = &d
	}
}

func (m *merger) cacheOK(errs []error) bool {
	for _, err := range errs {
		if err != nil {
			logger.Debug("Skipping calculator snapshot", "error", err)
			m.skipped++
			return false
		}
	}
	m.imported++
	return true
}
