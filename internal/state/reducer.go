// Package state owns the user data snapshot: a pure reducer that applies
// actions, and a Store that serializes dispatches and notifies subscribers.
package state

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/vitalit/internal/badges"
	"github.com/julianstephens/vitalit/internal/catalog"
	"github.com/julianstephens/vitalit/internal/models"
	"github.com/julianstephens/vitalit/internal/utils"
	"github.com/julianstephens/vitalit/internal/validation"
)

// Content is the read-only reference data the reducer looks templates and
// display details up in.
type Content interface {
	Challenge(id string) (catalog.ChallengeTemplate, bool)
	Meal(id string) (catalog.Meal, bool)
	Exercise(id string) (catalog.Exercise, bool)
	Course(id string) (catalog.Course, bool)
	Badge(id string) (catalog.BadgeDefinition, bool)
}

// Reducer applies actions to snapshots. It never mutates its input.
type Reducer struct {
	content Content
	clock   utils.Clock
	newID   func() string
}

func NewReducer(content Content, clock utils.Clock) *Reducer {
	return &Reducer{content: content, clock: clock, newID: uuid.NewString}
}

// Reduce returns the snapshot after applying a to u and whether anything
// changed. Unknown actions and invalid payloads return u unchanged.
func (r *Reducer) Reduce(u models.UserData, a Action) (models.UserData, bool) {
	switch a := a.(type) {
	case SetUserData:
		return a.Data.Normalize().Clone(), true
	case UpdateProfile:
		return r.updateProfile(u, a)
	case StartChallenge:
		return r.startChallenge(u, a.ID)
	case RestartChallenge:
		return r.startChallenge(u, a.ID)
	case CompleteTask:
		return r.setTask(u, a.ChallengeID, a.Day, a.TaskIndex, true)
	case UncompleteTask:
		return r.setTask(u, a.ChallengeID, a.Day, a.TaskIndex, false)
	case ToggleFavorite:
		return r.toggleFavorite(u, a)
	case LogWeight:
		return r.logWeight(u, a)
	case LogCalories:
		return r.logCalories(u, a)
	case LogWater:
		return r.logWater(u, a)
	case LogMood:
		return r.logMood(u, a)
	case LogMeal:
		return r.logMeal(u, a)
	case LogExercise:
		return r.logExercise(u, a)
	case LogMeasurement:
		return r.logMeasurement(u, a)
	case DeleteMealLog:
		return r.deleteMealLog(u, a)
	case StartCourse:
		return r.startCourse(u, a)
	case CompleteLesson:
		return r.completeLesson(u, a)
	case SetCurrentLesson:
		return r.setCurrentLesson(u, a)
	case UnlockBadge:
		return r.unlockBadge(u, a)
	case ResetAll:
		return models.NewUserData(), true
	default:
		return u, false
	}
}

// date resolves an optional explicit date, falling back to today.
func (r *Reducer) date(explicit string) (string, bool) {
	if explicit == "" {
		return utils.Today(r.clock), true
	}
	return explicit, utils.ValidateDate(explicit)
}

func (r *Reducer) updateProfile(u models.UserData, a UpdateProfile) (models.UserData, bool) {
	if a.Update.IsEmpty() {
		return u, false
	}
	profile := a.Update.Apply(u.Profile)
	if err := validation.Struct(profile); err != nil {
		return u, false
	}
	next := u.Clone()
	next.Profile = profile
	return next, true
}

func (r *Reducer) startChallenge(u models.UserData, id string) (models.UserData, bool) {
	tmpl, ok := r.content.Challenge(id)
	if !ok {
		return u, false
	}
	next := u.Clone()
	next.Challenges[id] = tmpl.Instantiate(r.clock.Now())
	next.CurrentChallenge = id
	return next, true
}

func (r *Reducer) setTask(u models.UserData, id string, day, idx int, done bool) (models.UserData, bool) {
	c, ok := u.Challenges[id]
	if !ok {
		return u, false
	}
	task, ti, ok := c.Task(day)
	if !ok || idx < 0 || idx >= len(task.Tasks) || idx >= len(task.Completed) {
		return u, false
	}

	next := u.Clone()
	c = next.Challenges[id]
	dt := &c.DailyTasks[ti]
	changed := dt.Completed[idx] != done
	dt.Completed[idx] = done

	if done {
		if dt.AllCompleted() && !c.DayCompleted(day) {
			c.CompletedDays = append(c.CompletedDays, day)
			c.CurrentDay = min(day+1, c.Days)
			changed = true
		}
	} else if c.DayCompleted(day) {
		// currentDay stays where it is.
		c.CompletedDays = slices.DeleteFunc(c.CompletedDays, func(d int) bool { return d == day })
		changed = true
	}
	if !changed {
		return u, false
	}
	next.Challenges[id] = c
	return next, true
}

func (r *Reducer) toggleFavorite(u models.UserData, a ToggleFavorite) (models.UserData, bool) {
	if a.ID == "" {
		return u, false
	}
	next := u.Clone()
	var list *[]string
	switch a.FavKind {
	case models.FavoriteExercise:
		list = &next.Favorites.Exercises
	case models.FavoriteMeal:
		list = &next.Favorites.Meals
	case models.FavoriteQuote:
		list = &next.Favorites.Quotes
	default:
		return u, false
	}
	if slices.Contains(*list, a.ID) {
		*list = slices.DeleteFunc(*list, func(id string) bool { return id == a.ID })
	} else {
		*list = append(*list, a.ID)
	}
	return next, true
}

func (r *Reducer) logWeight(u models.UserData, a LogWeight) (models.UserData, bool) {
	date, ok := r.date(a.Date)
	if !ok || validation.Var("weight", a.Weight, "gt=0,lte=500") != nil {
		return u, false
	}
	next := u.Clone()
	next.Weights = slices.DeleteFunc(next.Weights, func(w models.WeightLog) bool { return w.Date == date })
	next.Weights = append(next.Weights, models.WeightLog{Date: date, Weight: a.Weight})
	return next, true
}

func (r *Reducer) logCalories(u models.UserData, a LogCalories) (models.UserData, bool) {
	date, ok := r.date(a.Date)
	if !ok || validation.Var("calories", a.Calories, "gte=0,lte=20000") != nil {
		return u, false
	}
	next := u.Clone()
	next.CaloriesLog = slices.DeleteFunc(next.CaloriesLog, func(c models.CaloriesLog) bool { return c.Date == date })
	next.CaloriesLog = append(next.CaloriesLog, models.CaloriesLog{Date: date, Calories: a.Calories})
	return next, true
}

func (r *Reducer) logWater(u models.UserData, a LogWater) (models.UserData, bool) {
	if validation.Var("liters", a.Liters, "gt=0,lte=10") != nil {
		return u, false
	}
	now := r.clock.Now()
	next := u.Clone()
	next.WaterLog = append(next.WaterLog, models.WaterLog{
		ID:        r.newID(),
		Date:      utils.FormatDate(now),
		Liters:    a.Liters,
		Time:      utils.FormatTime(now),
		Timestamp: now,
	})
	return next, true
}

func (r *Reducer) logMood(u models.UserData, a LogMood) (models.UserData, bool) {
	if !a.Mood.Valid() {
		return u, false
	}
	now := r.clock.Now()
	next := u.Clone()
	next.Moods = append(next.Moods, models.MoodLog{
		Date:      utils.FormatDate(now),
		Mood:      a.Mood,
		Time:      utils.FormatTime(now),
		Timestamp: now,
	})
	return next, true
}

func (r *Reducer) logMeal(u models.UserData, a LogMeal) (models.UserData, bool) {
	meal, ok := r.content.Meal(a.MealID)
	if !ok {
		return u, false
	}
	if a.MealType == "" {
		a.MealType = meal.Category
	}
	mealType, err := models.ParseMealType(string(a.MealType))
	if err != nil {
		return u, false
	}
	now := r.clock.Now()
	next := u.Clone()
	next.MealLogs = append(next.MealLogs, models.MealLog{
		ID:        r.newID(),
		MealID:    meal.ID,
		MealName:  meal.Name.Resolve(u.Profile.Language),
		Calories:  meal.Calories,
		Protein:   meal.Protein,
		Carbs:     meal.Carbs,
		Fat:       meal.Fats,
		MealType:  mealType,
		Date:      utils.FormatDate(now),
		Time:      utils.FormatTime(now),
		Timestamp: now,
	})
	return next, true
}

func (r *Reducer) logExercise(u models.UserData, a LogExercise) (models.UserData, bool) {
	if _, ok := r.content.Exercise(a.ExerciseID); !ok || a.DurationMin < 0 {
		return u, false
	}
	next := u.Clone()
	next.ExerciseHistory = append(next.ExerciseHistory, models.ExerciseLog{
		ExerciseID:  a.ExerciseID,
		Date:        utils.Today(r.clock),
		DurationMin: a.DurationMin,
		Completed:   true,
	})
	return next, true
}

func (r *Reducer) logMeasurement(u models.UserData, a LogMeasurement) (models.UserData, bool) {
	m := a.Measurement
	date, ok := r.date(m.Date)
	if !ok {
		return u, false
	}
	m.Date = date
	values := []float64{m.Waist, m.Hips, m.Chest, m.Arms, m.Thighs}
	measured := false
	for _, v := range values {
		if validation.Var("measurement", v, "gte=0,lte=400") != nil {
			return u, false
		}
		measured = measured || v > 0
	}
	if !measured {
		return u, false
	}
	next := u.Clone()
	next.Measurements = slices.DeleteFunc(next.Measurements, func(x models.Measurement) bool { return x.Date == date })
	next.Measurements = append(next.Measurements, m)
	return next, true
}

func (r *Reducer) deleteMealLog(u models.UserData, a DeleteMealLog) (models.UserData, bool) {
	if !slices.ContainsFunc(u.MealLogs, func(m models.MealLog) bool { return m.ID == a.ID }) {
		return u, false
	}
	next := u.Clone()
	next.MealLogs = slices.DeleteFunc(next.MealLogs, func(m models.MealLog) bool { return m.ID == a.ID })
	return next, true
}

// courseIndex returns the position of courseID in next.CourseProgress,
// opening progress at the first lesson when the course has none yet.
func courseIndex(next *models.UserData, course catalog.Course, now time.Time) int {
	if i := slices.IndexFunc(next.CourseProgress, func(cp models.CourseProgress) bool { return cp.CourseID == course.ID }); i >= 0 {
		return i
	}
	cp := models.CourseProgress{
		CourseID:         course.ID,
		CompletedLessons: []string{},
		StartedAt:        now,
		LastAccessedAt:   now,
	}
	if first, ok := course.First(); ok {
		cp.CurrentModule = first.ModuleID
		cp.CurrentLesson = first.Lesson.ID
	}
	next.CourseProgress = append(next.CourseProgress, cp)
	return len(next.CourseProgress) - 1
}

func (r *Reducer) startCourse(u models.UserData, a StartCourse) (models.UserData, bool) {
	course, ok := r.content.Course(a.CourseID)
	if !ok {
		return u, false
	}
	if _, started := u.Course(a.CourseID); started {
		return u, false
	}
	next := u.Clone()
	courseIndex(&next, course, r.clock.Now())
	return next, true
}

func (r *Reducer) completeLesson(u models.UserData, a CompleteLesson) (models.UserData, bool) {
	course, ok := r.content.Course(a.CourseID)
	if !ok {
		return u, false
	}
	ref, ok := course.FindLesson(a.LessonID)
	if !ok {
		return u, false
	}
	if cp, started := u.Course(a.CourseID); started && slices.Contains(cp.CompletedLessons, a.LessonID) {
		return u, false
	}

	now := r.clock.Now()
	next := u.Clone()
	cp := &next.CourseProgress[courseIndex(&next, course, now)]
	cp.CompletedLessons = append(cp.CompletedLessons, a.LessonID)
	cp.LastAccessedAt = now
	if nxt, ok := course.NextLesson(a.LessonID); ok {
		cp.CurrentModule = nxt.ModuleID
		cp.CurrentLesson = nxt.Lesson.ID
	}

	lp := models.LessonProgress{
		LessonID:    a.LessonID,
		CourseID:    a.CourseID,
		ModuleID:    ref.ModuleID,
		Completed:   true,
		CompletedAt: &now,
	}
	next.LessonProgress = slices.DeleteFunc(next.LessonProgress, func(p models.LessonProgress) bool {
		return p.CourseID == a.CourseID && p.LessonID == a.LessonID
	})
	next.LessonProgress = append(next.LessonProgress, lp)
	return next, true
}

func (r *Reducer) setCurrentLesson(u models.UserData, a SetCurrentLesson) (models.UserData, bool) {
	course, ok := r.content.Course(a.CourseID)
	if !ok {
		return u, false
	}
	ref, ok := course.FindLesson(a.LessonID)
	if !ok {
		return u, false
	}
	if cp, started := u.Course(a.CourseID); started && cp.CurrentLesson == a.LessonID {
		return u, false
	}
	now := r.clock.Now()
	next := u.Clone()
	cp := &next.CourseProgress[courseIndex(&next, course, now)]
	cp.CurrentModule = ref.ModuleID
	cp.CurrentLesson = ref.Lesson.ID
	cp.LastAccessedAt = now
	return next, true
}

func (r *Reducer) unlockBadge(u models.UserData, a UnlockBadge) (models.UserData, bool) {
	if a.ID == "" || u.HasBadge(a.ID) {
		return u, false
	}
	now := r.clock.Now()
	b := r.describeBadge(a.ID, u.Profile.Language)
	b.IsUnlocked = true
	b.UnlockedAt = &now
	next := u.Clone()
	next.Badges = append(next.Badges, b)
	return next, true
}

// describeBadge fills in the display fields of badge id from its
// definition, or from the challenge for a challenge completion badge.
func (r *Reducer) describeBadge(id, locale string) models.Badge {
	if def, ok := r.content.Badge(id); ok {
		return models.Badge{
			ID:          id,
			Name:        def.Name.Resolve(locale),
			Description: def.Description.Resolve(locale),
			Icon:        def.Icon,
		}
	}
	if cid, ok := badges.ChallengeFromBadgeID(id); ok {
		if tmpl, ok := r.content.Challenge(cid); ok {
			name := tmpl.Name.Resolve(locale)
			return models.Badge{
				ID:          id,
				Name:        name + " Champion",
				Description: "Completed " + name,
				Icon:        "🏆",
			}
		}
	}
	return models.Badge{ID: id, Name: id, Icon: "🏅"}
}
