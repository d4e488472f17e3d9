package models

import (
	"maps"
	"slices"
)

// UserData is the full snapshot of everything a user has recorded. It is
// treated as an immutable value: transitions build a new UserData.
type UserData struct {
	Profile          UserProfile          `json:"userProfile"`
	Challenges       map[string]Challenge `json:"challenges"`
	CurrentChallenge string               `json:"currentChallenge,omitempty"`
	Weights          []WeightLog          `json:"weights"`
	Moods            []MoodLog            `json:"moods"`
	Measurements     []Measurement        `json:"measurements"`
	WaterLog         []WaterLog           `json:"waterLog"`
	CaloriesLog      []CaloriesLog        `json:"caloriesLog"`
	MealLogs         []MealLog            `json:"mealLogs"`
	ExerciseHistory  []ExerciseLog        `json:"exerciseHistory"`
	CourseProgress   []CourseProgress     `json:"courseProgress"`
	LessonProgress   []LessonProgress     `json:"lessonProgress"`
	Badges           []Badge              `json:"badges"`
	Favorites        Favorites            `json:"favorites"`
}

// NewUserData returns the empty snapshot of a fresh install.
func NewUserData() UserData {
	return UserData{
		Profile:         DefaultProfile(),
		Challenges:      map[string]Challenge{},
		Weights:         []WeightLog{},
		Moods:           []MoodLog{},
		Measurements:    []Measurement{},
		WaterLog:        []WaterLog{},
		CaloriesLog:     []CaloriesLog{},
		MealLogs:        []MealLog{},
		ExerciseHistory: []ExerciseLog{},
		CourseProgress:  []CourseProgress{},
		LessonProgress:  []LessonProgress{},
		Badges:          []Badge{},
		Favorites: Favorites{
			Exercises: []string{},
			Meals:     []string{},
			Quotes:    []string{},
		},
	}
}

// Normalize replaces nil collections with empty ones so a snapshot decoded
// from partial JSON behaves like one built by NewUserData.
func (u UserData) Normalize() UserData {
	def := NewUserData()
	if u.Challenges == nil {
		u.Challenges = def.Challenges
	}
	if u.Weights == nil {
		u.Weights = def.Weights
	}
	if u.Moods == nil {
		u.Moods = def.Moods
	}
	if u.Measurements == nil {
		u.Measurements = def.Measurements
	}
	if u.WaterLog == nil {
		u.WaterLog = def.WaterLog
	}
	if u.CaloriesLog == nil {
		u.CaloriesLog = def.CaloriesLog
	}
	if u.MealLogs == nil {
		u.MealLogs = def.MealLogs
	}
	if u.ExerciseHistory == nil {
		u.ExerciseHistory = def.ExerciseHistory
	}
	if u.CourseProgress == nil {
		u.CourseProgress = def.CourseProgress
	}
	if u.LessonProgress == nil {
		u.LessonProgress = def.LessonProgress
	}
	if u.Badges == nil {
		u.Badges = def.Badges
	}
	if u.Favorites.Exercises == nil {
		u.Favorites.Exercises = def.Favorites.Exercises
	}
	if u.Favorites.Meals == nil {
		u.Favorites.Meals = def.Favorites.Meals
	}
	if u.Favorites.Quotes == nil {
		u.Favorites.Quotes = def.Favorites.Quotes
	}
	if u.Profile.Diet == nil {
		u.Profile.Diet = []string{}
	}
	if u.Profile.Language == "" {
		u.Profile.Language = def.Profile.Language
	}
	return u
}

// Clone returns a deep copy of u.
func (u UserData) Clone() UserData {
	out := u
	out.Profile.Diet = slices.Clone(u.Profile.Diet)
	out.Challenges = make(map[string]Challenge, len(u.Challenges))
	for id, c := range u.Challenges {
		out.Challenges[id] = c.Clone()
	}
	out.Weights = slices.Clone(u.Weights)
	out.Moods = slices.Clone(u.Moods)
	out.Measurements = slices.Clone(u.Measurements)
	out.WaterLog = slices.Clone(u.WaterLog)
	out.CaloriesLog = slices.Clone(u.CaloriesLog)
	out.MealLogs = slices.Clone(u.MealLogs)
	out.ExerciseHistory = slices.Clone(u.ExerciseHistory)
	out.CourseProgress = make([]CourseProgress, len(u.CourseProgress))
	for i, cp := range u.CourseProgress {
		cp.CompletedLessons = slices.Clone(cp.CompletedLessons)
		out.CourseProgress[i] = cp
	}
	out.LessonProgress = slices.Clone(u.LessonProgress)
	out.Badges = slices.Clone(u.Badges)
	out.Favorites = Favorites{
		Exercises: slices.Clone(u.Favorites.Exercises),
		Meals:     slices.Clone(u.Favorites.Meals),
		Quotes:    slices.Clone(u.Favorites.Quotes),
	}
	return out
}

// HasBadge reports whether badge id is already unlocked.
func (u UserData) HasBadge(id string) bool {
	return slices.ContainsFunc(u.Badges, func(b Badge) bool { return b.ID == id })
}

// WaterTotal sums the liters logged on date.
func (u UserData) WaterTotal(date string) float64 {
	var total float64
	for _, w := range u.WaterLog {
		if w.Date == date {
			total += w.Liters
		}
	}
	return total
}

// CaloriesOn returns the calories logged on date, if any.
func (u UserData) CaloriesOn(date string) (int, bool) {
	for _, c := range u.CaloriesLog {
		if c.Date == date {
			return c.Calories, true
		}
	}
	return 0, false
}

// MealCalories sums the calories of meals logged on date.
func (u UserData) MealCalories(date string) int {
	total := 0
	for _, m := range u.MealLogs {
		if m.Date == date {
			total += m.Calories
		}
	}
	return total
}

// LatestWeight returns the most recent weight entry by date.
func (u UserData) LatestWeight() (WeightLog, bool) {
	if len(u.Weights) == 0 {
		return WeightLog{}, false
	}
	latest := u.Weights[0]
	for _, w := range u.Weights[1:] {
		if w.Date >= latest.Date {
			latest = w
		}
	}
	return latest, true
}

// Course returns the progress record for courseID.
func (u UserData) Course(courseID string) (CourseProgress, bool) {
	for _, cp := range u.CourseProgress {
		if cp.CourseID == courseID {
			return cp, true
		}
	}
	return CourseProgress{}, false
}

// ChallengeIDs returns the ids of started challenges in sorted order.
func (u UserData) ChallengeIDs() []string {
	return slices.Sorted(maps.Keys(u.Challenges))
}
