package models

import "time"

// Badge is an unlocked achievement as stored in user data.
type Badge struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	IsUnlocked  bool       `json:"isUnlocked"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}

// Favorites holds the content ids a user has starred.
type Favorites struct {
	Exercises []string `json:"exercises"`
	Meals     []string `json:"meals"`
	Quotes    []string `json:"quotes"`
}

type FavoriteKind string

const (
	FavoriteExercise FavoriteKind = "exercise"
	FavoriteMeal     FavoriteKind = "meal"
	FavoriteQuote    FavoriteKind = "quote"
)

// List returns the id list for kind.
func (f Favorites) List(kind FavoriteKind) []string {
	switch kind {
	case FavoriteExercise:
		return f.Exercises
	case FavoriteMeal:
		return f.Meals
	case FavoriteQuote:
		return f.Quotes
	}
	return nil
}

// CourseProgress tracks a user's position in a course.
type CourseProgress struct {
	CourseID         string    `json:"courseId"`
	CompletedLessons []string  `json:"completedLessons"`
	CurrentModule    string    `json:"currentModule"`
	CurrentLesson    string    `json:"currentLesson"`
	StartedAt        time.Time `json:"startedAt"`
	LastAccessedAt   time.Time `json:"lastAccessedAt"`
}

// LessonProgress is the per-lesson completion record.
type LessonProgress struct {
	LessonID    string     `json:"lessonId"`
	CourseID    string     `json:"courseId"`
	ModuleID    string     `json:"moduleId"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
