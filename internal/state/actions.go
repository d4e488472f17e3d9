package state

import "github.com/julianstephens/vitalit/internal/models"

// Action is a requested transition of the user data snapshot. The concrete
// types below are the complete set; anything else reduces to a no-op.
type Action interface {
	Kind() string
}

// SetUserData replaces the snapshot wholesale, as after a load or import.
type SetUserData struct {
	Data models.UserData
}

// UpdateProfile merges the set fields of Update into the profile.
type UpdateProfile struct {
	Update models.ProfileUpdate
}

// StartChallenge materializes a fresh instance of template ID and makes it
// the current challenge.
type StartChallenge struct {
	ID string
}

// RestartChallenge discards the progress of challenge ID and starts over.
type RestartChallenge struct {
	ID string
}

// CompleteTask checks task TaskIndex of Day in challenge ChallengeID.
type CompleteTask struct {
	ChallengeID string
	Day         int
	TaskIndex   int
}

// UncompleteTask unchecks task TaskIndex of Day in challenge ChallengeID.
type UncompleteTask struct {
	ChallengeID string
	Day         int
	TaskIndex   int
}

// ToggleFavorite adds or removes ID from the favorites of FavKind.
type ToggleFavorite struct {
	FavKind models.FavoriteKind
	ID      string
}

// LogWeight records today's weight, replacing any entry for the same date.
// Date overrides today when set.
type LogWeight struct {
	Weight float64
	Date   string
}

// LogCalories records today's calorie intake, replacing any entry for the
// same date. Date overrides today when set.
type LogCalories struct {
	Calories int
	Date     string
}

// LogWater appends a water intake entry.
type LogWater struct {
	Liters float64
}

// LogMood appends a mood check-in.
type LogMood struct {
	Mood models.Mood
}

// LogMeal appends a meal entry snapshotted from the meal catalog.
type LogMeal struct {
	MealID   string
	MealType models.MealType
}

// LogExercise appends a completed workout session.
type LogExercise struct {
	ExerciseID  string
	DurationMin int
}

// LogMeasurement records body measurements, replacing any entry for the same
// date. An empty date means today.
type LogMeasurement struct {
	Measurement models.Measurement
}

// DeleteMealLog removes the meal entry with ID from the journal.
type DeleteMealLog struct {
	ID string
}

// StartCourse opens progress tracking for a course at its first lesson.
type StartCourse struct {
	CourseID string
}

// CompleteLesson marks a lesson done and moves the course cursor past it.
type CompleteLesson struct {
	CourseID string
	LessonID string
}

// SetCurrentLesson moves the course cursor without completing anything.
type SetCurrentLesson struct {
	CourseID string
	LessonID string
}

// UnlockBadge records badge ID as earned.
type UnlockBadge struct {
	ID string
}

// ResetAll wipes every piece of user data back to a fresh install.
type ResetAll struct{}

func (SetUserData) Kind() string      { return "set_user_data" }
func (UpdateProfile) Kind() string    { return "update_profile" }
func (StartChallenge) Kind() string   { return "start_challenge" }
func (RestartChallenge) Kind() string { return "restart_challenge" }
func (CompleteTask) Kind() string     { return "complete_task" }
func (UncompleteTask) Kind() string   { return "uncomplete_task" }
func (ToggleFavorite) Kind() string   { return "toggle_favorite" }
func (LogWeight) Kind() string        { return "log_weight" }
func (LogCalories) Kind() string      { return "log_calories" }
func (LogWater) Kind() string         { return "log_water" }
func (LogMood) Kind() string          { return "log_mood" }
func (LogMeal) Kind() string          { return "log_meal" }
func (LogExercise) Kind() string      { return "log_exercise" }
func (LogMeasurement) Kind() string   { return "log_measurement" }
func (DeleteMealLog) Kind() string    { return "delete_meal_log" }
func (StartCourse) Kind() string      { return "start_course" }
func (CompleteLesson) Kind() string   { return "complete_lesson" }
func (SetCurrentLesson) Kind() string { return "set_current_lesson" }
func (UnlockBadge) Kind() string      { return "unlock_badge" }
func (ResetAll) Kind() string         { return "reset_all" }
