package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WeightLog is the recorded body weight for a date. One per date.
type WeightLog struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// CaloriesLog is the recorded calorie intake for a date. One per date.
type CaloriesLog struct {
	Date     string `json:"date"`
	Calories int    `json:"calories"`
}

// WaterLog is a single water intake entry. Entries for a date accumulate.
type WaterLog struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Liters    float64   `json:"liters"`
	Time      string    `json:"time"`
	Timestamp time.Time `json:"timestamp"`
}

// Mood is a rating on a 1 (low) to 5 (great) scale.
type Mood int

const (
	MoodAwful Mood = iota + 1
	MoodMeh
	MoodOkay
	MoodGood
	MoodGreat
)

var moodEmoji = [...]string{"😞", "😐", "🙂", "😊", "😄"}

// Valid reports whether m is on the 1..5 scale.
func (m Mood) Valid() bool {
	return m >= MoodAwful && m <= MoodGreat
}

// Emoji returns the display glyph for m, or "" when m is out of range.
func (m Mood) Emoji() string {
	if !m.Valid() {
		return ""
	}
	return moodEmoji[m-1]
}

// ParseMood accepts either the numeric rating or its emoji.
func ParseMood(s string) (Mood, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if m := Mood(n); m.Valid() {
			return m, nil
		}
		return 0, fmt.Errorf("mood %d out of range 1..5", n)
	}
	for i, e := range moodEmoji {
		if s == e {
			return Mood(i + 1), nil
		}
	}
	return 0, fmt.Errorf("invalid mood %q", s)
}

// MoodLog is a single mood check-in. Entries for a date accumulate.
type MoodLog struct {
	Date      string    `json:"date"`
	Mood      Mood      `json:"mood"`
	Time      string    `json:"time"`
	Timestamp time.Time `json:"timestamp"`
}

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// ParseMealType validates a meal type from user input.
func ParseMealType(s string) (MealType, error) {
	switch v := MealType(strings.ToLower(s)); v {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return v, nil
	}
	return "", fmt.Errorf("invalid meal type %q", s)
}

// MealLog is an eaten meal. Name and nutrition are snapshotted from the
// catalog at log time so later catalog edits do not rewrite history.
type MealLog struct {
	ID        string    `json:"id"`
	MealID    string    `json:"mealId"`
	MealName  string    `json:"mealName"`
	Calories  int       `json:"calories"`
	Protein   float64   `json:"protein"`
	Carbs     float64   `json:"carbs"`
	Fat       float64   `json:"fat"`
	MealType  MealType  `json:"mealType"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Timestamp time.Time `json:"timestamp"`
}

// ExerciseLog records a workout session for an exercise.
type ExerciseLog struct {
	ExerciseID  string `json:"exerciseId"`
	Date        string `json:"date"`
	DurationMin int    `json:"duration"`
	Completed   bool   `json:"completed"`
}

// Measurement holds body measurements in centimetres for a date. Zero means
// not measured.
type Measurement struct {
	Date   string  `json:"date"`
	Waist  float64 `json:"waist,omitempty"`
	Hips   float64 `json:"hips,omitempty"`
	Chest  float64 `json:"chest,omitempty"`
	Arms   float64 `json:"arms,omitempty"`
	Thighs float64 `json:"thighs,omitempty"`
}
