package models

import (
	"fmt"
	"slices"

	"github.com/julianstephens/vitalit/internal/constants"
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// ActivityLevels lists every activity level from least to most active.
var ActivityLevels = []ActivityLevel{
	ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive,
}

type Goal string

const (
	GoalLose     Goal = "lose"
	GoalGain     Goal = "gain"
	GoalMaintain Goal = "maintain"
)

// ParseSex validates a sex value from user input.
func ParseSex(s string) (Sex, error) {
	switch v := Sex(s); v {
	case SexMale, SexFemale, SexOther:
		return v, nil
	}
	return "", fmt.Errorf("invalid sex %q (want male, female, or other)", s)
}

// ParseActivityLevel validates an activity level from user input.
func ParseActivityLevel(s string) (ActivityLevel, error) {
	v := ActivityLevel(s)
	if slices.Contains(ActivityLevels, v) {
		return v, nil
	}
	return "", fmt.Errorf("invalid activity level %q", s)
}

// ParseGoal validates a goal from user input.
func ParseGoal(s string) (Goal, error) {
	switch v := Goal(s); v {
	case GoalLose, GoalGain, GoalMaintain:
		return v, nil
	}
	return "", fmt.Errorf("invalid goal %q (want lose, gain, or maintain)", s)
}

// UserProfile holds the personal details collected at onboarding
type UserProfile struct {
	Name          string        `json:"name" validate:"max=80"`
	Age           int           `json:"age" validate:"gte=0,lte=130"`
	Height        float64       `json:"height" validate:"gte=0,lte=300"`       // centimetres
	Weight        float64       `json:"weight" validate:"gte=0,lte=500"`       // kilograms
	TargetWeight  float64       `json:"targetWeight" validate:"gte=0,lte=500"` // kilograms
	Sex           Sex           `json:"sex" validate:"omitempty,oneof=male female other"`
	ActivityLevel ActivityLevel `json:"activityLevel" validate:"omitempty,oneof=sedentary light moderate active very_active"`
	Goal          Goal          `json:"goal" validate:"omitempty,oneof=lose gain maintain"`
	Diet          []string      `json:"diet"`
	Language      string        `json:"language"`
}

// DefaultProfile returns the profile of a user who has not onboarded yet.
func DefaultProfile() UserProfile {
	return UserProfile{
		Sex:           SexOther,
		ActivityLevel: ActivitySedentary,
		Goal:          GoalMaintain,
		Diet:          []string{},
		Language:      constants.DefaultLocale,
	}
}

// Onboarded reports whether the profile has been filled in.
func (p UserProfile) Onboarded() bool {
	return p.Name != ""
}

// ProfileUpdate is a partial profile. Nil fields keep their current value.
type ProfileUpdate struct {
	Name          *string
	Age           *int
	Height        *float64
	Weight        *float64
	TargetWeight  *float64
	Sex           *Sex
	ActivityLevel *ActivityLevel
	Goal          *Goal
	Diet          *[]string
	Language      *string
}

// IsEmpty reports whether the update sets no fields.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.Age == nil && u.Height == nil && u.Weight == nil &&
		u.TargetWeight == nil && u.Sex == nil && u.ActivityLevel == nil &&
		u.Goal == nil && u.Diet == nil && u.Language == nil
}

// Apply returns p with every set field of u merged in.
func (u ProfileUpdate) Apply(p UserProfile) UserProfile {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Age != nil {
		p.Age = *u.Age
	}
	if u.Height != nil {
		p.Height = *u.Height
	}
	if u.Weight != nil {
		p.Weight = *u.Weight
	}
	if u.TargetWeight != nil {
		p.TargetWeight = *u.TargetWeight
	}
	if u.Sex != nil {
		p.Sex = *u.Sex
	}
	if u.ActivityLevel != nil {
		p.ActivityLevel = *u.ActivityLevel
	}
	if u.Goal != nil {
		p.Goal = *u.Goal
	}
	if u.Diet != nil {
		p.Diet = slices.Clone(*u.Diet)
	} else {
		p.Diet = slices.Clone(p.Diet)
	}
	if u.Language != nil {
		p.Language = *u.Language
	}
	return p
}
