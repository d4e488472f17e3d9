package system

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/vitalit/internal/cli"
	"github.com/julianstephens/vitalit/internal/constants"
	"github.com/julianstephens/vitalit/internal/models"
	"github.com/julianstephens/vitalit/internal/state"
	"github.com/julianstephens/vitalit/internal/validation"
)

// onboardAnswers backs the onboarding form. Numbers stay strings until the
// form is submitted.
type onboardAnswers struct {
	Name         string
	Age          string
	Height       string
	Weight       string
	TargetWeight string
	Sex          models.Sex
	Activity     models.ActivityLevel
	Goal         models.Goal
	Diet         string
	Language     string
}

func answersFrom(p models.UserProfile) *onboardAnswers {
	a := &onboardAnswers{
		Name:     p.Name,
		Sex:      p.Sex,
		Activity: p.ActivityLevel,
		Goal:     p.Goal,
		Diet:     strings.Join(p.Diet, ", "),
		Language: p.Language,
	}
	if p.Age > 0 {
		a.Age = strconv.Itoa(p.Age)
	}
	if p.Height > 0 {
		a.Height = strconv.FormatFloat(p.Height, 'f', -1, 64)
	}
	if p.Weight > 0 {
		a.Weight = strconv.FormatFloat(p.Weight, 'f', -1, 64)
	}
	if p.TargetWeight > 0 {
		a.TargetWeight = strconv.FormatFloat(p.TargetWeight, 'f', -1, 64)
	}
	return a
}

func numberValidator(name, tag string) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("%s must be a number", name)
		}
		return validation.Var(name, v, tag)
	}
}

// update converts the answers into a profile update with every field set.
func (a *onboardAnswers) update() (models.ProfileUpdate, error) {
	name := strings.TrimSpace(a.Name)
	if name == "" {
		return models.ProfileUpdate{}, fmt.Errorf("name cannot be empty")
	}
	age, err := strconv.Atoi(strings.TrimSpace(a.Age))
	if err != nil {
		return models.ProfileUpdate{}, fmt.Errorf("invalid age %q", a.Age)
	}
	var nums [3]float64
	for i, s := range []string{a.Height, a.Weight, a.TargetWeight} {
		if nums[i], err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return models.ProfileUpdate{}, fmt.Errorf("invalid number %q", s)
		}
	}
	diet := []string{}
	for d := range strings.SplitSeq(a.Diet, ",") {
		if d = strings.TrimSpace(d); d != "" {
			diet = append(diet, d)
		}
	}
	sex, activity, goal, lang := a.Sex, a.Activity, a.Goal, a.Language

	u := models.ProfileUpdate{
		Name:          &name,
		Age:           &age,
		Height:        &nums[0],
		Weight:        &nums[1],
		TargetWeight:  &nums[2],
		Sex:           &sex,
		ActivityLevel: &activity,
		Goal:          &goal,
		Diet:          &diet,
		Language:      &lang,
	}
	if err := validation.Struct(u.Apply(models.DefaultProfile())); err != nil {
		return models.ProfileUpdate{}, err
	}
	return u, nil
}

func newOnboardForm(a *onboardAnswers) *huh.Form {
	languages := make([]huh.Option[string], 0, len(constants.SupportedLocales))
	for _, l := range constants.SupportedLocales {
		languages = append(languages, huh.NewOption(l, l))
	}
	activities := make([]huh.Option[models.ActivityLevel], 0, len(models.ActivityLevels))
	for _, l := range models.ActivityLevels {
		activities = append(activities, huh.NewOption(strings.ReplaceAll(string(l), "_", " "), l))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&a.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Age").
				Value(&a.Age).
				Validate(numberValidator("age", "gte=1,lte=130")),
			huh.NewSelect[models.Sex]().
				Title("Sex").
				Options(
					huh.NewOption("Female", models.SexFemale),
					huh.NewOption("Male", models.SexMale),
					huh.NewOption("Other", models.SexOther),
				).
				Value(&a.Sex),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Height (cm)").
				Value(&a.Height).
				Validate(numberValidator("height", "gt=0,lte=300")),
			huh.NewInput().
				Title("Weight (kg)").
				Value(&a.Weight).
				Validate(numberValidator("weight", "gt=0,lte=500")),
			huh.NewInput().
				Title("Target weight (kg)").
				Value(&a.TargetWeight).
				Validate(numberValidator("target weight", "gt=0,lte=500")),
		),
		huh.NewGroup(
			huh.NewSelect[models.ActivityLevel]().
				Title("Activity level").
				Options(activities...).
				Value(&a.Activity),
			huh.NewSelect[models.Goal]().
				Title("Goal").
				Options(
					huh.NewOption("Lose weight", models.GoalLose),
					huh.NewOption("Maintain", models.GoalMaintain),
					huh.NewOption("Gain weight", models.GoalGain),
				).
				Value(&a.Goal),
			huh.NewInput().
				Title("Diet preferences").
				Description("Comma separated, optional").
				Value(&a.Diet),
			huh.NewSelect[string]().
				Title("Language").
				Options(languages...).
				Value(&a.Language),
		),
	).WithTheme(huh.ThemeDracula())
}

type OnboardCmd struct{}

func (c *OnboardCmd) Run(ctx *cli.Context) error {
	answers := answersFrom(ctx.State().GetState().Profile)
	if err := newOnboardForm(answers).Run(); err != nil {
		return fmt.Errorf("onboarding cancelled: %w", err)
	}
	return applyOnboarding(ctx, answers)
}

func applyOnboarding(ctx *cli.Context, a *onboardAnswers) error {
	update, err := a.update()
	if err != nil {
		return err
	}
	ctx.Dispatch(state.UpdateProfile{Update: update})
	if err := ctx.Repo.SetLanguage(a.Language); err != nil {
		return fmt.Errorf("failed to save language: %w", err)
	}
	fmt.Printf("✓ Welcome, %s! Your profile is saved.\n", *update.Name)
	return nil
}
