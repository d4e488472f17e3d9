package profile

import (
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/vitalit/internal/cli"
	"github.com/julianstephens/vitalit/internal/constants"
	"github.com/julianstephens/vitalit/internal/models"
	"github.com/julianstephens/vitalit/internal/progress"
	"github.com/julianstephens/vitalit/internal/state"
	"github.com/julianstephens/vitalit/internal/validation"
)

type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	u := ctx.State().GetState()
	p := u.Profile
	if !p.Onboarded() {
		fmt.Println("No profile yet. Run 'vitalit onboard' to set one up.")
		return nil
	}

	fmt.Printf("Name:            %s\n", p.Name)
	fmt.Printf("Age:             %d\n", p.Age)
	fmt.Printf("Height:          %.1f cm\n", p.Height)
	fmt.Printf("Weight:          %.1f kg\n", p.Weight)
	fmt.Printf("Target weight:   %.1f kg\n", p.TargetWeight)
	fmt.Printf("Sex:             %s\n", p.Sex)
	fmt.Printf("Activity level:  %s\n", p.ActivityLevel)
	fmt.Printf("Goal:            %s\n", p.Goal)
	if len(p.Diet) > 0 {
		fmt.Printf("Diet:            %s\n", strings.Join(p.Diet, ", "))
	}
	fmt.Printf("Language:        %s\n", ctx.Locale())

	if p.Weight > 0 && p.Height > 0 {
		a := progress.AssessBMI(p.Weight, p.Height)
		fmt.Printf("\nBMI %.2f (%s)\n", a.Value, a.Category)
	}
	if latest, ok := u.LatestWeight(); ok && p.TargetWeight > 0 {
		start := u.Weights[0].Weight
		fmt.Printf("Goal progress:   %d%%\n", progress.GoalProgress(latest.Weight, start, p.TargetWeight))
	}
	return nil
}

// SetCmd updates only the fields given on the command line.
type SetCmd struct {
	Name         *string  `help:"Display name."`
	Age          *int     `help:"Age in years."`
	Height       *float64 `help:"Height in centimetres."`
	Weight       *float64 `help:"Weight in kilograms."`
	TargetWeight *float64 `help:"Target weight in kilograms."`
	Sex          *string  `help:"male, female or other."`
	Activity     *string  `help:"sedentary, light, moderate, active or very_active."`
	Goal         *string  `help:"lose, gain or maintain."`
	Diet         *string  `help:"Diet preferences, comma separated. Pass an empty value to clear."`
	Language     *string  `help:"Locale for catalog text."`
}

func (c *SetCmd) update() (models.ProfileUpdate, error) {
	u := models.ProfileUpdate{
		Name:         c.Name,
		Age:          c.Age,
		Height:       c.Height,
		Weight:       c.Weight,
		TargetWeight: c.TargetWeight,
		Language:     c.Language,
	}
	if c.Diet != nil {
		diet := []string{}
		for d := range strings.SplitSeq(*c.Diet, ",") {
			if d = strings.TrimSpace(d); d != "" {
				diet = append(diet, d)
			}
		}
		u.Diet = &diet
	}
	if c.Sex != nil {
		v, err := models.ParseSex(*c.Sex)
		if err != nil {
			return u, err
		}
		u.Sex = &v
	}
	if c.Activity != nil {
		v, err := models.ParseActivityLevel(*c.Activity)
		if err != nil {
			return u, err
		}
		u.ActivityLevel = &v
	}
	if c.Goal != nil {
		v, err := models.ParseGoal(*c.Goal)
		if err != nil {
			return u, err
		}
		u.Goal = &v
	}
	if c.Language != nil && !slices.Contains(constants.SupportedLocales, *c.Language) {
		return u, fmt.Errorf("unsupported language %q", *c.Language)
	}
	return u, nil
}

func (c *SetCmd) Run(ctx *cli.Context) error {
	update, err := c.update()
	if err != nil {
		return err
	}
	if update.IsEmpty() {
		return fmt.Errorf("nothing to update; pass at least one flag")
	}
	if err := validation.Struct(update.Apply(ctx.State().GetState().Profile)); err != nil {
		return err
	}

	if !ctx.Dispatch(state.UpdateProfile{Update: update}) {
		fmt.Println("Profile unchanged.")
		return nil
	}
	if update.Language != nil {
		if err := ctx.Repo.SetLanguage(*update.Language); err != nil {
			return fmt.Errorf("failed to save language: %w", err)
		}
	}
	fmt.Println("✓ Profile updated")
	return nil
}
