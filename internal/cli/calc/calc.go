package calc

import (
	"fmt"

	"github.com/julianstephens/vitalit/internal/cli"
	"github.com/julianstephens/vitalit/internal/models"
	"github.com/julianstephens/vitalit/internal/progress"
	"github.com/julianstephens/vitalit/internal/validation"
)

// Unset flags fall back to the profile.

func orFloat(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}

func orInt(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

// orParsed parses v with parse, or returns fallback when v is empty.
func orParsed[T ~string](v string, fallback T, parse func(string) (T, error)) (T, error) {
	if v == "" {
		return fallback, nil
	}
	return parse(v)
}

type enums struct {
	sex      models.Sex
	activity models.ActivityLevel
	goal     models.Goal
}

func parseEnums(p models.UserProfile, sex, activity, goal string) (enums, error) {
	var e enums
	var err error
	if e.sex, err = orParsed(sex, p.Sex, models.ParseSex); err != nil {
		return e, err
	}
	if e.activity, err = orParsed(activity, p.ActivityLevel, models.ParseActivityLevel); err != nil {
		return e, err
	}
	if e.goal, err = orParsed(goal, p.Goal, models.ParseGoal); err != nil {
		return e, err
	}
	return e, nil
}

type BMICmd struct {
	Weight float64 `help:"Weight in kilograms (defaults to your profile)."`
	Height float64 `help:"Height in centimetres (defaults to your profile)."`
}

func (c *BMICmd) Run(ctx *cli.Context) error {
	p := ctx.State().GetState().Profile
	weight, height := orFloat(c.Weight, p.Weight), orFloat(c.Height, p.Height)
	if err := validation.Var("weight", weight, "gt=0,lte=500"); err != nil {
		return err
	}
	if err := validation.Var("height", height, "gt=0,lte=300"); err != nil {
		return err
	}

	a := progress.AssessBMI(weight, height)
	fmt.Printf("BMI: %.2f (%s)\n%s\n", a.Value, a.Category, a.Message)
	if p.Age > 0 {
		fmt.Printf("Estimated body fat: ~%d%%\n", progress.BodyFatDeurenberg(a.Value, p.Age, p.Sex))
	}
	return nil
}

type CaloriesCmd struct {
	Weight   float64 `help:"Weight in kilograms."`
	Height   float64 `help:"Height in centimetres."`
	Age      int     `help:"Age in years."`
	Sex      string  `help:"male, female or other."`
	Activity string  `help:"Activity level."`
	Goal     string  `help:"lose, gain or maintain."`
	Weeks    int     `help:"Weeks to reach your target weight; prints the daily deficit."`
}

func (c *CaloriesCmd) Run(ctx *cli.Context) error {
	p := ctx.State().GetState().Profile
	e, err := parseEnums(p, c.Sex, c.Activity, c.Goal)
	if err != nil {
		return err
	}
	d := models.DailyCaloriesData{
		Weight:   orFloat(c.Weight, p.Weight),
		Height:   orFloat(c.Height, p.Height),
		Age:      orInt(c.Age, p.Age),
		Sex:      e.sex,
		Activity: e.activity,
		Goal:     e.goal,
	}
	if err := validation.Var("weight", d.Weight, "gt=0,lte=500"); err != nil {
		return err
	}
	if err := validation.Var("height", d.Height, "gt=0,lte=300"); err != nil {
		return err
	}
	if err := validation.Var("age", d.Age, "gte=1,lte=130"); err != nil {
		return err
	}

	bmr := progress.BMR(d.Weight, d.Height, d.Age, d.Sex)
	d.BMI = progress.BMI(d.Weight, d.Height)
	d.RecommendedCalories = progress.DailyCalories(d.Weight, d.Height, d.Age, d.Sex, d.Activity, d.Goal)
	d.LastUpdated = ctx.Today()

	fmt.Printf("BMR: %.2f kcal\n", bmr)
	fmt.Printf("Daily target: %d kcal (activity ×%.3g)\n", d.RecommendedCalories, progress.ActivityMultiplier(d.Activity))
	fmt.Println(progress.CalorieMessage(d.RecommendedCalories, d.Goal))
	if c.Weeks > 0 && p.TargetWeight > 0 {
		fmt.Printf("Reaching %.1f kg in %d weeks needs a %d kcal daily deficit.\n",
			p.TargetWeight, c.Weeks, progress.WeightLossDailyDeficit(d.Weight, p.TargetWeight, c.Weeks))
	}
	return ctx.Repo.SaveDailyCalories(d)
}

type WaterCmd struct {
	Weight   float64 `help:"Weight in kilograms."`
	Activity string  `help:"Activity level."`
	Goal     string  `help:"lose, gain or maintain."`
}

func (c *WaterCmd) Run(ctx *cli.Context) error {
	p := ctx.State().GetState().Profile
	e, err := parseEnums(p, "", c.Activity, c.Goal)
	if err != nil {
		return err
	}
	d, _ := ctx.WaterToday()
	d.Weight = orFloat(c.Weight, p.Weight)
	d.Activity = e.activity
	d.Goal = e.goal
	if err := validation.Var("weight", d.Weight, "gt=0,lte=500"); err != nil {
		return err
	}
	d.RecommendedML = progress.WaterIntakeML(d.Weight, d.Activity, d.Goal)
	d.LastUpdated = ctx.Today()

	fmt.Printf("Recommended: %d ml per day\n", d.RecommendedML)
	fmt.Printf("Baseline estimate: %.1f L per day\n", progress.WaterNeedsLiters(d.Weight, d.Activity))
	fmt.Println(progress.WaterIntakeMessage(d.LoggedMLToday, d.RecommendedML))
	return ctx.Repo.SaveWaterIntake(d)
}

type BodyCmd struct {
	Waist  float64 `required:"" help:"Waist (cm)."`
	Hip    float64 `required:"" help:"Hip (cm)."`
	Neck   float64 `help:"Neck (cm), needed for the body fat estimate."`
	Height float64 `help:"Height in centimetres."`
	Sex    string  `help:"male, female or other."`
}

func (c *BodyCmd) Run(ctx *cli.Context) error {
	p := ctx.State().GetState().Profile
	e, err := parseEnums(p, c.Sex, "", "")
	if err != nil {
		return err
	}
	d := models.BodyCompositionData{
		Waist:  c.Waist,
		Hip:    c.Hip,
		Neck:   c.Neck,
		Height: orFloat(c.Height, p.Height),
		Sex:    e.sex,
	}
	for name, v := range map[string]float64{"waist": d.Waist, "hip": d.Hip} {
		if err := validation.Var(name, v, "gt=0,lte=400"); err != nil {
			return err
		}
	}

	whr := progress.AssessWaistToHip(d.Waist, d.Hip, d.Sex)
	d.WaistToHipRatio = whr.Value
	fmt.Printf("Waist-to-hip ratio: %.3f (%s; body chart: %s)\n%s\n",
		whr.Value, whr.Category, progress.BodyPageWaistToHipRisk(whr.Value, d.Sex), whr.Message)

	if d.Neck > 0 && d.Height > 0 {
		d.BodyFatPercentage = progress.BodyFatNavy(d.Waist, d.Hip, d.Neck, d.Height, d.Sex)
		fmt.Printf("Body fat (Navy): %.1f%%\n%s\n", d.BodyFatPercentage, progress.BodyFatMessage(d.BodyFatPercentage, d.Sex))
	}
	d.LastUpdated = ctx.Today()
	return ctx.Repo.SaveBodyComposition(d)
}
