package tracking

import (
	"fmt"
	"slices"

	"github.com/julianstephens/vitalit/internal/cli"
	"github.com/julianstephens/vitalit/internal/constants"
	"github.com/julianstephens/vitalit/internal/errors"
	"github.com/julianstephens/vitalit/internal/models"
	"github.com/julianstephens/vitalit/internal/progress"
	"github.com/julianstephens/vitalit/internal/state"
	"github.com/julianstephens/vitalit/internal/utils"
	"github.com/julianstephens/vitalit/internal/validation"
)

func checkDate(date string) error {
	if date != "" && !utils.ValidateDate(date) {
		return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
	}
	return nil
}

type WeightCmd struct {
	Weight float64 `arg:"" help:"Weight in kilograms."`
	Date   string  `help:"Date (YYYY-MM-DD), defaults to today."`
}

func (c *WeightCmd) Run(ctx *cli.Context) error {
	if err := validation.Var("weight", c.Weight, "gt=0,lte=500"); err != nil {
		return err
	}
	if err := checkDate(c.Date); err != nil {
		return err
	}
	u := ctx.State().GetState()
	previous, had := u.LatestWeight()

	ctx.Dispatch(state.LogWeight{Weight: c.Weight, Date: c.Date})
	fmt.Printf("✓ Logged %.1f kg\n", c.Weight)
	if had && previous.Date != c.Date {
		fmt.Printf("  %+.1f kg since %s\n", c.Weight-previous.Weight, previous.Date)
	}
	if target := u.Profile.TargetWeight; target > 0 && len(u.Weights) > 0 {
		fmt.Printf("  %d%% of the way to %.1f kg\n", progress.GoalProgress(c.Weight, u.Weights[0].Weight, target), target)
	}
	return nil
}

type WaterCmd struct {
	Liters float64 `arg:"" optional:"" default:"${quick_water}" help:"Liters drunk."`
}

func (c *WaterCmd) Run(ctx *cli.Context) error {
	if err := validation.Var("liters", c.Liters, "gt=0,lte=10"); err != nil {
		return err
	}
	ctx.LogWater(c.Liters)
	total := ctx.State().GetState().WaterTotal(ctx.Today())
	fmt.Printf("💧 +%.2f L (%.2f L today)\n", c.Liters, total)
	if d, ok := ctx.WaterToday(); ok && d.RecommendedML > 0 {
		fmt.Println(progress.WaterIntakeMessage(d.LoggedMLToday, d.RecommendedML))
	}
	return nil
}

type MoodCmd struct {
	Mood string `arg:"" help:"1 (awful) to 5 (great), or the matching emoji."`
}

func (c *MoodCmd) Run(ctx *cli.Context) error {
	mood, err := models.ParseMood(c.Mood)
	if err != nil {
		return err
	}
	ctx.Dispatch(state.LogMood{Mood: mood})
	fmt.Printf("✓ Mood logged: %s\n", mood.Emoji())
	return nil
}

type CaloriesCmd struct {
	Calories int    `arg:"" help:"Calories eaten."`
	Date     string `help:"Date (YYYY-MM-DD), defaults to today."`
}

func (c *CaloriesCmd) Run(ctx *cli.Context) error {
	if err := validation.Var("calories", c.Calories, "gte=0,lte=20000"); err != nil {
		return err
	}
	if err := checkDate(c.Date); err != nil {
		return err
	}
	ctx.Dispatch(state.LogCalories{Calories: c.Calories, Date: c.Date})
	fmt.Printf("✓ Logged %d kcal\n", c.Calories)
	if d, ok := ctx.Repo.LoadDailyCalories(); ok && d.RecommendedCalories > 0 {
		fmt.Printf("  Target: %d kcal (%+d)\n", d.RecommendedCalories, c.Calories-d.RecommendedCalories)
	}
	return nil
}

type MealCmd struct {
	MealID string `arg:"" help:"Meal catalog id."`
	Type   string `help:"breakfast, lunch, dinner or snack (defaults to the meal's category)."`
}

func (c *MealCmd) Run(ctx *cli.Context) error {
	meal, ok := ctx.Catalog.Meal(c.MealID)
	if !ok {
		return fmt.Errorf("meal %q: %w", c.MealID, errors.ErrNotFound)
	}
	if err := ctx.RequireAccess(meal.AccessPlans); err != nil {
		return err
	}
	var mealType models.MealType
	if c.Type != "" {
		t, err := models.ParseMealType(c.Type)
		if err != nil {
			return err
		}
		mealType = t
	}
	ctx.Dispatch(state.LogMeal{MealID: c.MealID, MealType: mealType})
	fmt.Printf("🍽  Logged %s (%d kcal)\n", meal.Name.Resolve(ctx.Locale()), meal.Calories)
	fmt.Printf("  %d kcal from meals today\n", ctx.State().GetState().MealCalories(ctx.Today()))
	return nil
}

type ExerciseCmd struct {
	ExerciseID string `arg:"" help:"Exercise catalog id."`
	Duration   int    `short:"d" default:"0" help:"Duration in minutes."`
}

func (c *ExerciseCmd) Run(ctx *cli.Context) error {
	ex, ok := ctx.Catalog.Exercise(c.ExerciseID)
	if !ok {
		return fmt.Errorf("exercise %q: %w", c.ExerciseID, errors.ErrNotFound)
	}
	if err := ctx.RequireAccess(ex.AccessPlans); err != nil {
		return err
	}
	if err := validation.Var("duration", c.Duration, "gte=0,lte=1440"); err != nil {
		return err
	}
	ctx.Dispatch(state.LogExercise{ExerciseID: c.ExerciseID, DurationMin: c.Duration})
	fmt.Printf("💪 Logged %s\n", ex.Name.Resolve(ctx.Locale()))
	return nil
}

type MeasureCmd struct {
	Waist  float64 `help:"Waist (cm)."`
	Hips   float64 `help:"Hips (cm)."`
	Chest  float64 `help:"Chest (cm)."`
	Arms   float64 `help:"Arms (cm)."`
	Thighs float64 `help:"Thighs (cm)."`
	Date   string  `help:"Date (YYYY-MM-DD), defaults to today."`
}

func (c *MeasureCmd) Run(ctx *cli.Context) error {
	if err := checkDate(c.Date); err != nil {
		return err
	}
	m := models.Measurement{Date: c.Date, Waist: c.Waist, Hips: c.Hips, Chest: c.Chest, Arms: c.Arms, Thighs: c.Thighs}
	for _, v := range []float64{m.Waist, m.Hips, m.Chest, m.Arms, m.Thighs} {
		if err := validation.Var("measurement", v, "gte=0,lte=400"); err != nil {
			return err
		}
	}
	if !ctx.Dispatch(state.LogMeasurement{Measurement: m}) {
		return fmt.Errorf("no measurement given; pass at least one of --waist, --hips, --chest, --arms, --thighs")
	}
	fmt.Println("✓ Measurements saved")
	return nil
}

type DeleteMealCmd struct {
	ID string `arg:"" help:"Meal log id (see 'vitalit today')."`
}

func (c *DeleteMealCmd) Run(ctx *cli.Context) error {
	logs := ctx.State().GetState().MealLogs
	i := slices.IndexFunc(logs, func(m models.MealLog) bool { return m.ID == c.ID })
	if i < 0 {
		return fmt.Errorf("meal log %q: %w", c.ID, errors.ErrNotFound)
	}
	ctx.Dispatch(state.DeleteMealLog{ID: c.ID})
	fmt.Printf("✓ Deleted %s from %s\n", logs[i].MealName, logs[i].Date)
	return nil
}

// QuickWater is the kong variable the water command defaults to.
var QuickWater = fmt.Sprint(constants.QuickWaterLiters)
