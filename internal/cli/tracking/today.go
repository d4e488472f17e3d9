package tracking

import (
	"fmt"

	"github.com/julianstephens/vitalit/internal/cli"
	"github.com/julianstephens/vitalit/internal/progress"
)

// TodayCmd prints the journal for one day.
type TodayCmd struct {
	Date string `help:"Date (YYYY-MM-DD), defaults to today."`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	if err := checkDate(c.Date); err != nil {
		return err
	}
	date := c.Date
	if date == "" {
		date = ctx.Today()
	}
	u := ctx.State().GetState()
	locale := ctx.Locale()

	fmt.Printf("📅 %s\n\n", date)

	for _, w := range u.Weights {
		if w.Date == date {
			fmt.Printf("⚖️  Weight: %.1f kg\n", w.Weight)
		}
	}

	water := u.WaterTotal(date)
	fmt.Printf("💧 Water: %.2f L", water)
	if d, ok := ctx.Repo.LoadWaterIntake(); ok && d.RecommendedML > 0 {
		fmt.Printf(" of %.2f L", float64(d.RecommendedML)/1000)
		if date == ctx.Today() {
			d = progress.RolloverWater(d, date)
			fmt.Printf("\n   %s", progress.WaterIntakeMessage(d.LoggedMLToday, d.RecommendedML))
		}
	}
	fmt.Println()

	if kcal, ok := u.CaloriesOn(date); ok {
		fmt.Printf("🔥 Calories: %d kcal\n", kcal)
	}

	var moods []string
	for _, m := range u.Moods {
		if m.Date == date {
			moods = append(moods, m.Time[:min(5, len(m.Time))]+" "+m.Mood.Emoji())
		}
	}
	if len(moods) > 0 {
		fmt.Printf("🙂 Mood: %v\n", moods)
	}

	meals := 0
	for _, m := range u.MealLogs {
		if m.Date != date {
			continue
		}
		if meals == 0 {
			fmt.Println("🍽  Meals:")
		}
		meals++
		fmt.Printf("   %s %-9s %-28s %4d kcal  [%s]\n", m.Time[:min(5, len(m.Time))], m.MealType, m.MealName, m.Calories, m.ID)
	}
	if meals > 0 {
		fmt.Printf("   Total: %d kcal\n", u.MealCalories(date))
	}

	for _, e := range u.ExerciseHistory {
		if e.Date != date {
			continue
		}
		name := e.ExerciseID
		if ex, ok := ctx.Catalog.Exercise(e.ExerciseID); ok {
			name = ex.Name.Resolve(locale)
		}
		fmt.Printf("💪 %s (%d min)\n", name, e.DurationMin)
	}

	for _, m := range u.Measurements {
		if m.Date == date {
			fmt.Printf("📏 Waist %.1f  Hips %.1f  Chest %.1f  Arms %.1f  Thighs %.1f\n", m.Waist, m.Hips, m.Chest, m.Arms, m.Thighs)
		}
	}

	if id := u.CurrentChallenge; id != "" {
		ch := u.Challenges[id]
		if day, _, ok := ch.Task(ch.CurrentDay); ok {
			fmt.Printf("\n🏁 %s, day %d:\n", ch.Name.Resolve(locale), ch.CurrentDay)
			for i, task := range day.Tasks {
				box := "[ ]"
				if i < len(day.Completed) && day.Completed[i] {
					box = "[x]"
				}
				fmt.Printf("   %d. %s %s\n", i+1, box, task)
			}
		}
	}

	var waterDates []string
	for _, w := range u.WaterLog {
		waterDates = append(waterDates, w.Date)
	}
	if streak := progress.Streak(waterDates); streak > 0 {
		fmt.Printf("\n🔥 %d-day hydration streak\n", streak)
	}
	return nil
}
