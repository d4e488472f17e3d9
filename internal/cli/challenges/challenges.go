package challenges

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/vitalit/internal/badges"
	"github.com/julianstephens/vitalit/internal/catalog"
	"github.com/julianstephens/vitalit/internal/cli"
	"github.com/julianstephens/vitalit/internal/errors"
	"github.com/julianstephens/vitalit/internal/models"
	"github.com/julianstephens/vitalit/internal/state"
)

func template(ctx *cli.Context, id string) (catalog.ChallengeTemplate, error) {
	tmpl, ok := ctx.Catalog.Challenge(id)
	if !ok {
		return tmpl, fmt.Errorf("challenge %q: %w", id, errors.ErrNotFound)
	}
	return tmpl, nil
}

// started returns challenge id, defaulting to the current one.
func started(ctx *cli.Context, id string) (models.Challenge, error) {
	u := ctx.State().GetState()
	if id == "" {
		id = u.CurrentChallenge
	}
	if id == "" {
		return models.Challenge{}, fmt.Errorf("no challenge in progress; start one with 'vitalit challenge start'")
	}
	c, ok := u.Challenges[id]
	if !ok {
		return models.Challenge{}, fmt.Errorf("challenge %q has not been started", id)
	}
	return c, nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	u := ctx.State().GetState()
	locale := ctx.Locale()

	fmt.Printf("%-14s %-28s %5s  %s\n", "ID", "NAME", "DAYS", "STATUS")
	for _, t := range ctx.Catalog.Challenges {
		status := "available"
		if ch, ok := u.Challenges[t.ID]; ok {
			status = fmt.Sprintf("%d%% (%d/%d days)", ch.ProgressPercent(), len(ch.CompletedDays), ch.Days)
			if ch.IsComplete() {
				status = "🏆 complete"
			}
			if t.ID == u.CurrentChallenge {
				status += "  ← current"
			}
		} else if !ctx.CanAccess(t.AccessPlans) {
			status = "🔒 locked"
		}
		fmt.Printf("%-14s %-28s %5d  %s\n", t.ID, t.Name.Resolve(locale), t.Days, status)
	}
	return nil
}

type StartCmd struct {
	ID string `arg:"" help:"Challenge id."`
}

func (c *StartCmd) Run(ctx *cli.Context) error {
	tmpl, err := template(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.RequireAccess(tmpl.AccessPlans); err != nil {
		return err
	}
	if _, ok := ctx.State().GetState().Challenges[c.ID]; ok {
		return fmt.Errorf("challenge %q is already started; use 'vitalit challenge restart' to begin again", c.ID)
	}
	ctx.Dispatch(state.StartChallenge{ID: c.ID})
	fmt.Printf("✓ Started %s (%d days)\n", tmpl.Name.Resolve(ctx.Locale()), tmpl.Days)
	return nil
}

type RestartCmd struct {
	ID  string `arg:"" help:"Challenge id."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *RestartCmd) Run(ctx *cli.Context) error {
	tmpl, err := template(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.RequireAccess(tmpl.AccessPlans); err != nil {
		return err
	}
	if ch, ok := ctx.State().GetState().Challenges[c.ID]; ok && len(ch.CompletedDays) > 0 && !c.Yes {
		ok, err := cli.Confirm(fmt.Sprintf("Discard %d completed day(s)?", len(ch.CompletedDays)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Restart cancelled.")
			return nil
		}
	}
	ctx.Dispatch(state.RestartChallenge{ID: c.ID})
	fmt.Printf("✓ Restarted %s from day 1\n", tmpl.Name.Resolve(ctx.Locale()))
	return nil
}

type ShowCmd struct {
	ID  string `arg:"" optional:"" help:"Challenge id (defaults to the current challenge)."`
	All bool   `help:"Show every day instead of the days around the current one."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	ch, err := started(ctx, c.ID)
	if err != nil {
		return err
	}
	locale := ctx.Locale()
	fmt.Printf("%s\n%s\n", ch.Name.Resolve(locale), ch.Description.Resolve(locale))
	fmt.Printf("Started %s, day %d of %d, %d%% complete\n\n",
		ch.StartDate.In(ctx.Location).Format(time.DateOnly), ch.CurrentDay, ch.Days, ch.ProgressPercent())

	for _, d := range ch.DailyTasks {
		if !c.All && (d.Day < ch.CurrentDay-1 || d.Day > ch.CurrentDay+1) {
			continue
		}
		mark := " "
		if ch.DayCompleted(d.Day) {
			mark = "✓"
		}
		fmt.Printf("[%s] Day %d\n", mark, d.Day)
		for i, task := range d.Tasks {
			box := "[ ]"
			if i < len(d.Completed) && d.Completed[i] {
				box = "[x]"
			}
			fmt.Printf("      %d. %s %s\n", i+1, box, task)
		}
	}
	if ch.IsComplete() {
		fmt.Printf("\n🏆 Completed! Badge: %s\n", badges.ChallengeBadgeID(ch.ID))
	}
	return nil
}

// TaskCmd addresses one task of one day. Task numbers start at 1.
type TaskCmd struct {
	Day       int    `arg:"" help:"Day number."`
	Task      int    `arg:"" help:"Task number within the day."`
	Challenge string `short:"c" help:"Challenge id (defaults to the current challenge)."`
}

func (t TaskCmd) resolve(ctx *cli.Context) (models.Challenge, models.DailyTask, error) {
	ch, err := started(ctx, t.Challenge)
	if err != nil {
		return ch, models.DailyTask{}, err
	}
	if err := ctx.RequireAccess(ch.AccessPlans); err != nil {
		return ch, models.DailyTask{}, err
	}
	day, _, ok := ch.Task(t.Day)
	if !ok {
		return ch, day, fmt.Errorf("day %d is outside 1..%d", t.Day, ch.Days)
	}
	if t.Task < 1 || t.Task > len(day.Tasks) {
		return ch, day, fmt.Errorf("day %d has tasks 1..%d", t.Day, len(day.Tasks))
	}
	return ch, day, nil
}

type CompleteCmd struct {
	TaskCmd `embed:""`
}

func (c *CompleteCmd) Run(ctx *cli.Context) error {
	ch, day, err := c.resolve(ctx)
	if err != nil {
		return err
	}
	if !ctx.Dispatch(state.CompleteTask{ChallengeID: ch.ID, Day: c.Day, TaskIndex: c.Task - 1}) {
		fmt.Println("Task was already done.")
		return nil
	}
	fmt.Printf("✓ %s\n", day.Tasks[c.Task-1])
	if after := ctx.State().GetState().Challenges[ch.ID]; after.DayCompleted(c.Day) && !ch.DayCompleted(c.Day) {
		fmt.Printf("🎉 Day %d complete! %s\n", c.Day, progressBar(after.ProgressPercent()))
	}
	return nil
}

type UncompleteCmd struct {
	TaskCmd `embed:""`
}

func (c *UncompleteCmd) Run(ctx *cli.Context) error {
	ch, day, err := c.resolve(ctx)
	if err != nil {
		return err
	}
	if !ctx.Dispatch(state.UncompleteTask{ChallengeID: ch.ID, Day: c.Day, TaskIndex: c.Task - 1}) {
		fmt.Println("Task was not done.")
		return nil
	}
	fmt.Printf("↺ %s\n", day.Tasks[c.Task-1])
	return nil
}

func progressBar(percent int) string {
	const width = 20
	filled := percent * width / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf("] %d%%", percent)
}
