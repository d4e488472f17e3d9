package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/vitalit/internal/catalog"
	"github.com/julianstephens/vitalit/internal/cli"
	"github.com/julianstephens/vitalit/internal/cli/access"
	"github.com/julianstephens/vitalit/internal/cli/backups"
	"github.com/julianstephens/vitalit/internal/cli/calc"
	"github.com/julianstephens/vitalit/internal/cli/challenges"
	"github.com/julianstephens/vitalit/internal/cli/courses"
	"github.com/julianstephens/vitalit/internal/cli/data"
	"github.com/julianstephens/vitalit/internal/cli/profile"
	"github.com/julianstephens/vitalit/internal/cli/system"
	"github.com/julianstephens/vitalit/internal/cli/tracking"
	"github.com/julianstephens/vitalit/internal/constants"
	"github.com/julianstephens/vitalit/internal/entitlement"
	"github.com/julianstephens/vitalit/internal/errors"
	"github.com/julianstephens/vitalit/internal/keyring"
	"github.com/julianstephens/vitalit/internal/logger"
	"github.com/julianstephens/vitalit/internal/utils"
)

var CLI struct {
	Version   kong.VersionFlag
	Config    string `help:"Data file path, badger://dir, or PostgreSQL connection string. PostgreSQL passwords must come from the keyring or ${conn_env}, never this flag." type:"string" default:"${default_config}" env:"VITALIT_CONFIG"`
	Debug     bool   `help:"Log debug output to the log file and stderr." env:"VITALIT_DEBUG"`
	Timezone  string `help:"IANA timezone for calendar dates (defaults to the system zone)." env:"VITALIT_TIMEZONE"`
	Catalog   string `help:"Directory of YAML files overriding the built-in content." type:"path" env:"VITALIT_CATALOG"`
	PlanStore string `help:"Where the activated plan is kept." enum:"storage,keyring" default:"storage" env:"VITALIT_PLAN_STORE"`

	Init    system.InitCmd    `cmd:"" help:"Initialize vitalit storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Onboard system.OnboardCmd `cmd:"" help:"Set up your profile interactively."`
	Reset   system.ResetCmd   `cmd:"" help:"Erase all progress and logs."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Report keyring availability." default:"1"`
	} `cmd:"" help:"Manage secrets in the OS keyring."`

	Profile struct {
		Show profile.ShowCmd `cmd:"" help:"Show your profile." default:"1"`
		Set  profile.SetCmd  `cmd:"" help:"Update profile fields."`
	} `cmd:"" help:"View or edit your profile."`
	Favorite struct {
		Toggle profile.FavoriteToggleCmd `cmd:"" help:"Add or remove a favorite."`
		List   profile.FavoriteListCmd   `cmd:"" help:"List favorites." default:"1"`
	} `cmd:"" help:"Manage favorite meals, exercises and quotes."`
	Badge struct {
		List profile.BadgeListCmd `cmd:"" help:"List badges." default:"1"`
	} `cmd:"" help:"Show earned and locked badges."`

	Challenge struct {
		List       challenges.ListCmd       `cmd:"" help:"List challenges." default:"1"`
		Start      challenges.StartCmd      `cmd:"" help:"Start a challenge."`
		Restart    challenges.RestartCmd    `cmd:"" help:"Restart a challenge from day 1."`
		Show       challenges.ShowCmd       `cmd:"" help:"Show challenge progress."`
		Complete   challenges.CompleteCmd   `cmd:"" help:"Mark a task done."`
		Uncomplete challenges.UncompleteCmd `cmd:"" help:"Mark a task not done."`
	} `cmd:"" help:"Work through multi-day challenges."`

	Log struct {
		Weight     tracking.WeightCmd     `cmd:"" help:"Log your weight."`
		Water      tracking.WaterCmd      `cmd:"" help:"Log water."`
		Mood       tracking.MoodCmd       `cmd:"" help:"Log your mood."`
		Calories   tracking.CaloriesCmd   `cmd:"" help:"Log calories eaten."`
		Meal       tracking.MealCmd       `cmd:"" help:"Log a catalog meal."`
		Exercise   tracking.ExerciseCmd   `cmd:"" help:"Log a catalog exercise."`
		Measure    tracking.MeasureCmd    `cmd:"" help:"Log body measurements."`
		DeleteMeal tracking.DeleteMealCmd `cmd:"" name:"delete-meal" help:"Delete a meal log entry."`
	} `cmd:"" help:"Record wellness data."`
	Today tracking.TodayCmd `cmd:"" help:"Show today's journal."`

	Course struct {
		List     courses.ListCmd     `cmd:"" help:"List courses." default:"1"`
		Start    courses.StartCmd    `cmd:"" help:"Start a course."`
		Next     courses.NextCmd     `cmd:"" help:"Show or advance to the next lesson."`
		Complete courses.CompleteCmd `cmd:"" help:"Complete a lesson."`
	} `cmd:"" help:"Follow guided courses."`

	Plan struct {
		List       access.ListCmd       `cmd:"" help:"List plans."`
		Activate   access.ActivateCmd   `cmd:"" help:"Activate a plan with its password."`
		Status     access.StatusCmd     `cmd:"" help:"Show the active plan." default:"1"`
		Deactivate access.DeactivateCmd `cmd:"" help:"Remove the active plan."`
	} `cmd:"" help:"Manage your access plan."`

	Calc struct {
		BMI      calc.BMICmd      `cmd:"" name:"bmi" help:"Body mass index."`
		Calories calc.CaloriesCmd `cmd:"" help:"Daily calorie needs."`
		Water    calc.WaterCmd    `cmd:"" help:"Daily water needs."`
		Body     calc.BodyCmd     `cmd:"" help:"Waist-to-hip ratio and body fat."`
	} `cmd:"" help:"Health calculators."`

	Export data.ExportCmd `cmd:"" help:"Export your data as CSV."`
	Import data.ImportCmd `cmd:"" help:"Merge a CSV export into your data."`
	Undo   data.UndoCmd   `cmd:"" help:"Revert the last change to your data."`
	Backup struct {
		Create  backups.CreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.ListCmd    `cmd:"" help:"List available backups."`
		Restore backups.RestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage data file backups."`
}

// Commands that run against storage that may not exist or load yet.
var skipLoad = []string{"init", "doctor", "keyring"}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Wellness challenges, journaling and health calculators"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
			"conn_env":       cli.ConnectionEnv,
			"quick_water":    tracking.QuickWater,
		},
	)

	config, trusted := cli.ResolveConfig(CLI.Config)
	store, err := cli.OpenProvider(config, trusted)
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: cli.ConfigDir(store)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	loc, err := utils.LoadLocation(CLI.Timezone)
	if err != nil {
		errors.Fatal(err)
	}
	cat, err := catalog.LoadDir(CLI.Catalog)
	if err != nil {
		errors.Fatal(fmt.Errorf("failed to load content catalog: %w", err))
	}

	var plans entitlement.RecordStore
	if CLI.PlanStore == "keyring" {
		plans = keyring.NewPlanStore()
	}
	appCtx := cli.NewContext(store, cat, loc, plans)

	command := strings.Fields(ctx.Command())
	if len(command) > 0 && !slices.Contains(skipLoad, command[0]) {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}

