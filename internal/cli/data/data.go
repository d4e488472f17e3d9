package data

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/vitalit/internal/cli"
	"github.com/julianstephens/vitalit/internal/csvio"
	"github.com/julianstephens/vitalit/internal/logger"
	"github.com/julianstephens/vitalit/internal/state"
)

func caches(ctx *cli.Context) csvio.Caches {
	var c csvio.Caches
	if d, ok := ctx.WaterToday(); ok {
		c.Water = &d
	}
	if d, ok := ctx.Repo.LoadDailyCalories(); ok {
		c.Calories = &d
	}
	if d, ok := ctx.Repo.LoadBodyComposition(); ok {
		c.Body = &d
	}
	return c
}

type ExportCmd struct {
	Output string `short:"o" help:"File to write. Defaults to stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	var w io.Writer = os.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	exp := csvio.Exporter{Locale: ctx.Locale(), Now: ctx.Clock.Now()}
	if err := exp.Export(w, ctx.State().GetState(), caches(ctx)); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if c.Output != "" {
		fmt.Fprintf(os.Stderr, "✓ Exported to %s\n", c.Output)
	}
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"CSV export to merge into your data." type:"existingfile"`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	ctx.PerformAutomaticBackup()

	im := csvio.Importer{Templates: ctx.Catalog, Location: ctx.Location}
	res, err := im.Import(f, ctx.State().GetState())
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	ctx.Dispatch(state.SetUserData{Data: res.Data})

	if d := res.Caches.Water; d != nil {
		if err := ctx.Repo.SaveWaterIntake(*d); err != nil {
			logger.Warn("Failed to save imported water intake", "error", err)
		}
	}
	if d := res.Caches.Calories; d != nil {
		if err := ctx.Repo.SaveDailyCalories(*d); err != nil {
			logger.Warn("Failed to save imported calorie data", "error", err)
		}
	}
	if d := res.Caches.Body; d != nil {
		if err := ctx.Repo.SaveBodyComposition(*d); err != nil {
			logger.Warn("Failed to save imported body composition", "error", err)
		}
	}

	fmt.Printf("✓ Imported %d record(s)", res.Imported)
	if res.Skipped > 0 {
		fmt.Printf(", skipped %d", res.Skipped)
	}
	fmt.Println()
	return nil
}

// UndoCmd puts back the snapshot the last change replaced.
type UndoCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *UndoCmd) Run(ctx *cli.Context) error {
	prev, ok, err := ctx.Repo.PreviousUserData()
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if !ok {
		fmt.Println("Nothing to undo. History is kept by the sqlite, badger and postgres backends.")
		return nil
	}
	if !c.Yes {
		ok, err := cli.Confirm("Revert your data to the previous snapshot?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Undo cancelled.")
			return nil
		}
	}
	ctx.Dispatch(state.SetUserData{Data: prev})
	fmt.Println("✓ Reverted to the previous snapshot")
	return nil
}
