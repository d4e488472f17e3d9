package system

import (
	"fmt"

	"github.com/julianstephens/vitalit/internal/cli"
	"github.com/julianstephens/vitalit/internal/state"
)

// ResetCmd wipes wellness data. The activated plan is left alone.
type ResetCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		fmt.Println("⚠️  WARNING: This deletes your profile, logs, challenges and badges.")
		fmt.Println("A backup of your current data will be created first.")
		ok, err := cli.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	ctx.Dispatch(state.ResetAll{})
	if err := ctx.Repo.ResetCalculators(); err != nil {
		return fmt.Errorf("failed to clear calculator results: %w", err)
	}
	fmt.Println("✓ All wellness data has been reset.")
	return nil
}
