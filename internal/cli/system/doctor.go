package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/vitalit/internal/backup"
	"github.com/julianstephens/vitalit/internal/cli"
	"github.com/julianstephens/vitalit/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name string
	run  func(*cli.Context) error
	// needsStore checks are skipped when storage is unreachable.
	needsStore bool
	// warnOnly failures are reported but do not fail the command.
	warnOnly bool
}

var errSkipped = errors.New("not applicable")

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsStore: true},
	{name: "Data validation", run: checkValidation, needsStore: true},
	{name: "Catalog", run: checkCatalog},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Access plan", run: checkPlan, warnOnly: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := true
	if err := checkStoreReachable(ctx); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
		storeReachable = false
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsStore && !storeReachable {
			fmt.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case errors.Is(err, errSkipped):
			fmt.Printf("⊘ %s: SKIPPED (%v)\n", c.name, err)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, err := ctx.Store.Keys(); err != nil {
		return fmt.Errorf("failed to query storage: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return fmt.Errorf("%w: backend has no schema", errSkipped)
	}
	current, latest, err := m.SchemaVersion()
	if err != nil {
		return err
	}
	if current != latest {
		return fmt.Errorf("schema version %d, expected %d (run 'vitalit migrate')", current, latest)
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	v := validation.New()
	v.KnownChallenges = ctx.Catalog.ChallengeIDs()
	result := v.ValidateUserData(ctx.Repo.LoadUserData())
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s)\n%s", len(result.Conflicts), result.FormatReport())
	}
	return nil
}

func checkCatalog(ctx *cli.Context) error {
	if ctx.Catalog == nil {
		return errors.New("catalog not loaded")
	}
	if len(ctx.Catalog.Challenges) == 0 || len(ctx.Catalog.Plans) == 0 {
		return errors.New("catalog has no challenges or no plans")
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := backup.NewManager(ctx.Store.GetConfigPath())
	if err != nil {
		return fmt.Errorf("%w: %v", errSkipped, err)
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s", mgr.GetBackupDir())
	}
	if age := time.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	if ctx.Location == nil {
		return errors.New("no timezone configured")
	}
	now := ctx.Clock.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	if now.Location().String() != ctx.Location.String() {
		return fmt.Errorf("clock reports %s, expected %s", now.Location(), ctx.Location)
	}
	return nil
}

func checkPlan(ctx *cli.Context) error {
	st := ctx.Entitlement.Status()
	if !st.Active {
		return errors.New("no plan activated; gated content is locked")
	}
	if st.Expired {
		return fmt.Errorf("plan %q expired on %s", st.PlanName, st.ExpiresAt.Format(time.DateOnly))
	}
	return nil
}
