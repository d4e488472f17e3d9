package access

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/vitalit/internal/cli"
	"github.com/julianstephens/vitalit/internal/constants"
	"github.com/julianstephens/vitalit/internal/models"
)

type ActivateCmd struct {
	PlanID   int    `arg:"" help:"Plan id (see 'vitalit plan list')."`
	Password string `help:"Plan password. Prompted for when omitted."`
}

func (c *ActivateCmd) Run(ctx *cli.Context) error {
	plan, ok := ctx.Catalog.Plan(c.PlanID)
	if !ok {
		return fmt.Errorf("unknown plan %d", c.PlanID)
	}
	password := c.Password
	if password == "" {
		err := huh.NewInput().
			Title(fmt.Sprintf("Password for %s", plan.Name.Resolve(ctx.Locale()))).
			EchoMode(huh.EchoModePassword).
			Value(&password).
			Run()
		if err != nil {
			return fmt.Errorf("activation cancelled: %w", err)
		}
	}

	if !ctx.Entitlement.Activate(c.PlanID, strings.TrimSpace(password)) {
		return errors.New("activation failed: wrong password")
	}
	fmt.Printf("✓ %s activated\n", plan.Name.Resolve(ctx.Locale()))
	printStatus(ctx.Entitlement.Status(), ctx.Location)
	return nil
}

type StatusCmd struct {
	Watch bool `short:"w" help:"Keep running and refresh the status every minute."`
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	if !c.Watch {
		printStatus(ctx.Entitlement.Status(), ctx.Location)
		return nil
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx.Entitlement.Watch(runCtx, constants.PlanPollInterval, func(st models.PlanStatus) {
		fmt.Printf("[%s] ", ctx.Clock.Now().Format(constants.TimeFormat))
		printStatus(st, ctx.Location)
	})
	return nil
}

func printStatus(st models.PlanStatus, loc *time.Location) {
	switch {
	case !st.Active:
		fmt.Println("No plan activated.")
	case st.Expired:
		fmt.Printf("⌛ %s expired on %s\n", st.PlanName, st.ExpiresAt.In(loc).Format(time.DateOnly))
	case st.Unlimited:
		fmt.Printf("✓ %s active, no expiry\n", st.PlanName)
	default:
		fmt.Printf("✓ %s active, %d day(s) left (until %s)\n", st.PlanName, st.RemainingDays, st.ExpiresAt.In(loc).Format(time.DateOnly))
	}
}

type DeactivateCmd struct{}

func (c *DeactivateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Entitlement.Deactivate(); err != nil {
		return fmt.Errorf("failed to deactivate plan: %w", err)
	}
	fmt.Println("✓ Plan deactivated")
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	locale := ctx.Locale()
	st := ctx.Entitlement.Status()
	for _, p := range ctx.Catalog.Plans {
		duration := fmt.Sprintf("%d days", p.DurationDays)
		if p.Unlimited() {
			duration = "unlimited"
		}
		marker := " "
		if st.Active && !st.Expired && st.PlanID == p.ID {
			marker = "*"
		}
		fmt.Printf("%s %d  %-10s %-10s %s\n", marker, p.ID, p.Name.Resolve(locale), duration, p.Description.Resolve(locale))
		for _, f := range p.Features.Resolve(locale) {
			fmt.Printf("       • %s\n", f)
		}
	}
	return nil
}
