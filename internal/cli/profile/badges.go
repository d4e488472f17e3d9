package profile

import (
	"fmt"
	"time"

	"github.com/julianstephens/vitalit/internal/badges"
	"github.com/julianstephens/vitalit/internal/cli"
)

// BadgeListCmd shows earned badges, then the ones still locked.
type BadgeListCmd struct {
	Earned bool `help:"Only show unlocked badges."`
}

func (c *BadgeListCmd) Run(ctx *cli.Context) error {
	u := ctx.State().GetState()
	locale := ctx.Locale()

	fmt.Printf("Unlocked (%d)\n", len(u.Badges))
	for _, b := range u.Badges {
		when := ""
		if b.UnlockedAt != nil {
			when = b.UnlockedAt.In(ctx.Location).Format(time.DateOnly)
		}
		fmt.Printf("  %s %-24s %s  %s\n", b.Icon, b.Name, when, b.Description)
	}
	if c.Earned {
		return nil
	}

	fmt.Println("\nLocked")
	for _, def := range ctx.Catalog.Badges {
		if u.HasBadge(def.ID) {
			continue
		}
		fmt.Printf("  🔒 %-24s %s\n", def.Name.Resolve(locale), def.Requirement.Resolve(locale))
	}
	for _, id := range u.ChallengeIDs() {
		ch := u.Challenges[id]
		if u.HasBadge(badges.ChallengeBadgeID(id)) {
			continue
		}
		fmt.Printf("  🔒 %-24s finish all %d days (%d%% done)\n",
			ch.Name.Resolve(locale)+" Champion", ch.Days, ch.ProgressPercent())
	}
	return nil
}
