package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/vitalit/internal/badges"
	"github.com/julianstephens/vitalit/internal/cli"
	"github.com/julianstephens/vitalit/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateChallenges:
		content = m.viewChallenges()
	case StateBadges:
		content = docStyle.Render(m.badges.View())
	}

	notice := ""
	if m.notice != "" {
		style := noticeStyle
		if m.warn {
			style = warningStyle
		}
		notice = style.Render(m.notice)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewPlanBanner(),
		content,
		notice,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewPlanBanner() string {
	st := m.plan
	switch {
	case !st.Active:
		return mutedStyle.Render("No plan activated")
	case st.Expired:
		return dangerStyle.Render(fmt.Sprintf("⌛ %s expired", st.PlanName))
	case st.Unlimited:
		return mutedStyle.Render(fmt.Sprintf("✓ %s", st.PlanName))
	case st.RemainingDays <= 3:
		return warningStyle.Render(fmt.Sprintf("%s: %d day(s) left", st.PlanName, st.RemainingDays))
	default:
		return mutedStyle.Render(fmt.Sprintf("✓ %s: %d days left", st.PlanName, st.RemainingDays))
	}
}

func (m Model) viewToday() string {
	header := headerStyle.Render("📅 " + m.ctx.Today())
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", m.journal.View()))
}

func (m Model) viewChallenges() string {
	u := m.ctx.State().GetState()
	ch, ok := m.currentChallenge(u)
	if !ok {
		return docStyle.Render(m.taskList.View())
	}
	mark := ""
	if ch.DayCompleted(m.day) {
		mark = " ✓"
	}
	header := headerStyle.Render(fmt.Sprintf("%s: day %d of %d%s", ch.Name.Resolve(m.ctx.Locale()), m.day, ch.Days, mark))
	sub := mutedStyle.Render(fmt.Sprintf("%d%% complete, today is day %d", ch.ProgressPercent(), ch.CurrentDay))
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, sub, m.taskList.View()))
}

func renderBadges(ctx *cli.Context, u models.UserData, locale string) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Unlocked (%d)", len(u.Badges))) + "\n")
	for _, badge := range u.Badges {
		when := ""
		if badge.UnlockedAt != nil {
			when = badge.UnlockedAt.In(ctx.Location).Format(time.DateOnly)
		}
		fmt.Fprintf(&b, "%s %s  %s\n", badge.Icon, badge.Name, mutedStyle.Render(when))
	}

	b.WriteString("\n" + headerStyle.Render("Locked") + "\n")
	for _, def := range ctx.Catalog.Badges {
		if !u.HasBadge(def.ID) {
			fmt.Fprintf(&b, "🔒 %s  %s\n", def.Name.Resolve(locale), mutedStyle.Render(def.Requirement.Resolve(locale)))
		}
	}
	for _, id := range u.ChallengeIDs() {
		if u.HasBadge(badges.ChallengeBadgeID(id)) {
			continue
		}
		ch := u.Challenges[id]
		fmt.Fprintf(&b, "🔒 %s Champion  %s\n", ch.Name.Resolve(locale),
			mutedStyle.Render(fmt.Sprintf("%d%% of %d days", ch.ProgressPercent(), ch.Days)))
	}
	return b.String()
}
