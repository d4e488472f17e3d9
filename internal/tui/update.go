package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/vitalit/internal/constants"
	"github.com/julianstephens/vitalit/internal/state"
	"github.com/julianstephens/vitalit/internal/tui/components/tasklist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case planTickMsg:
		// The tick also picks up a date change at midnight.
		m.plan = m.ctx.Entitlement.Status()
		m.refresh()
		return m, pollPlan()

	case tasklist.ToggleTaskMsg:
		m.toggleTask(msg)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % SessionState(len(tabTitles))
			m.notice = ""
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + SessionState(len(tabTitles))) % SessionState(len(tabTitles))
			m.notice = ""
			return m, nil
		case key.Matches(msg, m.keys.Water):
			m.logWater()
			return m, nil
		case m.state == StateChallenges && key.Matches(msg, m.keys.PrevDay):
			m.moveDay(-1)
			return m, nil
		case m.state == StateChallenges && key.Matches(msg, m.keys.NextDay):
			m.moveDay(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.journal, cmd = m.journal.Update(msg)
	case StateChallenges:
		m.taskList, cmd = m.taskList.Update(msg)
	case StateBadges:
		m.badges, cmd = m.badges.Update(msg)
	}
	return m, cmd
}

func (m *Model) logWater() {
	m.warn = false
	if m.ctx.LogWater(constants.QuickWaterLiters) {
		m.notice = fmt.Sprintf("💧 Logged %.0f ml", constants.QuickWaterLiters*1000)
	} else {
		m.notice = "Water was not logged."
		m.warn = true
	}
	m.takeUnlocked()
	m.refresh()
}

func (m *Model) moveDay(delta int) {
	ch, ok := m.currentChallenge(m.ctx.State().GetState())
	if !ok {
		return
	}
	m.day = min(max(m.day+delta, 1), ch.Days)
	m.refresh()
}

func (m *Model) toggleTask(msg tasklist.ToggleTaskMsg) {
	u := m.ctx.State().GetState()
	ch, ok := u.Challenges[msg.ChallengeID]
	if !ok {
		return
	}
	if !m.ctx.CanAccess(ch.AccessPlans) {
		m.notice = "🔒 This challenge needs an active plan. Run 'vitalit plan activate'."
		m.warn = true
		return
	}

	var a state.Action = state.UncompleteTask{ChallengeID: ch.ID, Day: msg.Day, TaskIndex: msg.Index}
	if msg.Done {
		a = state.CompleteTask{ChallengeID: ch.ID, Day: msg.Day, TaskIndex: msg.Index}
	}
	m.notice, m.warn = "", false
	if m.ctx.Dispatch(a) && msg.Done && !ch.DayCompleted(msg.Day) {
		if after := m.ctx.State().GetState().Challenges[ch.ID]; after.DayCompleted(msg.Day) {
			m.notice = fmt.Sprintf("🎉 Day %d complete! %d%% of the challenge done.", msg.Day, after.ProgressPercent())
		}
	}
	m.takeUnlocked()
	m.refresh()
}
