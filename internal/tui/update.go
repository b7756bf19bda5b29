package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ovalbit/eggtimer/internal/engine"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { //nolint:ireturn
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = x.Width, x.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(x)

	case tickMsg:
		m.now = x.Now
		m.engine.Tick(x.Now)
		return m, m.tick()

	case engineEventMsg:
		m.applyEvent(x.Event)
		return m, m.listenForEvents()
	}
	return m, nil
}

// handleKey processes key bindings and returns updated model and command.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) { //nolint:ireturn
	// The custom entry owns the keyboard while focused.
	if m.customMode {
		return m.updateCustomInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		return m, nil
	}

	if m.expired {
		// Modal state: acknowledge back to Idle, keep everything else inert.
		if key.Matches(msg, m.keys.Confirm) || key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Reset) {
			m.engine.Reset()
			m.expired = false
			m.status = readyStatus
			m.active = viewSelect
		}
		return m, nil
	}

	switch m.active {
	case viewSelect:
		return m.handleSelectKey(msg)
	case viewTimer:
		return m.handleTimerKey(msg)
	}
	return m, nil
}

func (m Model) handleSelectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) { //nolint:ireturn
	switch {
	case key.Matches(msg, m.keys.Custom):
		m.customMode = true
		m.customErr = false
		m.customInput.Reset()
		m.customInput.Focus()
		return m, m.customInput.Cursor.BlinkCmd()

	case key.Matches(msg, m.keys.Confirm):
		if it, ok := m.presets.SelectedItem().(presetItem); ok {
			m.engine.SelectPreset(it.Seconds)
			m.active = viewTimer
			m.status = readyStatus
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.presets, cmd = m.presets.Update(msg)
	return m, cmd
}

func (m Model) handleTimerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) { //nolint:ireturn
	switch {
	case key.Matches(msg, m.keys.Start), key.Matches(msg, m.keys.Confirm):
		m.startCountdown()

	case key.Matches(msg, m.keys.Reset):
		m.engine.Reset()
		m.status = readyStatus

	case key.Matches(msg, m.keys.Escape):
		m.engine.Reset()
		m.status = readyStatus
		m.active = viewSelect
	}
	return m, nil
}

// startCountdown arms the engine. A zero-length selection goes straight
// to the expiry notification path without arming a deadline.
func (m *Model) startCountdown() {
	err := m.engine.Start(time.Now())
	switch {
	case err == nil:
		m.status = runningStatus
	case errors.Is(err, engine.ErrNothingToStart):
		m.expired = true
		m.status = expiredStatus
		m.notifier.PlayAlert()
	}
}

// updateCustomInput handles keys while the HH:MM entry is focused.
// Confirmation is simply refused while the text fails validation; no
// state is mutated on invalid input.
func (m Model) updateCustomInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) { //nolint:ireturn
	switch {
	case msg.String() == "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Confirm):
		if err := m.engine.SetCustomDuration(m.customInput.Value()); err != nil {
			m.customErr = true
			return m, nil
		}
		if m.onConfirmCustom != nil {
			m.onConfirmCustom(m.engine.State().Label)
		}
		m.customMode = false
		m.customErr = false
		m.customInput.Blur()
		m.active = viewTimer
		m.status = readyStatus
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.customMode = false
		m.customErr = false
		m.customInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.customInput, cmd = m.customInput.Update(msg)
	m.customErr = false
	return m, cmd
}

// applyEvent folds an engine event into view state. The status line
// counts individual seconds only inside the final minute.
func (m *Model) applyEvent(ev engine.Event) {
	switch e := ev.(type) {
	case engine.Ticked:
		if e.Remaining <= finalMinuteSeconds {
			m.status = fmt.Sprintf("%d seconds remaining", e.Remaining)
		} else {
			m.status = runningStatus
		}
	case engine.Expired:
		m.expired = true
		m.status = expiredStatus
		m.notifier.PlayAlert()
	}
}
