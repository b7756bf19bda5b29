package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ovalbit/eggtimer/internal/engine"
)

// Status line text shared between update and view.
const (
	readyStatus   = "Ready"
	runningStatus = "Counting down..."
	expiredStatus = "Time's up!"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return "Bye.\n"
	}

	var b strings.Builder
	b.WriteString(renderHeader())
	if m.helpVisible {
		b.WriteString(renderHelp())
		b.WriteString("\n\n")
	}

	switch {
	case m.expired:
		b.WriteString(renderExpiredModal(m.engine.State().Label))
	case m.active == viewSelect:
		b.WriteString(m.renderSelect())
	default:
		b.WriteString(m.renderTimer())
	}

	b.WriteString("\n")
	b.WriteString(renderFooter(m.active, m.customMode))
	b.WriteString("\n")
	return b.String()
}

func renderHeader() string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("eggtimer — a countdown timer") + "\n\n"
}

func (m Model) renderSelect() string {
	var b strings.Builder
	b.WriteString(m.presets.View())
	b.WriteString("\n")
	if m.customMode {
		b.WriteString("Custom duration (HH:MM): ")
		b.WriteString(m.customInput.View())
		b.WriteString("\n")
		if m.customErr {
			hint := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).
				Render("Enter a two-digit HH:MM value with minutes 00-59.")
			b.WriteString(hint)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderTimer shows the minute-quantized readout, the per-second status
// line, and the remaining-fraction progress bar. The readout and the
// status are computed independently from the same deadline.
func (m Model) renderTimer() string {
	st := m.engine.State()
	now := m.now
	if now.IsZero() {
		now = time.Now()
	}
	readout := engine.FormatClock(m.engine.DisplayedRemaining(now))

	box := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		Padding(1, 4).
		Bold(true).
		Foreground(lipgloss.Color("69")).
		Render(readout)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Timer: %s\n\n", st.Label))
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(m.status)
	b.WriteString("\n")

	p := m.progress
	p.Width = progressMaxWidth
	if m.width > 0 && m.width-4 < progressMaxWidth {
		p.Width = m.width - 4
	}
	b.WriteString(p.ViewAs(m.engine.Progress()))
	b.WriteString("\n")
	return b.String()
}

func renderExpiredModal(label string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		Padding(0, 1).
		Foreground(lipgloss.Color("208"))
	content := []string{
		expiredStatus,
		"",
		fmt.Sprintf("Your %s timer finished.", label),
		"",
		"enter: dismiss",
	}
	return border.Render(strings.Join(content, "\n"))
}

func renderFooter(v view, customMode bool) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if customMode {
		return style.Render("enter: confirm • esc: cancel")
	}
	if v == viewSelect {
		return style.Render("enter: pick • c: custom • h/?: help • q: quit")
	}
	return style.Render("s: start • r: reset • esc: back • q: quit")
}

func renderHelp() string {
	border := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		Padding(0, 1).
		Foreground(lipgloss.Color("69"))
	content := []string{
		"Help",
		"",
		"↑/↓: choose a preset",
		"enter: confirm selection / start",
		"c: enter a custom HH:MM duration",
		"s: start the countdown",
		"r: reset to the confirmed duration",
		"esc: back / dismiss",
		"q/ctrl+c: quit",
	}
	return border.Render(strings.Join(content, "\n"))
}
