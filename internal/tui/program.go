package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/ovalbit/eggtimer/internal/engine"
	"github.com/ovalbit/eggtimer/internal/notify"
)

// Run starts the Bubble Tea program around the given engine. The
// engine's event sink is wired to the update loop here; onConfirmCustom,
// when non-nil, receives the canonical label of every confirmed custom
// duration so the caller can record it.
func Run(ctx context.Context, eng *engine.Engine, presets []string, notifier notify.Notifier, onConfirmCustom func(label string)) error {
	model := NewModel(eng, presets, notifier)
	model.onConfirmCustom = onConfirmCustom

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Silence external logs during the TUI to avoid corrupting the view.
	prevOut := logrus.StandardLogger().Out
	logrus.SetOutput(io.Discard)
	defer logrus.SetOutput(prevOut)

	_, err := p.Run()
	return err
}
