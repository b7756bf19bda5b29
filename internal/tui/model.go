package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ovalbit/eggtimer/internal/engine"
	"github.com/ovalbit/eggtimer/internal/notify"
)

// view identifies the active screen.
type view int

const (
	viewSelect view = iota
	viewTimer
)

// Model is the root Bubble Tea model. The engine is owned exclusively
// by this model; every call into it happens on the update goroutine.
type Model struct {
	engine   *engine.Engine
	notifier notify.Notifier

	active      view
	now         time.Time
	status      string
	expired     bool
	helpVisible bool
	quitting    bool
	width       int
	height      int

	// select view state
	presets     list.Model
	customMode  bool
	customInput textinput.Model
	customErr   bool

	// onConfirmCustom, when set, receives the canonical label of every
	// confirmed custom duration so the caller can record it.
	onConfirmCustom func(label string)

	// inbound engine events
	eventsCh chan engine.Event

	progress progress.Model
	keys     keyMap
}

// NewModel constructs a Model offering the given preset labels. When
// the engine already carries a confirmed duration the timer view opens
// directly.
func NewModel(eng *engine.Engine, presets []string, notifier notify.Notifier) Model {
	ch := make(chan engine.Event, channelBufferSize)
	eng.WithSink(func(ev engine.Event) { ch <- ev })

	in := textinput.New()
	in.Placeholder = "HH:MM"
	in.CharLimit = customInputCharLimit
	in.Width = customInputWidth

	active := viewSelect
	if eng.State().Total > 0 {
		active = viewTimer
	}

	return Model{
		engine:      eng,
		notifier:    notifier,
		active:      active,
		status:      readyStatus,
		presets:     newPresetList(presets),
		customInput: in,
		eventsCh:    ch,
		progress:    progress.New(progress.WithDefaultGradient()),
		keys:        newKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.tick(),
		m.listenForEvents(),
	)
}

// tick schedules the next countdown tick.
func (m Model) tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg{Now: t}
	})
}

// listenForEvents returns a Tea command that waits for the next engine event.
func (m Model) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		return engineEventMsg{Event: <-m.eventsCh}
	}
}
