package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ovalbit/eggtimer/internal/engine"
)

// presetItem is a quick-select duration row.
type presetItem struct {
	Label   string
	Seconds int
}

// List item interface methods.
func (it presetItem) Title() string       { return it.Label }
func (it presetItem) Description() string { return "" }
func (it presetItem) FilterValue() string { return it.Label }

// presetDelegate renders one preset per row with a selection caret.
type presetDelegate struct{}

func (d presetDelegate) Height() int                             { return 1 }
func (d presetDelegate) Spacing() int                            { return 0 }
func (d presetDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d presetDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	it, ok := listItem.(presetItem)
	if !ok {
		return
	}
	prefix := "  "
	style := lipgloss.NewStyle()
	if index == m.Index() {
		prefix = "> "
		style = style.Foreground(lipgloss.Color("69")).Bold(true)
	}
	_, _ = fmt.Fprint(w, style.Render(prefix+it.Label))
}

// newPresetList builds the select-view list from preset labels,
// skipping duplicates and anything that fails to parse.
func newPresetList(labels []string) list.Model {
	items := make([]list.Item, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		secs, err := engine.ParseClock(l)
		if err != nil {
			continue
		}
		seen[l] = struct{}{}
		items = append(items, presetItem{Label: l, Seconds: secs})
	}

	lst := list.New(items, presetDelegate{}, presetListWidth, presetListHeight)
	lst.Title = "Pick a duration"
	lst.SetShowStatusBar(false)
	lst.SetFilteringEnabled(false)
	lst.SetShowHelp(false)
	lst.SetShowPagination(false)
	return lst
}
