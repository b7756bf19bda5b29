package tui

import (
	"time"

	"github.com/ovalbit/eggtimer/internal/engine"
)

// Message types for the Bubble Tea update loop.

// tickMsg fires roughly once per second to drive the countdown.
type tickMsg struct{ Now time.Time }

// engineEventMsg wraps an engine event bridged over the events channel.
type engineEventMsg struct{ Event engine.Event }
