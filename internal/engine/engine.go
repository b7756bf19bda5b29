// Package engine implements the countdown state machine. While a
// countdown runs, the wall-clock deadline is the single source of
// truth; every displayed value is a projection computed from it, so
// the timer self-corrects after a process suspend/resume.
package engine

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Sentinel errors surfaced to callers. Neither mutates state.
var (
	// ErrInvalidFormat rejects custom duration text that is not a strict
	// two-digit HH:MM value with minutes in [0,59].
	ErrInvalidFormat = errors.New("invalid duration format")

	// ErrNothingToStart signals a start request with zero remaining time.
	// Callers route this to the expiry notification path instead of
	// treating it as a failure.
	ErrNothingToStart = errors.New("nothing to start")
)

// State is the full timer state. Deadline is the zero time whenever the
// timer is not running; Remaining is a cached projection refreshed on
// each tick and on stop. Label holds the last confirmed selection as a
// canonical "HH:MM" string, never a transient in-progress edit.
type State struct {
	Total     int
	Remaining int
	Running   bool
	Deadline  time.Time
	Label     string
}

// Engine owns a single State and applies all transitions to it. It is
// not safe for concurrent use: the event loop that delivers ticks must
// be the only caller.
type Engine struct {
	st    State
	sink  func(Event)
	runID string
}

// New returns an engine primed with the given duration in whole seconds.
func New(seconds int) *Engine {
	e := &Engine{}
	e.SelectPreset(seconds)
	return e
}

// WithSink registers the event consumer and returns the engine for chaining.
func (e *Engine) WithSink(fn func(Event)) *Engine {
	e.sink = fn
	return e
}

// State returns a copy of the current timer state.
func (e *Engine) State() State { return e.st }

// SelectPreset confirms a duration in whole seconds, entering Idle from
// any prior state. Values are clamped to [0, MaxSeconds].
func (e *Engine) SelectPreset(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	if seconds > MaxSeconds {
		seconds = MaxSeconds
	}
	e.st = State{
		Total:     seconds,
		Remaining: seconds,
		Label:     FormatClock(seconds),
	}
}

// SetCustomDuration validates and confirms a user-entered "HH:MM"
// duration. On failure the current state is left untouched.
func (e *Engine) SetCustomDuration(raw string) error {
	seconds, err := ParseClock(raw)
	if err != nil {
		return err
	}
	e.SelectPreset(seconds)
	return nil
}

// Start arms the deadline at now plus the remaining time. Starting an
// already-running timer is a no-op; starting with nothing left returns
// ErrNothingToStart without touching state.
func (e *Engine) Start(now time.Time) error {
	if e.st.Running {
		return nil
	}
	if e.st.Remaining == 0 {
		return ErrNothingToStart
	}
	e.st.Deadline = now.Add(time.Duration(e.st.Remaining) * time.Second)
	e.st.Running = true
	e.runID = uuid.NewString()
	logrus.WithFields(logrus.Fields{
		"run_id":   e.runID,
		"label":    e.st.Label,
		"deadline": e.st.Deadline,
	}).Debug("countdown started")
	return nil
}

// Reset returns to Idle: the deadline is discarded and the remaining
// time snaps back to the confirmed total.
func (e *Engine) Reset() {
	e.st.Running = false
	e.st.Deadline = time.Time{}
	e.st.Remaining = e.st.Total
}

// Tick refreshes Remaining from the deadline. At or past the deadline
// the timer expires: running flips off, the deadline is cleared, and
// Expired is emitted exactly once. Ticks while not running are no-ops,
// so repeated ticks after expiry change nothing.
func (e *Engine) Tick(now time.Time) {
	if !e.st.Running {
		return
	}
	left := ceilSeconds(e.st.Deadline.Sub(now))
	if left > e.st.Total {
		left = e.st.Total
	}
	e.st.Remaining = left
	if left == 0 {
		e.st.Running = false
		e.st.Deadline = time.Time{}
		logrus.WithField("run_id", e.runID).Debug("countdown expired")
		e.emit(Expired{Label: e.st.Label})
		return
	}
	e.emit(Ticked{Remaining: left})
}

// DisplayedRemaining is the minute-quantized projection backing the
// large readout. While running it reads the clock it is handed fresh,
// independent of the last tick: the readout moves once per minute while
// the status line counts individual seconds, both derived from the same
// deadline. At exactly a minute boundary (60.0s left) it reports one
// minute, not two; that off-by-one is deliberate and load-bearing.
func (e *Engine) DisplayedRemaining(now time.Time) int {
	if !e.st.Running {
		return e.st.Remaining
	}
	left := ceilSeconds(e.st.Deadline.Sub(now))
	minutes := (left + 59) / 60
	return minutes * 60
}

// Progress reports the remaining fraction in [0,1]. Zero-length timers
// report zero.
func (e *Engine) Progress() float64 {
	if e.st.Total == 0 {
		return 0
	}
	f := float64(e.st.Remaining) / float64(e.st.Total)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func (e *Engine) emit(ev Event) {
	if e.sink != nil {
		e.sink(ev)
	}
}

// ceilSeconds rounds a duration up to whole seconds, clamped at zero.
// Any positive fraction counts as one more full second, so the value
// reaches 0 only at or after the deadline.
func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
