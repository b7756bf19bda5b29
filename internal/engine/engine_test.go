package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eventRecorder collects emitted events for assertions.
type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) sink(ev Event) { r.events = append(r.events, ev) }

func (r *eventRecorder) expiredCount() int {
	n := 0
	for _, ev := range r.events {
		if _, ok := ev.(Expired); ok {
			n++
		}
	}
	return n
}

func t0() time.Time {
	return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
}

func TestSelectPreset_ConfirmsDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		seconds int
		want    int
		label   string
	}{
		{name: "zero", seconds: 0, want: 0, label: "00:00"},
		{name: "one minute", seconds: 60, want: 60, label: "00:01"},
		{name: "fifteen minutes", seconds: 900, want: 900, label: "00:15"},
		{name: "max", seconds: MaxSeconds, want: MaxSeconds, label: "99:59"},
		{name: "negative clamps to zero", seconds: -5, want: 0, label: "00:00"},
		{name: "above max clamps", seconds: MaxSeconds + 1, want: MaxSeconds, label: "99:59"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := New(tt.seconds)
			st := e.State()
			assert.Equal(t, tt.want, st.Total)
			assert.Equal(t, tt.want, st.Remaining)
			assert.False(t, st.Running)
			assert.True(t, st.Deadline.IsZero())
			assert.Equal(t, tt.label, st.Label)
		})
	}
}

func TestSelectPreset_OverridesPriorState(t *testing.T) {
	t.Parallel()

	e := New(300)
	require.NoError(t, e.Start(t0()))

	// Confirming a new duration enters Idle from Running.
	e.SelectPreset(120)
	st := e.State()
	assert.False(t, st.Running)
	assert.True(t, st.Deadline.IsZero())
	assert.Equal(t, 120, st.Total)
	assert.Equal(t, 120, st.Remaining)
}

func TestSetCustomDuration(t *testing.T) {
	t.Parallel()

	t.Run("valid input confirms like a preset", func(t *testing.T) {
		t.Parallel()
		e := New(0)
		require.NoError(t, e.SetCustomDuration("12:34"))
		st := e.State()
		assert.Equal(t, 12*3600+34*60, st.Total)
		assert.Equal(t, st.Total, st.Remaining)
		assert.False(t, st.Running)
		assert.Equal(t, "12:34", st.Label)
	})

	t.Run("invalid input leaves state untouched", func(t *testing.T) {
		t.Parallel()
		e := New(60)
		require.NoError(t, e.Start(t0()))
		before := e.State()

		err := e.SetCustomDuration("12:60")
		require.ErrorIs(t, err, ErrInvalidFormat)
		assert.Equal(t, before, e.State())
	})
}

func TestStart(t *testing.T) {
	t.Parallel()

	t.Run("arms deadline at now plus remaining", func(t *testing.T) {
		t.Parallel()
		e := New(90)
		require.NoError(t, e.Start(t0()))
		st := e.State()
		assert.True(t, st.Running)
		assert.Equal(t, t0().Add(90*time.Second), st.Deadline)
	})

	t.Run("idempotent while running", func(t *testing.T) {
		t.Parallel()
		e := New(60)
		require.NoError(t, e.Start(t0()))
		first := e.State().Deadline

		// A second start, even later, must not move the deadline.
		require.NoError(t, e.Start(t0().Add(10*time.Second)))
		assert.Equal(t, first, e.State().Deadline)
	})

	t.Run("nothing to start with zero remaining", func(t *testing.T) {
		t.Parallel()
		e := New(0)
		err := e.Start(t0())
		require.ErrorIs(t, err, ErrNothingToStart)
		st := e.State()
		assert.False(t, st.Running)
		assert.True(t, st.Deadline.IsZero())
	})
}

func TestTick_Monotonic(t *testing.T) {
	t.Parallel()

	e := New(300)
	require.NoError(t, e.Start(t0()))

	offsets := []time.Duration{
		0,
		1 * time.Second,
		1500 * time.Millisecond,
		30 * time.Second,
		90 * time.Second,
		299 * time.Second,
		300 * time.Second,
	}

	prev := e.State().Remaining
	for _, off := range offsets {
		e.Tick(t0().Add(off))
		got := e.State().Remaining
		assert.LessOrEqual(t, got, prev, "remaining increased at offset %v", off)
		prev = got
	}
	assert.Equal(t, 0, prev)
}

func TestTick_CeilsFractionalSeconds(t *testing.T) {
	t.Parallel()

	e := New(60)
	require.NoError(t, e.Start(t0()))

	// 29.5s before the deadline still counts as 30 whole seconds.
	e.Tick(t0().Add(30*time.Second + 500*time.Millisecond))
	assert.Equal(t, 30, e.State().Remaining)

	// Half a second left rounds up to one, never down to zero.
	e.Tick(t0().Add(59*time.Second + 500*time.Millisecond))
	assert.Equal(t, 1, e.State().Remaining)
	assert.True(t, e.State().Running)
}

func TestTick_ExpiresExactlyOnce(t *testing.T) {
	t.Parallel()

	rec := &eventRecorder{}
	e := New(60).WithSink(rec.sink)
	require.NoError(t, e.Start(t0()))

	e.Tick(t0().Add(60 * time.Second))
	st := e.State()
	assert.Equal(t, 0, st.Remaining)
	assert.False(t, st.Running)
	assert.True(t, st.Deadline.IsZero())
	require.Equal(t, 1, rec.expiredCount())
	assert.Equal(t, Expired{Label: "00:01"}, rec.events[len(rec.events)-1])

	// Further ticks before a reset/start are no-ops.
	e.Tick(t0().Add(61 * time.Second))
	e.Tick(t0().Add(2 * time.Minute))
	assert.Equal(t, 1, rec.expiredCount())
	assert.Equal(t, 0, e.State().Remaining)
}

func TestTick_NotRunningIsNoop(t *testing.T) {
	t.Parallel()

	rec := &eventRecorder{}
	e := New(120).WithSink(rec.sink)
	e.Tick(t0())
	assert.Empty(t, rec.events)
	assert.Equal(t, 120, e.State().Remaining)
}

func TestDisplayedRemaining(t *testing.T) {
	t.Parallel()

	t.Run("not running returns remaining verbatim", func(t *testing.T) {
		t.Parallel()
		e := New(90)
		assert.Equal(t, 90, e.DisplayedRemaining(t0()))
	})

	t.Run("running quantizes to whole minutes", func(t *testing.T) {
		t.Parallel()
		e := New(600)
		require.NoError(t, e.Start(t0()))

		// 570s left: ceil(570/60) = 10 minutes.
		assert.Equal(t, 600, e.DisplayedRemaining(t0().Add(30*time.Second)))
		// 30s left: still one full minute on the readout.
		assert.Equal(t, 60, e.DisplayedRemaining(t0().Add(9*time.Minute+30*time.Second)))
		// Past the deadline clamps to zero.
		assert.Equal(t, 0, e.DisplayedRemaining(t0().Add(11*time.Minute)))
	})

	t.Run("minute boundary shows one minute not two", func(t *testing.T) {
		t.Parallel()
		e := New(120)
		require.NoError(t, e.Start(t0()))
		assert.Equal(t, 60, e.DisplayedRemaining(t0().Add(60*time.Second)))
	})

	t.Run("independent of the last tick", func(t *testing.T) {
		t.Parallel()
		e := New(600)
		require.NoError(t, e.Start(t0()))

		// Tick caches 570s; a later wall-clock read must not reuse it.
		e.Tick(t0().Add(30 * time.Second))
		assert.Equal(t, 570, e.State().Remaining)
		// 480s left at the query instant: ceil(480/60) = 8 minutes.
		assert.Equal(t, 480, e.DisplayedRemaining(t0().Add(2*time.Minute)))
	})
}

func TestScenario_OneMinutePreset(t *testing.T) {
	t.Parallel()

	rec := &eventRecorder{}
	e := New(0).WithSink(rec.sink)
	e.SelectPreset(60)
	require.NoError(t, e.Start(t0()))

	e.Tick(t0().Add(30 * time.Second))
	assert.Equal(t, 30, e.State().Remaining)
	// ceil(30/60) = 1 minute: the readout holds at 60s until expiry.
	assert.Equal(t, 60, e.DisplayedRemaining(t0().Add(30*time.Second)))
	assert.Equal(t, Ticked{Remaining: 30}, rec.events[len(rec.events)-1])

	e.Tick(t0().Add(60 * time.Second))
	st := e.State()
	assert.Equal(t, 0, st.Remaining)
	assert.False(t, st.Running)
	assert.Equal(t, 1, rec.expiredCount())
}

func TestScenario_TwoSecondCustom(t *testing.T) {
	t.Parallel()

	rec := &eventRecorder{}
	e := New(0).WithSink(rec.sink)
	require.NoError(t, e.SetCustomDuration("00:02"))
	require.NoError(t, e.Start(t0()))

	// "00:02" is two minutes of hours:minutes, so the countdown runs 120s.
	assert.Equal(t, 120, e.State().Total)

	e.Tick(t0().Add(119 * time.Second))
	require.NotEmpty(t, rec.events)
	assert.Equal(t, Ticked{Remaining: 1}, rec.events[len(rec.events)-1])

	e.Tick(t0().Add(120 * time.Second))
	st := e.State()
	assert.Equal(t, 0, st.Remaining)
	assert.False(t, st.Running)
	assert.Equal(t, Expired{Label: "00:02"}, rec.events[len(rec.events)-1])
}

func TestReset(t *testing.T) {
	t.Parallel()

	t.Run("from running", func(t *testing.T) {
		t.Parallel()
		e := New(300)
		require.NoError(t, e.Start(t0()))
		e.Tick(t0().Add(100 * time.Second))

		e.Reset()
		st := e.State()
		assert.False(t, st.Running)
		assert.True(t, st.Deadline.IsZero())
		assert.Equal(t, st.Total, st.Remaining)
	})

	t.Run("from expired", func(t *testing.T) {
		t.Parallel()
		e := New(1)
		require.NoError(t, e.Start(t0()))
		e.Tick(t0().Add(time.Second))
		require.False(t, e.State().Running)

		e.Reset()
		assert.Equal(t, 1, e.State().Remaining)

		// Expired is terminal only until a reset: starting works again.
		require.NoError(t, e.Start(t0().Add(time.Minute)))
		assert.True(t, e.State().Running)
	})
}

func TestProgress(t *testing.T) {
	t.Parallel()

	t.Run("zero total reports zero", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, New(0).Progress())
	})

	t.Run("fraction of remaining over total", func(t *testing.T) {
		t.Parallel()
		e := New(100)
		assert.InDelta(t, 1.0, e.Progress(), 1e-9)

		require.NoError(t, e.Start(t0()))
		e.Tick(t0().Add(75 * time.Second))
		assert.InDelta(t, 0.25, e.Progress(), 1e-9)
	})
}
