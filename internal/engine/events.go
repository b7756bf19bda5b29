package engine

// Discrete notifications delivered to the sink registered with
// WithSink. The engine holds no reference to any rendering mechanism;
// consumers decide how to react.

// Event is a single engine notification.
type Event interface{ event() }

// Ticked carries the refreshed remaining seconds after a tick.
type Ticked struct{ Remaining int }

// Expired fires exactly once when the countdown reaches zero. Label
// names the originally confirmed duration.
type Expired struct{ Label string }

func (Ticked) event()  {}
func (Expired) event() {}
