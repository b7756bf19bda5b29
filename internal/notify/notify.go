// Package notify models the host-side expiry effects as a capability
// interface, keeping the engine and views free of terminal specifics.
package notify

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Notifier is invoked by the presentation layer when a countdown
// expires. The engine never calls it directly. Implementations must
// not block.
type Notifier interface {
	PlayAlert()
	ShowExpiry(label string)
}

// Terminal writes an audible bell and an acknowledgment line to Out.
type Terminal struct {
	Out   io.Writer
	Sound bool
}

// NewTerminal returns a Terminal notifier. Sound=false suppresses the
// bell while keeping the textual acknowledgment.
func NewTerminal(out io.Writer, sound bool) *Terminal {
	return &Terminal{Out: out, Sound: sound}
}

// PlayAlert rings the terminal bell when sound is enabled.
func (t *Terminal) PlayAlert() {
	if !t.Sound {
		return
	}
	if _, err := fmt.Fprint(t.Out, "\a"); err != nil {
		logrus.Debugf("bell write failed: %v", err)
	}
}

// ShowExpiry prints the acknowledgment naming the confirmed duration.
func (t *Terminal) ShowExpiry(label string) {
	if _, err := fmt.Fprintf(t.Out, "Time's up! Your %s timer finished.\n", label); err != nil {
		logrus.Debugf("expiry write failed: %v", err)
	}
}
