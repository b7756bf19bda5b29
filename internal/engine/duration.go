package engine

import (
	"fmt"
	"regexp"
	"strconv"
)

// MaxSeconds is the largest representable duration, 99:59 in HH:MM.
const MaxSeconds = 99*3600 + 59*60

// clockPattern accepts strict two-digit HH:MM input only.
var clockPattern = regexp.MustCompile(`^(\d{2}):(\d{2})$`)

// ParseClock parses a strict "HH:MM" string into whole seconds. Wrong
// digit counts, non-numeric content, and minutes above 59 all fail
// with ErrInvalidFormat.
func ParseClock(raw string) (int, error) {
	m := clockPattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, ErrInvalidFormat
	}
	hh, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	if mm > 59 {
		return 0, ErrInvalidFormat
	}
	return hh*3600 + mm*60, nil
}

// FormatClock renders whole seconds as a zero-padded "HH:MM" string,
// clamped to [0, MaxSeconds].
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	if seconds > MaxSeconds {
		seconds = MaxSeconds
	}
	return fmt.Sprintf("%02d:%02d", seconds/3600, (seconds%3600)/60)
}
