package tui

import "time"

// Package-level constants to avoid magic numbers and improve readability.
const (
	channelBufferSize   = 64
	tickIntervalSeconds = 1

	// finalMinuteSeconds is the threshold at or below which the status
	// line counts individual seconds instead of a generic message.
	finalMinuteSeconds = 60

	customInputCharLimit = 5
	customInputWidth     = 12

	presetListWidth  = 28
	presetListHeight = 10

	// progressMaxWidth caps the progress bar so narrow terminals still fit.
	progressMaxWidth = 50

	tickInterval = time.Duration(tickIntervalSeconds) * time.Second
)
