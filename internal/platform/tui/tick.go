// Package tui provides the Bubble Tea host for the trainer.
// It pumps frames, maps keys to input facts, measures elapsed time and
// draws the game's screen buffer.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// maxDelta caps the time step after stalls (suspended terminal, slow frames).
const maxDelta = 0.1

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta returns the seconds between two ticks, clamped to [0, maxDelta].
// The first tick (zero previous time) has no elapsed time.
func frameDelta(prev, now time.Time) float64 {
	if prev.IsZero() {
		return 0
	}
	d := now.Sub(prev).Seconds()
	switch {
	case d < 0:
		return 0
	case d > maxDelta:
		return maxDelta
	}
	return d
}
