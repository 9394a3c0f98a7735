// Package tui runs Bat Flap in the terminal with Bubble Tea, locally or
// over SSH. It owns the tick loop, key bindings, and screen styling; the
// simulation itself lives in the batflap package.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// tickCmd schedules the next tick. Each TickMsg handler reschedules exactly
// once, so a model that stops rescheduling stops ticking.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
