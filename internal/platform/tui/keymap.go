package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/batflap/internal/core"
	"github.com/vovakirdan/batflap/internal/games/batflap"
)

// Command is a platform action that never reaches the simulation.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandScreenshot
	CommandHelp
)

// KeyMap defines the key bindings while playing.
type KeyMap struct {
	Flap       key.Binding
	Pause      key.Binding
	Start      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Flap, k.Pause, k.Restart, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Flap, k.Start, k.Restart},
		{k.Pause, k.Screenshot},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Flap: key.NewBinding(
			key.WithKeys(" ", "up", "w", "k"),
			key.WithHelp("space/↑", "flap"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p/esc", "pause"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Map translates a key press into a simulation event or a platform command.
// Pause and enter are context-sensitive: the same key pauses and resumes,
// starts and restarts, depending on status.
func (k KeyMap) Map(msg tea.KeyMsg, status batflap.Status) (core.Event, Command) {
	switch {
	case key.Matches(msg, k.Quit):
		return core.EventNone, CommandQuit
	case key.Matches(msg, k.Screenshot):
		return core.EventNone, CommandScreenshot
	case key.Matches(msg, k.Help):
		return core.EventNone, CommandHelp

	case key.Matches(msg, k.Flap):
		return core.EventJump, CommandNone
	case key.Matches(msg, k.Restart):
		return core.EventRestart, CommandNone

	case key.Matches(msg, k.Pause):
		switch status {
		case batflap.StatusPlaying:
			return core.EventPause, CommandNone
		case batflap.StatusPaused:
			return core.EventResume, CommandNone
		}
	case key.Matches(msg, k.Start):
		switch status {
		case batflap.StatusIdle:
			return core.EventStart, CommandNone
		case batflap.StatusGameOver:
			return core.EventRestart, CommandNone
		}
	}
	return core.EventNone, CommandNone
}
