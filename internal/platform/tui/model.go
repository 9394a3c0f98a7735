package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/batflap/internal/config"
	"github.com/vovakirdan/batflap/internal/core"
	"github.com/vovakirdan/batflap/internal/games/batflap"
	"github.com/vovakirdan/batflap/internal/replay"
)

// ScoreRecorder appends finished runs to the score history.
type ScoreRecorder interface {
	SaveScore(gameID string, score int) (int64, error)
}

// Options configure a game model.
type Options struct {
	Game    config.GameConfig
	Runtime core.RuntimeConfig
	Keeper  batflap.ScoreKeeper // best score, may be nil
	History ScoreRecorder       // score history, may be nil
	// Recorder, if set, receives every input delivered to the session.
	Recorder      *replay.Recorder
	Logger        *log.Logger
	ScreenshotDir string // defaults to ~/.arcade/screenshots
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for one Bat Flap session.
type Model struct {
	session       *batflap.Session
	game          config.GameConfig
	runtime       core.RuntimeConfig
	clock         *core.Clock
	screen        *core.Screen
	keys          KeyMap
	help          help.Model
	history       ScoreRecorder
	recorder      *replay.Recorder
	logger        *log.Logger
	screenshotDir string
	quitting      bool
	scoreSaved    bool // Whether the current game over has been saved
}

// NewModel creates a model with a fresh idle session.
func NewModel(opts Options) Model {
	rt := opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	if rt.TickRate <= 0 {
		rt.TickRate = 60
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	dir := opts.ScreenshotDir
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	}

	h := help.New()
	h.Width = rt.ScreenW

	m := Model{
		session:       batflap.NewSession(opts.Game, rt.Seed, opts.Keeper),
		game:          opts.Game,
		runtime:       rt,
		clock:         core.NewClock(rt.TickRate),
		keys:          DefaultKeyMap(),
		help:          h,
		history:       opts.History,
		recorder:      opts.Recorder,
		logger:        logger.With("component", "tui"),
		screenshotDir: dir,
	}
	m.screen = core.NewScreen(rt.ScreenW, m.playfieldHeight())
	return m
}

// Session returns the session driven by the model.
func (m Model) Session() *batflap.Session {
	return m.session
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.logger.Debug("session starting", "seed", m.runtime.Seed, "tick_rate", m.runtime.TickRate)
	return tickCmd(m.clock.Interval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey turns a key press into a queued event or a platform command.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ev, cmd := m.keys.Map(msg, m.session.State().Status)

	switch cmd {
	case CommandQuit:
		m.quitting = true
		return m, tea.Quit
	case CommandScreenshot:
		m.saveScreenshot()
		return m, nil
	case CommandHelp:
		m.help.ShowAll = !m.help.ShowAll
		m.screen.Resize(m.runtime.ScreenW, m.playfieldHeight())
		return m, nil
	}

	if ev != core.EventNone {
		if m.recorder != nil {
			m.recorder.Record(m.session.Ticks(), ev)
		}
		m.session.OnInput(ev)
	}
	return m, nil
}

// handleResize adapts the screen. The playfield scales to fit, so the
// session keeps running untouched.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.screen.Resize(msg.Width, m.playfieldHeight())
	return m, nil
}

// playfieldHeight accounts for the help view, which grows when expanded.
func (m Model) playfieldHeight() int {
	return core.Max(m.runtime.ScreenH-lipgloss.Height(m.help.View(m.keys)), 1)
}

// handleTick advances the session by one step and schedules the next tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	m.session.Tick(m.clock.Elapsed(now))

	st := m.session.State()
	switch {
	case st.Status != batflap.StatusGameOver:
		m.scoreSaved = false
	case !m.scoreSaved:
		m.scoreSaved = true
		m.saveScore(st)
	}

	return m, tickCmd(m.clock.Interval())
}

// saveScore records a finished run in the history.
func (m *Model) saveScore(st batflap.SessionState) {
	m.logger.Info("game over", "score", st.Score, "best", st.Best)
	if m.history == nil || st.Score <= 0 {
		return
	}
	if _, err := m.history.SaveScore(batflap.GameID, st.Score); err != nil {
		m.logger.Warn("cannot save score", "score", st.Score, "err", err)
	}
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() {
	batflap.Render(m.session.Snapshot(), m.game, m.screen)

	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "dir", m.screenshotDir, "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.screenshotDir, fmt.Sprintf("%s_%s.txt", batflap.GameID, timestamp))

	var sb strings.Builder
	for y := range m.screen.Height() {
		sb.WriteString(strings.TrimRight(m.screen.Row(y), " "))
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the latest snapshot followed by the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	batflap.Render(m.session.Snapshot(), m.game, m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program and returns the final model.
func Run(opts Options) (Model, error) {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return Model{}, err
	}

	m, ok := final.(Model)
	if !ok {
		return Model{}, fmt.Errorf("tui: unexpected model type %T", final)
	}
	return m, nil
}
