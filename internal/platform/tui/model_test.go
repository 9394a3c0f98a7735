package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/batflap/internal/config"
	"github.com/vovakirdan/batflap/internal/core"
	"github.com/vovakirdan/batflap/internal/games/batflap"
	"github.com/vovakirdan/batflap/internal/replay"
)

type fakeHistory struct {
	saved []int
}

func (h *fakeHistory) SaveScore(gameID string, score int) (int64, error) {
	h.saved = append(h.saved, score)
	return int64(len(h.saved)), nil
}

type memKeeper struct {
	best   int
	ok     bool
	writes []int
}

func (k *memKeeper) BestScore() (int, bool) { return k.best, k.ok }

func (k *memKeeper) SetBestScore(score int) error {
	k.writes = append(k.writes, score)
	k.best, k.ok = score, true
	return nil
}

func testOptions(t *testing.T) Options {
	return Options{
		Game:          config.Default(),
		Runtime:       core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 1},
		ScreenshotDir: t.TempDir(),
	}
}

// send delivers msg and returns the updated model and command.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func tick(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	return send(t, m, TickMsg(time.Now()))
}

func TestNewModel(t *testing.T) {
	m := NewModel(testOptions(t))

	assert.Equal(t, 80, m.screen.Width())
	assert.Equal(t, 24, m.screen.Height(), "one line is left for the help bar")
	assert.Equal(t, batflap.StatusIdle, m.Session().State().Status)
	assert.NotNil(t, m.Init())
}

func TestModelTickReschedules(t *testing.T) {
	m := NewModel(testOptions(t))

	m, cmd := tick(t, m)
	assert.NotNil(t, cmd)
	assert.Equal(t, uint64(1), m.Session().Ticks())
}

func TestModelInputReachesSessionOnNextTick(t *testing.T) {
	m := NewModel(testOptions(t))

	m, _ = send(t, m, runeKey(" "))
	assert.Equal(t, batflap.StatusIdle, m.Session().State().Status)

	m, _ = tick(t, m)
	assert.Equal(t, batflap.StatusPlaying, m.Session().State().Status)

	m, _ = send(t, m, runeKey("p"))
	m, _ = tick(t, m)
	assert.Equal(t, batflap.StatusPaused, m.Session().State().Status)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = tick(t, m)
	assert.Equal(t, batflap.StatusPlaying, m.Session().State().Status)
}

func TestModelQuitStopsTicking(t *testing.T) {
	m := NewModel(testOptions(t))

	m, cmd := send(t, m, runeKey("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())

	before := m.Session().Ticks()
	m, cmd = tick(t, m)
	assert.Nil(t, cmd, "no tick is scheduled after quitting")
	assert.Equal(t, before, m.Session().Ticks())
}

func TestModelRecordsInputs(t *testing.T) {
	opts := testOptions(t)
	opts.Recorder = replay.NewRecorder(opts.Game, opts.Runtime.Seed, opts.Runtime.TickRate)
	m := NewModel(opts)

	m, _ = tick(t, m)
	m, _ = send(t, m, runeKey(" "))
	m, _ = send(t, m, runeKey("x"))
	m, _ = tick(t, m)

	rec := opts.Recorder.Finish(m.Session().Ticks(), 0)
	require.Len(t, rec.Inputs, 1)
	assert.Equal(t, replay.Input{Tick: 1, Event: core.EventJump}, rec.Inputs[0])
}

func TestModelSavesScoreOnceOnGameOver(t *testing.T) {
	opts := testOptions(t)
	opts.Game.Obstacles.GapSize = 400
	history := &fakeHistory{}
	keeper := &memKeeper{}
	opts.History = history
	opts.Keeper = keeper
	m := NewModel(opts)

	m, _ = send(t, m, runeKey(" "))
	for i := 0; i < 240; i++ {
		if m.Session().Snapshot().Actor.Y > 310 {
			m, _ = send(t, m, runeKey(" "))
		}
		m, _ = tick(t, m)
	}
	require.Equal(t, 1, m.Session().State().Score)

	for i := 0; i < 200 && m.Session().State().Status == batflap.StatusPlaying; i++ {
		m, _ = tick(t, m)
	}
	require.Equal(t, batflap.StatusGameOver, m.Session().State().Status)

	for i := 0; i < 10; i++ {
		m, _ = tick(t, m)
	}
	assert.Equal(t, []int{1}, history.saved)
	assert.Equal(t, []int{1}, keeper.writes)

	// A second game over is saved again.
	m, _ = send(t, m, runeKey("r"))
	m, _ = tick(t, m)
	require.Equal(t, batflap.StatusPlaying, m.Session().State().Status)
	for i := 0; i < 200 && m.Session().State().Status != batflap.StatusGameOver; i++ {
		m, _ = tick(t, m)
	}
	require.Equal(t, batflap.StatusGameOver, m.Session().State().Status)
	assert.Equal(t, []int{1}, history.saved, "zero scores are not recorded")
}

func TestModelResizeKeepsSession(t *testing.T) {
	m := NewModel(testOptions(t))
	m, _ = send(t, m, runeKey(" "))
	m, _ = tick(t, m)
	frame := m.Session().Snapshot().Frame

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 41})
	assert.Equal(t, 120, m.screen.Width())
	assert.Equal(t, 40, m.screen.Height())
	assert.Equal(t, batflap.StatusPlaying, m.Session().State().Status)
	assert.Equal(t, frame, m.Session().Snapshot().Frame)
}

func TestModelHelpToggle(t *testing.T) {
	m := NewModel(testOptions(t))
	short := m.screen.Height()

	m, _ = send(t, m, runeKey("?"))
	assert.True(t, m.help.ShowAll)
	assert.Less(t, m.screen.Height(), short)

	m, _ = send(t, m, runeKey("?"))
	assert.Equal(t, short, m.screen.Height())
}

func TestModelView(t *testing.T) {
	m := NewModel(testOptions(t))
	m, _ = tick(t, m)

	out := m.View()
	assert.Contains(t, out, "BAT FLAP")
	assert.Contains(t, out, "flap")
}

func TestModelScreenshot(t *testing.T) {
	opts := testOptions(t)
	m := NewModel(opts)
	m, _ = tick(t, m)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)

	files, err := filepath.Glob(filepath.Join(opts.ScreenshotDir, "batflap_*.txt"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "BAT FLAP"))
	for _, line := range strings.Split(string(data), "\n") {
		assert.False(t, strings.HasSuffix(line, " "), "trailing blanks are trimmed: %q", line)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColored(0, 0, "BAT", core.ColorViolet)
	s.DrawTextColored(3, 0, "FLAP", core.Color(250))
	s.DrawTextColored(0, 1, "ok", core.ColorDefault)

	out := RenderScreen(s)
	assert.Contains(t, out, "BAT")
	assert.Contains(t, out, "FLAP")
	assert.Equal(t, 2, strings.Count(out, "\n")+1)
}
