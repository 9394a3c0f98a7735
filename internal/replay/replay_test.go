package replay

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/batflap/internal/config"
	"github.com/vovakirdan/batflap/internal/core"
	"github.com/vovakirdan/batflap/internal/games/batflap"
)

// wideGaps returns a configuration whose gaps always cover the band a
// simple autopilot flies in, so runs score without crashing.
func wideGaps() config.GameConfig {
	cfg := config.Default()
	cfg.Obstacles.GapSize = 400
	return cfg
}

// recordRun plays n ticks live, flapping whenever the bat sinks below line,
// and returns the recording alongside the live outcome.
func recordRun(t *testing.T, cfg config.GameConfig, seed int64, n int, line float64) (Recording, batflap.Snapshot) {
	t.Helper()
	session := batflap.NewSession(cfg, seed, nil)
	rec := NewRecorder(cfg, seed, 60)

	push := func(ev core.Event) {
		rec.Record(session.Ticks(), ev)
		session.OnInput(ev)
	}

	push(core.EventStart)
	for i := 0; i < n; i++ {
		snap := session.Snapshot()
		switch {
		case snap.State.Status == batflap.StatusGameOver:
			push(core.EventRestart)
		case snap.Actor.Y > line:
			push(core.EventJump)
		}
		session.Tick(time.Duration(i) * time.Millisecond)
	}

	snap := session.Snapshot()
	return rec.Finish(session.Ticks(), snap.State.Score), snap
}

func TestPlayReproducesLiveRun(t *testing.T) {
	rec, live := recordRun(t, wideGaps(), 9, 1000, 310)
	require.Equal(t, 8, live.State.Score)

	res, err := Play(context.Background(), rec, Options{})
	require.NoError(t, err)
	assert.NoError(t, res.Verify(rec))
	assert.Equal(t, live.State.Score, res.Score)
	assert.Equal(t, live.Frame, res.Frame)
	assert.Equal(t, live.State.Status, res.Status)
	assert.Equal(t, uint64(1000), res.Ticks)
}

func TestPlayReproducesCrashesAndRestarts(t *testing.T) {
	// A low flap line drags the bat into obstacles, so the run restarts often.
	rec, live := recordRun(t, config.Default(), 77, 3000, 450)

	res, err := Play(context.Background(), rec, Options{})
	require.NoError(t, err)
	assert.Equal(t, live.State.Score, res.Score)
	assert.Equal(t, live.State.Best, res.Best)
	assert.Equal(t, live.Frame, res.Frame)
	assert.Equal(t, live.State.Status, res.Status)
}

func TestPlayOnTick(t *testing.T) {
	rec, _ := recordRun(t, wideGaps(), 1, 50, 310)

	var seen []uint64
	_, err := Play(context.Background(), rec, Options{
		OnTick: func(s batflap.Snapshot) { seen = append(seen, s.Ticks) },
	})
	require.NoError(t, err)
	require.Len(t, seen, 50)
	assert.Equal(t, uint64(1), seen[0])
	assert.Equal(t, uint64(50), seen[49])
}

func TestPlayEmptyRecording(t *testing.T) {
	rec := NewRecorder(config.Default(), 1, 60).Finish(0, 0)

	res, err := Play(context.Background(), rec, Options{})
	require.NoError(t, err)
	assert.Equal(t, batflap.StatusIdle, res.Status)
	assert.Zero(t, res.Ticks)
}

func TestPlayRealtime(t *testing.T) {
	rec, live := recordRun(t, wideGaps(), 3, 30, 310)
	rec.TickRate = 1000

	res, err := Play(context.Background(), rec, Options{Realtime: true})
	require.NoError(t, err)
	assert.Equal(t, live.Frame, res.Frame)
}

func TestPlayRealtimeCanceled(t *testing.T) {
	rec, _ := recordRun(t, wideGaps(), 3, 600, 310)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Play(ctx, rec, Options{Realtime: true})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, res.Ticks, rec.Ticks)
}

func TestVerifyMismatch(t *testing.T) {
	rec, _ := recordRun(t, wideGaps(), 9, 300, 310)
	rec.FinalScore++

	res, err := Play(context.Background(), rec, Options{})
	require.NoError(t, err)
	assert.ErrorContains(t, res.Verify(rec), "does not match")
}

func TestEncodeDecode(t *testing.T) {
	rec, _ := recordRun(t, wideGaps(), 5, 200, 310)
	require.NotEmpty(t, rec.Inputs)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, rec))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestSaveLoad(t *testing.T) {
	rec, _ := recordRun(t, wideGaps(), 5, 200, 310)
	path := filepath.Join(t.TempDir(), "run.cbor")

	require.NoError(t, Save(path, rec))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	_, err = Load(filepath.Join(t.TempDir(), "missing.cbor"))
	assert.Error(t, err)
}

func TestDecodeRejectsBadInput(t *testing.T) {
	good := NewRecorder(config.Default(), 1, 60).Finish(0, 0)

	t.Run("version", func(t *testing.T) {
		rec := good
		rec.Version = Version + 1
		data, err := cbor.Marshal(rec)
		require.NoError(t, err)

		_, err = Decode(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrVersion)
	})

	t.Run("config", func(t *testing.T) {
		rec := good
		rec.Config.Obstacles.SpawnInterval = 0
		data, err := cbor.Marshal(rec)
		require.NoError(t, err)

		_, err = Decode(bytes.NewReader(data))
		assert.Error(t, err)
	})

	t.Run("order", func(t *testing.T) {
		rec := good
		rec.Inputs = []Input{{Tick: 5, Event: core.EventJump}, {Tick: 2, Event: core.EventJump}}
		data, err := cbor.Marshal(rec)
		require.NoError(t, err)

		_, err = Decode(bytes.NewReader(data))
		assert.ErrorContains(t, err, "out of order")
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := Decode(bytes.NewReader([]byte{0xff, 0x00, 0x13}))
		assert.ErrorContains(t, err, "replay:")
	})
}

func TestRecorderDropsInvalidEvents(t *testing.T) {
	r := NewRecorder(config.Default(), 1, 60)
	r.Record(0, core.EventNone)
	r.Record(0, core.Event(200))
	r.Record(3, core.EventJump)
	assert.Equal(t, 1, r.Len())

	rec := r.Finish(10, 0)
	r.Record(11, core.EventJump)
	assert.Len(t, rec.Inputs, 1, "finished recordings do not see later inputs")
}
