package replay

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/vovakirdan/batflap/internal/core"
	"github.com/vovakirdan/batflap/internal/games/batflap"
)

// Options control playback.
type Options struct {
	// Realtime paces playback at the recorded tick rate instead of
	// running as fast as possible.
	Realtime bool
	// OnTick, if set, receives a snapshot after every tick.
	OnTick func(batflap.Snapshot)
}

// Result is the state a playback ended in.
type Result struct {
	Score  int
	Best   int
	Ticks  uint64
	Frame  int
	Status batflap.Status
}

// Play runs rec in a fresh session without persistence and returns where it
// ended. Realtime playback stops early with ctx's error when ctx is canceled.
func Play(ctx context.Context, rec Recording, opts Options) (Result, error) {
	session := batflap.NewSession(rec.Config, rec.Seed, nil)
	clock := core.NewClock(rec.TickRate)

	var ticks iter.Seq[time.Duration]
	if opts.Realtime {
		ticks = clock.Ticks(ctx)
	} else {
		ticks = clock.Steps(int(rec.Ticks))
	}

	next := 0
	if rec.Ticks > 0 {
		for elapsed := range ticks {
			for next < len(rec.Inputs) && rec.Inputs[next].Tick <= session.Ticks() {
				session.OnInput(rec.Inputs[next].Event)
				next++
			}
			session.Tick(elapsed)
			if opts.OnTick != nil {
				opts.OnTick(session.Snapshot())
			}
			if session.Ticks() >= rec.Ticks {
				break
			}
		}
	}

	snap := session.Snapshot()
	res := Result{
		Score:  snap.State.Score,
		Best:   snap.State.Best,
		Ticks:  snap.Ticks,
		Frame:  snap.Frame,
		Status: snap.State.Status,
	}
	if res.Ticks < rec.Ticks {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		return res, fmt.Errorf("replay: stopped after %d of %d ticks", res.Ticks, rec.Ticks)
	}
	return res, nil
}

// Verify reports whether res reproduces the recorded outcome.
func (r Result) Verify(rec Recording) error {
	if r.Ticks != rec.Ticks {
		return fmt.Errorf("replay: ran %d ticks, recorded %d", r.Ticks, rec.Ticks)
	}
	if r.Score != rec.FinalScore {
		return fmt.Errorf("replay: final score %d does not match recorded %d", r.Score, rec.FinalScore)
	}
	return nil
}
