package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/batflap/internal/games/batflap"
	"github.com/vovakirdan/batflap/internal/replay"
)

var flagRealtime bool

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-run a recorded session and verify its score",
	Long: `Load a session recorded with 'batflap play --record' and run it again
without a terminal UI. The recording's seed and inputs reproduce the run
exactly, so the final score must match the recorded one.

Examples:
  batflap replay run.cbor
  batflap replay run.cbor --realtime --debug`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace playback at the recorded tick rate")
}

func runReplay(_ *cobra.Command, args []string) {
	logger := newLogger(os.Stderr)

	rec, err := replay.Load(args[0])
	if err != nil {
		fail("%v", err)
	}
	logger.Debug("recording loaded",
		"seed", rec.Seed, "tick_rate", rec.TickRate, "ticks", rec.Ticks, "inputs", len(rec.Inputs))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	score := 0
	res, err := replay.Play(ctx, rec, replay.Options{
		Realtime: flagRealtime,
		OnTick: func(s batflap.Snapshot) {
			if s.State.Score != score {
				score = s.State.Score
				logger.Debug("scored", "tick", s.Ticks, "score", score)
			}
		},
	})
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Ticks:  %d\n", res.Ticks)
	fmt.Printf("Frames: %d\n", res.Frame)
	fmt.Printf("Status: %s\n", res.Status)
	fmt.Printf("Score:  %d (recorded %d)\n", res.Score, rec.FinalScore)

	if err := res.Verify(rec); err != nil {
		fail("%v", err)
	}
	fmt.Println("Replay verified.")
}
