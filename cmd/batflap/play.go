package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/batflap/internal/config"
	"github.com/vovakirdan/batflap/internal/core"
	"github.com/vovakirdan/batflap/internal/platform/tui"
	"github.com/vovakirdan/batflap/internal/replay"
)

var (
	flagConfig string
	flagRecord string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game of Bat Flap.

Controls:
  Space/Up   - Flap (also starts the game)
  Enter      - Start / play again
  P/Esc      - Pause and resume
  R          - Restart after game over
  Ctrl+S     - Save a screenshot
  ?          - Toggle help
  Q/Ctrl+C   - Quit

Examples:
  batflap play
  batflap play --config ./my-batflap.yaml
  batflap play --seed 7 --record run.cbor`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Record the session to this file for 'batflap replay'")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog := newFileLogger()
	defer closeLog()

	game, source, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	logger.Debug("config loaded", "source", source)

	rt := core.DefaultConfig()
	rt.TickRate = flagFPS
	rt.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW, rt.ScreenH = w, h
	}
	// The recorder needs the seed, so pick it here rather than in the model.
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	st, err := openStores(logger)
	if err != nil {
		fail("%v", err)
	}
	defer st.Close()

	var recorder *replay.Recorder
	if flagRecord != "" {
		recorder = replay.NewRecorder(game, rt.Seed, rt.TickRate)
	}

	final, err := tui.Run(tui.Options{
		Game:     game,
		Runtime:  rt,
		Keeper:   st.best,
		History:  st.historyRecorder(),
		Recorder: recorder,
		Logger:   logger,
	})
	if err != nil {
		st.Close()
		fail("running game: %v", err)
	}

	if recorder != nil {
		session := final.Session()
		rec := recorder.Finish(session.Ticks(), session.State().Score)
		if err := replay.Save(flagRecord, rec); err != nil {
			st.Close()
			fail("%v", err)
		}
		logger.Info("session recorded", "path", flagRecord, "ticks", rec.Ticks, "inputs", recorder.Len())
	}
}
