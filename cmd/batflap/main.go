// batflap is a terminal flappy-style arcade game: guide a bat through
// gaps in scrolling obstacles.
//
// Usage:
//
//	batflap play                 - Play in this terminal
//	batflap serve                - Start SSH server for remote play
//	batflap scores               - Show the score history
//	batflap replay <file>        - Re-run a recorded session and verify it
//	batflap config               - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--store <backend>     - Best score store: sqlite, redis or memory
//	--redis-addr <addr>   - Redis address for --store redis
//	--log-file <path>     - Log destination while the game owns the terminal
//	--debug               - Enable debug logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagStore     string
	flagRedisAddr string
	flagLogFile   string
	flagDebug     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "batflap",
	Short: "Bat Flap - guide a bat through the night in your terminal",
	Long: `Bat Flap is a flappy-style arcade game for the terminal.
Flap to stay airborne, fly through the gaps, and don't touch the ground.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  scores   - View the score history
  replay   - Re-run a recorded session
  config   - Print the effective configuration

Examples:
  batflap play
  batflap play --seed 42 --record run.cbor
  batflap replay run.cbor
  batflap serve --ssh :2222 --store redis
  batflap scores --tui`,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	pf.StringVar(&flagStore, "store", "sqlite", "Best score store: sqlite, redis or memory")
	pf.StringVar(&flagRedisAddr, "redis-addr", "localhost:6379", "Redis address for --store redis")
	pf.StringVar(&flagLogFile, "log-file", "~/.arcade/batflap.log", "Log file used while the game owns the terminal")
	pf.BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
