package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/batflap/internal/config"
	"github.com/vovakirdan/batflap/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Bat Flap SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own game. All players share the best score
and the score history.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  batflap serve                           # Listen on :23234 with auto-generated key
  batflap serve --ssh :2222               # Listen on port 2222
  batflap serve --store redis             # Keep the best score in redis
  batflap serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to custom game config YAML")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)

	game, source, err := config.Load(flagServeConfig)
	if err != nil {
		fail("%v", err)
	}
	logger.Info("config loaded", "source", source)

	st, err := openStores(logger)
	if err != nil {
		fail("%v", err)
	}
	defer st.Close()

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
	}

	server, err := tui.NewSSHServer(cfg, game, st.best, st.historyRecorder(), logger)
	if err != nil {
		st.Close()
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting Bat Flap SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Serve(ctx); err != nil {
		st.Close()
		fail("server: %v", err)
	}
}
