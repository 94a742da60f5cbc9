package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rockfield/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagServeRate   int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the rockfield SSH server",
	Long: `Start an SSH server so players can fly from any terminal.

Each connection gets its own session with the mode menu. All players share
the server's score database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.rockfield/host_key

Examples:
  rockfield serve
  rockfield serve --ssh :2222
  rockfield serve --host-key ./host_key --db ./scores.db

Connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg := tui.DefaultSSHServerConfig()
		cfg.Address = flagSSHAddr
		cfg.HostKeyPath = flagHostKey
		cfg.DBPath = flagDBPath
		cfg.IdleTimeout = flagIdleTimeout
		cfg.TickRate = flagServeRate

		server, err := tui.NewSSHServer(cfg)
		if err != nil {
			return err
		}

		fmt.Printf("Starting rockfield SSH server on %s\n", server.Addr())
		fmt.Println("Press Ctrl+C to stop")
		return server.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Disconnect idle sessions after this long")
	serveCmd.Flags().IntVar(&flagServeRate, "tick-rate", 30, "Simulation rate for remote sessions")
}
