package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilenav/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server where every connection gets its own scene picker.
Runs from all sessions go to the same database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tilenav/host_key

Examples:
  tilenav serve                           # Listen on :23234 with auto-generated key
  tilenav serve --ssh :2222               # Listen on port 2222
  tilenav serve --host-key ./my_host_key  # Use specific host key
  tilenav serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	ids, err := levelIDs()
	if err != nil {
		return err
	}
	simCfg, err := loadSimConfig()
	if err != nil {
		return err
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.LevelIDs = ids
	cfg.TickRate = simCfg.TickRate
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute

	server, err := tui.NewSSHServer(cfg, logger.WithPrefix("ssh"))
	if err != nil {
		return err
	}

	logger.Info("connect with: ssh localhost -p 23234", "levels", len(ids))
	return server.ListenAndServe()
}
