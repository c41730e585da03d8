package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/comfy-wars/internal/host"
	"github.com/vovakirdan/comfy-wars/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own host and its own match. With --unit every
session watches the plugin, so a rebuild reaches all running matches.
Reloads of all sessions go to the same journal.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.comfywars/host_key

Examples:
  comfywars serve                           # Listen on :23234
  comfywars serve --ssh :2222               # Listen on port 2222
  comfywars serve --unit ./worker.so        # Serve a hot-reloadable build

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, closer, err := newLogger(hostCfg, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	cfg := tui.DefaultSSHServerConfig()
	cfg.TickRate = hostCfg.TickRate
	cfg.Address = firstSet(flagSSHAddr, hostCfg.SSH.Address, cfg.Address)
	cfg.HostKeyPath = firstSet(flagHostKey, hostCfg.SSH.HostKey)
	switch {
	case flagIdleTimeout > 0:
		cfg.IdleTimeout = flagIdleTimeout
	case hostCfg.SSH.IdleTimeout > 0:
		cfg.IdleTimeout = hostCfg.SSH.IdleTimeout
	}

	journal := openJournal(hostCfg, logger)
	if journal != nil {
		defer journal.Close()
	}
	cfg.NewHost = func(sessionLogger *log.Logger) (*host.Host, error) {
		return newHost(hostCfg, sessionLogger, journal)
	}

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting Comfy Wars SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func firstSet(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
