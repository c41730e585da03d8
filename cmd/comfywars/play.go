package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/comfy-wars/internal/core"
	"github.com/vovakirdan/comfy-wars/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the game in the terminal.

Controls:
  Arrows/hjkl  - Move the pointer
  Space/Click  - Select a unit, pick its destination
  Enter        - Confirm the move
  Esc/Bksp     - Cancel
  E            - End the turn
  Ctrl+R       - Reload the unit now
  Q/Ctrl+C     - Quit

With --unit the plugin is watched: rebuild it and the running game
switches to the new code, keeping the match. Build units with
"go run ./cmd/unitgen -o worker.so"; a plain go build of ./cmd/worker
opens once and never reloads.

Examples:
  comfywars play
  go run ./cmd/unitgen -o worker.so
  comfywars play --unit ./worker.so
  comfywars play --game-config ./my-game.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closer, err := newLogger(hostCfg, true)
	if err != nil {
		return err
	}
	defer closer.Close()

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	journal := openJournal(hostCfg, logger)
	if journal != nil {
		defer journal.Close()
	}

	h, err := newHost(hostCfg, logger, journal)
	if err != nil {
		return fmt.Errorf("cannot start unit: %w", err)
	}
	defer h.Close()

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: hostCfg.TickRate,
	}
	if err := tui.Run(h, cfg, logger); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
