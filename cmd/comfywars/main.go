// comfywars runs the Comfy Wars tactics game on a hot-reloadable host.
//
// Usage:
//
//	comfywars play            - Play in the terminal
//	comfywars serve           - Start SSH server for remote play
//	comfywars headless        - Run frames without a terminal
//	comfywars list            - List units linked into the binary
//	comfywars reloads         - Show the reload journal
//
// Global flags:
//
//	--config <path>     - Host config YAML
//	--unit <path>       - Plugin artifact to load and watch
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/comfy-wars/internal/config"

	// Import units to register them
	_ "github.com/vovakirdan/comfy-wars/internal/game"
)

var (
	// Global flags
	flagConfig     string
	flagGameConfig string
	flagUnit       string
	flagBuiltin    string
	flagJournal    string
	flagLogLevel   string
	flagFPS        int
	flagNoWatch    bool
	flagShowFPS    bool

	// hostCfg is loaded before every command runs.
	hostCfg config.HostConfig
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "comfywars",
	Short: "Comfy Wars - turn-based tactics with hot-reloadable game code",
	Long: `Comfy Wars is a small turn-based tactics game. The game code is a
loadable unit: rebuild it while the game runs and the host swaps the new
code in without losing the state of the match.

Available commands:
  play      - Play in the terminal
  serve     - Start SSH server for remote play
  headless  - Run frames without a terminal
  list      - Show units linked into the binary
  reloads   - Show the reload journal

Examples:
  comfywars play
  go run ./cmd/unitgen -o worker.so
  comfywars play --unit ./worker.so
  comfywars serve --ssh :2222
  comfywars headless --frames 120 --script "click 2,7; click 4,7; confirm"`,
	SilenceUsage:      true,
	PersistentPreRunE: loadHostConfig,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to host config YAML")
	pf.StringVar(&flagGameConfig, "game-config", "", "Path to game config YAML")
	pf.StringVar(&flagUnit, "unit", "", "Plugin artifact to load (overrides config)")
	pf.StringVar(&flagBuiltin, "builtin", "", "Builtin unit to run when no plugin is given")
	pf.StringVar(&flagJournal, "journal", "", "Path to the reload journal database")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second)")
	pf.BoolVar(&flagNoWatch, "no-watch", false, "Do not reload the unit when it changes")
	pf.BoolVar(&flagShowFPS, "show-fps", false, "Draw an FPS line on top of the game")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(headlessCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(reloadsCmd)
}

// loadHostConfig loads the host config and applies the global flags on top.
func loadHostConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadHost(flagConfig)
	if err != nil {
		return err
	}

	if flagUnit != "" {
		cfg.Unit.Path = flagUnit
	}
	if flagBuiltin != "" {
		cfg.Unit.Builtin = flagBuiltin
	}
	if flagJournal != "" {
		cfg.Journal = flagJournal
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	if flagNoWatch {
		cfg.Unit.Watch = false
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	// The unit reads its own config and only sees the environment.
	if flagGameConfig != "" {
		if err := os.Setenv(config.GameConfigEnv, flagGameConfig); err != nil {
			return err
		}
	}

	hostCfg = cfg
	return nil
}
