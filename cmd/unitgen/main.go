// unitgen builds the game as a loadable unit.
//
// Usage, from the module root:
//
//	go run ./cmd/unitgen -o worker.so     - Generate cmd/worker and build it
//	go run ./cmd/unitgen --generate-only  - Only refresh cmd/worker/game_*.go
//
// Run it again after every change to internal/game; a running
// "comfywars play --unit worker.so" picks the new build up.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/comfy-wars/internal/unitgen"
)

var (
	flagSrc          string
	flagDst          string
	flagOut          string
	flagRace         bool
	flagGenerateOnly bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "unitgen",
	Short: "Build the game as a loadable unit",
	Long: `Copy internal/game into the worker's main package and build it with
-buildmode=plugin.

The build names the worker's files instead of its package, so the plugin
gets a pluginpath derived from its contents. A host can only open a
changed build next to the ones it already loaded when the pluginpaths
differ.

Examples:
  go run ./cmd/unitgen -o worker.so
  go run ./cmd/unitgen -o worker.so --race
  go run ./cmd/unitgen --generate-only`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flagSrc, "src", "internal/game", "Game package directory")
	f.StringVar(&flagDst, "dst", "cmd/worker", "Worker main package directory")
	f.StringVarP(&flagOut, "output", "o", "worker.so", "Plugin artifact to write")
	f.BoolVar(&flagRace, "race", false, "Build with the race detector, to match a host built with -race")
	f.BoolVar(&flagGenerateOnly, "generate-only", false, "Copy the sources without building")
}

func run(_ *cobra.Command, _ []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "unitgen"})

	files, err := unitgen.Generate(flagSrc, flagDst)
	if err != nil {
		return err
	}
	logger.Info("generated unit sources", "dir", flagDst, "files", len(files))
	if flagGenerateOnly {
		return nil
	}

	var flags []string
	if flagRace {
		flags = append(flags, "-race")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := unitgen.Build(ctx, flagDst, flagOut, flags...); err != nil {
		return err
	}
	logger.Info("built unit", "artifact", flagOut)
	return nil
}
