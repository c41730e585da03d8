package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/comfy-wars/internal/platform/tui"
	"github.com/vovakirdan/comfy-wars/internal/storage"
)

var (
	flagFaults bool
	flagPlain  bool
	flagLimit  int
)

var reloadsCmd = &cobra.Command{
	Use:   "reloads",
	Short: "Show the reload journal",
	Long: `Display the units the host loaded, the loads that failed and the frame
faults it recovered from.

Examples:
  comfywars reloads
  comfywars reloads --faults
  comfywars reloads --plain --limit 20`,
	Args: cobra.NoArgs,
	RunE: runReloads,
}

func init() {
	reloadsCmd.Flags().BoolVar(&flagFaults, "faults", false, "Start on the frame faults")
	reloadsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the journal instead of browsing it")
	reloadsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Entries to print with --plain")
}

func runReloads(_ *cobra.Command, _ []string) error {
	if hostCfg.Journal == "" {
		return fmt.Errorf("the reload journal is disabled")
	}
	store, err := storage.Open(hostCfg.Journal)
	if err != nil {
		return fmt.Errorf("cannot open reload journal: %w", err)
	}
	defer store.Close()

	view := tui.ViewReloads
	if flagFaults {
		view = tui.ViewFaults
	}

	width, height := 80, 24
	w, h, termErr := term.GetSize(int(os.Stdout.Fd()))
	if termErr == nil {
		width, height = w, h
	}
	if flagPlain || termErr != nil {
		return printJournal(store, view)
	}
	return tui.RunJournal(store, view, width, height)
}

func printJournal(store *storage.Store, view tui.JournalView) error {
	if view == tui.ViewFaults {
		faults, err := store.RecentFaults(flagLimit)
		if err != nil {
			return err
		}
		if len(faults) == 0 {
			fmt.Println("No frame faults recorded.")
			return nil
		}
		fmt.Printf("  %-16s  %-16s  %s\n", "When", "Unit", "Message")
		fmt.Printf("  %-16s  %-16s  %s\n", "----", "----", "-------")
		for _, f := range faults {
			fmt.Printf("  %-16s  %-16s  %s\n", f.CreatedAt.Format("2006-01-02 15:04"), f.Unit, f.Message)
		}
		return nil
	}

	reloads, err := store.RecentReloads(flagLimit)
	if err != nil {
		return err
	}
	if len(reloads) == 0 {
		fmt.Println("No reloads recorded yet.")
		return nil
	}
	fmt.Printf("  %-16s  %-16s  %-7s  %s\n", "When", "Unit", "Outcome", "Error")
	fmt.Printf("  %-16s  %-16s  %-7s  %s\n", "----", "----", "-------", "-----")
	for _, r := range reloads {
		fmt.Printf("  %-16s  %-16s  %-7s  %s\n", r.CreatedAt.Format("2006-01-02 15:04"), r.Unit, r.Outcome, r.Error)
	}

	if stats, err := store.Stats(reloads[0].Unit); err == nil {
		fmt.Println()
		fmt.Printf("%s: %d loads, %d failed, %d faults\n", stats.Unit, stats.Reloads, stats.Failed, stats.Faults)
	}
	return nil
}
