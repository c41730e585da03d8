package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/comfy-wars/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List units linked into the binary",
	Long: `Shows the builtin units. Any of them can be run with --builtin <id>
instead of a plugin build.`,
	Args: cobra.NoArgs,
	Run:  runList,
}

func runList(_ *cobra.Command, _ []string) {
	units := registry.List()

	if len(units) == 0 {
		fmt.Println("No units available.")
		return
	}

	fmt.Println("Builtin units:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, u := range units {
		if len(u.ID) > maxIDLen {
			maxIDLen = len(u.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, u := range units {
		marker := ""
		if u.ID == hostCfg.Unit.Builtin {
			marker = "  (default)"
		}
		fmt.Printf("  %-*s  %s%s\n", maxIDLen, u.ID, u.Title, marker)
	}

	fmt.Println()
	fmt.Println("Run 'comfywars play --builtin <id>' to play a unit.")
}
