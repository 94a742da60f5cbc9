package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rockfield/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		modes := registry.List()

		width := 2
		for _, g := range modes {
			width = max(width, len(g.ID))
		}

		fmt.Printf("  %-*s  %-24s  %s\n", width, "ID", "Title", "Description")
		fmt.Printf("  %-*s  %-24s  %s\n", width, "--", "-----", "-----------")
		for _, g := range modes {
			fmt.Printf("  %-*s  %-24s  %s\n", width, g.ID, g.Title, g.Description)
		}
		fmt.Println()
		fmt.Println("Run 'rockfield play <id>' to play a mode.")
	},
}
