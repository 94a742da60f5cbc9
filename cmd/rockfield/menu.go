package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rockfield/internal/config"
	"github.com/vovakirdan/rockfield/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick modes and view scores interactively",
	Long: `Start rockfield in menu mode.

Controls:
  Up/Down/j/k  - Choose mode
  Left/Right   - Choose difficulty
  Enter        - Play
  Tab          - Best runs
  Q            - Quit

After a run, Esc returns to the menu.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		if _, err := loadFieldConfig(); err != nil {
			return err
		}

		store := openStoreBestEffort()
		if store != nil {
			defer store.Close()
		}

		player := os.Getenv("USER")
		if err := tui.RunSession(store, runtimeConfig(), player, config.ParsePreset(flagDifficulty)); err != nil {
			return fmt.Errorf("running menu: %w", err)
		}
		return nil
	},
}
