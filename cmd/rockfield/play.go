package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rockfield/internal/platform/tui"
	"github.com/vovakirdan/rockfield/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start a run of the given mode (default: rockfield).

Controls:
  Arrows/WASD  - Look around
  Space/F      - Fire
  P            - Pause
  R            - Restart (after game over)
  Esc/B        - Leave (when paused or over)
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower spawns and rocks
  normal - Default settings
  hard   - Faster spawns and rocks
  fixed  - No score progression

Examples:
  rockfield play
  rockfield play rockfield_timed
  rockfield play --difficulty hard --seed 7
  rockfield play --config ./field.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "rockfield"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'rockfield list' to see modes", gameID)
	}

	// Surface config errors before entering the alt screen
	if _, err := loadFieldConfig(); err != nil {
		return err
	}

	g, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStoreBestEffort()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(g, store, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
