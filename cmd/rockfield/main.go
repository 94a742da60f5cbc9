// rockfield is a terminal asteroid field: fly forward, look around and shoot
// procedurally shaped rocks before one of them hits you.
//
// Usage:
//
//	rockfield list              - List game modes
//	rockfield play [mode]       - Play a mode (default: rockfield)
//	rockfield menu              - Pick modes and view scores interactively
//	rockfield serve             - Start SSH server for remote play
//	rockfield scores [mode]     - Show best runs
//	rockfield mesh              - Export an asteroid mesh as OBJ
//	rockfield simulate          - Headless autopilot run
//	rockfield config            - Print the default field config
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.rockfield/scores.db)
//	--config <path>       - Field config YAML
//	--difficulty <name>   - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rockfield/internal/config"
	"github.com/vovakirdan/rockfield/internal/game"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rockfield",
	Short: "Rockfield - fly through an asteroid field in your terminal",
	Long: `Rockfield is a first-person asteroid field for the terminal.
You fly forward at increasing speed, steer your view and shoot the rocks
before one of them reaches you.

Examples:
  rockfield play
  rockfield play rockfield_timed --difficulty hard
  rockfield menu
  rockfield serve --ssh :2222
  rockfield simulate --seed 42 --ticks 3600`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if flagDifficulty != "" && string(config.ParsePreset(flagDifficulty)) == "" {
			return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		game.SetConfigPath(flagConfig)
		game.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.rockfield/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to field config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(meshCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}
