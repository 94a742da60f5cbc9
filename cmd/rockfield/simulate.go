package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/rockfield/internal/game"
)

var (
	flagSimTicks   int
	flagSimDT      float64
	flagSimShoot   int
	flagSimLog     int
	flagSimVerbose bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the field headless with an autopilot",
	Long: `Fly a run without a terminal UI. The autopilot flies straight ahead and
fires at the closest rock every --shoot-every ticks. Runs with the same seed,
config and flags are identical.

Examples:
  rockfield simulate --seed 42
  rockfield simulate --seed 42 --ticks 7200 --shoot-every 20 --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadFieldConfig()
		if err != nil {
			return err
		}

		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "simulate",
		})
		if flagSimVerbose {
			logger.SetLevel(log.DebugLevel)
		}

		seed := flagSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		logger.Info("starting", "seed", seed, "ticks", flagSimTicks, "dt", flagSimDT)

		sum := game.Autopilot(cfg, seed, game.AutopilotOptions{
			Ticks:      flagSimTicks,
			DT:         flagSimDT,
			ShootEvery: flagSimShoot,
			LogEvery:   flagSimLog,
		}, logger)

		logger.Info("finished",
			"ticks", sum.Ticks,
			"score", sum.Score,
			"kills", sum.Kills,
			"shots", sum.Shots,
			"accuracy", sum.Accuracy(),
			"distance", sum.Distance,
			"elapsed", sum.Elapsed,
			"game_over", sum.GameOver,
			"spawn_fallbacks", sum.Fallbacks,
		)
		return nil
	},
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimTicks, "ticks", 3600, "Maximum ticks to simulate")
	simulateCmd.Flags().Float64Var(&flagSimDT, "dt", 1.0/60, "Seconds per tick")
	simulateCmd.Flags().IntVar(&flagSimShoot, "shoot-every", 30, "Fire every N ticks (0 = never)")
	simulateCmd.Flags().IntVar(&flagSimLog, "log-every", 600, "Log progress every N ticks (0 = never)")
	simulateCmd.Flags().BoolVarP(&flagSimVerbose, "verbose", "v", false, "Log controller debug events")
}
