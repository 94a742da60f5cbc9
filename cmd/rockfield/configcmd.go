package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rockfield/internal/config"
)

var flagEffective bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the field config",
	Long: `Print the built-in field config as YAML. Save it to
~/.rockfield/configs/field.yaml or pass it with --config to customize.

With --effective, print the config the game would actually use: the first
file found in the search order, with --difficulty applied.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		if !flagEffective {
			_, err := os.Stdout.Write(config.DefaultFieldYAML())
			return err
		}

		cfg, src, err := config.LoadFieldSource(flagConfig)
		if err != nil {
			return err
		}
		if p := config.ParsePreset(flagDifficulty); p != "" {
			config.ApplyFieldPreset(&cfg, p)
			src += ", difficulty " + string(p)
		}
		data, err := config.MarshalField(cfg)
		if err != nil {
			return err
		}
		fmt.Printf("# source: %s\n", src)
		_, err = os.Stdout.Write(data)
		return err
	},
}

func init() {
	configCmd.Flags().BoolVar(&flagEffective, "effective", false, "print the loaded config instead of the defaults")
}
