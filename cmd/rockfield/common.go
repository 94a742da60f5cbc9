package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/rockfield/internal/config"
	"github.com/vovakirdan/rockfield/internal/core"
	"github.com/vovakirdan/rockfield/internal/storage"
)

// runtimeConfig sizes the runtime to the current terminal, falling back to
// 80x24 when stdout is not a terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStoreBestEffort opens the score database, warning instead of failing
// so the game still runs without it.
func openStoreBestEffort() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// loadFieldConfig loads the field config with the difficulty preset applied.
func loadFieldConfig() (config.FieldConfig, error) {
	cfg, err := config.LoadField(flagConfig)
	if err != nil {
		return config.FieldConfig{}, err
	}
	if p := config.ParsePreset(flagDifficulty); p != "" {
		config.ApplyFieldPreset(&cfg, p)
	}
	return cfg, nil
}
