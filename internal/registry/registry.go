// Package registry maps game mode ids to factories. Modes register
// themselves in init() so the CLI, menu and SSH server can list and create
// them by id.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/rockfield/internal/core"
)

// Game is the contract between a game mode and the platform layer.
// Implementations hold pure simulation and drawing logic; input mapping,
// timing and terminal output belong to the platform.
type Game interface {
	// ID is the stable identifier used on the command line and in the
	// score database (e.g. "rockfield", "rockfield_timed").
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new run for the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed tick with the actions pressed during it.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame into dst.
	Render(dst *core.Screen)

	// State reports score, run counters and game-over/paused flags.
	State() core.GameState
}

// Describer is implemented by modes that provide a one-line summary for
// listings.
type Describer interface {
	Description() string
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a fresh game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
)

// Register adds a factory under id. Registering an id twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f

	// Titles are read once so listing never builds games.
	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}
	infos[id] = info
}

// List returns all registered modes sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for _, info := range infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates the mode registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := factories[id]
	return ok
}
