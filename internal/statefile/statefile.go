// Package statefile persists a single game state as a JSON file, the
// representation the CLI and script runner share between invocations.
package statefile

import (
	"errors"
	"fmt"
	"os"

	"github.com/lox/flip7/internal/fileutil"
	"github.com/lox/flip7/internal/game"
)

// DefaultPath is the state file the CLI operates on unless told otherwise.
const DefaultPath = "flip7_state.json"

// ErrNotFound is returned when no state file exists at the given path.
var ErrNotFound = errors.New("no game state found")

// Load reads and parses a game state from path.
func Load(path string) (*game.GameState, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w at %s (run 'flip7 new' to start a game)", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read game state: %w", err)
	}

	g, err := game.FromJSON(data)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Save serializes the game state to path. The write is atomic so a
// concurrent reader never sees a truncated file.
func Save(path string, g *game.GameState) error {
	data, err := g.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize game state: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to save game state: %w", err)
	}
	return nil
}
