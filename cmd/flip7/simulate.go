package main

import (
	"fmt"
	"os"

	"github.com/lox/flip7/cmd/flip7/shared"
	"github.com/lox/flip7/internal/driver"
)

// SimulateCmd runs a command script against the state file, stopping at
// the first failing line.
type SimulateCmd struct {
	Script string `kong:"arg,help='Path to script file'"`
	State  string `kong:"default='flip7_state.json',help='Path to the game state file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	f, err := os.Open(c.Script)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("script file not found: %s", c.Script)
		}
		return fmt.Errorf("failed to open script file: %w", err)
	}
	defer f.Close()

	d := driver.New(c.State, os.Stdout, shared.SetupLogger(c.Debug))
	return d.RunScript(f)
}
