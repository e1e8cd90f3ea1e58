package main

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/flip7/cmd/flip7/shared"
	"github.com/lox/flip7/internal/driver"
	"github.com/lox/flip7/internal/game"
	"github.com/lox/flip7/internal/tui"
)

// PlayCmd plays a hot-seat game in the terminal.
type PlayCmd struct {
	Players int      `kong:"default='2',help='Number of players'"`
	Seed    uint64   `kong:"default='42',help='Random seed for reproducible games'"`
	Names   []string `kong:"help='Player names (defaults to Player 0..N)'"`
	Debug   bool     `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	if c.Players < driver.MinPlayers || c.Players > driver.MaxPlayers {
		return fmt.Errorf("players must be between %d and %d", driver.MinPlayers, driver.MaxPlayers)
	}
	if len(c.Names) > c.Players {
		return fmt.Errorf("more names (%d) than players (%d)", len(c.Names), c.Players)
	}

	logger := shared.SetupLogger(c.Debug)

	g := game.NewWithSeed(c.Seed)
	for i := 0; i < c.Players; i++ {
		name := fmt.Sprintf("Player %d", i)
		if i < len(c.Names) {
			name = c.Names[i]
		}
		g.AddPlayer(strconv.Itoa(i), name)
	}
	if err := g.StartRound(); err != nil {
		return err
	}

	p := tea.NewProgram(tui.New(g, logger))
	_, err := p.Run()
	return err
}
