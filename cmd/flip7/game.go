package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/flip7/cmd/flip7/shared"
	"github.com/lox/flip7/internal/driver"
	"github.com/lox/flip7/internal/game"
	"github.com/lox/flip7/internal/statefile"
)

// NewCmd starts a new game and deals the first round.
type NewCmd struct {
	Players int    `kong:"default='2',help='Number of players'"`
	Seed    uint64 `kong:"default='42',help='Random seed for reproducible games'"`
	State   string `kong:"default='flip7_state.json',help='Path to the game state file'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
}

func (c *NewCmd) Run() error {
	d := driver.New(c.State, os.Stdout, shared.SetupLogger(c.Debug))
	return d.NewGame(c.Players, c.Seed)
}

// DrawCmd draws a card for a player.
type DrawCmd struct {
	Player int    `kong:"arg,help='Player ID (0-based index)'"`
	State  string `kong:"default='flip7_state.json',help='Path to the game state file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *DrawCmd) Run() error {
	d := driver.New(c.State, os.Stdout, shared.SetupLogger(c.Debug))
	return d.Draw(c.Player)
}

// StayCmd marks a player as stayed, scoring the round when it closes.
type StayCmd struct {
	Player int    `kong:"arg,help='Player ID (0-based index)'"`
	State  string `kong:"default='flip7_state.json',help='Path to the game state file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *StayCmd) Run() error {
	d := driver.New(c.State, os.Stdout, shared.SetupLogger(c.Debug))
	return d.Stay(c.Player)
}

// StateCmd prints the current game state.
type StateCmd struct {
	State  string `kong:"default='flip7_state.json',help='Path to the game state file'"`
	Pretty bool   `kong:"help='Render a readable summary instead of JSON'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *StateCmd) Run() error {
	if !c.Pretty {
		d := driver.New(c.State, os.Stdout, shared.SetupLogger(c.Debug))
		return d.State()
	}

	g, err := statefile.Load(c.State)
	if err != nil {
		return err
	}
	return renderPrettyState(os.Stdout, g)
}

// renderPrettyState writes a styled one-screen summary of the game to w.
func renderPrettyState(w io.Writer, g *game.GameState) error {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	turnStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700"))
	badStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	goodStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#96CEB4"))

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Round %d", g.Round.RoundNumber)))
	current := g.CurrentPlayer()
	for _, p := range g.Players {
		marker := "  "
		if p == current && !g.Round.IsFinished {
			marker = turnStyle.Render("> ")
		}

		cards := make([]string, len(p.Hand.Cards))
		for i, card := range p.Hand.Cards {
			cards[i] = card.String()
		}

		status := ""
		switch {
		case p.Hand.HasFlip7():
			status = goodStyle.Render(" FLIP7")
		case p.Hand.IsBust():
			status = badStyle.Render(" BUST")
		case p.HasStayed:
			status = " stayed"
		}

		fmt.Fprintf(w, "%s%s (%s)  [%s]  total %d, score %d%s\n",
			marker, p.Name, p.ID, strings.Join(cards, " "), p.Hand.TotalValue(), p.Score, status)
	}

	fmt.Fprintf(w, "%d cards left in deck", g.Deck.Len())
	if g.Round.IsFinished {
		fmt.Fprint(w, ", round finished")
	}
	fmt.Fprintln(w)
	return nil
}
