// Package driver implements the state-file game operations behind the
// CLI: starting games, relaying draw/stay moves, and printing state. Each
// operation loads the persisted game, applies one engine call, and saves
// the result back.
package driver

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/lox/flip7/internal/game"
	"github.com/lox/flip7/internal/statefile"
)

const (
	// MinPlayers and MaxPlayers bound the roster for new games. The engine
	// itself only requires a non-empty roster.
	MinPlayers = 1
	MaxPlayers = 8
)

// Driver runs game operations against one persisted state file.
type Driver struct {
	statePath string
	out       io.Writer
	logger    *log.Logger
}

// New creates a driver bound to a state file. Human-readable output goes
// to out.
func New(statePath string, out io.Writer, logger *log.Logger) *Driver {
	return &Driver{
		statePath: statePath,
		out:       out,
		logger:    logger.WithPrefix("driver"),
	}
}

// NewGame starts a fresh game with the given roster size and seed, starts
// the first round, and persists it.
func (d *Driver) NewGame(players int, seed uint64) error {
	if players < MinPlayers {
		return fmt.Errorf("number of players must be at least %d", MinPlayers)
	}
	if players > MaxPlayers {
		return fmt.Errorf("number of players cannot exceed %d", MaxPlayers)
	}

	g := game.NewWithSeed(seed)
	for i := 0; i < players; i++ {
		g.AddPlayer(strconv.Itoa(i), fmt.Sprintf("Player %d", i))
	}

	if err := g.StartRound(); err != nil {
		return fmt.Errorf("failed to start round: %w", err)
	}
	if err := statefile.Save(d.statePath, g); err != nil {
		return err
	}

	d.logger.Debug("started game", "players", players, "seed", seed)
	fmt.Fprintf(d.out, "New game started with %d players (seed: %d)\n", players, seed)
	fmt.Fprintf(d.out, "Game state saved to %s\n", d.statePath)
	return nil
}

// Draw draws a card for the player at the given roster index and reports
// the resulting hand.
func (d *Driver) Draw(player int) error {
	g, err := statefile.Load(d.statePath)
	if err != nil {
		return err
	}
	if err := d.checkPlayerIndex(g, player); err != nil {
		return err
	}

	if err := g.PlayerDraw(strconv.Itoa(player)); err != nil {
		return fmt.Errorf("draw failed: %w", err)
	}
	if err := statefile.Save(d.statePath, g); err != nil {
		return err
	}

	p := g.Players[player]
	fmt.Fprintf(d.out, "Player %d drew a card. Hand total: %d (cards: %d)\n",
		player, p.Hand.TotalValue(), len(p.Hand.Cards))
	if p.Hand.IsBust() {
		fmt.Fprintf(d.out, "Player %d is bust!\n", player)
	}
	if p.Hand.HasFlip7() {
		fmt.Fprintf(d.out, "Player %d has Flip7!\n", player)
	}
	return nil
}

// Stay marks the player at the given roster index as stayed. When the stay
// closes the round, scores are computed and reported before saving.
func (d *Driver) Stay(player int) error {
	g, err := statefile.Load(d.statePath)
	if err != nil {
		return err
	}
	if err := d.checkPlayerIndex(g, player); err != nil {
		return err
	}

	if err := g.PlayerStay(strconv.Itoa(player)); err != nil {
		return fmt.Errorf("stay failed: %w", err)
	}
	if err := statefile.Save(d.statePath, g); err != nil {
		return err
	}

	fmt.Fprintf(d.out, "Player %d stayed\n", player)

	if g.Round.IsFinished {
		fmt.Fprintln(d.out, "Round finished! Computing scores...")
		scores := g.ComputeScores()

		ids := make([]string, 0, len(scores))
		for id := range scores {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Fprintf(d.out, "Player %s: %d points this round\n", id, scores[id])
		}

		if err := statefile.Save(d.statePath, g); err != nil {
			return err
		}
	}
	return nil
}

// State prints the persisted game state as JSON.
func (d *Driver) State() error {
	g, err := statefile.Load(d.statePath)
	if err != nil {
		return err
	}
	data, err := g.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize game state: %w", err)
	}
	fmt.Fprintln(d.out, string(data))
	return nil
}

// Load returns the persisted game state without mutating it.
func (d *Driver) Load() (*game.GameState, error) {
	return statefile.Load(d.statePath)
}

func (d *Driver) checkPlayerIndex(g *game.GameState, player int) error {
	if player < 0 || player >= len(g.Players) {
		return fmt.Errorf("player %d does not exist, valid players: 0-%d",
			player, len(g.Players)-1)
	}
	return nil
}
