package game

import (
	"encoding/json"
	"fmt"

	"github.com/lox/flip7/internal/deck"
)

// DefaultSeed is the base seed for games constructed without an explicit
// one.
const DefaultSeed = 42

// initialDealCount is the number of cards dealt to each player at the
// start of a round.
const initialDealCount = 2

// GameState is the orchestrator for a single game: the ordered player
// list (order of addition defines turn order and never changes), the
// current deck, and the round state. All operations are synchronous
// in-memory mutations; a failed operation applies no effect.
type GameState struct {
	Players []*Player  `json:"players"`
	Deck    *deck.Deck `json:"deck"`
	Round   RoundState `json:"round_state"`
	Seed    uint64     `json:"seed"`
}

// New creates a game with the default base seed.
func New() *GameState {
	return NewWithSeed(DefaultSeed)
}

// NewWithSeed creates a game whose per-round decks derive from the given
// base seed combined with the round number, so repeated rounds shuffle
// differently but reproducibly.
func NewWithSeed(seed uint64) *GameState {
	return &GameState{
		Players: []*Player{},
		Deck:    deck.New(seed),
		Round:   NewRoundState(),
		Seed:    seed,
	}
}

// AddPlayer appends a new player with an empty hand and zero score. Call
// before the first StartRound; turn order is the order of addition.
func (g *GameState) AddPlayer(id, name string) {
	g.Players = append(g.Players, NewPlayer(id, name))
}

// StartRound resets every player, builds and shuffles a fresh deck seeded
// from the base seed and round number, and deals two cards round-robin:
// one card to every player in turn order, then a second to every player.
func (g *GameState) StartRound() error {
	if len(g.Players) == 0 {
		return ErrNoPlayers
	}

	for _, p := range g.Players {
		p.ResetForRound()
	}

	g.Deck = deck.New(g.Seed + uint64(g.Round.RoundNumber))
	g.Deck.Shuffle()

	for i := 0; i < initialDealCount; i++ {
		for _, p := range g.Players {
			if card, ok := g.Deck.Draw(); ok {
				p.DrawCard(card)
			}
		}
	}

	g.Round.CurrentPlayerIndex = 0
	g.Round.IsFinished = false

	return nil
}

// PlayerDraw draws one card from the deck into the acting player's hand.
// A draw that pushes the hand over the bust threshold marks the player as
// stayed automatically. The turn pointer advances on success.
func (g *GameState) PlayerDraw(playerID string) error {
	if g.Round.IsFinished {
		return ErrRoundFinished
	}
	if len(g.Players) == 0 {
		return ErrNoPlayers
	}

	current := g.Players[g.Round.CurrentPlayerIndex]
	if current.ID != playerID {
		return ErrNotYourTurn
	}
	if current.HasStayed {
		return ErrAlreadyStayed
	}

	card, ok := g.Deck.Draw()
	if !ok {
		return ErrDeckEmpty
	}
	current.DrawCard(card)

	if current.Hand.IsBust() {
		current.Stay()
	}

	g.advanceTurn()
	return nil
}

// PlayerStay marks the acting player as stayed and advances the turn. A
// player who already stayed may stay again when the turn pointer lands on
// them; that is how the turn passes on to players still drawing.
func (g *GameState) PlayerStay(playerID string) error {
	if g.Round.IsFinished {
		return ErrRoundFinished
	}
	if len(g.Players) == 0 {
		return ErrNoPlayers
	}

	current := g.Players[g.Round.CurrentPlayerIndex]
	if current.ID != playerID {
		return ErrNotYourTurn
	}

	current.Stay()
	g.advanceTurn()
	return nil
}

// advanceTurn moves the pointer to the next player and finishes the round
// once every player has stayed. The pointer still advances on the closing
// move; callers must check IsFinished before issuing further actions.
func (g *GameState) advanceTurn() {
	g.Round.CurrentPlayerIndex = (g.Round.CurrentPlayerIndex + 1) % len(g.Players)

	for _, p := range g.Players {
		if !p.HasStayed {
			return
		}
	}
	g.Round.IsFinished = true
}

// ComputeScores awards each player their round score and adds it to their
// cumulative total: 21 for a Flip7 hand, otherwise the hand total if not
// bust, otherwise 0. Flip7 is checked before bust, so a hand that somehow
// satisfies both still earns the bonus. Increments the round number and
// returns the per-player round scores keyed by player id.
func (g *GameState) ComputeScores() map[string]int {
	scores := make(map[string]int, len(g.Players))

	for _, p := range g.Players {
		roundScore := 0
		if p.Hand.HasFlip7() {
			roundScore = Flip7Bonus
		} else if !p.Hand.IsBust() {
			roundScore = p.Hand.TotalValue()
		}

		p.Score += roundScore
		scores[p.ID] = roundScore
	}

	g.Round.RoundNumber++
	return scores
}

// IsFlip7 reports whether the given player's current hand satisfies Flip7.
func (g *GameState) IsFlip7(playerID string) (bool, error) {
	p, err := g.FindPlayer(playerID)
	if err != nil {
		return false, err
	}
	return p.Hand.HasFlip7(), nil
}

// FindPlayer returns the player with the given id.
func (g *GameState) FindPlayer(playerID string) (*Player, error) {
	for _, p := range g.Players {
		if p.ID == playerID {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
}

// RemovePlayer removes a player from the roster, keeping the turn pointer
// valid: the pointer shifts down when an earlier seat is removed and wraps
// to 0 when it would fall off the end. If every remaining player has
// stayed, the round finishes.
func (g *GameState) RemovePlayer(playerID string) error {
	index := -1
	for i, p := range g.Players {
		if p.ID == playerID {
			index = i
			break
		}
	}
	if index == -1 {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}

	g.Players = append(g.Players[:index], g.Players[index+1:]...)

	if len(g.Players) == 0 {
		g.Round.CurrentPlayerIndex = 0
		return nil
	}
	if index < g.Round.CurrentPlayerIndex {
		g.Round.CurrentPlayerIndex--
	}
	if g.Round.CurrentPlayerIndex >= len(g.Players) {
		g.Round.CurrentPlayerIndex = 0
	}

	allStayed := true
	for _, p := range g.Players {
		if !p.HasStayed {
			allStayed = false
			break
		}
	}
	if allStayed {
		g.Round.IsFinished = true
	}
	return nil
}

// CurrentPlayer returns the player the turn pointer identifies, or nil if
// the game has no players.
func (g *GameState) CurrentPlayer() *Player {
	if len(g.Players) == 0 {
		return nil
	}
	return g.Players[g.Round.CurrentPlayerIndex]
}

// Scores returns each player's cumulative score keyed by player id.
func (g *GameState) Scores() map[string]int {
	scores := make(map[string]int, len(g.Players))
	for _, p := range g.Players {
		scores[p.ID] = p.Score
	}
	return scores
}

// Clone returns a deep copy of the game state, suitable as a read-only
// snapshot. The clone's deck generator is reconstructed the same way a
// deserialized deck's is.
func (g *GameState) Clone() (*GameState, error) {
	data, err := g.ToJSON()
	if err != nil {
		return nil, err
	}
	return FromJSON(data)
}

// ToJSON serializes the full game state. The deck generator's position is
// not included; see deck.Deck's JSON handling.
func (g *GameState) ToJSON() ([]byte, error) {
	return json.Marshal(g)
}

// FromJSON reconstructs a game state from its serialized form.
func FromJSON(data []byte) (*GameState, error) {
	var g GameState
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to parse game state: %w", err)
	}
	if g.Players == nil {
		g.Players = []*Player{}
	}
	if g.Deck == nil {
		g.Deck = deck.Restore(nil)
	}
	return &g, nil
}
