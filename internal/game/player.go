package game

import "github.com/lox/flip7/internal/deck"

// Player represents a player in the game: a stable identity, the hand
// drawn this round, and a cumulative score across rounds.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Hand      Hand   `json:"hand"`
	Score     int    `json:"score"`
	HasStayed bool   `json:"has_stayed"`
}

// NewPlayer creates a player with an empty hand and zero score.
func NewPlayer(id, name string) *Player {
	return &Player{
		ID:   id,
		Name: name,
		Hand: NewHand(),
	}
}

// DrawCard adds a card to the player's hand. Turn legality is validated by
// GameState, not here.
func (p *Player) DrawCard(card deck.Card) {
	p.Hand.AddCard(card)
}

// Stay marks the player as having stayed for the rest of the round.
func (p *Player) Stay() {
	p.HasStayed = true
}

// ResetForRound clears the hand and stay flag, preserving identity, name
// and cumulative score.
func (p *Player) ResetForRound() {
	p.Hand = NewHand()
	p.HasStayed = false
}
