package deck

import (
	"encoding/json"

	"github.com/lox/flip7/internal/randutil"
)

type deckJSON struct {
	Cards []Card `json:"cards"`
}

// MarshalJSON serializes the remaining card sequence. The generator's
// internal position is deliberately not part of the representation.
func (d *Deck) MarshalJSON() ([]byte, error) {
	return json.Marshal(deckJSON{Cards: d.cards})
}

// UnmarshalJSON restores the card sequence and re-seeds the generator from
// DefaultSeed, since the generator position is not serialized. A reloaded
// game therefore shuffles differently than the in-memory game would have.
func (d *Deck) UnmarshalJSON(data []byte) error {
	var dj deckJSON
	if err := json.Unmarshal(data, &dj); err != nil {
		return err
	}
	d.cards = dj.Cards
	if d.cards == nil {
		d.cards = []Card{}
	}
	d.rng = randutil.New(DefaultSeed)
	return nil
}
