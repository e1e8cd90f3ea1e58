package deck

import (
	rand "math/rand/v2"

	"github.com/lox/flip7/internal/randutil"
)

// Size is the number of cards in a freshly built deck: one card of value v
// for each v in 1..12, scaled so value v appears v times, plus the single
// zero card. 1+2+...+12+1 = 79.
const Size = 79

// DefaultSeed seeds decks whose real seed is unknown, e.g. after loading a
// serialized game where the generator position is not persisted.
const DefaultSeed = 42

// Deck is an ordered sequence of cards with its own seeded generator.
// Draws come off the end of the sequence.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New builds the canonical 79-card deck in deterministic order (ascending
// value 1..12, each repeated value times, then the zero card) and seeds the
// deck's generator. The deck is not shuffled.
func New(seed uint64) *Deck {
	cards := make([]Card, 0, Size)
	for value := uint8(1); value <= 12; value++ {
		for i := uint8(0); i < value; i++ {
			cards = append(cards, NewCard(value))
		}
	}
	cards = append(cards, NewCard(0))

	return &Deck{
		cards: cards,
		rng:   randutil.New(seed),
	}
}

// Shuffle permutes the deck in place with a Fisher-Yates walk from the last
// index down to 1, reducing one generator draw modulo (i+1) at each step.
// For a fixed seed the resulting order is bit-reproducible, which saved
// games and tests rely on.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := int(d.rng.Uint32()) % (i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card (the end of the sequence). The
// second return is false when the deck is empty; an empty deck is a
// recoverable condition, never a panic.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, true
}

// IsEmpty returns true if no cards remain.
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns the remaining cards in order. The slice is a copy.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Restore rebuilds a deck around a previously serialized card sequence.
// The generator position is not part of the serialized form, so the deck
// is re-seeded from DefaultSeed; play after a reload may diverge from an
// in-memory continuation.
func Restore(cards []Card) *Deck {
	copied := make([]Card, len(cards))
	copy(copied, cards)
	return &Deck{
		cards: copied,
		rng:   randutil.New(DefaultSeed),
	}
}
