package deck

import "strconv"

// Card represents a single numbered card. Values run 0 through 12 and the
// card is immutable once created.
type Card struct {
	Value uint8 `json:"value"`
}

// NewCard creates a new card with the given value.
func NewCard(value uint8) Card {
	return Card{Value: value}
}

// String returns the card's value as a string (e.g., "7").
func (c Card) String() string {
	return strconv.Itoa(int(c.Value))
}
