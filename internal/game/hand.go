package game

import "github.com/lox/flip7/internal/deck"

// Flip7Target is the exact subset sum that earns the Flip7 bonus.
const Flip7Target = 7

// BustThreshold is the hand total above which a hand is bust.
const BustThreshold = 21

// Flip7Bonus is the flat score awarded for a Flip7 hand at round end.
const Flip7Bonus = 21

// Hand holds the cards a player has drawn this round. Bust and Flip7
// status are derived lazily, never enforced at insertion time.
type Hand struct {
	Cards []deck.Card `json:"cards"`
}

// NewHand returns an empty hand.
func NewHand() Hand {
	return Hand{Cards: []deck.Card{}}
}

// AddCard appends a card to the hand.
func (h *Hand) AddCard(card deck.Card) {
	h.Cards = append(h.Cards, card)
}

// TotalValue returns the sum of all card values. Card values are small,
// but the sum is computed as an int so pathological hands cannot wrap.
func (h *Hand) TotalValue() int {
	total := 0
	for _, card := range h.Cards {
		total += int(card.Value)
	}
	return total
}

// IsBust returns true if the hand total exceeds BustThreshold. A total of
// exactly 21 is not bust.
func (h *Hand) IsBust() bool {
	return h.TotalValue() > BustThreshold
}

// HasFlip7 returns true if some non-empty subset of the hand's cards sums
// to exactly Flip7Target. Any sub-multiset may qualify, not just a prefix,
// so this is a recursive subset-sum search rather than a running total.
// Hands stay small (a bust ends the round for the player well before the
// search could get expensive), so no memoization is needed.
func (h *Hand) HasFlip7() bool {
	values := make([]uint8, len(h.Cards))
	for i, card := range h.Cards {
		values[i] = card.Value
	}
	return canSumToTarget(values, Flip7Target)
}

func canSumToTarget(values []uint8, target int) bool {
	if target == 0 {
		return true
	}
	if len(values) == 0 || target > sum(values) {
		return false
	}

	for i, value := range values {
		v := int(value)
		if v == target {
			return true
		}
		if v < target && canSumToTarget(values[i+1:], target-v) {
			return true
		}
	}
	return false
}

func sum(values []uint8) int {
	total := 0
	for _, v := range values {
		total += int(v)
	}
	return total
}
