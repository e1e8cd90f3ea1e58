package game

import "errors"

// All engine failures are recoverable, synchronous conditions. An
// operation that fails leaves the game state untouched.
var (
	// ErrNoPlayers is returned when a round is started with an empty roster.
	ErrNoPlayers = errors.New("no players added")

	// ErrRoundFinished is returned for draw/stay attempts after the round
	// has finished and before the next round starts.
	ErrRoundFinished = errors.New("round is finished")

	// ErrNotYourTurn is returned when the acting player does not match the
	// current turn pointer.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrAlreadyStayed is returned when a stayed player attempts to draw.
	ErrAlreadyStayed = errors.New("player has already stayed")

	// ErrDeckEmpty is returned when a draw is attempted with no cards left.
	ErrDeckEmpty = errors.New("deck is empty")

	// ErrPlayerNotFound is returned for lookups with an unknown player id.
	ErrPlayerNotFound = errors.New("player not found")
)
