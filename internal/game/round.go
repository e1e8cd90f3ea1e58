package game

// RoundState tracks where a game is within a round: whose turn it is, how
// many rounds have been scored, and whether the current round is over.
// CurrentPlayerIndex is the single source of truth for whose turn it is.
type RoundState struct {
	RoundNumber        int  `json:"round_number"`
	CurrentPlayerIndex int  `json:"current_player_index"`
	IsFinished         bool `json:"is_finished"`
}

// NewRoundState returns the state for a game that has not started: round 1,
// first player to act, round not finished.
func NewRoundState() RoundState {
	return RoundState{RoundNumber: 1}
}
