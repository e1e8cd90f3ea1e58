package server

import (
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/flip7/internal/game"
)

func newTestService(t *testing.T, maxPlayers int) *GameService {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Game.MaxPlayers = maxPlayers
	registry := NewRegistry(testLogger(), quartz.NewMock(t), 0)
	return NewGameService(registry, testLogger(), cfg)
}

func TestServiceJoinCreatesGame(t *testing.T) {
	t.Parallel()
	s := newTestService(t, 4)

	gameID, playerID, err := s.Join("Alice", "", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, gameID)
	assert.NotEmpty(t, playerID)

	state, err := s.State(gameID)
	require.NoError(t, err)
	require.Len(t, state.Players, 1)
	assert.Equal(t, "Alice", state.Players[0].Name)
	assert.Equal(t, uint64(42), state.Seed)
}

func TestServiceJoinWithSeed(t *testing.T) {
	t.Parallel()
	s := newTestService(t, 4)

	seed := uint64(7)
	gameID, _, err := s.Join("Alice", "", &seed)
	require.NoError(t, err)

	state, err := s.State(gameID)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), state.Seed)
}

func TestServiceJoinExistingGame(t *testing.T) {
	t.Parallel()
	s := newTestService(t, 4)

	gameID, alice, err := s.Join("Alice", "", nil)
	require.NoError(t, err)

	sameID, bob, err := s.Join("Bob", gameID, nil)
	require.NoError(t, err)
	assert.Equal(t, gameID, sameID)
	assert.NotEqual(t, alice, bob)

	state, err := s.State(gameID)
	require.NoError(t, err)
	assert.Len(t, state.Players, 2)
}

func TestServiceJoinUnknownGame(t *testing.T) {
	t.Parallel()
	s := newTestService(t, 4)

	_, _, err := s.Join("Alice", "no-such-game", nil)
	require.ErrorIs(t, err, ErrGameNotFound)
}

func TestServiceJoinFullGame(t *testing.T) {
	t.Parallel()
	s := newTestService(t, 2)

	gameID, _, err := s.Join("Alice", "", nil)
	require.NoError(t, err)
	_, _, err = s.Join("Bob", gameID, nil)
	require.NoError(t, err)

	_, _, err = s.Join("Charlie", gameID, nil)
	require.ErrorIs(t, err, ErrGameFull)
}

func TestServiceStartAndMove(t *testing.T) {
	t.Parallel()
	s := newTestService(t, 4)

	gameID, alice, err := s.Join("Alice", "", nil)
	require.NoError(t, err)
	_, _, err = s.Join("Bob", gameID, nil)
	require.NoError(t, err)

	require.NoError(t, s.Start(gameID))

	finished, scores, err := s.Draw(gameID, alice)
	require.NoError(t, err)
	assert.False(t, finished)
	assert.Nil(t, scores)

	state, err := s.State(gameID)
	require.NoError(t, err)
	assert.Len(t, state.Players[0].Hand.Cards, 3)

	// Drawing out of turn surfaces the engine error unchanged.
	_, _, err = s.Draw(gameID, alice)
	require.ErrorIs(t, err, game.ErrNotYourTurn)
}

func TestServiceStayClosingRoundReturnsScores(t *testing.T) {
	t.Parallel()
	s := newTestService(t, 4)

	gameID, alice, err := s.Join("Alice", "", nil)
	require.NoError(t, err)
	_, bob, err := s.Join("Bob", gameID, nil)
	require.NoError(t, err)

	require.NoError(t, s.Start(gameID))

	finished, scores, err := s.Stay(gameID, alice)
	require.NoError(t, err)
	assert.False(t, finished)
	assert.Nil(t, scores)

	finished, scores, err = s.Stay(gameID, bob)
	require.NoError(t, err)
	assert.True(t, finished)
	require.Len(t, scores, 2)
	assert.Contains(t, scores, alice)
	assert.Contains(t, scores, bob)

	state, err := s.State(gameID)
	require.NoError(t, err)
	assert.Equal(t, 2, state.Round.RoundNumber)
}

func TestServiceStartEmptyGame(t *testing.T) {
	t.Parallel()
	s := newTestService(t, 4)

	gameID := s.registry.CreateGame(42)
	require.ErrorIs(t, s.Start(gameID), game.ErrNoPlayers)
}

func TestServiceLeave(t *testing.T) {
	t.Parallel()
	s := newTestService(t, 4)

	gameID, alice, err := s.Join("Alice", "", nil)
	require.NoError(t, err)
	_, _, err = s.Join("Bob", gameID, nil)
	require.NoError(t, err)

	require.NoError(t, s.Leave(gameID, alice))

	state, err := s.State(gameID)
	require.NoError(t, err)
	require.Len(t, state.Players, 1)
	assert.Equal(t, "Bob", state.Players[0].Name)

	require.ErrorIs(t, s.Leave(gameID, alice), game.ErrPlayerNotFound)
}

func TestServiceMoveAfterLastPlayerLeaves(t *testing.T) {
	t.Parallel()
	s := newTestService(t, 4)

	gameID, alice, err := s.Join("Alice", "", nil)
	require.NoError(t, err)
	require.NoError(t, s.Start(gameID))
	require.NoError(t, s.Leave(gameID, alice))

	// The empty game stays registered until the reaper collects it; moves
	// against it must fail cleanly rather than crash the host.
	_, _, err = s.Draw(gameID, alice)
	require.ErrorIs(t, err, game.ErrNoPlayers)
	_, _, err = s.Stay(gameID, alice)
	require.ErrorIs(t, err, game.ErrNoPlayers)
}

func TestServiceStateIsSnapshot(t *testing.T) {
	t.Parallel()
	s := newTestService(t, 4)

	gameID, _, err := s.Join("Alice", "", nil)
	require.NoError(t, err)

	state, err := s.State(gameID)
	require.NoError(t, err)
	state.Players[0].Score = 99

	fresh, err := s.State(gameID)
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.Players[0].Score)
}

func TestServiceListGames(t *testing.T) {
	t.Parallel()
	s := newTestService(t, 4)

	assert.Empty(t, s.ListGames())

	gameID, _, err := s.Join("Alice", "", nil)
	require.NoError(t, err)

	summaries := s.ListGames()
	require.Len(t, summaries, 1)
	assert.Equal(t, gameID, summaries[0].ID)
	assert.Equal(t, 1, summaries[0].PlayerCount)
}
