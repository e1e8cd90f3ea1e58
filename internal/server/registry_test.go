package server

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/flip7/internal/game"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestRegistryCreateAndAccess(t *testing.T) {
	t.Parallel()
	r := NewRegistry(testLogger(), quartz.NewMock(t), 0)

	id := r.CreateGame(42)
	require.NotEmpty(t, id)
	assert.Equal(t, 1, r.Len())

	err := r.WithGame(id, func(g *game.GameState) error {
		g.AddPlayer("p1", "Alice")
		return nil
	})
	require.NoError(t, err)

	err = r.ViewGame(id, func(g *game.GameState) error {
		assert.Len(t, g.Players, 1)
		return nil
	})
	require.NoError(t, err)
}

func TestRegistryGameNotFound(t *testing.T) {
	t.Parallel()
	r := NewRegistry(testLogger(), quartz.NewMock(t), 0)

	err := r.WithGame("nope", func(g *game.GameState) error { return nil })
	require.ErrorIs(t, err, ErrGameNotFound)

	err = r.ViewGame("nope", func(g *game.GameState) error { return nil })
	require.ErrorIs(t, err, ErrGameNotFound)

	_, err = r.Snapshot("nope")
	require.ErrorIs(t, err, ErrGameNotFound)

	assert.False(t, r.RemoveGame("nope"))
}

func TestRegistrySnapshotIsIsolated(t *testing.T) {
	t.Parallel()
	r := NewRegistry(testLogger(), quartz.NewMock(t), 0)
	id := r.CreateGame(42)

	require.NoError(t, r.WithGame(id, func(g *game.GameState) error {
		g.AddPlayer("p1", "Alice")
		return nil
	}))

	snapshot, err := r.Snapshot(id)
	require.NoError(t, err)
	snapshot.Players[0].Score = 99

	require.NoError(t, r.ViewGame(id, func(g *game.GameState) error {
		assert.Equal(t, 0, g.Players[0].Score)
		return nil
	}))
}

func TestRegistryRemoveGame(t *testing.T) {
	t.Parallel()
	r := NewRegistry(testLogger(), quartz.NewMock(t), 0)
	id := r.CreateGame(42)

	assert.True(t, r.RemoveGame(id))
	assert.Equal(t, 0, r.Len())
	require.ErrorIs(t, r.WithGame(id, func(g *game.GameState) error { return nil }), ErrGameNotFound)
}

func TestRegistryListGames(t *testing.T) {
	t.Parallel()
	r := NewRegistry(testLogger(), quartz.NewMock(t), 0)
	id := r.CreateGame(42)

	require.NoError(t, r.WithGame(id, func(g *game.GameState) error {
		g.AddPlayer("p1", "Alice")
		g.AddPlayer("p2", "Bob")
		return g.StartRound()
	}))

	summaries := r.ListGames()
	require.Len(t, summaries, 1)
	assert.Equal(t, id, summaries[0].ID)
	assert.Equal(t, 2, summaries[0].PlayerCount)
	assert.Equal(t, 1, summaries[0].RoundNumber)
	assert.False(t, summaries[0].IsFinished)
}

func TestRegistryReapsIdleGames(t *testing.T) {
	t.Parallel()
	mockClock := quartz.NewMock(t)
	r := NewRegistry(testLogger(), mockClock, 5*time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.StartReaper(ctx)

	idle := r.CreateGame(42)
	active := r.CreateGame(42)

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()

	// Touch the active game every few ticks; the idle one ages out.
	for i := 0; i < 6; i++ {
		mockClock.Advance(time.Minute).MustWait(waitCtx)
		require.NoError(t, r.WithGame(active, func(g *game.GameState) error { return nil }))
	}

	assert.Equal(t, 1, r.Len())
	require.ErrorIs(t, r.ViewGame(idle, func(g *game.GameState) error { return nil }), ErrGameNotFound)
	require.NoError(t, r.ViewGame(active, func(g *game.GameState) error { return nil }))
}

func TestRegistryReaperDisabled(t *testing.T) {
	t.Parallel()
	mockClock := quartz.NewMock(t)
	r := NewRegistry(testLogger(), mockClock, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.StartReaper(ctx)

	r.CreateGame(42)
	mockClock.Advance(24 * time.Hour)

	assert.Equal(t, 1, r.Len())
}
