package server

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/flip7/internal/game"
)

// Instance pairs a game with its registry bookkeeping.
type Instance struct {
	ID         string
	Game       *game.GameState
	lastActive time.Time
}

// GameSummary holds lightweight metadata for clients.
type GameSummary struct {
	ID          string `json:"id"`
	PlayerCount int    `json:"playerCount"`
	RoundNumber int    `json:"roundNumber"`
	IsFinished  bool   `json:"isFinished"`
}

// Registry maps opaque game identifiers to exclusively-owned game
// instances behind a single read/write lock. Mutating accessors hold the
// write lock for the duration of one engine operation, so no two
// operations ever race on the same instance and the engine's invariants
// are never observed torn. Games untouched for longer than idleTTL are
// reaped.
type Registry struct {
	logger  *log.Logger
	clock   quartz.Clock
	idleTTL time.Duration

	mu    sync.RWMutex
	games map[string]*Instance
}

// NewRegistry constructs an empty registry. An idleTTL of zero disables
// reaping.
func NewRegistry(logger *log.Logger, clock quartz.Clock, idleTTL time.Duration) *Registry {
	return &Registry{
		logger:  logger.WithPrefix("registry"),
		clock:   clock,
		idleTTL: idleTTL,
		games:   make(map[string]*Instance),
	}
}

// CreateGame registers a fresh game with the given base seed and returns
// its opaque identifier.
func (r *Registry) CreateGame(seed uint64) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	r.games[id] = &Instance{
		ID:         id,
		Game:       game.NewWithSeed(seed),
		lastActive: r.clock.Now(),
	}
	r.logger.Info("created game", "game", id, "seed", seed)
	return id
}

// WithGame runs fn against the game under the exclusive write lock and
// refreshes its activity timestamp.
func (r *Registry) WithGame(id string, fn func(g *game.GameState) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	instance, ok := r.games[id]
	if !ok {
		return ErrGameNotFound
	}
	instance.lastActive = r.clock.Now()
	return fn(instance.Game)
}

// ViewGame runs fn against the game under the shared read lock. fn must
// not mutate the game.
func (r *Registry) ViewGame(id string, fn func(g *game.GameState) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	instance, ok := r.games[id]
	if !ok {
		return ErrGameNotFound
	}
	return fn(instance.Game)
}

// Snapshot returns a deep copy of the game state for read-only use
// outside the lock.
func (r *Registry) Snapshot(id string) (*game.GameState, error) {
	var snapshot *game.GameState
	err := r.ViewGame(id, func(g *game.GameState) error {
		clone, err := g.Clone()
		if err != nil {
			return err
		}
		snapshot = clone
		return nil
	})
	return snapshot, err
}

// RemoveGame drops a game from the registry.
func (r *Registry) RemoveGame(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.games[id]; !ok {
		return false
	}
	delete(r.games, id)
	r.logger.Info("removed game", "game", id)
	return true
}

// Len returns the number of registered games.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}

// ListGames returns a snapshot of registered games.
func (r *Registry) ListGames() []GameSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]GameSummary, 0, len(r.games))
	for _, instance := range r.games {
		summaries = append(summaries, GameSummary{
			ID:          instance.ID,
			PlayerCount: len(instance.Game.Players),
			RoundNumber: instance.Game.Round.RoundNumber,
			IsFinished:  instance.Game.Round.IsFinished,
		})
	}
	return summaries
}

// reapInterval is how often the reaper scans for idle games.
const reapInterval = time.Minute

// StartReaper periodically drops games idle for longer than the TTL. It
// returns immediately; reaping stops when ctx is cancelled.
func (r *Registry) StartReaper(ctx context.Context) {
	if r.idleTTL <= 0 {
		return
	}
	r.clock.TickerFunc(ctx, reapInterval, func() error {
		r.reapIdle()
		return nil
	}, "registry-reaper")
}

func (r *Registry) reapIdle() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.clock.Now().Add(-r.idleTTL)
	for id, instance := range r.games {
		if instance.lastActive.Before(cutoff) {
			delete(r.games, id)
			r.logger.Info("reaped idle game", "game", id)
		}
	}
}
