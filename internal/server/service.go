package server

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/flip7/internal/game"
)

// GameService relays hosting requests to individual game instances. It
// contains no game logic of its own; every rule lives in the engine and
// every touch of an instance happens under the registry's lock.
type GameService struct {
	registry    *Registry
	logger      *log.Logger
	defaultSeed uint64
	maxPlayers  int
}

// NewGameService creates a service over the given registry.
func NewGameService(registry *Registry, logger *log.Logger, cfg *Config) *GameService {
	return &GameService{
		registry:    registry,
		logger:      logger.WithPrefix("service"),
		defaultSeed: cfg.Game.DefaultSeed,
		maxPlayers:  cfg.Game.MaxPlayers,
	}
}

// Join adds a player to an existing game, or creates a new game first when
// gameID is empty. Returns the game and player identifiers.
func (s *GameService) Join(playerName, gameID string, seed *uint64) (string, string, error) {
	if gameID == "" {
		gameSeed := s.defaultSeed
		if seed != nil {
			gameSeed = *seed
		}
		gameID = s.registry.CreateGame(gameSeed)
	}

	playerID := uuid.NewString()
	err := s.registry.WithGame(gameID, func(g *game.GameState) error {
		if len(g.Players) >= s.maxPlayers {
			return ErrGameFull
		}
		g.AddPlayer(playerID, playerName)
		return nil
	})
	if err != nil {
		return "", "", err
	}

	s.logger.Info("player joined", "game", gameID, "player", playerID, "name", playerName)
	return gameID, playerID, nil
}

// Start begins the first (or next) round of a game.
func (s *GameService) Start(gameID string) error {
	return s.registry.WithGame(gameID, func(g *game.GameState) error {
		return g.StartRound()
	})
}

// Draw relays a draw move. If the move finishes the round, scores are
// computed and returned.
func (s *GameService) Draw(gameID, playerID string) (bool, map[string]int, error) {
	return s.move(gameID, func(g *game.GameState) error {
		return g.PlayerDraw(playerID)
	})
}

// Stay relays a stay move. If the move finishes the round, scores are
// computed and returned.
func (s *GameService) Stay(gameID, playerID string) (bool, map[string]int, error) {
	return s.move(gameID, func(g *game.GameState) error {
		return g.PlayerStay(playerID)
	})
}

func (s *GameService) move(gameID string, apply func(g *game.GameState) error) (bool, map[string]int, error) {
	var finished bool
	var scores map[string]int

	err := s.registry.WithGame(gameID, func(g *game.GameState) error {
		if err := apply(g); err != nil {
			return err
		}
		if g.Round.IsFinished {
			finished = true
			scores = g.ComputeScores()
		}
		return nil
	})
	if err != nil {
		return false, nil, err
	}
	return finished, scores, nil
}

// State returns a read-only snapshot of a game.
func (s *GameService) State(gameID string) (*game.GameState, error) {
	return s.registry.Snapshot(gameID)
}

// Leave removes a player from a game. The game itself stays registered
// until the idle reaper collects it, so remaining players keep playing.
func (s *GameService) Leave(gameID, playerID string) error {
	err := s.registry.WithGame(gameID, func(g *game.GameState) error {
		return g.RemovePlayer(playerID)
	})
	if err != nil {
		return err
	}
	s.logger.Info("player left", "game", gameID, "player", playerID)
	return nil
}

// ListGames returns summaries of all registered games.
func (s *GameService) ListGames() []GameSummary {
	return s.registry.ListGames()
}
