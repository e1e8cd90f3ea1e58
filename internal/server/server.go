// Package server hosts concurrent game instances behind a WebSocket
// endpoint. It keeps a registry of games guarded by a read/write lock and
// relays join/start/move/leave requests to individual instances; all game
// rules live in the engine.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/flip7/internal/game"
)

// Server is the WebSocket front end over a game registry.
type Server struct {
	upgrader    websocket.Upgrader
	logger      *log.Logger
	service     *GameService
	httpServer  *http.Server
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewServer creates a server over the given game service.
func NewServer(service *GameService, logger *log.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		upgrader: websocket.Upgrader{
			// Bot and tool clients connect from arbitrary origins.
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:      logger.WithPrefix("server"),
		service:     service,
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start listens on addr and serves until Shutdown.
func (s *Server) Start(addr string) error {
	go s.run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/games", s.handleListGames)

	s.httpServer = &http.Server{Addr: addr, Handler: mux}
	s.logger.Info("starting server", "addr", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the listener and closes every connection.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// run handles connection registration lifecycle.
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			_, ok := s.connections[conn]
			if ok {
				delete(s.connections, conn)
			}
			total := len(s.connections)
			s.mu.Unlock()

			if ok {
				// Drop the player from their game so the seat does not
				// block the turn rotation forever.
				if gameID, playerID := conn.Session(); gameID != "" && playerID != "" {
					if err := s.service.Leave(gameID, playerID); err != nil {
						s.logger.Debug("disconnect cleanup failed", "game", gameID, "player", playerID, "error", err)
					}
				}
				_ = conn.Close()
				s.logger.Info("client disconnected", "total", total)
			}

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s, s.logger)
	s.register <- client
	client.Start()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.service.ListGames()); err != nil {
		s.logger.Error("failed to encode game list", "error", err)
	}
}

// handleMessage dispatches one client request and replies on the same
// connection, echoing the request id.
func (s *Server) handleMessage(c *Connection, msg *Message) {
	reply := func(messageType MessageType, data interface{}) {
		out, err := NewMessage(messageType, data)
		if err != nil {
			s.logger.Error("failed to build response", "type", messageType, "error", err)
			return
		}
		out.RequestID = msg.RequestID
		_ = c.SendMessage(out)
	}
	fail := func(err error) {
		c.sendError(msg.RequestID, errorCode(err), err.Error())
	}

	switch msg.Type {
	case TypeJoinGame:
		var data JoinGameData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			fail(err)
			return
		}
		gameID, playerID, err := s.service.Join(data.PlayerName, data.GameID, data.Seed)
		if err != nil {
			fail(err)
			return
		}
		c.SetSession(gameID, playerID)
		reply(TypeGameJoined, GameJoinedData{GameID: gameID, PlayerID: playerID})

	case TypeStartGame:
		var data StartGameData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			fail(err)
			return
		}
		if err := s.service.Start(data.GameID); err != nil {
			fail(err)
			return
		}
		reply(TypeGameStarted, GameStartedData{GameID: data.GameID})

	case TypeDraw:
		var data DrawData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			fail(err)
			return
		}
		finished, scores, err := s.service.Draw(data.GameID, data.PlayerID)
		if err != nil {
			fail(err)
			return
		}
		reply(TypeMoveAccepted, MoveAcceptedData{GameID: data.GameID, RoundFinished: finished, RoundScores: scores})

	case TypeStay:
		var data StayData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			fail(err)
			return
		}
		finished, scores, err := s.service.Stay(data.GameID, data.PlayerID)
		if err != nil {
			fail(err)
			return
		}
		reply(TypeMoveAccepted, MoveAcceptedData{GameID: data.GameID, RoundFinished: finished, RoundScores: scores})

	case TypeGetState:
		var data GetStateData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			fail(err)
			return
		}
		snapshot, err := s.service.State(data.GameID)
		if err != nil {
			fail(err)
			return
		}
		reply(TypeGameState, GameStateData{Game: snapshot})

	case TypeLeaveGame:
		var data LeaveGameData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			fail(err)
			return
		}
		if err := s.service.Leave(data.GameID, data.PlayerID); err != nil {
			fail(err)
			return
		}
		c.SetSession("", "")
		reply(TypePlayerLeft, PlayerLeftData{GameID: data.GameID, PlayerID: data.PlayerID})

	default:
		c.sendError(msg.RequestID, "unknown_type", "unknown message type: "+string(msg.Type))
	}
}

// errorCode maps engine and registry errors to stable protocol codes.
func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrGameNotFound):
		return "game_not_found"
	case errors.Is(err, ErrGameFull):
		return "game_full"
	case errors.Is(err, game.ErrNoPlayers):
		return "invalid_setup"
	case errors.Is(err, game.ErrRoundFinished):
		return "round_finished"
	case errors.Is(err, game.ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, game.ErrAlreadyStayed):
		return "already_stayed"
	case errors.Is(err, game.ErrDeckEmpty):
		return "deck_empty"
	case errors.Is(err, game.ErrPlayerNotFound):
		return "player_not_found"
	default:
		return "internal"
	}
}
