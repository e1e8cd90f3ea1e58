package server

import (
	"encoding/json"
	"time"

	"github.com/lox/flip7/internal/game"
)

// MessageType identifies the type of a WebSocket message.
type MessageType string

const (
	// Client -> Server
	TypeJoinGame  MessageType = "join_game"
	TypeStartGame MessageType = "start_game"
	TypeDraw      MessageType = "draw"
	TypeStay      MessageType = "stay"
	TypeGetState  MessageType = "get_state"
	TypeLeaveGame MessageType = "leave_game"

	// Server -> Client
	TypeGameJoined   MessageType = "game_joined"
	TypeGameStarted  MessageType = "game_started"
	TypeMoveAccepted MessageType = "move_accepted"
	TypeGameState    MessageType = "game_state"
	TypePlayerLeft   MessageType = "player_left"
	TypeError        MessageType = "error"
)

// Message is the base WebSocket envelope.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a message with the current timestamp.
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client -> Server payloads

// JoinGameData joins an existing game or, when GameID is empty, creates a
// new one seeded with Seed (or the server's default seed when nil).
type JoinGameData struct {
	PlayerName string  `json:"playerName"`
	GameID     string  `json:"gameId,omitempty"`
	Seed       *uint64 `json:"seed,omitempty"`
}

type StartGameData struct {
	GameID string `json:"gameId"`
}

type DrawData struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
}

type StayData struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
}

type GetStateData struct {
	GameID string `json:"gameId"`
}

type LeaveGameData struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
}

// Server -> Client payloads

type GameJoinedData struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
}

type GameStartedData struct {
	GameID string `json:"gameId"`
}

// MoveAcceptedData acknowledges a draw or stay. RoundFinished lets clients
// know scoring has run without polling state.
type MoveAcceptedData struct {
	GameID        string         `json:"gameId"`
	RoundFinished bool           `json:"roundFinished"`
	RoundScores   map[string]int `json:"roundScores,omitempty"`
}

// GameStateData carries a read-only snapshot of the full game state.
type GameStateData struct {
	Game *game.GameState `json:"game"`
}

type PlayerLeftData struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
