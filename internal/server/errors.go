package server

import "errors"

var (
	// ErrGameNotFound is returned for operations on an unknown game id.
	ErrGameNotFound = errors.New("game not found")

	// ErrGameFull is returned when a join would exceed the configured
	// player limit.
	ErrGameFull = errors.New("game is full")

	// ErrConnectionClosed is returned when sending on a closed connection.
	ErrConnectionClosed = errors.New("connection closed")
)
