package game

import "errors"

var (
	// ErrNotHost is returned when a host-only command comes from anyone else.
	ErrNotHost = errors.New("player is not the host")
	// ErrWrongPhase is returned when a command is invalid for the current phase.
	ErrWrongPhase = errors.New("command not allowed in current phase")
	// ErrUnknownPlayer is returned when a connection is not bound to a known identity.
	ErrUnknownPlayer = errors.New("unknown player")
	// ErrNotEnoughPlayers is returned when a round cannot start below two connected players.
	ErrNotEnoughPlayers = errors.New("not enough connected players")
)
