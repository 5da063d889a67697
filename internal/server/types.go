package server

import (
	"sync"
	"time"

	"word-rush/internal/game"
)

// Room binds one engine-owned session to its public identifiers.
type Room struct {
	ID        string
	DBID      uint
	JoinCode  string
	Engine    *game.Engine
	CreatedAt time.Time

	// Persistence bookkeeping. Phase advances arrive from both player
	// commands and timer expiries; these guards keep each round's result
	// and each game-over from being written twice.
	persistMu       sync.Mutex
	lastScoredRound int
	gameOverLogged  bool
}

type GameSummary struct {
	ID       string
	JoinCode string
	Phase    string
	Players  int
}
