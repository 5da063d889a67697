package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"word-rush/internal/config"
	"word-rush/internal/db"
	"word-rush/internal/game"

	"gorm.io/gorm"
)

type Server struct {
	store  *Store
	db     *gorm.DB
	ws     *wsHub
	homeWS *homeHub
	cfg    config.Config
	dict   *game.Dictionary
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	dict := game.NewDictionary(db.NewWordStore(conn))
	if err := dict.Reload(false); err != nil {
		log.Printf("dictionary reload incomplete error=%v", err)
	}
	return &Server{
		store:  NewStore(),
		db:     conn,
		ws:     newWSHub(),
		homeWS: newHomeHub(),
		cfg:    cfg,
		dict:   dict,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleHome)
	mux.HandleFunc("GET /join", s.handleJoinView)
	mux.HandleFunc("GET /join/", s.handleJoinView)
	mux.HandleFunc("GET /play/", s.handlePlayerView)
	mux.HandleFunc("GET /games/", s.handleGameView)
	mux.HandleFunc("POST /api/games", s.handleCreateGame)
	mux.HandleFunc("GET /api/games/", s.handleGameSubroutes)
	mux.HandleFunc("POST /api/games/", s.handleGameSubroutes)
	mux.HandleFunc("GET /ws/games/", s.handleWebsocket)
	mux.HandleFunc("GET /ws/home", s.handleHomeWebsocket)
	admin := s.adminRouter()
	mux.Handle("GET /admin", admin)
	mux.Handle("GET /admin/", admin)
	mux.Handle("POST /admin/", admin)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	return mux
}

// gameConfig maps the server defaults onto a fresh engine config.
func (s *Server) gameConfig() game.Config {
	cfg := game.Config{
		RoundSeconds:       s.cfg.RoundSeconds,
		VotingSeconds:      s.cfg.VotingSeconds,
		ResultsSeconds:     s.cfg.ResultsSeconds,
		TotalRounds:        s.cfg.TotalRounds,
		CategoriesPerRound: s.cfg.CategoriesPerRound,
	}
	cfg.Clamp()
	return cfg
}

// RunPurgeSweeper hard-removes zombie players past the grace window, on the
// configured cadence, until the context ends.
func (s *Server) RunPurgeSweeper(ctx context.Context) {
	grace := time.Duration(s.cfg.PurgeGraceSeconds) * time.Second
	sweep := time.Duration(s.cfg.PurgeSweepSeconds) * time.Second
	if sweep <= 0 {
		sweep = 30 * time.Second
	}
	ticker := time.NewTicker(sweep)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, room := range s.store.Rooms() {
				if room.Engine.PurgeInactive(grace) {
					s.onEngineAdvance(room)
				}
			}
		}
	}
}
