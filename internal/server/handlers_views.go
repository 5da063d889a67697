package server

import (
	"log"
	"net/http"
	"strings"

	"word-rush/internal/web"

	"github.com/a-h/templ"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	templ.Handler(web.Home()).ServeHTTP(w, r)
}

func (s *Server) handleJoinView(w http.ResponseWriter, r *http.Request) {
	code := ""
	if strings.HasPrefix(r.URL.Path, "/join/") {
		code = strings.Trim(strings.TrimPrefix(r.URL.Path, "/join/"), "/")
		if strings.Contains(code, "/") {
			http.NotFound(w, r)
			return
		}
	}
	templ.Handler(web.JoinView(code)).ServeHTTP(w, r)
}

func (s *Server) handlePlayerView(w http.ResponseWriter, r *http.Request) {
	gameID, ok := parseViewPath("/play/", r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	room, exists := s.store.ResolveRoom(gameID)
	if !exists {
		log.Printf("player view missing game_id=%s", gameID)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	templ.Handler(web.PlayerView(room.ID)).ServeHTTP(w, r)
}

func (s *Server) handleGameView(w http.ResponseWriter, r *http.Request) {
	gameID, ok := parseViewPath("/games/", r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	room, exists := s.store.ResolveRoom(gameID)
	if !exists {
		log.Printf("game view missing game_id=%s", gameID)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	templ.Handler(web.GameView(room.ID)).ServeHTTP(w, r)
}
