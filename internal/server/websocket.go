package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"word-rush/internal/game"

	"github.com/gorilla/websocket"
)

type wsHub struct {
	mu     sync.Mutex
	groups map[string]map[*websocket.Conn]struct{}
}

type homeHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func newWSHub() *wsHub {
	return &wsHub{
		groups: make(map[string]map[*websocket.Conn]struct{}),
	}
}

func newHomeHub() *homeHub {
	return &homeHub{
		conns: make(map[*websocket.Conn]struct{}),
	}
}

func (h *wsHub) Add(gameID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[gameID]
	if group == nil {
		group = make(map[*websocket.Conn]struct{})
		h.groups[gameID] = group
	}
	group[conn] = struct{}{}
}

func (h *wsHub) Remove(gameID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[gameID]
	if group == nil {
		return
	}
	delete(group, conn)
	_ = conn.Close()
	if len(group) == 0 {
		delete(h.groups, gameID)
	}
}

func (h *wsHub) Send(conn *websocket.Conn, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = conn.WriteMessage(websocket.TextMessage, data)
}

func (h *wsHub) Broadcast(gameID string, payload any) {
	h.mu.Lock()
	group := h.groups[gameID]
	conns := make([]*websocket.Conn, 0, len(group))
	for conn := range group {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.Remove(gameID, conn)
		}
	}
}

func (h *homeHub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

func (h *homeHub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
	_ = conn.Close()
}

func (h *homeHub) Send(conn *websocket.Conn, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = conn.WriteMessage(websocket.TextMessage, data)
}

func (h *homeHub) Broadcast(payload any) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.Remove(conn)
		}
	}
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	gameID, ok := parseWebsocketPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	room, exists := s.store.ResolveRoom(gameID)
	if !exists {
		http.NotFound(w, r)
		return
	}
	connID := r.URL.Query().Get("conn")
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	log.Printf("ws connected game_id=%s conn_id=%s remote=%s", room.ID, connID, r.RemoteAddr)
	s.ws.Add(room.ID, conn)
	s.ws.Send(conn, gamePayload(room))
	go s.readWS(room, connID, conn)
}

func (s *Server) handleHomeWebsocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	log.Printf("ws connected home remote=%s", r.RemoteAddr)
	s.homeWS.Add(conn)
	s.homeWS.Send(conn, map[string]any{
		"games": s.homeSummaries(),
	})
	go s.readHomeWS(conn)
}

func (s *Server) readWS(room *Room, connID string, conn *websocket.Conn) {
	defer s.ws.Remove(room.ID, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Printf("ws disconnected game_id=%s conn_id=%s error=%v", room.ID, connID, err)
			s.dropConnection(room, connID)
			return
		}
	}
}

func (s *Server) readHomeWS(conn *websocket.Conn) {
	defer s.homeWS.Remove(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Printf("home ws disconnected error=%v", err)
			return
		}
	}
}

// dropConnection marks the player behind the socket as disconnected. The
// engine keeps a zombie seat so a reconnect within the grace window restores
// the score; the purge sweeper removes seats that never come back.
func (s *Server) dropConnection(room *Room, connID string) {
	if connID == "" {
		return
	}
	player, known := room.Engine.Resolve(connID)
	room.Engine.Disconnect(connID)
	if known {
		s.persistEvent(room, "player_disconnected", EventPayload{PlayerID: player.ID, PlayerName: player.Name})
	}
	s.onEngineAdvance(room)
}

// onEngineAdvance runs after any transition that may have happened outside a
// direct HTTP response path: timer expiries, disconnects, kicks. It persists
// whatever phase the session landed in and pushes the state to observers.
func (s *Server) onEngineAdvance(room *Room) {
	snap := room.Engine.Snapshot()
	switch snap.Phase {
	case game.PhasePlaying:
		if err := s.persistRoundStart(room, snap); err != nil {
			log.Printf("persist round failed game_id=%s error=%v", room.ID, err)
		}
	case game.PhaseReview:
		if err := s.persistPhase(room, snap.Phase); err != nil {
			log.Printf("persist phase failed game_id=%s error=%v", room.ID, err)
		}
	case game.PhaseResults:
		if err := s.persistRoundResult(room, snap); err != nil {
			log.Printf("persist results failed game_id=%s error=%v", room.ID, err)
		}
	case game.PhaseGameOver:
		s.persistGameOver(room, snap)
	}
	if s.ws != nil {
		s.ws.Broadcast(room.ID, payloadFromSnapshot(room, snap))
	}
	s.broadcastHomeUpdate()
}

func (s *Server) broadcastGameUpdate(room *Room) {
	if s.ws == nil {
		return
	}
	s.ws.Broadcast(room.ID, gamePayload(room))
	s.broadcastHomeUpdate()
}

func (s *Server) broadcastHomeUpdate() {
	if s.homeWS == nil {
		return
	}
	s.homeWS.Broadcast(map[string]any{
		"games": s.homeSummaries(),
	})
}
