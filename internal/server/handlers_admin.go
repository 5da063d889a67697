package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"word-rush/internal/db"
	"word-rush/internal/game"
	"word-rush/internal/web"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

type restoreGameRequest struct {
	GameID   string        `json:"game_id"`
	JoinCode string        `json:"join_code" binding:"required"`
	State    game.Snapshot `json:"state" binding:"required"`
}

type eventsURI struct {
	GameID string `uri:"gameID" binding:"required"`
}

func (s *Server) adminRouter() http.Handler {
	registerValidators()
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/admin", s.handleAdminView)
	router.GET("/admin/", s.handleAdminView)

	api := router.Group("/admin/api")
	api.GET("/games", s.handleAdminListGames)
	api.POST("/dictionary/reload", s.handleAdminReloadDictionary)
	api.POST("/restore", s.handleAdminRestoreGame)
	api.GET("/games/:gameID/events", s.handleAdminGameEvents)
	return router
}

func (s *Server) handleAdminView(c *gin.Context) {
	templ.Handler(web.Admin()).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleAdminListGames(c *gin.Context) {
	games := make([]gin.H, 0)
	for _, summary := range s.store.ListGameSummaries() {
		games = append(games, gin.H{
			"game_id":   summary.ID,
			"join_code": summary.JoinCode,
			"phase":     summary.Phase,
			"players":   summary.Players,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"games":      games,
		"dictionary": s.dict.Categories(),
	})
}

func (s *Server) handleAdminReloadDictionary(c *gin.Context) {
	if err := s.dict.Reload(true); err != nil {
		log.Printf("dictionary reload failed error=%v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "reload incomplete: " + err.Error()})
		return
	}
	log.Printf("dictionary reloaded categories=%d", len(s.dict.Categories()))
	c.JSON(http.StatusOK, gin.H{"categories": s.dict.Categories()})
}

// handleAdminRestoreGame rehydrates a session from a snapshot taken earlier.
// Restored players come back disconnected and must rejoin with their durable
// identity before the round can progress.
func (s *Server) handleAdminRestoreGame(c *gin.Context) {
	var req restoreGameRequest
	if !bindJSON(c, &req, bindMessages{
		"JoinCode": {"required": "join_code is required"},
		"State":    {"required": "state is required"},
	}, "invalid snapshot") {
		return
	}
	engine := game.NewEngineFromSnapshot(s.dict, req.State)
	engine.SetLogf(log.Printf)
	room := &Room{
		ID:        req.GameID,
		JoinCode:  req.JoinCode,
		Engine:    engine,
		CreatedAt: time.Now().UTC(),
	}
	if room.ID == "" {
		room.ID = fmt.Sprintf("restored-%s", req.JoinCode)
	}
	engine.SetNotify(func() { s.onEngineAdvance(room) })
	if err := s.store.RestoreRoom(room); err != nil {
		engine.Close()
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err := s.persistGame(room); err != nil {
		log.Printf("persist game failed game_id=%s error=%v", room.ID, err)
	}
	log.Printf("game restored game_id=%s join_code=%s phase=%s", room.ID, room.JoinCode, req.State.Phase)
	s.persistEvent(room, "game_restored", EventPayload{Phase: req.State.Phase})
	s.broadcastHomeUpdate()
	c.JSON(http.StatusCreated, gamePayload(room))
}

func (s *Server) handleAdminGameEvents(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusOK, gin.H{"events": []gin.H{}})
		return
	}
	var uri eventsURI
	if !bindURI(c, &uri) {
		return
	}
	room, ok := s.store.ResolveRoom(uri.GameID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}
	if err := s.ensureGameDBID(room); err != nil || room.DBID == 0 {
		c.JSON(http.StatusOK, gin.H{"events": []gin.H{}})
		return
	}
	var records []db.Event
	err := s.db.Where("game_id = ?", room.DBID).Order("id asc").Limit(500).Find(&records).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "events unavailable"})
		return
	}
	events := make([]gin.H, 0, len(records))
	for _, record := range records {
		events = append(events, gin.H{
			"id":         record.ID,
			"type":       record.Type,
			"payload":    record.Payload,
			"created_at": record.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}
