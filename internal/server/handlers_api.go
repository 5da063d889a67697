package server

import (
	"errors"
	"log"
	"net/http"

	"word-rush/internal/game"
)

type joinRequest struct {
	ConnID   string `json:"conn_id"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}

type commandRequest struct {
	ConnID string `json:"conn_id"`
}

type answersRequest struct {
	ConnID  string            `json:"conn_id"`
	Answers map[string]string `json:"answers"`
}

type voteRequest struct {
	ConnID   string `json:"conn_id"`
	TargetID string `json:"target_id"`
	Category string `json:"category"`
}

type kickRequest struct {
	ConnID   string `json:"conn_id"`
	TargetID string `json:"target_id"`
}

type settingsRequest struct {
	ConnID             string   `json:"conn_id"`
	RoundSeconds       *int     `json:"round_seconds"`
	VotingSeconds      *int     `json:"voting_seconds"`
	ResultsSeconds     *int     `json:"results_seconds"`
	TotalRounds        *int     `json:"total_rounds"`
	CategoriesPerRound *int     `json:"categories_per_round"`
	Categories         []string `json:"categories"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	// A failed refresh keeps the current word sets, so a flaky database
	// never blocks creating a game.
	if err := s.dict.Reload(true); err != nil {
		log.Printf("dictionary refresh incomplete error=%v", err)
	}
	engine := game.NewEngine(s.dict, s.gameConfig())
	engine.SetLogf(log.Printf)
	room := s.store.CreateRoom(engine)
	engine.SetNotify(func() { s.onEngineAdvance(room) })
	if err := s.persistGame(room); err != nil {
		log.Printf("persist game failed game_id=%s error=%v", room.ID, err)
	}
	log.Printf("game created game_id=%s join_code=%s", room.ID, room.JoinCode)
	s.broadcastHomeUpdate()
	writeJSON(w, http.StatusCreated, gamePayload(room))
}

func (s *Server) handleGameSubroutes(w http.ResponseWriter, r *http.Request) {
	gameID, action, ok := parseGamePath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	room, ok := s.store.ResolveRoom(gameID)
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	if r.Method == http.MethodGet {
		if action != "" {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, http.StatusOK, gamePayload(room))
		return
	}
	switch action {
	case "join":
		s.handleJoin(w, r, room)
	case "start":
		s.handleStartGame(w, r, room)
	case "stop":
		s.handleStopRound(w, r, room)
	case "answers":
		s.handleSubmitAnswers(w, r, room)
	case "draft":
		s.handleDraftAnswers(w, r, room)
	case "vote":
		s.handleToggleVote(w, r, room)
	case "confirm":
		s.handleConfirmVotes(w, r, room)
	case "kick":
		s.handleKickPlayer(w, r, room)
	case "settings":
		s.handleUpdateSettings(w, r, room)
	case "restart":
		s.handleRestartGame(w, r, room)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request, room *Room) {
	var req joinRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	name, err := validateName(req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Avatar) > maxAvatarLength {
		req.Avatar = req.Avatar[:maxAvatarLength]
	}
	if req.ConnID == "" {
		req.ConnID = newConnID()
	}
	if req.PlayerID == "" {
		req.PlayerID = newPlayerID()
	}
	identity := game.Identity{ID: req.PlayerID, Name: name, Avatar: req.Avatar}
	if err := room.Engine.Join(req.ConnID, identity); err != nil {
		s.writeEngineError(w, err)
		return
	}
	if player, ok := room.Engine.Resolve(req.ConnID); ok {
		if err := s.persistPlayer(room, player); err != nil {
			log.Printf("persist player failed game_id=%s player_id=%s error=%v", room.ID, player.ID, err)
		}
	}
	s.broadcastGameUpdate(room)
	s.broadcastHomeUpdate()
	writeJSON(w, http.StatusOK, map[string]any{
		"conn_id":   req.ConnID,
		"player_id": req.PlayerID,
		"game":      gamePayload(room),
	})
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request, room *Room) {
	var req commandRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	freshRun := false
	switch room.Engine.Snapshot().Phase {
	case game.PhaseLobby, game.PhaseGameOver:
		freshRun = true
	}
	if err := room.Engine.StartGame(req.ConnID); err != nil {
		s.writeEngineError(w, err)
		return
	}
	// Starting mid-game from the results screen must keep the dedupe
	// guards; only a fresh run resets them.
	if freshRun {
		room.resetPersistGuards()
	}
	snap := room.Engine.Snapshot()
	switch snap.Phase {
	case game.PhasePlaying:
		if err := s.persistRoundStart(room, snap); err != nil {
			log.Printf("persist round failed game_id=%s error=%v", room.ID, err)
		}
	case game.PhaseGameOver:
		// Skipping the final results countdown lands here without a
		// timer firing, so the terminal phase is recorded directly.
		s.persistGameOver(room, snap)
	}
	s.broadcastGameUpdate(room)
	s.broadcastHomeUpdate()
	writeJSON(w, http.StatusOK, payloadFromSnapshot(room, snap))
}

func (s *Server) handleStopRound(w http.ResponseWriter, r *http.Request, room *Room) {
	var req answersRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := room.Engine.StopRound(req.ConnID, req.Answers); err != nil {
		s.writeEngineError(w, err)
		return
	}
	snap := room.Engine.Snapshot()
	s.persistEvent(room, "round_stopped", EventPayload{
		PlayerID: snap.StoppedBy,
		Round:    snap.RoundsPlayed + 1,
		Letter:   snap.CurrentLetter,
	})
	if err := s.persistPhase(room, snap.Phase); err != nil {
		log.Printf("persist phase failed game_id=%s error=%v", room.ID, err)
	}
	s.broadcastGameUpdate(room)
	writeJSON(w, http.StatusOK, payloadFromSnapshot(room, snap))
}

func (s *Server) handleSubmitAnswers(w http.ResponseWriter, r *http.Request, room *Room) {
	var req answersRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := room.Engine.SubmitAnswers(req.ConnID, req.Answers); err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.broadcastGameUpdate(room)
	writeJSON(w, http.StatusOK, gamePayload(room))
}

// handleDraftAnswers is the low-latency typing path: no validation beyond
// length capping and no persistence.
func (s *Server) handleDraftAnswers(w http.ResponseWriter, r *http.Request, room *Room) {
	var req answersRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := room.Engine.UpdateAnswers(req.ConnID, req.Answers); err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.broadcastGameUpdate(room)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleVote(w http.ResponseWriter, r *http.Request, room *Room) {
	var req voteRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	changed, err := room.Engine.ToggleVote(req.ConnID, req.TargetID, req.Category)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	if changed {
		s.persistEvent(room, "vote_toggled", EventPayload{
			TargetID: req.TargetID,
			Category: req.Category,
		})
	}
	s.broadcastGameUpdate(room)
	writeJSON(w, http.StatusOK, gamePayload(room))
}

func (s *Server) handleConfirmVotes(w http.ResponseWriter, r *http.Request, room *Room) {
	var req commandRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := room.Engine.ConfirmVotes(req.ConnID); err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.onEngineAdvance(room)
	writeJSON(w, http.StatusOK, gamePayload(room))
}

func (s *Server) handleKickPlayer(w http.ResponseWriter, r *http.Request, room *Room) {
	var req kickRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := room.Engine.KickPlayer(req.ConnID, req.TargetID); err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.persistEvent(room, "player_kicked", EventPayload{TargetID: req.TargetID})
	s.onEngineAdvance(room)
	writeJSON(w, http.StatusOK, gamePayload(room))
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request, room *Room) {
	var req settingsRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	update := game.ConfigUpdate{
		RoundSeconds:       req.RoundSeconds,
		VotingSeconds:      req.VotingSeconds,
		ResultsSeconds:     req.ResultsSeconds,
		TotalRounds:        req.TotalRounds,
		CategoriesPerRound: req.CategoriesPerRound,
		Categories:         req.Categories,
	}
	if err := room.Engine.UpdateConfig(req.ConnID, update); err != nil {
		s.writeEngineError(w, err)
		return
	}
	snap := room.Engine.Snapshot()
	s.persistEvent(room, "settings_updated", EventPayload{TotalRounds: snap.Config.TotalRounds})
	s.broadcastGameUpdate(room)
	writeJSON(w, http.StatusOK, payloadFromSnapshot(room, snap))
}

func (s *Server) handleRestartGame(w http.ResponseWriter, r *http.Request, room *Room) {
	var req commandRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := room.Engine.RestartGame(req.ConnID); err != nil {
		s.writeEngineError(w, err)
		return
	}
	room.resetPersistGuards()
	if err := s.persistPhase(room, game.PhaseLobby); err != nil {
		log.Printf("persist phase failed game_id=%s error=%v", room.ID, err)
	}
	s.persistEvent(room, "game_restarted", EventPayload{})
	s.broadcastGameUpdate(room)
	s.broadcastHomeUpdate()
	writeJSON(w, http.StatusOK, gamePayload(room))
}

// writeEngineError maps the engine's error taxonomy onto HTTP statuses.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrNotHost):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, game.ErrUnknownPlayer):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrWrongPhase), errors.Is(err, game.ErrNotEnoughPlayers):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
