package server

import (
	"net/http"
	"strings"
	"testing"

	"word-rush/internal/config"
)

func TestFullRoundOverHTTP(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	gameID, _ := createGame(t, ts)
	hostConn, hostID := joinPlayer(t, ts, gameID, "Ada")
	guestConn, guestID := joinPlayer(t, ts, gameID, "Ben")

	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/settings", map[string]any{
		"conn_id":      hostConn,
		"total_rounds": 1,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("settings: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/start", map[string]any{
		"conn_id": hostConn,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("start: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	state := fetchSnapshot(t, ts, gameID)
	if state["phase"] != "playing" {
		t.Fatalf("expected playing, got %v", state["phase"])
	}
	letter := state["current_letter"].(string)
	if letter == "" {
		t.Fatalf("expected a drawn letter")
	}
	categories := state["categories"].([]any)
	if len(categories) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(categories))
	}

	guestAnswers := map[string]string{}
	hostAnswers := map[string]string{}
	for _, raw := range categories {
		category := raw.(string)
		guestAnswers[category] = letter + "enizo"
		hostAnswers[category] = letter + "amiru"
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/answers", map[string]any{
		"conn_id": guestConn,
		"answers": guestAnswers,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("answers: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/stop", map[string]any{
		"conn_id": hostConn,
		"answers": hostAnswers,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stop: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	state = fetchSnapshot(t, ts, gameID)
	if state["phase"] != "review" {
		t.Fatalf("expected review, got %v", state["phase"])
	}
	if state["stopped_by"] != hostID {
		t.Fatalf("expected stopper %s, got %v", hostID, state["stopped_by"])
	}

	firstCategory := categories[0].(string)
	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/vote", map[string]any{
		"conn_id":   hostConn,
		"target_id": guestID,
		"category":  firstCategory,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("vote: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/confirm", map[string]any{"conn_id": hostConn})
	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/confirm", map[string]any{"conn_id": guestConn})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("confirm: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	state = fetchSnapshot(t, ts, gameID)
	if state["phase"] != "results" {
		t.Fatalf("expected results after consensus, got %v", state["phase"])
	}
	scores := state["round_scores"].(map[string]any)
	// One answer rejected by majority (1 of 2 voters), four unique survive.
	if scores[guestID].(float64) != 400 {
		t.Fatalf("expected guest round score 400, got %v", scores[guestID])
	}
	if scores[hostID].(float64) != 500 {
		t.Fatalf("expected host round score 500, got %v", scores[hostID])
	}
	statuses := state["answer_statuses"].(map[string]any)
	guestStatuses := statuses[guestID].(map[string]any)
	if guestStatuses[firstCategory] != "invalid" {
		t.Fatalf("expected rejected answer to be invalid, got %v", guestStatuses[firstCategory])
	}

	// Skipping the countdown on the last round ends the game.
	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/start", map[string]any{
		"conn_id": hostConn,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("skip countdown: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	state = fetchSnapshot(t, ts, gameID)
	if state["phase"] != "game-over" {
		t.Fatalf("expected game-over, got %v", state["phase"])
	}
	for _, player := range snapshotPlayers(t, state) {
		switch player["id"] {
		case hostID:
			if player["score"].(float64) != 500 {
				t.Fatalf("expected host total 500, got %v", player["score"])
			}
		case guestID:
			if player["score"].(float64) != 400 {
				t.Fatalf("expected guest total 400, got %v", player["score"])
			}
		}
	}
}

func TestJoinByCodeAndValidation(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	gameID, joinCode := createGame(t, ts)

	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+strings.ToLower(joinCode)+"/join", map[string]string{
		"name": "Ada",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("join by code: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	joined := body["game"].(map[string]any)
	if joined["game_id"] != gameID {
		t.Fatalf("expected join code to resolve %s, got %v", gameID, joined["game_id"])
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/join", map[string]string{
		"name": "   ",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("blank name: expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/games/missing/join", map[string]string{
		"name": "Ada",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown game: expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestRejoinKeepsSingleSeat(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	gameID, _ := createGame(t, ts)
	_, playerID := joinPlayer(t, ts, gameID, "Ada")

	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/join", map[string]string{
		"name":      "Ada",
		"player_id": playerID,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("rejoin: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	state := fetchSnapshot(t, ts, gameID)
	players := snapshotPlayers(t, state)
	if len(players) != 1 {
		t.Fatalf("expected 1 player after rejoin, got %d", len(players))
	}
	if players[0]["id"] != playerID {
		t.Fatalf("expected same identity, got %v", players[0]["id"])
	}
}

func TestCommandAuthorization(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	gameID, _ := createGame(t, ts)
	hostConn, _ := joinPlayer(t, ts, gameID, "Ada")
	guestConn, guestID := joinPlayer(t, ts, gameID, "Ben")

	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/start", map[string]any{
		"conn_id": guestConn,
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("guest start: expected status %d, got %d", http.StatusForbidden, resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/stop", map[string]any{
		"conn_id": hostConn,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("stop in lobby: expected status %d, got %d", http.StatusConflict, resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/kick", map[string]any{
		"conn_id":   guestConn,
		"target_id": guestID,
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("guest kick: expected status %d, got %d", http.StatusForbidden, resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/start", map[string]any{
		"conn_id": "conn-unknown",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown conn start: expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestSettingsClampOverHTTP(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	gameID, _ := createGame(t, ts)
	hostConn, _ := joinPlayer(t, ts, gameID, "Ada")

	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/settings", map[string]any{
		"conn_id":       hostConn,
		"round_seconds": 5,
		"total_rounds":  99,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("settings: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	cfg := body["state"].(map[string]any)["config"].(map[string]any)
	if cfg["round_seconds"].(float64) != 30 {
		t.Fatalf("expected round_seconds clamped to 30, got %v", cfg["round_seconds"])
	}
	if cfg["total_rounds"].(float64) != 20 {
		t.Fatalf("expected total_rounds clamped to 20, got %v", cfg["total_rounds"])
	}
}

func TestRestartResetsScores(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	gameID, _ := createGame(t, ts)
	hostConn, _ := joinPlayer(t, ts, gameID, "Ada")
	joinPlayer(t, ts, gameID, "Ben")

	doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/start", map[string]any{"conn_id": hostConn})
	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/restart", map[string]any{"conn_id": hostConn})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("restart: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	state := fetchSnapshot(t, ts, gameID)
	if state["phase"] != "lobby" {
		t.Fatalf("expected lobby after restart, got %v", state["phase"])
	}
	for _, player := range snapshotPlayers(t, state) {
		if player["score"].(float64) != 0 {
			t.Fatalf("expected zeroed scores, got %v", player["score"])
		}
	}
}

func TestDraftAnswersSilent(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	gameID, _ := createGame(t, ts)
	hostConn, hostID := joinPlayer(t, ts, gameID, "Ada")
	joinPlayer(t, ts, gameID, "Ben")
	doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/start", map[string]any{"conn_id": hostConn})

	state := fetchSnapshot(t, ts, gameID)
	category := state["categories"].([]any)[0].(string)

	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/draft", map[string]any{
		"conn_id": hostConn,
		"answers": map[string]string{category: "zeta"},
	})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("draft: expected status %d, got %d", http.StatusNoContent, resp.StatusCode)
	}

	state = fetchSnapshot(t, ts, gameID)
	answers := state["answers"].(map[string]any)[hostID].(map[string]any)
	if answers[category] != "zeta" {
		t.Fatalf("expected draft stored verbatim, got %v", answers[category])
	}
	if statuses, ok := state["answer_statuses"].(map[string]any); ok {
		if playerStatuses, ok := statuses[hostID].(map[string]any); ok {
			if status, ok := playerStatuses[category]; ok && status != "pending" {
				t.Fatalf("draft must not be validated, got %v", status)
			}
		}
	}
}

func TestSkippingFinalResultsRecordsGameOver(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	gameID, _ := createGame(t, ts)
	hostConn, _ := joinPlayer(t, ts, gameID, "Ada")
	guestConn, _ := joinPlayer(t, ts, gameID, "Ben")

	doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/settings", map[string]any{
		"conn_id":      hostConn,
		"total_rounds": 1,
	})
	doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/start", map[string]any{"conn_id": hostConn})
	doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/stop", map[string]any{"conn_id": hostConn})
	doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/confirm", map[string]any{"conn_id": hostConn})
	doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/confirm", map[string]any{"conn_id": guestConn})

	state := fetchSnapshot(t, ts, gameID)
	if state["phase"] != "results" {
		t.Fatalf("expected results, got %v", state["phase"])
	}

	room, ok := srv.store.ResolveRoom(gameID)
	if !ok {
		t.Fatalf("room %s not found", gameID)
	}
	room.persistMu.Lock()
	room.lastScoredRound = 1
	room.persistMu.Unlock()

	// The host skips the results countdown of the final round.
	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/start", map[string]any{"conn_id": hostConn})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("skip: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["state"].(map[string]any)["phase"] != "game-over" {
		t.Fatalf("expected game-over, got %v", body["state"].(map[string]any)["phase"])
	}

	room.persistMu.Lock()
	logged, scored := room.gameOverLogged, room.lastScoredRound
	room.persistMu.Unlock()
	if !logged {
		t.Fatal("expected the terminal phase to be recorded on the skip path")
	}
	if scored != 1 {
		t.Fatalf("mid-game start must keep the scored-round guard, got %d", scored)
	}

	// Starting again from game-over is a fresh run and clears the guards.
	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/start", map[string]any{"conn_id": hostConn})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("restart run: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	room.persistMu.Lock()
	logged, scored = room.gameOverLogged, room.lastScoredRound
	room.persistMu.Unlock()
	if logged || scored != 0 {
		t.Fatalf("fresh run must clear the guards, got logged=%v scored=%d", logged, scored)
	}
}
