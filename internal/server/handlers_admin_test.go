package server

import (
	"net/http"
	"testing"

	"word-rush/internal/config"
)

func TestAdminListAndDictionaryReload(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	gameID, _ := createGame(t, ts)

	resp := doRequest(t, ts, http.MethodGet, "/admin/api/games", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	games := body["games"].([]any)
	if len(games) != 1 || games[0].(map[string]any)["game_id"] != gameID {
		t.Fatalf("expected the created game, got %#v", games)
	}
	if len(body["dictionary"].([]any)) == 0 {
		t.Fatalf("expected bundled dictionary categories")
	}

	resp = doRequest(t, ts, http.MethodPost, "/admin/api/dictionary/reload", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reload: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if categories := decodeBody(t, resp)["categories"].([]any); len(categories) == 0 {
		t.Fatalf("expected categories after reload")
	}
}

func TestAdminRestoreGame(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	gameID, joinCode := createGame(t, ts)
	_, playerID := joinPlayer(t, ts, gameID, "Ada")
	joinPlayer(t, ts, gameID, "Ben")

	resp := doRequest(t, ts, http.MethodGet, "/api/games/"+gameID, nil)
	saved := decodeBody(t, resp)
	state := saved["state"].(map[string]any)

	// Restoring while the same game still runs must be refused.
	resp = doRequest(t, ts, http.MethodPost, "/admin/api/restore", map[string]any{
		"game_id":   gameID,
		"join_code": joinCode,
		"state":     state,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("restore clash: expected status %d, got %d", http.StatusConflict, resp.StatusCode)
	}

	srv.store.RemoveRoom(gameID)

	resp = doRequest(t, ts, http.MethodPost, "/admin/api/restore", map[string]any{
		"game_id":   gameID,
		"join_code": joinCode,
		"state":     state,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("restore: expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}

	restored := fetchSnapshot(t, ts, gameID)
	players := snapshotPlayers(t, restored)
	if len(players) != 2 {
		t.Fatalf("expected both players restored, got %d", len(players))
	}
	for _, player := range players {
		if player["is_connected"].(bool) {
			t.Fatalf("restored players must wait for rejoin: %#v", player)
		}
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/join", map[string]string{
		"name":      "Ada",
		"player_id": playerID,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("rejoin: expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	after := fetchSnapshot(t, ts, gameID)
	if len(snapshotPlayers(t, after)) != 2 {
		t.Fatalf("rejoin must reclaim the restored seat, not add one")
	}
}
