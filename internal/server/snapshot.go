package server

import "word-rush/internal/game"

// gamePayload is what observers receive: the engine snapshot plus the
// room's public identifiers.
func gamePayload(room *Room) map[string]any {
	return payloadFromSnapshot(room, room.Engine.Snapshot())
}

func payloadFromSnapshot(room *Room, snap game.Snapshot) map[string]any {
	return map[string]any{
		"game_id":   room.ID,
		"join_code": room.JoinCode,
		"state":     snap,
	}
}

func (s *Server) homeSummaries() []map[string]any {
	summaries := s.store.ListGameSummaries()
	payload := make([]map[string]any, 0, len(summaries))
	for _, summary := range summaries {
		payload = append(payload, map[string]any{
			"game_id":   summary.ID,
			"join_code": summary.JoinCode,
			"phase":     summary.Phase,
			"players":   summary.Players,
		})
	}
	return payload
}
