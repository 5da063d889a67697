package server

type EventPayload struct {
	GameID      string `json:"game_id,omitempty"`
	JoinCode    string `json:"join_code,omitempty"`
	PlayerName  string `json:"player,omitempty"`
	PlayerID    string `json:"player_id,omitempty"`
	TargetID    string `json:"target_id,omitempty"`
	Round       int    `json:"round,omitempty"`
	Letter      string `json:"letter,omitempty"`
	Category    string `json:"category,omitempty"`
	Phase       string `json:"phase,omitempty"`
	Reason      string `json:"reason,omitempty"`
	TotalRounds int    `json:"total_rounds,omitempty"`
	Count       int    `json:"count,omitempty"`
}
