package game

import (
	"sort"
	"time"
)

// Snapshot is the serializable form of the session aggregate, used for
// persistence hydration and for broadcasting to observers.
type Snapshot struct {
	Phase          string           `json:"phase"`
	GameOverReason string           `json:"game_over_reason,omitempty"`
	Players        []PlayerSnapshot `json:"players"`
	RoundsPlayed   int              `json:"rounds_played"`
	CurrentLetter  string           `json:"current_letter,omitempty"`
	Categories     []string         `json:"categories,omitempty"`

	Answers           map[string]map[string]string   `json:"answers,omitempty"`
	AnswerStatuses    map[string]map[string]string   `json:"answer_statuses,omitempty"`
	Votes             map[string]map[string][]string `json:"votes,omitempty"`
	WhoFinishedVoting []string                       `json:"who_finished_voting,omitempty"`
	RoundScores       map[string]int                 `json:"round_scores,omitempty"`
	StoppedBy         string                         `json:"stopped_by,omitempty"`

	Config ConfigSnapshot `json:"config"`
	Timers TimerSnapshot  `json:"timers"`
}

type PlayerSnapshot struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Avatar         string     `json:"avatar,omitempty"`
	Score          int        `json:"score"`
	IsHost         bool       `json:"is_host"`
	IsConnected    bool       `json:"is_connected"`
	LastSeenAt     time.Time  `json:"last_seen_at"`
	DisconnectedAt *time.Time `json:"disconnected_at,omitempty"`
}

type ConfigSnapshot struct {
	RoundSeconds       int      `json:"round_seconds"`
	VotingSeconds      int      `json:"voting_seconds"`
	ResultsSeconds     int      `json:"results_seconds"`
	TotalRounds        int      `json:"total_rounds"`
	CategoriesPerRound int      `json:"categories_per_round"`
	Categories         []string `json:"categories,omitempty"`
}

type TimerSnapshot struct {
	RoundEnd   *time.Time `json:"round_end,omitempty"`
	VotingEnd  *time.Time `json:"voting_end,omitempty"`
	ResultsEnd *time.Time `json:"results_end,omitempty"`
}

// Snapshot deep-copies the aggregate under the engine lock.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshotSession(e.session)
}

func snapshotSession(s *Session) Snapshot {
	snap := Snapshot{
		Phase:          s.Phase,
		GameOverReason: s.GameOverReason,
		RoundsPlayed:   s.RoundsPlayed,
		CurrentLetter:  s.CurrentLetter,
		Categories:     append([]string(nil), s.Categories...),
		StoppedBy:      s.StoppedBy,
		Config: ConfigSnapshot{
			RoundSeconds:       s.Config.RoundSeconds,
			VotingSeconds:      s.Config.VotingSeconds,
			ResultsSeconds:     s.Config.ResultsSeconds,
			TotalRounds:        s.Config.TotalRounds,
			CategoriesPerRound: s.Config.CategoriesPerRound,
			Categories:         append([]string(nil), s.Config.Categories...),
		},
		Timers: TimerSnapshot{
			RoundEnd:   timePtr(s.Timers.RoundEnd),
			VotingEnd:  timePtr(s.Timers.VotingEnd),
			ResultsEnd: timePtr(s.Timers.ResultsEnd),
		},
	}
	snap.Players = make([]PlayerSnapshot, 0, len(s.Players))
	for i := range s.Players {
		player := &s.Players[i]
		snap.Players = append(snap.Players, PlayerSnapshot{
			ID:             player.ID,
			Name:           player.Name,
			Avatar:         player.Avatar,
			Score:          player.Score,
			IsHost:         player.IsHost,
			IsConnected:    player.IsConnected,
			LastSeenAt:     player.LastSeenAt,
			DisconnectedAt: timePtr(player.DisconnectedAt),
		})
	}
	snap.Answers = copyNested(s.Answers)
	snap.AnswerStatuses = copyNested(s.AnswerStatuses)
	snap.Votes = make(map[string]map[string][]string, len(s.Votes))
	for targetID, byCategory := range s.Votes {
		categories := make(map[string][]string, len(byCategory))
		for category, voters := range byCategory {
			if len(voters) == 0 {
				continue
			}
			list := make([]string, 0, len(voters))
			for voterID := range voters {
				list = append(list, voterID)
			}
			sort.Strings(list)
			categories[category] = list
		}
		if len(categories) > 0 {
			snap.Votes[targetID] = categories
		}
	}
	snap.WhoFinishedVoting = make([]string, 0, len(s.WhoFinishedVoting))
	for playerID := range s.WhoFinishedVoting {
		snap.WhoFinishedVoting = append(snap.WhoFinishedVoting, playerID)
	}
	sort.Strings(snap.WhoFinishedVoting)
	snap.RoundScores = make(map[string]int, len(s.RoundScores))
	for playerID, points := range s.RoundScores {
		snap.RoundScores[playerID] = points
	}
	return snap
}

// NewEngineFromSnapshot hydrates an engine from a stored snapshot. Every
// player is restored as a zombie: real clients must rebind through Join
// before consensus can count them again. Phase timers are re-armed from the
// remaining deadline.
func NewEngineFromSnapshot(dict *Dictionary, snap Snapshot) *Engine {
	cfg := Config{
		RoundSeconds:       snap.Config.RoundSeconds,
		VotingSeconds:      snap.Config.VotingSeconds,
		ResultsSeconds:     snap.Config.ResultsSeconds,
		TotalRounds:        snap.Config.TotalRounds,
		CategoriesPerRound: snap.Config.CategoriesPerRound,
		Categories:         append([]string(nil), snap.Config.Categories...),
	}
	e := NewEngine(dict, cfg)
	now := e.now()
	s := e.session
	s.Phase = snap.Phase
	s.GameOverReason = snap.GameOverReason
	s.RoundsPlayed = snap.RoundsPlayed
	s.CurrentLetter = snap.CurrentLetter
	s.Categories = append([]string(nil), snap.Categories...)
	s.StoppedBy = snap.StoppedBy
	s.Timers = Timers{
		RoundEnd:   timeValue(snap.Timers.RoundEnd),
		VotingEnd:  timeValue(snap.Timers.VotingEnd),
		ResultsEnd: timeValue(snap.Timers.ResultsEnd),
	}
	for _, player := range snap.Players {
		s.Players = append(s.Players, Player{
			ID:             player.ID,
			Name:           player.Name,
			Avatar:         player.Avatar,
			Score:          player.Score,
			IsConnected:    false,
			LastSeenAt:     player.LastSeenAt,
			DisconnectedAt: now,
		})
	}
	s.Answers = copyNested(snap.Answers)
	s.AnswerStatuses = copyNested(snap.AnswerStatuses)
	for targetID, byCategory := range snap.Votes {
		for category, voters := range byCategory {
			set := s.ensureVoteSet(targetID, category)
			for _, voterID := range voters {
				set[voterID] = struct{}{}
			}
		}
	}
	for _, playerID := range snap.WhoFinishedVoting {
		s.WhoFinishedVoting[playerID] = struct{}{}
	}
	for playerID, points := range snap.RoundScores {
		s.RoundScores[playerID] = points
	}
	e.rearmFromDeadlines(now)
	return e
}

func (e *Engine) rearmFromDeadlines(now time.Time) {
	s := e.session
	var deadline time.Time
	switch s.Phase {
	case PhasePlaying:
		deadline = s.Timers.RoundEnd
	case PhaseReview:
		deadline = s.Timers.VotingEnd
	case PhaseResults:
		deadline = s.Timers.ResultsEnd
	default:
		return
	}
	if deadline.IsZero() {
		return
	}
	remaining := deadline.Sub(now)
	if remaining < time.Second {
		remaining = time.Second
	}
	e.armPhaseTimer(remaining, s.Phase)
}

func copyNested(src map[string]map[string]string) map[string]map[string]string {
	dst := make(map[string]map[string]string, len(src))
	for outer, inner := range src {
		copied := make(map[string]string, len(inner))
		for key, value := range inner {
			copied[key] = value
		}
		dst[outer] = copied
	}
	return dst
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	value := t
	return &value
}

func timeValue(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
