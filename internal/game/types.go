package game

import "time"

const (
	PhaseLobby    = "lobby"
	PhasePlaying  = "playing"
	PhaseReview   = "review"
	PhaseResults  = "results"
	PhaseGameOver = "game-over"
)

const (
	StatusValid     = "valid"
	StatusValidAuto = "valid-auto"
	StatusDuplicate = "duplicate"
	StatusInvalid   = "invalid"
	StatusEmpty     = "empty"
	StatusPending   = "pending"
)

const (
	GameOverNormal    = "normal"
	GameOverAbandoned = "abandoned"
)

// Session is the single mutable aggregate for one game room. It is owned by
// an Engine and must only be mutated through Engine commands or scheduler
// callbacks; nothing here is safe for concurrent use on its own.
type Session struct {
	Phase          string
	GameOverReason string

	Players       []Player
	RoundsPlayed  int
	CurrentLetter string
	Categories    []string

	Answers           map[string]map[string]string
	AnswerStatuses    map[string]map[string]string
	Votes             map[string]map[string]map[string]struct{}
	WhoFinishedVoting map[string]struct{}
	RoundScores       map[string]int

	Config    Config
	Timers    Timers
	StoppedBy string
}

// Timers holds the absolute deadlines for the three timed phases. A zero
// time means the deadline is not armed.
type Timers struct {
	RoundEnd   time.Time
	VotingEnd  time.Time
	ResultsEnd time.Time
}

type Player struct {
	ID             string
	Name           string
	Avatar         string
	Score          int
	IsHost         bool
	IsConnected    bool
	LastSeenAt     time.Time
	DisconnectedAt time.Time
}

// IsZombie reports whether the player is soft-disconnected and waiting out
// the purge grace window.
func (p *Player) IsZombie() bool {
	return !p.IsConnected && !p.DisconnectedAt.IsZero()
}

func NewSession(cfg Config) *Session {
	s := &Session{
		Phase:  PhaseLobby,
		Config: cfg,
	}
	s.resetRoundState()
	return s
}

// resetRoundState empties every round-scoped map. It runs at the start of
// each round so nothing from the previous round can leak into the next.
func (s *Session) resetRoundState() {
	s.Answers = make(map[string]map[string]string)
	s.AnswerStatuses = make(map[string]map[string]string)
	s.Votes = make(map[string]map[string]map[string]struct{})
	s.WhoFinishedVoting = make(map[string]struct{})
	s.RoundScores = make(map[string]int)
	s.StoppedBy = ""
}

func (s *Session) findPlayer(playerID string) *Player {
	for i := range s.Players {
		if s.Players[i].ID == playerID {
			return &s.Players[i]
		}
	}
	return nil
}

func (s *Session) connectedCount() int {
	count := 0
	for i := range s.Players {
		if s.Players[i].IsConnected {
			count++
		}
	}
	return count
}

func (s *Session) connectedPlayers() []*Player {
	players := make([]*Player, 0, len(s.Players))
	for i := range s.Players {
		if s.Players[i].IsConnected {
			players = append(players, &s.Players[i])
		}
	}
	return players
}

// answersFor returns the answer map for a player without creating it.
func (s *Session) answersFor(playerID string) map[string]string {
	if s.Answers == nil {
		return nil
	}
	return s.Answers[playerID]
}

func (s *Session) ensureAnswers(playerID string) map[string]string {
	if s.Answers == nil {
		s.Answers = make(map[string]map[string]string)
	}
	answers := s.Answers[playerID]
	if answers == nil {
		answers = make(map[string]string)
		s.Answers[playerID] = answers
	}
	return answers
}

func (s *Session) answerText(playerID, category string) string {
	if answers := s.answersFor(playerID); answers != nil {
		return answers[category]
	}
	return ""
}

func (s *Session) setAnswerStatus(playerID, category, status string) {
	if s.AnswerStatuses == nil {
		s.AnswerStatuses = make(map[string]map[string]string)
	}
	statuses := s.AnswerStatuses[playerID]
	if statuses == nil {
		statuses = make(map[string]string)
		s.AnswerStatuses[playerID] = statuses
	}
	statuses[category] = status
}

func (s *Session) answerStatus(playerID, category string) string {
	if statuses := s.AnswerStatuses[playerID]; statuses != nil {
		if status, ok := statuses[category]; ok {
			return status
		}
	}
	return StatusPending
}

// voteSet returns the negative-vote set for a target/category without
// creating it; absence is an empty set.
func (s *Session) voteSet(targetID, category string) map[string]struct{} {
	if byCategory := s.Votes[targetID]; byCategory != nil {
		return byCategory[category]
	}
	return nil
}

func (s *Session) ensureVoteSet(targetID, category string) map[string]struct{} {
	if s.Votes == nil {
		s.Votes = make(map[string]map[string]map[string]struct{})
	}
	byCategory := s.Votes[targetID]
	if byCategory == nil {
		byCategory = make(map[string]map[string]struct{})
		s.Votes[targetID] = byCategory
	}
	voters := byCategory[category]
	if voters == nil {
		voters = make(map[string]struct{})
		byCategory[category] = voters
	}
	return voters
}

func (s *Session) voteCount(targetID, category string) int {
	return len(s.voteSet(targetID, category))
}
