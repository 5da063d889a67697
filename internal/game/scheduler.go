package game

import (
	"crypto/rand"
	"sync"
	"time"
)

// roundScheduler owns the single pending phase timer for a session. A new
// timer is always armed through arm, which stops any prior one first, so at
// most one expiry can ever be in flight. The expiry callback must re-enter
// the engine's serialized command path; the scheduler itself never touches
// the session.
type roundScheduler struct {
	mu        sync.Mutex
	timer     *time.Timer
	afterFunc func(d time.Duration, f func()) *time.Timer
}

func newRoundScheduler() *roundScheduler {
	return &roundScheduler{afterFunc: time.AfterFunc}
}

func (sc *roundScheduler) arm(d time.Duration, f func()) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.timer != nil {
		sc.timer.Stop()
	}
	sc.timer = sc.afterFunc(d, f)
}

// cancel idempotently clears any pending timer.
func (sc *roundScheduler) cancel() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.timer != nil {
		sc.timer.Stop()
		sc.timer = nil
	}
}

// startRound resets all round-scoped state, draws the letter and opens the
// playing phase with its deadline.
func (s *Session) startRound(categories []string, now time.Time) {
	s.resetRoundState()
	s.Categories = categories
	s.CurrentLetter = drawLetter()
	s.Phase = PhasePlaying
	s.GameOverReason = ""
	s.Timers.RoundEnd = now.Add(s.Config.RoundDuration())
	s.Timers.VotingEnd = time.Time{}
	s.Timers.ResultsEnd = time.Time{}
}

// stopRound closes the playing phase and opens review with the voting
// deadline.
func (s *Session) stopRound(now time.Time) {
	s.Phase = PhaseReview
	s.Timers.RoundEnd = time.Time{}
	s.Timers.VotingEnd = now.Add(s.Config.VotingDuration())
}

// nextRound advances the round counter. It returns false when the game is
// over, in which case the session is already in its terminal phase.
func (s *Session) nextRound() bool {
	s.RoundsPlayed++
	if s.RoundsPlayed >= s.Config.TotalRounds {
		s.Phase = PhaseGameOver
		s.GameOverReason = GameOverNormal
		s.CurrentLetter = ""
		s.Timers = Timers{}
		return false
	}
	return true
}

// drawLetter picks one of the 26 letters uniformly.
func drawLetter() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	buf := make([]byte, 1)
	if _, err := rand.Read(buf); err != nil {
		return "A"
	}
	return string(letters[int(buf[0])%len(letters)])
}
