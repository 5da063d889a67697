package game

import (
	"crypto/rand"
	"math/big"
	"sync"
	"time"
)

// Engine is the session orchestrator. Every command, whether player-issued
// or timer-issued, takes the single mutex, so exactly one mutation of the
// aggregate is ever in flight. The engine performs no I/O: persistence and
// broadcast belong to the caller, and the log sink is best-effort.
type Engine struct {
	mu      sync.Mutex
	session *Session
	dict    *Dictionary
	sched   *roundScheduler
	conns   map[string]string
	now     func() time.Time
	logf    func(format string, args ...any)
	notify  func()
}

func NewEngine(dict *Dictionary, cfg Config) *Engine {
	cfg.Clamp()
	return &Engine{
		session: NewSession(cfg),
		dict:    dict,
		sched:   newRoundScheduler(),
		conns:   make(map[string]string),
		now:     func() time.Time { return time.Now().UTC() },
		logf:    func(string, ...any) {},
		notify:  func() {},
	}
}

// SetLogf installs the lifecycle log sink. Must be called before the engine
// starts receiving commands.
func (e *Engine) SetLogf(logf func(format string, args ...any)) {
	if logf != nil {
		e.logf = logf
	}
}

// SetNotify installs a callback fired after a timer-driven phase change, so
// the transport can push the new state to observers. Player commands do not
// fire it: the caller already knows those happened. Runs outside the session
// lock. Must be set before the engine starts receiving commands.
func (e *Engine) SetNotify(notify func()) {
	if notify != nil {
		e.notify = notify
	}
}

// Join binds a connection to a durable identity. A known identity is a
// reconnect: the existing player is revived and no duplicate entry is
// created, which also makes concurrent duplicate joins idempotent.
func (e *Engine) Join(connRef string, identity Identity) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	if e.session.reconnectPlayer(identity.ID, now) {
		e.conns[connRef] = identity.ID
		e.logf("player reconnected player_id=%s", identity.ID)
		return nil
	}
	player := e.session.addPlayer(identity, now)
	e.conns[connRef] = player.ID
	e.logf("player joined player_id=%s name=%s host=%t", player.ID, player.Name, player.IsHost)
	return nil
}

// StartGame begins round one from the lobby or after a game over, or skips
// the rest of the results countdown to begin the next round.
func (e *Engine) StartGame(connRef string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	player := e.resolve(connRef)
	if player == nil {
		return ErrUnknownPlayer
	}
	if !player.IsHost {
		return ErrNotHost
	}
	switch e.session.Phase {
	case PhaseResults:
		e.advanceAfterResults()
		return nil
	case PhaseLobby, PhaseGameOver:
		if e.session.connectedCount() < 2 {
			return ErrNotEnoughPlayers
		}
		e.session.RoundsPlayed = 0
		e.beginRound(e.selectCategories())
		return nil
	default:
		return ErrWrongPhase
	}
}

// StopRound ends the playing phase early, recording the caller's final
// answers on the way out.
func (e *Engine) StopRound(connRef string, answers map[string]string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	player := e.resolve(connRef)
	if player == nil {
		return ErrUnknownPlayer
	}
	if e.session.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	e.recordAnswers(player.ID, answers, true)
	e.session.StoppedBy = player.ID
	e.finishRound()
	e.logf("round stopped player_id=%s round=%d", player.ID, e.session.RoundsPlayed+1)
	return nil
}

// SubmitAnswers records and validates a player's answers. Silently ignored
// for unresolved identities.
func (e *Engine) SubmitAnswers(connRef string, answers map[string]string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	player := e.resolve(connRef)
	if player == nil {
		return nil
	}
	if e.session.Phase != PhasePlaying && e.session.Phase != PhaseReview {
		return nil
	}
	e.recordAnswers(player.ID, answers, true)
	return nil
}

// UpdateAnswers is the low-latency draft path used while typing: answers
// are length-capped but not validated. Scoring always re-validates, so the
// fast path cannot smuggle anything past the letter or dictionary checks.
func (e *Engine) UpdateAnswers(connRef string, answers map[string]string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	player := e.resolve(connRef)
	if player == nil {
		return nil
	}
	if e.session.Phase != PhasePlaying && e.session.Phase != PhaseReview {
		return nil
	}
	e.recordAnswers(player.ID, answers, false)
	return nil
}

// ToggleVote flips the caller's negative vote on a target answer. Outside
// review, against self, or for unknown players it is silently absorbed;
// the returned bool tells the caller whether anything actually changed.
func (e *Engine) ToggleVote(connRef, targetID, category string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	player := e.resolve(connRef)
	if player == nil {
		return false, nil
	}
	return e.session.toggleVote(player.ID, targetID, category), nil
}

// ConfirmVotes marks the caller's review finished and resolves the round
// when every connected player has confirmed.
func (e *Engine) ConfirmVotes(connRef string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	player := e.resolve(connRef)
	if player == nil {
		return nil
	}
	if e.session.confirmVotes(player.ID) {
		e.resolveRound()
	}
	return nil
}

// KickPlayer removes a player from the roster entirely, along with their
// answers, votes and round score. A kick can unblock a stalled review.
func (e *Engine) KickPlayer(connRef, targetID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	requester := e.resolve(connRef)
	if requester == nil {
		return ErrUnknownPlayer
	}
	if !requester.IsHost {
		return ErrNotHost
	}
	if !e.session.removePlayer(targetID) {
		return ErrUnknownPlayer
	}
	e.forgetPlayer(targetID)
	e.logf("player kicked player_id=%s by=%s", targetID, requester.ID)
	e.afterRosterShrink()
	return nil
}

// UpdateConfig applies a partial, clamped config change. Host-only and
// lobby-only.
func (e *Engine) UpdateConfig(connRef string, update ConfigUpdate) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	player := e.resolve(connRef)
	if player == nil {
		return ErrUnknownPlayer
	}
	if !player.IsHost {
		return ErrNotHost
	}
	if e.session.Phase != PhaseLobby {
		return ErrWrongPhase
	}
	e.session.Config.Apply(update)
	return nil
}

// RestartGame resets every piece of round-scoped and cumulative state back
// to a fresh lobby, keeping the roster.
func (e *Engine) RestartGame(connRef string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	player := e.resolve(connRef)
	if player == nil {
		return ErrUnknownPlayer
	}
	if !player.IsHost {
		return ErrNotHost
	}
	e.sched.cancel()
	s := e.session
	s.Phase = PhaseLobby
	s.GameOverReason = ""
	s.RoundsPlayed = 0
	s.CurrentLetter = ""
	s.Categories = nil
	s.Timers = Timers{}
	s.resetRoundState()
	for i := range s.Players {
		s.Players[i].Score = 0
	}
	e.logf("game restarted by=%s", player.ID)
	return nil
}

// Disconnect soft-disconnects the identity bound to a closing connection.
// The player stays on the roster as a zombie for the purge grace window.
func (e *Engine) Disconnect(connRef string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	playerID, ok := e.conns[connRef]
	if !ok {
		return
	}
	delete(e.conns, connRef)
	for _, id := range e.conns {
		if id == playerID {
			// Another connection still carries this identity.
			return
		}
	}
	e.session.disconnectPlayer(playerID, e.now())
	e.logf("player disconnected player_id=%s", playerID)
	e.afterRosterShrink()
}

// PurgeInactive hard-removes zombies past the grace window. Reports whether
// the roster changed.
func (e *Engine) PurgeInactive(grace time.Duration) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	var expired []string
	for i := range e.session.Players {
		player := &e.session.Players[i]
		if player.IsZombie() && now.Sub(player.DisconnectedAt) > grace {
			expired = append(expired, player.ID)
		}
	}
	if len(expired) == 0 {
		return false
	}
	e.session.purgeInactive(grace, now)
	for _, playerID := range expired {
		e.forgetPlayer(playerID)
		e.logf("player purged player_id=%s", playerID)
	}
	e.afterRosterShrink()
	return true
}

// Resolve reports the player bound to a connection, if any.
func (e *Engine) Resolve(connRef string) (Player, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	player := e.resolve(connRef)
	if player == nil {
		return Player{}, false
	}
	return *player, true
}

// Close cancels any pending timer. The engine itself holds no other
// resources.
func (e *Engine) Close() {
	e.sched.cancel()
}

func (e *Engine) resolve(connRef string) *Player {
	playerID, ok := e.conns[connRef]
	if !ok {
		return nil
	}
	return e.session.findPlayer(playerID)
}

func (e *Engine) recordAnswers(playerID string, answers map[string]string, validate bool) {
	stored := e.session.ensureAnswers(playerID)
	for _, category := range e.session.Categories {
		raw, ok := answers[category]
		if !ok {
			continue
		}
		capped := capAnswer(raw)
		stored[category] = capped
		if validate {
			result := ProcessAnswer(e.dict, capped, e.session.CurrentLetter, category)
			e.session.setAnswerStatus(playerID, category, result.Status)
		}
	}
}

func (e *Engine) selectCategories() []string {
	cfg := e.session.Config
	if len(cfg.Categories) >= cfg.CategoriesPerRound {
		return append([]string(nil), cfg.Categories[:cfg.CategoriesPerRound]...)
	}
	return sampleCategories(MasterCategories, cfg.CategoriesPerRound)
}

func (e *Engine) beginRound(categories []string) {
	e.session.startRound(categories, e.now())
	e.armPhaseTimer(e.session.Config.RoundDuration(), PhasePlaying)
	e.logf("round started round=%d letter=%s categories=%d",
		e.session.RoundsPlayed+1, e.session.CurrentLetter, len(categories))
}

// finishRound moves playing → review, re-validates every stored answer and
// applies the automated jury for tiny sessions.
func (e *Engine) finishRound() {
	s := e.session
	s.stopRound(e.now())
	for playerID, answers := range s.Answers {
		for category, raw := range answers {
			result := ProcessAnswer(e.dict, raw, s.CurrentLetter, category)
			s.setAnswerStatus(playerID, category, result.Status)
		}
	}
	if adjudicate := juryFor(s.connectedCount()); adjudicate != nil {
		adjudicate(s, e.dict)
	}
	e.armPhaseTimer(s.Config.VotingDuration(), PhaseReview)
}

func (e *Engine) resolveRound() {
	e.session.calculateScores(e.dict, e.now())
	e.armPhaseTimer(e.session.Config.ResultsDuration(), PhaseResults)
	e.logf("scores calculated round=%d", e.session.RoundsPlayed+1)
}

func (e *Engine) advanceAfterResults() {
	if e.session.nextRound() {
		e.beginRound(e.session.Categories)
		return
	}
	e.sched.cancel()
	e.logf("game over reason=%s rounds=%d", e.session.GameOverReason, e.session.RoundsPlayed)
}

// afterRosterShrink re-evaluates the session after a disconnect, kick or
// purge: an active round below two connected players is abandoned, and a
// departed non-confirmer must not keep blocking review consensus.
func (e *Engine) afterRosterShrink() {
	s := e.session
	switch s.Phase {
	case PhasePlaying, PhaseReview:
		if s.connectedCount() < 2 {
			e.abandon()
			return
		}
		if s.Phase == PhaseReview && s.votingConsensus() {
			e.resolveRound()
		}
	}
}

func (e *Engine) abandon() {
	e.sched.cancel()
	s := e.session
	s.Phase = PhaseGameOver
	s.GameOverReason = GameOverAbandoned
	s.CurrentLetter = ""
	s.Timers = Timers{}
	e.logf("game abandoned connected=%d", s.connectedCount())
}

// forgetPlayer drops every per-player map entry and connection binding for
// a player who left the roster for good.
func (e *Engine) forgetPlayer(playerID string) {
	s := e.session
	s.cleanupPlayerVotes(playerID)
	delete(s.Answers, playerID)
	delete(s.AnswerStatuses, playerID)
	delete(s.RoundScores, playerID)
	for connRef, id := range e.conns {
		if id == playerID {
			delete(e.conns, connRef)
		}
	}
}

func (e *Engine) armPhaseTimer(d time.Duration, expectedPhase string) {
	e.sched.arm(d, func() {
		e.expirePhase(expectedPhase)
	})
}

// expirePhase is the scheduler's continuation. It re-enters the serialized
// mutation path and drives the same transition a player command would. A
// stale expiry (phase already changed) is a no-op, and a panic is contained
// so a timer bug cannot take the session down.
func (e *Engine) expirePhase(expectedPhase string) {
	defer func() {
		if r := recover(); r != nil {
			e.logf("phase expiry panic phase=%s recovered=%v", expectedPhase, r)
		}
	}()
	if e.advancePhase(expectedPhase) {
		e.notify()
	}
}

func (e *Engine) advancePhase(expectedPhase string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session.Phase != expectedPhase {
		return false
	}
	switch expectedPhase {
	case PhasePlaying:
		e.finishRound()
		e.logf("round timed out round=%d", e.session.RoundsPlayed+1)
	case PhaseReview:
		e.resolveRound()
		e.logf("voting timed out round=%d", e.session.RoundsPlayed+1)
	case PhaseResults:
		e.advanceAfterResults()
	}
	return true
}

func sampleCategories(pool []string, size int) []string {
	if size > len(pool) {
		size = len(pool)
	}
	shuffled := append([]string(nil), pool...)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := randomIndex(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:size]
}

func randomIndex(n int) int {
	value, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(value.Int64())
}
