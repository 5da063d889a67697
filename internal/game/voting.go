package game

// toggleVote flips the voter's negative vote on a target answer. Only valid
// during review, and never against yourself.
func (s *Session) toggleVote(voterID, targetID, category string) bool {
	if s.Phase != PhaseReview {
		return false
	}
	if voterID == targetID {
		return false
	}
	if s.findPlayer(voterID) == nil || s.findPlayer(targetID) == nil {
		return false
	}
	voters := s.ensureVoteSet(targetID, category)
	if _, ok := voters[voterID]; ok {
		delete(voters, voterID)
	} else {
		voters[voterID] = struct{}{}
	}
	return true
}

// confirmVotes marks the voter's review as finished (idempotent) and
// reports whether consensus is now reached.
func (s *Session) confirmVotes(voterID string) bool {
	if s.Phase != PhaseReview {
		return false
	}
	if s.findPlayer(voterID) == nil {
		return false
	}
	if s.WhoFinishedVoting == nil {
		s.WhoFinishedVoting = make(map[string]struct{})
	}
	s.WhoFinishedVoting[voterID] = struct{}{}
	return s.votingConsensus()
}

// votingConsensus holds when every currently connected player has confirmed.
// Disconnected players are excluded from the quorum so they cannot block it.
func (s *Session) votingConsensus() bool {
	connected := s.connectedPlayers()
	if len(connected) == 0 {
		return false
	}
	for _, player := range connected {
		if _, ok := s.WhoFinishedVoting[player.ID]; !ok {
			return false
		}
	}
	return true
}

// cleanupPlayerVotes removes every vote cast by and received by a departing
// player, and their review confirmation, so stale votes cannot block or
// skew consensus.
func (s *Session) cleanupPlayerVotes(playerID string) {
	delete(s.Votes, playerID)
	for _, byCategory := range s.Votes {
		for _, voters := range byCategory {
			delete(voters, playerID)
		}
	}
	delete(s.WhoFinishedVoting, playerID)
}

// jury is an automated adjudication strategy applied when the round stops,
// substituting for a human quorum that is too small to be meaningful.
type jury func(s *Session, dict *Dictionary)

// juryFor selects the strategy by connected-player count. Only two-player
// sessions get one today: each player's letter-breaking answers receive a
// ghost vote from the other player.
func juryFor(connected int) jury {
	if connected == 2 {
		return ghostJury
	}
	return nil
}

func ghostJury(s *Session, dict *Dictionary) {
	connected := s.connectedPlayers()
	if len(connected) != 2 {
		return
	}
	pair := [2]*Player{connected[0], connected[1]}
	for i, player := range pair {
		other := pair[1-i]
		for _, category := range s.Categories {
			raw := s.answerText(player.ID, category)
			result := ProcessAnswer(dict, raw, s.CurrentLetter, category)
			if result.Status != StatusInvalid {
				continue
			}
			s.ensureVoteSet(player.ID, category)[other.ID] = struct{}{}
		}
	}
}
