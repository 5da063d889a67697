package game

import "time"

const (
	pointsUnique    = 100
	pointsDuplicate = 50
)

// calculateScores resolves the round: it moves the session to results,
// classifies every answer and applies the round's score deltas to both the
// round map and the cumulative player scores. Deterministic for identical
// (answers, statuses, votes) input.
//
// The majority-rejection rule compares negative votes against the count of
// players connected at scoring time: votes >= half that count (ties
// included) reject the answer. Exact dictionary matches are immune.
func (s *Session) calculateScores(dict *Dictionary, now time.Time) {
	s.Phase = PhaseResults
	s.Timers.VotingEnd = time.Time{}
	s.Timers.ResultsEnd = now.Add(s.Config.ResultsDuration())
	s.RoundScores = make(map[string]int)

	rejectThreshold := (s.connectedCount() + 1) / 2
	if rejectThreshold < 1 {
		rejectThreshold = 1
	}

	type bucketEntry struct {
		playerID string
		auto     bool
	}

	for _, category := range s.Categories {
		buckets := make(map[string][]bucketEntry)
		for i := range s.Players {
			player := &s.Players[i]
			raw, hasAnswer := "", false
			if answers := s.answersFor(player.ID); answers != nil {
				raw, hasAnswer = answers[category], true
			}
			if !hasAnswer && s.answerStatus(player.ID, category) == StatusPending {
				// No submission at all for this category.
				s.setAnswerStatus(player.ID, category, StatusEmpty)
				continue
			}
			result := ProcessAnswer(dict, raw, s.CurrentLetter, category)
			switch result.Status {
			case StatusEmpty:
				s.setAnswerStatus(player.ID, category, StatusEmpty)
				continue
			case StatusInvalid:
				s.setAnswerStatus(player.ID, category, StatusInvalid)
				continue
			}
			auto := result.Status == StatusValidAuto
			if !auto && s.voteCount(player.ID, category) >= rejectThreshold {
				s.setAnswerStatus(player.ID, category, StatusInvalid)
				continue
			}
			key := dedupeKey(result.Text)
			buckets[key] = append(buckets[key], bucketEntry{playerID: player.ID, auto: auto})
		}

		for _, entries := range buckets {
			for _, entry := range entries {
				points := pointsUnique
				status := StatusValid
				if entry.auto {
					status = StatusValidAuto
				}
				if len(entries) > 1 {
					points = pointsDuplicate
					status = StatusDuplicate
				}
				s.setAnswerStatus(entry.playerID, category, status)
				s.awardPoints(entry.playerID, points)
			}
		}
	}
}

// awardPoints adds to both the round-scoped map and the cumulative score;
// cumulative scores only ever grow here.
func (s *Session) awardPoints(playerID string, points int) {
	if points <= 0 {
		return
	}
	s.RoundScores[playerID] += points
	if player := s.findPlayer(playerID); player != nil {
		player.Score += points
	}
}
