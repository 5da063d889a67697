package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"word-rush/internal/db"
	"word-rush/internal/game"

	"github.com/jackc/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

func (s *Server) persistGame(room *Room) error {
	if s.db == nil {
		return nil
	}
	snap := room.Engine.Snapshot()
	record := db.Game{
		JoinCode:    room.JoinCode,
		Phase:       snap.Phase,
		TotalRounds: snap.Config.TotalRounds,
	}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error; err != nil {
		return err
	}
	if record.ID != 0 {
		room.DBID = record.ID
	} else if err := s.ensureGameDBID(room); err != nil {
		// Conflicting join code with no row to adopt.
		return err
	}
	newID := fmt.Sprintf("game-%d", room.DBID)
	if room.DBID != 0 && room.ID != newID {
		s.store.UpdateRoomID(room, newID)
	}
	s.persistEvent(room, "game_created", EventPayload{
		GameID:   room.ID,
		JoinCode: room.JoinCode,
	})
	return nil
}

func (s *Server) persistPlayer(room *Room, player game.Player) error {
	if s.db == nil {
		return nil
	}
	if err := s.ensureGameDBID(room); err != nil {
		return err
	}
	record := db.Player{
		GameID:    room.DBID,
		PlayerKey: player.ID,
		Name:      player.Name,
		Avatar:    player.Avatar,
		IsHost:    player.IsHost,
		JoinedAt:  player.LastSeenAt,
	}
	if err := s.db.Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			// Reconnect of a known identity.
			return nil
		}
		return err
	}
	s.persistEvent(room, "player_joined", EventPayload{
		PlayerID:   player.ID,
		PlayerName: player.Name,
	})
	return nil
}

func (s *Server) persistRoundStart(room *Room, snap game.Snapshot) error {
	if s.db == nil {
		return nil
	}
	if snap.Phase != game.PhasePlaying {
		return nil
	}
	if err := s.ensureGameDBID(room); err != nil {
		return err
	}
	if err := s.persistPhase(room, snap.Phase); err != nil {
		return err
	}
	categories, err := json.Marshal(snap.Categories)
	if err != nil {
		return err
	}
	record := db.Round{
		GameID:     room.DBID,
		Number:     snap.RoundsPlayed + 1,
		Letter:     snap.CurrentLetter,
		Categories: datatypes.JSON(categories),
	}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error; err != nil {
		return err
	}
	s.persistEvent(room, "round_started", EventPayload{
		Round:  snap.RoundsPlayed + 1,
		Letter: snap.CurrentLetter,
	})
	return nil
}

// persistRoundResult writes the adjudicated answers, the negative votes and
// the cumulative player scores once a round reaches the results phase.
func (s *Server) persistRoundResult(room *Room, snap game.Snapshot) error {
	if s.db == nil {
		return nil
	}
	if err := s.ensureGameDBID(room); err != nil {
		return err
	}
	roundNumber := snap.RoundsPlayed + 1
	room.persistMu.Lock()
	defer room.persistMu.Unlock()
	if room.lastScoredRound == roundNumber {
		return nil
	}
	if err := s.persistPhase(room, snap.Phase); err != nil {
		return err
	}
	var round db.Round
	if err := s.db.Where("game_id = ? AND number = ?", room.DBID, roundNumber).First(&round).Error; err != nil {
		return err
	}
	if snap.StoppedBy != "" {
		if err := s.db.Model(&db.Round{}).Where("id = ?", round.ID).Update("stopped_by", snap.StoppedBy).Error; err != nil {
			return err
		}
	}
	playerIDs, err := s.playerDBIDs(room.DBID)
	if err != nil {
		return err
	}
	for _, player := range snap.Players {
		dbID, ok := playerIDs[player.ID]
		if !ok {
			continue
		}
		if err := s.db.Model(&db.Player{}).Where("id = ?", dbID).Update("score", player.Score).Error; err != nil {
			return err
		}
		for category, text := range snap.Answers[player.ID] {
			status := snap.AnswerStatuses[player.ID][category]
			record := db.Answer{
				RoundID:  round.ID,
				PlayerID: dbID,
				Category: category,
				Text:     text,
				Status:   status,
				Points:   answerPoints(status),
			}
			err := s.db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "round_id"}, {Name: "player_id"}, {Name: "category"}},
				DoUpdates: clause.AssignmentColumns([]string{"text", "status", "points"}),
			}).Create(&record).Error
			if err != nil {
				return err
			}
		}
	}
	for targetID, byCategory := range snap.Votes {
		targetDBID, ok := playerIDs[targetID]
		if !ok {
			continue
		}
		for category, voters := range byCategory {
			for _, voterID := range voters {
				voterDBID, ok := playerIDs[voterID]
				if !ok {
					continue
				}
				record := db.Vote{
					RoundID:  round.ID,
					TargetID: targetDBID,
					VoterID:  voterDBID,
					Category: category,
				}
				if err := s.db.Create(&record).Error; err != nil {
					return err
				}
			}
		}
	}
	room.lastScoredRound = roundNumber
	s.persistEvent(room, "round_scored", EventPayload{
		Round:  roundNumber,
		Letter: snap.CurrentLetter,
		Phase:  snap.Phase,
		Count:  len(snap.Players),
	})
	return nil
}

// persistGameOver records the terminal phase once per game run.
func (s *Server) persistGameOver(room *Room, snap game.Snapshot) {
	room.persistMu.Lock()
	logged := room.gameOverLogged
	room.gameOverLogged = true
	room.persistMu.Unlock()
	if logged {
		return
	}
	if err := s.persistPhase(room, snap.Phase); err != nil {
		log.Printf("persist phase failed game_id=%s error=%v", room.ID, err)
	}
	s.persistEvent(room, "game_over", EventPayload{
		Reason: snap.GameOverReason,
		Round:  snap.RoundsPlayed,
	})
}

// resetPersistGuards clears the per-run bookkeeping when a fresh game starts.
func (room *Room) resetPersistGuards() {
	room.persistMu.Lock()
	room.lastScoredRound = 0
	room.gameOverLogged = false
	room.persistMu.Unlock()
}

func (s *Server) persistPhase(room *Room, phase string) error {
	if s.db == nil || room.DBID == 0 {
		return nil
	}
	return s.db.Model(&db.Game{}).Where("id = ?", room.DBID).Update("phase", phase).Error
}

// persistEvent is best-effort: a failed audit write is logged, never
// propagated into the command path.
func (s *Server) persistEvent(room *Room, eventType string, payload EventPayload) {
	if s.db == nil {
		return
	}
	if err := s.ensureGameDBID(room); err != nil || room.DBID == 0 {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	event := db.Event{
		GameID:   room.DBID,
		PlayerID: s.resolveEventPlayerID(room, payload),
		Type:     eventType,
		Payload:  datatypes.JSON(data),
	}
	if err := s.db.Create(&event).Error; err != nil {
		log.Printf("persist event failed game_id=%s type=%s error=%v", room.ID, eventType, err)
	}
}

func (s *Server) resolveEventPlayerID(room *Room, payload EventPayload) *uint {
	if payload.PlayerID == "" {
		return nil
	}
	var record db.Player
	err := s.db.Where("game_id = ? AND player_key = ?", room.DBID, payload.PlayerID).First(&record).Error
	if err != nil {
		return nil
	}
	id := record.ID
	return &id
}

func (s *Server) ensureGameDBID(room *Room) error {
	if s.db == nil || room.DBID != 0 {
		return nil
	}
	var record db.Game
	if err := s.db.Where("join_code = ?", room.JoinCode).First(&record).Error; err != nil {
		return errors.New("game not persisted")
	}
	room.DBID = record.ID
	return nil
}

// playerDBIDs maps engine player identities onto their database rows.
func (s *Server) playerDBIDs(gameDBID uint) (map[string]uint, error) {
	var records []db.Player
	if err := s.db.Where("game_id = ?", gameDBID).Find(&records).Error; err != nil {
		return nil, err
	}
	ids := make(map[string]uint, len(records))
	for _, record := range records {
		ids[record.PlayerKey] = record.ID
	}
	return ids, nil
}

func answerPoints(status string) int {
	switch status {
	case game.StatusValid, game.StatusValidAuto:
		return 100
	case game.StatusDuplicate:
		return 50
	default:
		return 0
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
