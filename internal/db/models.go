package db

import (
	"time"

	"gorm.io/datatypes"
)

type Game struct {
	ID          uint      `gorm:"primaryKey"`
	JoinCode    string    `gorm:"size:12;uniqueIndex;not null"`
	Phase       string    `gorm:"size:32;not null"`
	TotalRounds int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
	Players     []Player
	Rounds      []Round
	Events      []Event
}

type Player struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    uint      `gorm:"index;not null;uniqueIndex:idx_players_game_key"`
	PlayerKey string    `gorm:"size:64;not null;uniqueIndex:idx_players_game_key"`
	Name      string    `gorm:"size:64;not null"`
	Avatar    string    `gorm:"size:64"`
	IsHost    bool      `gorm:"not null;default:false"`
	Score     int       `gorm:"not null;default:0"`
	JoinedAt  time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Answers   []Answer
	Votes     []Vote `gorm:"foreignKey:VoterID"`
	Events    []Event
}

type Round struct {
	ID         uint           `gorm:"primaryKey"`
	GameID     uint           `gorm:"index;not null;uniqueIndex:idx_rounds_game_number"`
	Number     int            `gorm:"not null;uniqueIndex:idx_rounds_game_number"`
	Letter     string         `gorm:"size:2;not null"`
	Categories datatypes.JSON `gorm:"type:jsonb"`
	StoppedBy  string         `gorm:"size:64"`
	CreatedAt  time.Time      `gorm:"not null"`
	UpdatedAt  time.Time      `gorm:"not null"`
	Answers    []Answer
	Votes      []Vote
}

type Answer struct {
	ID        uint      `gorm:"primaryKey"`
	RoundID   uint      `gorm:"index;not null;uniqueIndex:idx_answers_round_player_category"`
	PlayerID  uint      `gorm:"index;not null;uniqueIndex:idx_answers_round_player_category"`
	Category  string    `gorm:"size:64;not null;uniqueIndex:idx_answers_round_player_category"`
	Text      string    `gorm:"size:80;not null"`
	Status    string    `gorm:"size:16;not null"`
	Points    int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Vote struct {
	ID        uint      `gorm:"primaryKey"`
	RoundID   uint      `gorm:"index;not null"`
	TargetID  uint      `gorm:"index;not null"`
	VoterID   uint      `gorm:"index;not null"`
	Category  string    `gorm:"size:64;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type Event struct {
	ID        uint           `gorm:"primaryKey"`
	GameID    uint           `gorm:"index;not null"`
	RoundID   *uint          `gorm:"index"`
	PlayerID  *uint          `gorm:"index"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}

// Word is one accepted dictionary entry; the word dictionary reloads from
// this table and falls back to the bundled lists when a category is empty.
type Word struct {
	ID        uint      `gorm:"primaryKey"`
	Category  string    `gorm:"size:64;not null;uniqueIndex:idx_words_category_text"`
	Text      string    `gorm:"size:80;not null;uniqueIndex:idx_words_category_text"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
