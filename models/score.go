package models

import (
	"time"
)

// RoundScore is an append-only ledger row binding an externally created
// score record to a (round, player) pair. Many rows may exist per pair; the
// round itself caches only the best one per slot.
type RoundScore struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	RoundID    string    `json:"round_id" gorm:"index;not null"`
	PlayerID   string    `json:"player_id" gorm:"index;not null"`
	ScoreID    string    `json:"score_id" gorm:"not null"`
	ScoreValue int64     `json:"score_value" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (RoundScore) TableName() string {
	return "ranked_match_round_scores"
}
