package models

import (
	"time"
)

// Ranked match states
const (
	MatchStatusWaitingPlayer = "waiting_player"
	MatchStatusPlaying       = "playing"
	MatchStatusCompleted     = "completed"
)

// Match types
const (
	MatchTypeFiveMinutes = "five_minutes"
)

// RankedMatch is one head-to-head contest between two players.
// Status only ever moves forward: waiting_player → playing → completed.
type RankedMatch struct {
	ID        string  `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Player1ID string  `json:"player1_id" gorm:"index;not null"`
	Player2ID *string `json:"player2_id,omitempty" gorm:"index"`
	Status    string  `json:"status" gorm:"type:varchar(16);default:'waiting_player';index"`
	MatchType string  `json:"match_type" gorm:"type:varchar(32)"`
	Mode      int     `json:"mode" gorm:"not null"`
	BestOf    int     `json:"best_of" gorm:"default:5"`

	Player1Points int `json:"player1_points" gorm:"default:0"`
	Player2Points int `json:"player2_points" gorm:"default:0"`

	// Durations in seconds, fixed at creation from mode defaults
	PreparationDuration int `json:"preparation_duration" gorm:"default:30"`
	PlayDuration        int `json:"play_duration" gorm:"default:300"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationship: one match has many rounds
	Rounds []MatchRound `json:"rounds,omitempty" gorm:"foreignKey:MatchID"`
}

func (RankedMatch) TableName() string {
	return "ranked_match"
}

// PointsToWin is the first-to threshold for a best-of-N match.
func (m *RankedMatch) PointsToWin() int {
	return m.BestOf/2 + 1
}

// SlotOf returns 1 or 2 when the player is a participant, 0 otherwise.
func (m *RankedMatch) SlotOf(playerID string) int {
	if playerID == m.Player1ID {
		return 1
	}
	if m.Player2ID != nil && playerID == *m.Player2ID {
		return 2
	}
	return 0
}

// Pair sets the second player and moves the match to playing. Player2 can
// only ever be set once, while the match is still waiting.
func (m *RankedMatch) Pair(player2ID string) error {
	if m.Status != MatchStatusWaitingPlayer || m.Player2ID != nil {
		return ErrMatchAlreadyPaired
	}
	if player2ID == m.Player1ID {
		return ErrInvalidSlot
	}
	m.Player2ID = &player2ID
	m.Status = MatchStatusPlaying
	return nil
}

// AddPointFor awards one point to the given slot and completes the match in
// the same step once the winner threshold is reached. The caller must hold a
// row lock on the match so concurrent round completions serialize here.
func (m *RankedMatch) AddPointFor(slot int) error {
	if m.Status != MatchStatusPlaying {
		return ErrMatchNotPlaying
	}
	switch slot {
	case 1:
		m.Player1Points++
	case 2:
		m.Player2Points++
	default:
		return ErrInvalidSlot
	}
	if m.Player1Points >= m.PointsToWin() || m.Player2Points >= m.PointsToWin() {
		m.Status = MatchStatusCompleted
	}
	return nil
}
