package models

import (
	"time"
)

// Round states
const (
	RoundStatusPreparing = "preparing"
	RoundStatusPlaying   = "playing"
	RoundStatusCompleted = "completed"
)

// MatchRound is one game inside a ranked match: preparing → playing →
// completed, driven by player ready-ups and score submissions.
//
// The best score per slot is cached on the round (id + value). The full
// submission history lives in ranked_match_round_scores; the value is kept
// here as well because the score record itself belongs to the external score
// service and winner evaluation must not leave this subsystem.
type MatchRound struct {
	ID          string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	MatchID     string `json:"match_id" gorm:"index;not null"`
	RoundNumber int    `json:"round_number" gorm:"not null"`
	BeatmapID   int    `json:"beatmap_id" gorm:"not null"`
	Status      string `json:"status" gorm:"type:varchar(16);default:'preparing';index"`

	Player1Ready bool `json:"player1_ready" gorm:"default:false"`
	Player2Ready bool `json:"player2_ready" gorm:"default:false"`

	Player1BestScoreID    *string `json:"player1_best_score_id,omitempty"`
	Player2BestScoreID    *string `json:"player2_best_score_id,omitempty"`
	Player1BestScoreValue *int64  `json:"player1_best_score_value,omitempty"`
	Player2BestScoreValue *int64  `json:"player2_best_score_value,omitempty"`

	WinnerSlot *int `json:"winner_slot,omitempty"`

	PreparationStart *time.Time `json:"preparation_start,omitempty"`
	PlayStart        *time.Time `json:"play_start,omitempty"`
	EndedAt          *time.Time `json:"ended_at,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (MatchRound) TableName() string {
	return "ranked_match_round"
}

// SetReady marks the slot as ready and reports whether this call moved the
// round from preparing to playing (both players now ready). Readiness is
// only meaningful while preparing: calls on a playing round are no-ops,
// calls on a completed round are rejected.
func (r *MatchRound) SetReady(slot int, now time.Time) (bool, error) {
	if slot != 1 && slot != 2 {
		return false, ErrInvalidSlot
	}
	switch r.Status {
	case RoundStatusCompleted:
		return false, ErrRoundCompleted
	case RoundStatusPlaying:
		return false, nil
	}
	if slot == 1 {
		r.Player1Ready = true
	} else {
		r.Player2Ready = true
	}
	if r.Player1Ready && r.Player2Ready {
		r.Status = RoundStatusPlaying
		r.PlayStart = &now
		return true, nil
	}
	return false, nil
}

// ApplyScore promotes the submitted score to the slot's best when it beats
// the current best (or no best exists yet). Returns whether the best
// changed. Submissions against a completed round are rejected.
func (r *MatchRound) ApplyScore(slot int, scoreID string, scoreValue int64) (bool, error) {
	if r.Status == RoundStatusCompleted {
		return false, ErrRoundCompleted
	}
	switch slot {
	case 1:
		if r.Player1BestScoreValue == nil || scoreValue > *r.Player1BestScoreValue {
			r.Player1BestScoreID = &scoreID
			r.Player1BestScoreValue = &scoreValue
			return true, nil
		}
	case 2:
		if r.Player2BestScoreValue == nil || scoreValue > *r.Player2BestScoreValue {
			r.Player2BestScoreID = &scoreID
			r.Player2BestScoreValue = &scoreValue
			return true, nil
		}
	default:
		return false, ErrInvalidSlot
	}
	return false, nil
}

// Finish completes the round and derives the winner slot from the best
// scores: higher value wins, a lone submission wins by default, and no
// submissions (or equal values — a draw) produce no winner. Returns the
// winner slot, or nil when no point is to be awarded.
func (r *MatchRound) Finish(now time.Time) (*int, error) {
	if r.Status == RoundStatusCompleted {
		return nil, ErrRoundCompleted
	}
	var winner *int
	switch {
	case r.Player1BestScoreValue != nil && r.Player2BestScoreValue != nil:
		if *r.Player1BestScoreValue > *r.Player2BestScoreValue {
			winner = intPtr(1)
		} else if *r.Player2BestScoreValue > *r.Player1BestScoreValue {
			winner = intPtr(2)
		}
		// equal values: draw, nobody scores
	case r.Player1BestScoreValue != nil:
		winner = intPtr(1)
	case r.Player2BestScoreValue != nil:
		winner = intPtr(2)
	}
	r.Status = RoundStatusCompleted
	r.WinnerSlot = winner
	r.EndedAt = &now
	return winner, nil
}

func intPtr(v int) *int {
	return &v
}
