package models

import (
	"time"
)

// QueueEntry is one player waiting for a ranked opponent.
// At most one row exists per player: joining again (in any mode) replaces
// the previous row, so ordering by created_at gives true waiting order.
type QueueEntry struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PlayerID  string    `json:"player_id" gorm:"index;not null"`
	Mode      int       `json:"mode" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

func (QueueEntry) TableName() string {
	return "ranked_queue"
}

// QueueModeCount is one row of the per-mode waiting counts shown in the
// queue status response.
type QueueModeCount struct {
	Mode  int   `json:"mode"`
	Count int64 `json:"count"`
}
