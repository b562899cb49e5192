package models

import (
	"time"
)

// BeatmapPoolEntry is one beatmap eligible for ranked rounds in a mode.
// The catalog itself lives in an external service; this pool only holds
// opaque beatmap ids tagged by mode for round creation.
type BeatmapPoolEntry struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	BeatmapID int       `json:"beatmap_id" gorm:"index;not null"`
	Mode      int       `json:"mode" gorm:"index;not null"`
	Active    bool      `json:"active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (BeatmapPoolEntry) TableName() string {
	return "ranked_beatmap_pool"
}
