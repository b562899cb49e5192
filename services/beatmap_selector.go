package services

import (
	"errors"
	"log"
	"math/rand"
	"os"
	"strconv"

	"ranked-match-service/models"

	"gorm.io/gorm"
)

// BeatmapSelector chooses the beatmap for a newly created round. The actual
// beatmap catalog is an external service; selection here only deals in
// opaque beatmap ids.
type BeatmapSelector interface {
	SelectBeatmap(tx *gorm.DB, mode int) (int, error)
}

// PoolBeatmapSelector draws a random active entry from the ranked beatmap
// pool for the mode, falling back to a configured default id when the pool
// has nothing for that mode.
type PoolBeatmapSelector struct {
	DefaultBeatmapID int
}

func NewPoolBeatmapSelector() *PoolBeatmapSelector {
	defaultID := 75 // osu! beatmap #1, always playable
	if v := os.Getenv("RANKED_DEFAULT_BEATMAP_ID"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			defaultID = n
		} else {
			log.Printf("⚠️  Invalid RANKED_DEFAULT_BEATMAP_ID=%q, keeping %d", v, defaultID)
		}
	}
	return &PoolBeatmapSelector{DefaultBeatmapID: defaultID}
}

func (s *PoolBeatmapSelector) SelectBeatmap(tx *gorm.DB, mode int) (int, error) {
	var entry models.BeatmapPoolEntry
	err := tx.Where("mode = ? AND active = ?", mode, true).
		Order("RANDOM()").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.DefaultBeatmapID, nil
	}
	if err != nil {
		return 0, err
	}
	return entry.BeatmapID, nil
}

// StaticBeatmapSelector serves a fixed id list round-robin-free (random).
// Used in tests and as a bootstrap option before the pool table is seeded.
type StaticBeatmapSelector struct {
	BeatmapIDs []int
}

func (s *StaticBeatmapSelector) SelectBeatmap(_ *gorm.DB, _ int) (int, error) {
	if len(s.BeatmapIDs) == 0 {
		return 0, errors.New("static beatmap selector has no beatmaps")
	}
	return s.BeatmapIDs[rand.Intn(len(s.BeatmapIDs))], nil
}
