package services

import (
	"log"
	"os"
	"strconv"
	"time"

	"ranked-match-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ModeDefaults are the match parameters applied at pairing time.
type ModeDefaults struct {
	BestOf             int
	PreparationSeconds int
	PlaySeconds        int
}

// LoadModeDefaults reads overrides from the environment; missing or
// invalid values fall back to the documented defaults.
func LoadModeDefaults() ModeDefaults {
	d := ModeDefaults{BestOf: 5, PreparationSeconds: 30, PlaySeconds: 300}
	if n := envInt("RANKED_BEST_OF", d.BestOf); n >= 1 && n%2 == 1 {
		d.BestOf = n
	} else if n != d.BestOf {
		log.Printf("⚠️  RANKED_BEST_OF must be an odd integer ≥ 1, keeping %d", d.BestOf)
	}
	if n := envInt("RANKED_PREPARATION_SECONDS", d.PreparationSeconds); n > 0 {
		d.PreparationSeconds = n
	}
	if n := envInt("RANKED_PLAY_SECONDS", d.PlaySeconds); n > 0 {
		d.PlaySeconds = n
	}
	return d
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

// MatchmakingService pairs the two longest-waiting queue entries of a mode
// into a new match. One instance is constructed at startup and shared.
type MatchmakingService struct {
	DB       *gorm.DB
	Beatmaps BeatmapSelector
	Defaults ModeDefaults
}

func NewMatchmakingService(db *gorm.DB, beatmaps BeatmapSelector, defaults ModeDefaults) *MatchmakingService {
	return &MatchmakingService{DB: db, Beatmaps: beatmaps, Defaults: defaults}
}

// TryPair runs one pairing attempt for the mode inside a single
// transaction. The two oldest queue rows are read FOR UPDATE SKIP LOCKED:
// concurrent attempts triggered by simultaneous joins skip rows a sibling
// transaction already claimed, so a player can never be booked into two
// matches. Returns the created match, or nil when fewer than two players
// are waiting.
func (s *MatchmakingService) TryPair(mode int) (*models.RankedMatch, error) {
	var created *models.RankedMatch

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var entries []models.QueueEntry
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("mode = ?", mode).
			Order("created_at ASC, id ASC").
			Limit(2).
			Find(&entries).Error; err != nil {
			return err
		}
		if len(entries) < 2 {
			// not enough players, leave the queue untouched
			return nil
		}

		now := time.Now()
		match := &models.RankedMatch{
			ID:                  uuid.NewString(),
			Player1ID:           entries[0].PlayerID,
			Status:              models.MatchStatusWaitingPlayer,
			MatchType:           models.MatchTypeFiveMinutes,
			Mode:                mode,
			BestOf:              s.Defaults.BestOf,
			PreparationDuration: s.Defaults.PreparationSeconds,
			PlayDuration:        s.Defaults.PlaySeconds,
		}
		// pairing and joining happen in one transaction; a match is never
		// left waiting for its second player
		if err := match.Pair(entries[1].PlayerID); err != nil {
			return err
		}
		if err := tx.Create(match).Error; err != nil {
			return err
		}

		beatmapID, err := s.Beatmaps.SelectBeatmap(tx, mode)
		if err != nil {
			return err
		}
		round := &models.MatchRound{
			ID:               uuid.NewString(),
			MatchID:          match.ID,
			RoundNumber:      1,
			BeatmapID:        beatmapID,
			Status:           models.RoundStatusPreparing,
			PreparationStart: &now,
		}
		if err := tx.Create(round).Error; err != nil {
			return err
		}

		if err := tx.Where("id IN ?", []string{entries[0].ID, entries[1].ID}).
			Delete(&models.QueueEntry{}).Error; err != nil {
			return err
		}

		created = match
		return nil
	})
	if err != nil {
		return nil, err
	}

	if created != nil {
		log.Printf("🎮 [MATCHMAKING] Paired %s vs %s (mode=%d, match=%s)",
			created.Player1ID, *created.Player2ID, mode, created.ID)
	}
	return created, nil
}
