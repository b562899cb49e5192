package services

import (
	"errors"
	"log"
	"time"

	"ranked-match-service/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoundService records score submissions against the active round and owns
// round completion: winner evaluation, match point progression and next
// round creation. Completion is reached from two places — the expiry
// sweeper and the internal complete endpoint — both funnel through
// CompleteCurrentRound.
type RoundService struct {
	DB       *gorm.DB
	Beatmaps BeatmapSelector
}

func NewRoundService(db *gorm.DB, beatmaps BeatmapSelector) *RoundService {
	return &RoundService{DB: db, Beatmaps: beatmaps}
}

type recordScoreRequest struct {
	PlayerID   string `json:"player_id"`
	ScoreID    string `json:"score_id"`
	ScoreValue int64  `json:"score_value"`
}

// RecordScore handles POST /internal/ranked/rounds/score — called by the
// score submission service after it has persisted the score record.
func (s *RoundService) RecordScore(c *fiber.Ctx) error {
	var req recordScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.PlayerID == "" || req.ScoreID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "player_id and score_id are required"})
	}

	bestUpdated, err := s.Record(req.PlayerID, req.ScoreID, req.ScoreValue)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"recorded": true, "best_updated": bestUpdated})
}

// Record appends a ledger entry for the player's current round and promotes
// the best score when beaten. Returns whether the best changed.
func (s *RoundService) Record(playerID, scoreID string, scoreValue int64) (bool, error) {
	match, err := findActiveMatch(s.DB, playerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrNoActiveMatch
	}
	if err != nil {
		return false, err
	}
	slot := match.SlotOf(playerID)
	if slot == 0 {
		return false, ErrNotParticipant
	}

	bestUpdated := false
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var round models.MatchRound
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("match_id = ? AND status <> ?", match.ID, models.RoundStatusCompleted).
			Order("round_number DESC").
			First(&round).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveRound
		}
		if err != nil {
			return err
		}

		ledger := models.RoundScore{
			ID:         uuid.NewString(),
			RoundID:    round.ID,
			PlayerID:   playerID,
			ScoreID:    scoreID,
			ScoreValue: scoreValue,
		}
		if err := tx.Create(&ledger).Error; err != nil {
			return err
		}

		bestUpdated, err = round.ApplyScore(slot, scoreID, scoreValue)
		if err != nil {
			return err
		}
		return tx.Save(&round).Error
	})
	if err != nil {
		return false, err
	}
	return bestUpdated, nil
}

type completeRoundRequest struct {
	MatchID string `json:"match_id"`
}

// CompleteRound handles POST /internal/ranked/rounds/complete — the
// score-pipeline/ops escape hatch; the sweeper takes the same path.
func (s *RoundService) CompleteRound(c *fiber.Ctx) error {
	var req completeRoundRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.MatchID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "match_id is required"})
	}

	round, err := s.CompleteCurrentRound(req.MatchID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(round)
}

// CompleteCurrentRound finishes the match's current round, awards the
// match point and, if the match is still open, creates the next round —
// all in one transaction with the match row locked, so two concurrent
// completions for the same match cannot both pass the best-of threshold
// check.
func (s *RoundService) CompleteCurrentRound(matchID string) (*models.MatchRound, error) {
	var completed *models.MatchRound

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var match models.RankedMatch
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", matchID).
			First(&match).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveMatch
		}
		if err != nil {
			return err
		}
		if match.Status != models.MatchStatusPlaying {
			return ErrNoActiveMatch
		}

		var round models.MatchRound
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("match_id = ? AND status <> ?", match.ID, models.RoundStatusCompleted).
			Order("round_number DESC").
			First(&round).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveRound
		}
		if err != nil {
			return err
		}

		now := time.Now()
		winner, err := round.Finish(now)
		if err != nil {
			return err
		}
		if err := tx.Save(&round).Error; err != nil {
			return err
		}

		if winner != nil {
			if err := match.AddPointFor(*winner); err != nil {
				return err
			}
			if err := tx.Save(&match).Error; err != nil {
				return err
			}
		}

		if match.Status == models.MatchStatusPlaying {
			beatmapID, err := s.Beatmaps.SelectBeatmap(tx, match.Mode)
			if err != nil {
				return err
			}
			next := models.MatchRound{
				ID:               uuid.NewString(),
				MatchID:          match.ID,
				RoundNumber:      round.RoundNumber + 1,
				BeatmapID:        beatmapID,
				Status:           models.RoundStatusPreparing,
				PreparationStart: &now,
			}
			if err := tx.Create(&next).Error; err != nil {
				return err
			}
		} else {
			log.Printf("🏁 [MATCH] Match %s completed %d–%d",
				match.ID, match.Player1Points, match.Player2Points)
		}

		completed = &round
		return nil
	})
	if err != nil {
		return nil, err
	}
	return completed, nil
}
