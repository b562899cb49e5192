package services

import (
	"errors"
	"log"

	"ranked-match-service/middleware"
	"ranked-match-service/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Valid mode range (independent queue pools)
const (
	MinMode = 0
	MaxMode = 3
)

// QueueService owns the ranked waiting queue: join, leave and status.
// Every successful join eagerly triggers a pairing attempt — there is no
// background matchmaking sweep.
type QueueService struct {
	DB          *gorm.DB
	Matchmaking *MatchmakingService
}

func NewQueueService(db *gorm.DB, matchmaking *MatchmakingService) *QueueService {
	return &QueueService{DB: db, Matchmaking: matchmaking}
}

type joinQueueRequest struct {
	Mode int `json:"mode"`
}

// QueueStatus is the response shape shared by join and status.
type QueueStatus struct {
	InQueue     bool                    `json:"in_queue"`
	QueueCounts []models.QueueModeCount `json:"queue_counts"`
}

// JoinQueue handles POST /ranked/queue/join
func (s *QueueService) JoinQueue(c *fiber.Ctx) error {
	playerID := middleware.UserID(c)

	var req joinQueueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Mode < MinMode || req.Mode > MaxMode {
		return respondError(c, ErrInvalidMode)
	}

	// a player with an open match may not queue again
	if _, err := findActiveMatch(s.DB, playerID); err == nil {
		return respondError(c, ErrAlreadyInMatch)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return respondError(c, err)
	}

	if err := s.Join(playerID, req.Mode); err != nil {
		return respondError(c, err)
	}

	status, err := s.statusFor(playerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status)
}

// LeaveQueue handles POST /ranked/queue/leave
func (s *QueueService) LeaveQueue(c *fiber.Ctx) error {
	playerID := middleware.UserID(c)
	if err := s.Leave(playerID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetQueueStatus handles GET /ranked/queue/status
func (s *QueueService) GetQueueStatus(c *fiber.Ctx) error {
	status, err := s.statusFor(middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status)
}

// Join replaces any existing queue row for the player (across all modes)
// with a fresh one, then attempts a pairing for the joined mode. The
// replace is transactional; a failed pairing attempt leaves the new entry
// in place so the player keeps waiting.
func (s *QueueService) Join(playerID string, mode int) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("player_id = ?", playerID).
			Delete(&models.QueueEntry{}).Error; err != nil {
			return err
		}
		entry := models.QueueEntry{
			ID:       uuid.NewString(),
			PlayerID: playerID,
			Mode:     mode,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return err
	}
	log.Printf("🕐 [QUEUE] Player %s joined mode %d", playerID, mode)

	_, err = s.Matchmaking.TryPair(mode)
	return err
}

// Leave removes the player's queue entry, if any. Idempotent.
func (s *QueueService) Leave(playerID string) error {
	return s.DB.Where("player_id = ?", playerID).
		Delete(&models.QueueEntry{}).Error
}

func (s *QueueService) statusFor(playerID string) (*QueueStatus, error) {
	var entryCount int64
	if err := s.DB.Model(&models.QueueEntry{}).
		Where("player_id = ?", playerID).
		Count(&entryCount).Error; err != nil {
		return nil, err
	}

	counts := []models.QueueModeCount{}
	if err := s.DB.Model(&models.QueueEntry{}).
		Select("mode, COUNT(*) AS count").
		Group("mode").
		Order("mode ASC").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	return &QueueStatus{InQueue: entryCount > 0, QueueCounts: counts}, nil
}
