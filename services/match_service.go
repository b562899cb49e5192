package services

import (
	"errors"
	"log"
	"strconv"
	"time"

	"ranked-match-service/middleware"
	"ranked-match-service/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchService serves match status, ready-ups and match history for the
// two participating players.
type MatchService struct {
	DB *gorm.DB
}

func NewMatchService(db *gorm.DB) *MatchService {
	return &MatchService{DB: db}
}

// findActiveMatch returns the player's single non-completed match, or
// gorm.ErrRecordNotFound. At most one can exist — enforced at join time.
func findActiveMatch(db *gorm.DB, playerID string) (*models.RankedMatch, error) {
	var match models.RankedMatch
	err := db.Where("(player1_id = ? OR player2_id = ?) AND status <> ?",
		playerID, playerID, models.MatchStatusCompleted).
		Order("created_at DESC").
		First(&match).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// findCurrentRound returns the match's latest non-completed round, or
// gorm.ErrRecordNotFound.
func findCurrentRound(db *gorm.DB, matchID string) (*models.MatchRound, error) {
	var round models.MatchRound
	err := db.Where("match_id = ? AND status <> ?", matchID, models.RoundStatusCompleted).
		Order("round_number DESC").
		First(&round).Error
	if err != nil {
		return nil, err
	}
	return &round, nil
}

// MatchStatus is the poll payload for active-match clients.
type MatchStatus struct {
	Match        *models.RankedMatch `json:"match"`
	CurrentRound *models.MatchRound  `json:"current_round"`
	Player1      *models.Player      `json:"player1"`
	Player2      *models.Player      `json:"player2"`
}

// GetMatchStatus handles GET /ranked/match/status
func (s *MatchService) GetMatchStatus(c *fiber.Ctx) error {
	playerID := middleware.UserID(c)

	match, err := findActiveMatch(s.DB, playerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return respondError(c, ErrNoActiveMatch)
	}
	if err != nil {
		return respondError(c, err)
	}

	round, err := findCurrentRound(s.DB, match.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return respondError(c, err)
	}

	status := MatchStatus{
		Match:        match,
		CurrentRound: round,
		Player1:      s.playerSnapshot(match.Player1ID),
	}
	if match.Player2ID != nil {
		status.Player2 = s.playerSnapshot(*match.Player2ID)
	}
	return c.JSON(status)
}

// playerSnapshot looks up the locally synced profile; nil when the sync
// worker hasn't seen the player yet.
func (s *MatchService) playerSnapshot(externalUserID string) *models.Player {
	var player models.Player
	err := s.DB.Where("external_user_id = ?", externalUserID).First(&player).Error
	if err != nil {
		return nil
	}
	return &player
}

// SetReady handles POST /ranked/match/ready
func (s *MatchService) SetReady(c *fiber.Ctx) error {
	playerID := middleware.UserID(c)

	match, err := findActiveMatch(s.DB, playerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return respondError(c, ErrNoActiveMatch)
	}
	if err != nil {
		return respondError(c, err)
	}

	started, err := s.ReadyUp(match, playerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"round_started": started})
}

// ReadyUp marks the player ready on the match's current round and reports
// whether both players are now ready (round moved to playing). The round
// row is locked for the duration so two simultaneous ready calls cannot
// both observe a half-ready round.
func (s *MatchService) ReadyUp(match *models.RankedMatch, playerID string) (bool, error) {
	slot := match.SlotOf(playerID)
	if slot == 0 {
		return false, ErrNotParticipant
	}

	started := false
	err := s.DB.Transaction(func(tx *gorm.DB) error {
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

		started, err = round.SetReady(slot, time.Now())
		if err != nil {
			return err
		}
		return tx.Save(&round).Error
	})
	if err != nil {
		return false, err
	}

	if started {
		log.Printf("▶️  [MATCH] Both players ready, round started (match=%s)", match.ID)
	}
	return started, nil
}

// GetMatchHistory handles GET /ranked/match/history?limit=&offset=
func (s *MatchService) GetMatchHistory(c *fiber.Ctx) error {
	playerID := middleware.UserID(c)

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var matches []models.RankedMatch
	err := s.DB.Where("(player1_id = ? OR player2_id = ?) AND status = ?",
		playerID, playerID, models.MatchStatusCompleted).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&matches).Error
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"matches": matches})
}
