package services

import (
	"errors"

	"ranked-match-service/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Service-level sentinel errors, translated to HTTP statuses at the edge.
var (
	ErrInvalidMode    = errors.New("invalid mode")
	ErrAlreadyInMatch = errors.New("player is already in an active match")
	ErrNoActiveMatch  = errors.New("no active match")
	ErrNoActiveRound  = errors.New("no active round")
	ErrNotParticipant = errors.New("player is not part of this match")
)

func httpStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidMode):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrAlreadyInMatch),
		errors.Is(err, models.ErrRoundCompleted),
		errors.Is(err, models.ErrMatchAlreadyPaired),
		errors.Is(err, models.ErrMatchNotPlaying):
		return fiber.StatusConflict
	case errors.Is(err, ErrNotParticipant):
		return fiber.StatusForbidden
	case errors.Is(err, ErrNoActiveMatch),
		errors.Is(err, ErrNoActiveRound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError maps a service error onto the standard error payload.
func respondError(c *fiber.Ctx, err error) error {
	status := httpStatus(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "internal error"
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
