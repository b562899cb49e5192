package handlers

import (
	"ranked-match-service/middleware"
	"ranked-match-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupRankedRoutes(app *fiber.App, queueService *services.QueueService, matchService *services.MatchService, roundService *services.RoundService) {
	// 🔐 Player routes — gateway-authenticated user context required
	ranked := app.Group("/ranked", middleware.UserContextMiddleware())

	ranked.Post("/queue/join", queueService.JoinQueue)
	ranked.Post("/queue/leave", queueService.LeaveQueue)
	ranked.Get("/queue/status", queueService.GetQueueStatus)

	ranked.Get("/match/status", matchService.GetMatchStatus)
	ranked.Post("/match/ready", matchService.SetReady)
	ranked.Get("/match/history", matchService.GetMatchHistory)

	// Internal routes — called by the score submission service
	internal := app.Group("/internal/ranked", middleware.ServiceAuthMiddleware())

	internal.Post("/rounds/score", roundService.RecordScore)
	internal.Post("/rounds/complete", roundService.CompleteRound)
}
