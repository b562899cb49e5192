// services/scheduler.go
package services

import (
	"log"
	"time"

	"ranked-match-service/models"

	"github.com/go-co-op/gocron/v2"
)

// StartExpirySweeper runs the server-side round timer: rounds whose play
// window elapsed are completed with whatever was submitted, and rounds
// stuck in preparation far past their window are closed the same way
// (nobody ready, nobody scores). The matchmaking core itself stays
// poll-driven; this is the separate timer component around it.
func (s *RoundService) StartExpirySweeper() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(10*time.Second),
		gocron.NewTask(func() {
			s.sweepExpiredRounds()
		}),
	)
}

func (s *RoundService) sweepExpiredRounds() {
	var matchIDs []string

	// play window elapsed
	err := s.DB.Table("ranked_match_round AS r").
		Select("r.match_id").
		Joins("JOIN ranked_match m ON m.id = r.match_id").
		Where("r.status = ? AND r.play_start IS NOT NULL", models.RoundStatusPlaying).
		Where("r.play_start + make_interval(secs => m.play_duration) <= now()").
		Scan(&matchIDs).Error
	if err != nil {
		log.Printf("[Sweeper] DB error: %v", err)
		return
	}

	// stuck in preparation for 10x the window: the opponent never readied
	var staleIDs []string
	err = s.DB.Table("ranked_match_round AS r").
		Select("r.match_id").
		Joins("JOIN ranked_match m ON m.id = r.match_id").
		Where("r.status = ? AND r.preparation_start IS NOT NULL", models.RoundStatusPreparing).
		Where("r.preparation_start + make_interval(secs => m.preparation_duration * 10) <= now()").
		Scan(&staleIDs).Error
	if err != nil {
		log.Printf("[Sweeper] DB error: %v", err)
		return
	}
	matchIDs = append(matchIDs, staleIDs...)

	for _, matchID := range matchIDs {
		if _, err := s.CompleteCurrentRound(matchID); err != nil {
			log.Printf("[Sweeper] Failed to complete round for match %s: %v", matchID, err)
		} else {
			log.Printf("⏱️  [Sweeper] Expired round completed (match=%s)", matchID)
		}
	}
}
