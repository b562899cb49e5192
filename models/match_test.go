package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlayingMatch(bestOf int) *RankedMatch {
	m := &RankedMatch{
		ID:        "match-1",
		Player1ID: "player-a",
		Status:    MatchStatusWaitingPlayer,
		MatchType: MatchTypeFiveMinutes,
		BestOf:    bestOf,
	}
	if err := m.Pair("player-b"); err != nil {
		panic(err)
	}
	return m
}

func TestPair(t *testing.T) {
	m := &RankedMatch{ID: "m", Player1ID: "a", Status: MatchStatusWaitingPlayer}

	require.NoError(t, m.Pair("b"))
	assert.Equal(t, MatchStatusPlaying, m.Status)
	assert.Equal(t, "b", *m.Player2ID)

	// player2 is set exactly once
	assert.ErrorIs(t, m.Pair("c"), ErrMatchAlreadyPaired)
}

func TestPairRejectsSelf(t *testing.T) {
	m := &RankedMatch{ID: "m", Player1ID: "a", Status: MatchStatusWaitingPlayer}
	assert.ErrorIs(t, m.Pair("a"), ErrInvalidSlot)
}

func TestSlotOf(t *testing.T) {
	m := newPlayingMatch(5)
	assert.Equal(t, 1, m.SlotOf("player-a"))
	assert.Equal(t, 2, m.SlotOf("player-b"))
	assert.Equal(t, 0, m.SlotOf("intruder"))
}

func TestBestOfFiveCompletesAtThreePoints(t *testing.T) {
	m := newPlayingMatch(5)
	assert.Equal(t, 3, m.PointsToWin())

	require.NoError(t, m.AddPointFor(1))
	require.NoError(t, m.AddPointFor(1))
	assert.Equal(t, MatchStatusPlaying, m.Status) // 2 points is not enough

	require.NoError(t, m.AddPointFor(1))
	assert.Equal(t, MatchStatusCompleted, m.Status)
	assert.Equal(t, 3, m.Player1Points)
	assert.Equal(t, 0, m.Player2Points)

	// a completed match takes no further points
	assert.ErrorIs(t, m.AddPointFor(2), ErrMatchNotPlaying)
	assert.Equal(t, 3, m.Player1Points)
}

func TestBestOfOneCompletesImmediately(t *testing.T) {
	m := newPlayingMatch(1)
	require.NoError(t, m.AddPointFor(2))
	assert.Equal(t, MatchStatusCompleted, m.Status)
	assert.Equal(t, 1, m.Player2Points)
}

func TestAddPointForInvalidSlot(t *testing.T) {
	m := newPlayingMatch(5)
	assert.ErrorIs(t, m.AddPointFor(0), ErrInvalidSlot)
	assert.Equal(t, 0, m.Player1Points)
	assert.Equal(t, 0, m.Player2Points)
}

// Full best-of-5 flow: ready-ups, score submissions, round completion and
// point progression, with alternating winners until player one closes it.
func TestFullMatchScenario(t *testing.T) {
	m := newPlayingMatch(5)
	now := time.Now()

	playRound := func(roundNumber int, score1, score2 *int64) *int {
		r := &MatchRound{
			ID:               "round",
			MatchID:          m.ID,
			RoundNumber:      roundNumber,
			BeatmapID:        75,
			Status:           RoundStatusPreparing,
			PreparationStart: &now,
		}
		started, err := r.SetReady(1, now)
		require.NoError(t, err)
		require.False(t, started)
		started, err = r.SetReady(2, now)
		require.NoError(t, err)
		require.True(t, started)

		if score1 != nil {
			_, err = r.ApplyScore(1, "s1", *score1)
			require.NoError(t, err)
		}
		if score2 != nil {
			_, err = r.ApplyScore(2, "s2", *score2)
			require.NoError(t, err)
		}

		winner, err := r.Finish(now)
		require.NoError(t, err)
		return winner
	}

	// A 900k vs B 800k → slot 1
	winner := playRound(1, int64Ptr(900000), int64Ptr(800000))
	require.NotNil(t, winner)
	require.NoError(t, m.AddPointFor(*winner))
	assert.Equal(t, 1, m.Player1Points)

	// B takes round 2
	winner = playRound(2, int64Ptr(700000), int64Ptr(750000))
	require.NoError(t, m.AddPointFor(*winner))
	assert.Equal(t, 1, m.Player2Points)

	// draw round: no point awarded
	winner = playRound(3, int64Ptr(600000), int64Ptr(600000))
	assert.Nil(t, winner)

	// A wins two more → match completed at 3
	for n := 4; n <= 5; n++ {
		winner = playRound(n, int64Ptr(900000), int64Ptr(100000))
		require.NoError(t, m.AddPointFor(*winner))
	}
	assert.Equal(t, MatchStatusCompleted, m.Status)
	assert.Equal(t, 3, m.Player1Points)
	assert.Equal(t, 1, m.Player2Points)
}
