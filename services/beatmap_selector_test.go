package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticBeatmapSelector(t *testing.T) {
	s := &StaticBeatmapSelector{BeatmapIDs: []int{75, 129891, 1262832}}

	for i := 0; i < 20; i++ {
		id, err := s.SelectBeatmap(nil, 0)
		require.NoError(t, err)
		assert.Contains(t, s.BeatmapIDs, id)
	}
}

func TestStaticBeatmapSelectorEmpty(t *testing.T) {
	s := &StaticBeatmapSelector{}
	_, err := s.SelectBeatmap(nil, 0)
	assert.Error(t, err)
}

func TestLoadModeDefaults(t *testing.T) {
	t.Run("built-in defaults", func(t *testing.T) {
		d := LoadModeDefaults()
		assert.Equal(t, 5, d.BestOf)
		assert.Equal(t, 30, d.PreparationSeconds)
		assert.Equal(t, 300, d.PlaySeconds)
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("RANKED_BEST_OF", "7")
		t.Setenv("RANKED_PREPARATION_SECONDS", "45")
		t.Setenv("RANKED_PLAY_SECONDS", "180")

		d := LoadModeDefaults()
		assert.Equal(t, 7, d.BestOf)
		assert.Equal(t, 45, d.PreparationSeconds)
		assert.Equal(t, 180, d.PlaySeconds)
	})

	t.Run("even best_of rejected", func(t *testing.T) {
		t.Setenv("RANKED_BEST_OF", "4")
		d := LoadModeDefaults()
		assert.Equal(t, 5, d.BestOf)
	})
}

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, 400, httpStatus(ErrInvalidMode))
	assert.Equal(t, 409, httpStatus(ErrAlreadyInMatch))
	assert.Equal(t, 403, httpStatus(ErrNotParticipant))
	assert.Equal(t, 404, httpStatus(ErrNoActiveMatch))
	assert.Equal(t, 404, httpStatus(ErrNoActiveRound))
	assert.Equal(t, 500, httpStatus(assert.AnError))
}
