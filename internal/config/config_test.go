package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STATS_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.StatsAPIKey)
	assert.Equal(t, "https://api.balldontlie.io/v1", cfg.StatsBaseURL)
	assert.Equal(t, "final_project_sportsdata.db", cfg.DatabasePath)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, 25, cfg.StatCap)
	assert.Equal(t, 8, cfg.TotalRuns)
	assert.Equal(t, 2*time.Second, cfg.RunInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.SunCallDelay)
	assert.Contains(t, cfg.PlayerIDs, 15)
	assert.Equal(t, []int{2022, 2023}, cfg.Seasons)
	assert.False(t, cfg.RedisEnabled())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STATS_API_KEY", "test-key")
	t.Setenv("PLAYER_IDS", "1,2,3")
	t.Setenv("TOTAL_RUNS", "3")
	t.Setenv("RUN_INTERVAL", "5s")
	t.Setenv("REDIS_HOST", "localhost")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, cfg.PlayerIDs)
	assert.Equal(t, 3, cfg.TotalRuns)
	assert.Equal(t, 5*time.Second, cfg.RunInterval)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
}

func TestValidate(t *testing.T) {
	t.Setenv("STATS_API_KEY", "test-key")

	t.Run("page size out of range", func(t *testing.T) {
		t.Setenv("PAGE_SIZE", "100")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PAGE_SIZE")
	})

	t.Run("non-positive total runs", func(t *testing.T) {
		t.Setenv("TOTAL_RUNS", "0")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "TOTAL_RUNS")
	})
}
