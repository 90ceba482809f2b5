package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDateTime(t *testing.T) {
	date, tm := SplitDateTime("2023-01-15T19:30:00.000Z")
	assert.Equal(t, "2023-01-15", date)
	require.True(t, tm.Valid)
	assert.Equal(t, "19:30:00.000", tm.String)

	// Exact midnight means the source did not know the tip-off time.
	date, tm = SplitDateTime("2023-01-20T00:00:00.000Z")
	assert.Equal(t, "2023-01-20", date)
	assert.False(t, tm.Valid)

	// A date without a time component.
	date, tm = SplitDateTime("2023-01-20")
	assert.Equal(t, "", date)
	assert.False(t, tm.Valid)
}

func TestGameDetailToGame(t *testing.T) {
	detail := &GameDetail{
		ID:          857611,
		DateTime:    "2023-01-15T19:30:00.000Z",
		HomeTeam:    TeamRef{ID: 2},
		VisitorTeam: TeamRef{ID: 14},
		Season:      2022,
	}

	game := detail.ToGame()
	assert.Equal(t, 857611, game.GameID)
	assert.Equal(t, "2023-01-15", game.Date.String)
	assert.True(t, game.Time.Valid)
	assert.Equal(t, int64(2), game.HomeTeamID.Int64)
	assert.Equal(t, int64(14), game.VisitorTeamID.Int64)
	assert.Equal(t, int64(2022), game.Season.Int64)
}

func TestStatInputToStat(t *testing.T) {
	pts := 31
	si := &StatInput{
		ID:     5001,
		Points: &pts,
		Player: PlayerInput{ID: 15},
		Game:   GameRef{ID: 100},
	}

	stat := si.ToStat()
	assert.Equal(t, 5001, stat.StatID)
	assert.Equal(t, 15, stat.PlayerID)
	assert.Equal(t, 100, stat.GameID)
	require.True(t, stat.Points.Valid)
	assert.Equal(t, int64(31), stat.Points.Int64)
	assert.False(t, stat.Rebounds.Valid, "Missing categories stay NULL")
	assert.False(t, stat.Assists.Valid)
}
