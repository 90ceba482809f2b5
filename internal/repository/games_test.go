package repository

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briduffy3/si201-final-sports-analysts/internal/models"
)

func TestGameRepository_InsertStub(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	inserted, err := db.Games.InsertStub(ctx, 857611)
	require.NoError(t, err)
	assert.True(t, inserted)

	game, err := db.Games.GetByID(ctx, 857611)
	require.NoError(t, err)
	assert.False(t, game.Date.Valid, "Stub should have no date")
	assert.False(t, game.Time.Valid, "Stub should have no time")
	assert.False(t, game.HomeTeamID.Valid)

	// Second stub insert for the same id is a no-op.
	inserted, err = db.Games.InsertStub(ctx, 857611)
	require.NoError(t, err)
	assert.False(t, inserted)

	count, err := db.Games.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGameRepository_UpdateDetail(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	_, err := db.Games.InsertStub(ctx, 1001)
	require.NoError(t, err)

	game := &models.Game{
		GameID:        1001,
		Date:          sql.NullString{String: "2023-01-15", Valid: true},
		Time:          sql.NullString{String: "19:30:00", Valid: true},
		HomeTeamID:    sql.NullInt64{Int64: 14, Valid: true},
		VisitorTeamID: sql.NullInt64{Int64: 2, Valid: true},
		Season:        sql.NullInt64{Int64: 2022, Valid: true},
	}
	require.NoError(t, db.Games.UpdateDetail(ctx, game))

	retrieved, err := db.Games.GetByID(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, "2023-01-15", retrieved.Date.String)
	assert.Equal(t, "19:30:00", retrieved.Time.String)
	assert.Equal(t, int64(14), retrieved.HomeTeamID.Int64)
	assert.Equal(t, int64(2022), retrieved.Season.Int64)
}

func TestGameRepository_UpdateDetailUnknownGame(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	game := &models.Game{GameID: 404}
	err := db.Games.UpdateDetail(ctx, game)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "game not found")
}

func TestGameRepository_ListMissingDetail(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	for _, id := range []int{1, 2, 3} {
		_, err := db.Games.InsertStub(ctx, id)
		require.NoError(t, err)
	}

	// Fill game 2 with a dated, timeless (midnight source) detail. It must
	// drop out of the selection even though time stays NULL.
	require.NoError(t, db.Games.UpdateDetail(ctx, &models.Game{
		GameID:     2,
		Date:       sql.NullString{String: "2023-02-01", Valid: true},
		HomeTeamID: sql.NullInt64{Int64: 5, Valid: true},
	}))

	ids, err := db.Games.ListMissingDetail(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 3}, ids)
}
