package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briduffy3/si201-final-sports-analysts/internal/models"
)

func TestPlayerRepository_InsertIfAbsent(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	player := &models.Player{
		PlayerID:  15,
		FirstName: "Stephen",
		LastName:  "Curry",
		Position:  "G",
		TeamID:    10,
	}

	inserted, err := db.Players.InsertIfAbsent(ctx, player)
	require.NoError(t, err)
	assert.True(t, inserted, "First insert should create a row")

	retrieved, err := db.Players.GetByID(ctx, 15)
	require.NoError(t, err)
	assert.Equal(t, "Curry", retrieved.LastName)
	assert.Equal(t, 10, retrieved.TeamID)
}

func TestPlayerRepository_InsertIfAbsentNeverUpdates(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	original := &models.Player{PlayerID: 46, FirstName: "Jayson", LastName: "Tatum", TeamID: 2}
	inserted, err := db.Players.InsertIfAbsent(ctx, original)
	require.NoError(t, err)
	require.True(t, inserted)

	// Same identity with different attributes: skipped, attributes kept.
	changed := &models.Player{PlayerID: 46, FirstName: "Changed", LastName: "Name", TeamID: 99}
	inserted, err = db.Players.InsertIfAbsent(ctx, changed)
	require.NoError(t, err)
	assert.False(t, inserted, "Duplicate identity should be skipped")

	retrieved, err := db.Players.GetByID(ctx, 46)
	require.NoError(t, err)
	assert.Equal(t, "Tatum", retrieved.LastName, "Existing attributes must not be refreshed")
	assert.Equal(t, 2, retrieved.TeamID)

	count, err := db.Players.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPlayerRepository_GetByIDNotFound(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	_, err := db.Players.GetByID(ctx, 9999)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "player not found")
}
