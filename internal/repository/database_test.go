package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*Database, context.Context) {
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(ctx, path)
	require.NoError(t, err, "Failed to open test database")

	return db, ctx
}

func teardownTestDB(t *testing.T, db *Database) {
	db.Close()
}

func TestDatabaseOpen(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	err := db.Health(ctx)
	assert.NoError(t, err, "Database health check should pass")
}

func TestDatabaseOpenIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	db.Close()

	// Reopening the same file must not fail on existing tables.
	db, err = Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	count, err := db.Players.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	err := db.WithTx(ctx, func(tx *Database) error {
		_, err := tx.Games.InsertStub(ctx, 100)
		require.NoError(t, err)
		return assert.AnError
	})
	require.Error(t, err)

	count, err := db.Games.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "Rolled-back insert should not persist")
}

func TestWithTxCommits(t *testing.T) {
	db, ctx := setupTestDB(t)
	defer teardownTestDB(t, db)

	err := db.WithTx(ctx, func(tx *Database) error {
		_, err := tx.Games.InsertStub(ctx, 100)
		return err
	})
	require.NoError(t, err)

	count, err := db.Games.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
