package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/briduffy3/si201-final-sports-analysts/internal/models"
)

// PlayerRepository handles player database operations
type PlayerRepository struct {
	db *Database
}

// InsertIfAbsent inserts a player only when the identity is unknown.
// Attributes of an existing player are never refreshed. Returns true when
// a new row was inserted.
func (r *PlayerRepository) InsertIfAbsent(ctx context.Context, player *models.Player) (bool, error) {
	query := `
		INSERT INTO players (player_id, first_name, last_name, position, team_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (player_id) DO NOTHING
	`

	result, err := r.db.ext.ExecContext(ctx, query,
		player.PlayerID, player.FirstName, player.LastName, player.Position, player.TeamID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert player: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}
	if rows == 0 {
		return false, nil
	}

	log.Debug().
		Int("player_id", player.PlayerID).
		Str("last_name", player.LastName).
		Msg("Player created")

	return true, nil
}

// GetByID retrieves a player by its external player id.
func (r *PlayerRepository) GetByID(ctx context.Context, playerID int) (*models.Player, error) {
	query := `
		SELECT player_id, first_name, last_name, position, team_id
		FROM players
		WHERE player_id = ?
	`

	var player models.Player
	err := sqlx.GetContext(ctx, r.db.ext, &player, query, playerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player not found: player_id=%d", playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return &player, nil
}

// Count returns the total number of players.
func (r *PlayerRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, r.db.ext, &count, `SELECT COUNT(*) FROM players`); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}
