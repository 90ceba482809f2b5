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

// GameRepository handles game database operations
type GameRepository struct {
	db *Database
}

// InsertStub inserts a bare-id game row when the identity is unknown,
// leaving date/time/teams/season NULL for the backfill to complete.
// Returns true when a new row was inserted.
func (r *GameRepository) InsertStub(ctx context.Context, gameID int) (bool, error) {
	query := `
		INSERT INTO games (game_id)
		VALUES (?)
		ON CONFLICT (game_id) DO NOTHING
	`

	result, err := r.db.ext.ExecContext(ctx, query, gameID)
	if err != nil {
		return false, fmt.Errorf("failed to insert game stub: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}
	if rows == 0 {
		return false, nil
	}

	log.Debug().Int("game_id", gameID).Msg("Game stub created")
	return true, nil
}

// UpdateDetail fills the schedule metadata of an existing game row.
func (r *GameRepository) UpdateDetail(ctx context.Context, game *models.Game) error {
	query := `
		UPDATE games
		SET date = ?, time = ?, home_team_id = ?, visitor_team_id = ?, season = ?
		WHERE game_id = ?
	`

	result, err := r.db.ext.ExecContext(ctx, query,
		game.Date, game.Time, game.HomeTeamID, game.VisitorTeamID, game.Season, game.GameID,
	)
	if err != nil {
		return fmt.Errorf("failed to update game detail: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("game not found: game_id=%d", game.GameID)
	}

	log.Debug().
		Int("game_id", game.GameID).
		Str("date", game.Date.String).
		Bool("time_known", game.Time.Valid).
		Msg("Game detail updated")

	return nil
}

// ListMissingDetail returns the ids of all game stubs still missing their
// schedule metadata, in store-defined order. A NULL date marks an unfilled
// stub; a NULL time alone does not, since backfilled midnight games keep a
// NULL time permanently. The backfill cap is enforced by the caller because
// failed fetches do not count against it.
func (r *GameRepository) ListMissingDetail(ctx context.Context) ([]int, error) {
	query := `SELECT game_id FROM games WHERE date IS NULL`

	var ids []int
	if err := sqlx.SelectContext(ctx, r.db.ext, &ids, query); err != nil {
		return nil, fmt.Errorf("failed to list games missing detail: %w", err)
	}
	return ids, nil
}

// GetByID retrieves a game by its external game id.
func (r *GameRepository) GetByID(ctx context.Context, gameID int) (*models.Game, error) {
	query := `
		SELECT game_id, date, time, home_team_id, visitor_team_id, season
		FROM games
		WHERE game_id = ?
	`

	var game models.Game
	err := sqlx.GetContext(ctx, r.db.ext, &game, query, gameID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("game not found: game_id=%d", gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return &game, nil
}

// Count returns the total number of games.
func (r *GameRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, r.db.ext, &count, `SELECT COUNT(*) FROM games`); err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	return count, nil
}
