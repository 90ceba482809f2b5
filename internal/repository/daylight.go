package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/briduffy3/si201-final-sports-analysts/internal/models"
)

// DaylightRepository handles sunrise/sunset database operations for both the
// per-arena and per-game variants.
type DaylightRepository struct {
	db *Database
}

// InsertArenaIfAbsent inserts a per-arena daylight record when the arena has
// none yet. Returns true when a new row was inserted.
func (r *DaylightRepository) InsertArenaIfAbsent(ctx context.Context, info *models.DaylightInfo) (bool, error) {
	query := `
		INSERT INTO daylight_info (arena_id, sunrise, sunset)
		VALUES (?, ?, ?)
		ON CONFLICT (arena_id) DO NOTHING
	`

	result, err := r.db.ext.ExecContext(ctx, query, info.ArenaID, info.Sunrise, info.Sunset)
	if err != nil {
		return false, fmt.Errorf("failed to insert daylight info: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}
	if rows == 0 {
		return false, nil
	}

	log.Debug().Int64("arena_id", info.ArenaID).Msg("Arena daylight info created")
	return true, nil
}

// InsertGameIfAbsent inserts a per-game daylight record when the game has
// none yet. Returns true when a new row was inserted.
func (r *DaylightRepository) InsertGameIfAbsent(ctx context.Context, info *models.GameDaylightInfo) (bool, error) {
	query := `
		INSERT INTO game_daylight_info (game_id, sunrise, sunset, date, team, arena_name, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (game_id) DO NOTHING
	`

	result, err := r.db.ext.ExecContext(ctx, query,
		info.GameID, info.Sunrise, info.Sunset, info.Date,
		info.Team, info.ArenaName, info.Latitude, info.Longitude,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert game daylight info: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}
	if rows == 0 {
		return false, nil
	}

	log.Debug().Int("game_id", info.GameID).Msg("Game daylight info created")
	return true, nil
}

// ListGamesMissingDaylight returns up to limit games with a known date and
// home team that have no per-game daylight record yet (anti-join on game id).
// Arena resolution happens in the ingestion loop because the venue is looked
// up by franchise name, not stored on the game row.
func (r *DaylightRepository) ListGamesMissingDaylight(ctx context.Context, limit int) ([]models.Game, error) {
	query := `
		SELECT game_id, date, time, home_team_id, visitor_team_id, season
		FROM games
		WHERE date IS NOT NULL
		  AND home_team_id IS NOT NULL
		  AND game_id NOT IN (SELECT game_id FROM game_daylight_info)
		LIMIT ?
	`

	var games []models.Game
	if err := sqlx.SelectContext(ctx, r.db.ext, &games, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list games missing daylight: %w", err)
	}
	return games, nil
}

// CountArena returns the number of per-arena daylight rows.
func (r *DaylightRepository) CountArena(ctx context.Context) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, r.db.ext, &count, `SELECT COUNT(*) FROM daylight_info`); err != nil {
		return 0, fmt.Errorf("failed to count daylight info: %w", err)
	}
	return count, nil
}

// CountGame returns the number of per-game daylight rows.
func (r *DaylightRepository) CountGame(ctx context.Context) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, r.db.ext, &count, `SELECT COUNT(*) FROM game_daylight_info`); err != nil {
		return 0, fmt.Errorf("failed to count game daylight info: %w", err)
	}
	return count, nil
}
