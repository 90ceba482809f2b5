package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/briduffy3/si201-final-sports-analysts/internal/models"
)

// StatRepository handles game stat database operations
type StatRepository struct {
	db *Database
}

// InsertIfAbsent inserts a stat row only when the stat identity is unknown.
// Duplicate identities are suppressed silently, not treated as errors.
// Returns true when a new row was inserted.
func (r *StatRepository) InsertIfAbsent(ctx context.Context, stat *models.GameStat) (bool, error) {
	query := `
		INSERT INTO game_stats (stat_id, player_id, game_id, pts, reb, ast)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (stat_id) DO NOTHING
	`

	result, err := r.db.ext.ExecContext(ctx, query,
		stat.StatID, stat.PlayerID, stat.GameID, stat.Points, stat.Rebounds, stat.Assists,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert stat: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}
	if rows == 0 {
		return false, nil
	}

	log.Debug().
		Int("stat_id", stat.StatID).
		Int("player_id", stat.PlayerID).
		Int("game_id", stat.GameID).
		Msg("Stat created")

	return true, nil
}

// Count returns the total number of stat rows.
func (r *StatRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, r.db.ext, &count, `SELECT COUNT(*) FROM game_stats`); err != nil {
		return 0, fmt.Errorf("failed to count stats: %w", err)
	}
	return count, nil
}

// SunsetRow is one joined stat line with everything the before/after-sunset
// report needs: player identity, box score, game date and start time, and
// the per-game sunset timestamp.
type SunsetRow struct {
	PlayerID  int           `db:"player_id"`
	FirstName string        `db:"first_name"`
	LastName  string        `db:"last_name"`
	Points    sql.NullInt64 `db:"pts"`
	Rebounds  sql.NullInt64 `db:"reb"`
	Assists   sql.NullInt64 `db:"ast"`
	Date      string        `db:"date"`
	Time      string        `db:"time"`
	Sunset    string        `db:"sunset"`
}

// ListWithDaylight joins stats with players, games and the per-game
// daylight table, keeping only rows where both a start time and a sunset
// timestamp are available.
func (r *StatRepository) ListWithDaylight(ctx context.Context) ([]SunsetRow, error) {
	query := `
		SELECT
			gs.player_id,
			p.first_name,
			p.last_name,
			gs.pts,
			gs.reb,
			gs.ast,
			g.date,
			g.time,
			gd.sunset
		FROM game_stats gs
		JOIN players p ON gs.player_id = p.player_id
		JOIN games g ON gs.game_id = g.game_id
		JOIN game_daylight_info gd ON g.game_id = gd.game_id
		WHERE g.time IS NOT NULL AND gd.sunset IS NOT NULL
	`

	var rows []SunsetRow
	if err := sqlx.SelectContext(ctx, r.db.ext, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list stats with daylight: %w", err)
	}

	log.Debug().Int("count", len(rows)).Msg("Retrieved joined sunset rows")
	return rows, nil
}
