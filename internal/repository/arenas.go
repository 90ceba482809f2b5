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

// ArenaRepository handles arena database operations
type ArenaRepository struct {
	db *Database
}

// Upsert inserts an arena or, when the name already exists, updates its
// team, city and coordinates in place.
func (r *ArenaRepository) Upsert(ctx context.Context, arena *models.Arena) error {
	query := `
		INSERT INTO arenas (arena_name, team, city, latitude, longitude)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (arena_name) DO UPDATE SET
			team = excluded.team,
			city = excluded.city,
			latitude = excluded.latitude,
			longitude = excluded.longitude
	`

	_, err := r.db.ext.ExecContext(ctx, query,
		arena.Name, arena.Team, arena.City, arena.Latitude, arena.Longitude,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert arena: %w", err)
	}

	log.Debug().
		Str("arena", arena.Name).
		Bool("coordinates", arena.HasCoordinates()).
		Msg("Arena upserted")

	return nil
}

// GetByName retrieves an arena by its unique name.
func (r *ArenaRepository) GetByName(ctx context.Context, name string) (*models.Arena, error) {
	query := `
		SELECT id, arena_name, team, city, latitude, longitude
		FROM arenas
		WHERE arena_name = ?
	`

	var arena models.Arena
	err := sqlx.GetContext(ctx, r.db.ext, &arena, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("arena not found: %s", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get arena: %w", err)
	}

	return &arena, nil
}

// GetByTeam retrieves the arena whose team column mentions the given
// franchise name.
func (r *ArenaRepository) GetByTeam(ctx context.Context, team string) (*models.Arena, error) {
	query := `
		SELECT id, arena_name, team, city, latitude, longitude
		FROM arenas
		WHERE team LIKE '%' || ? || '%'
		LIMIT 1
	`

	var arena models.Arena
	err := sqlx.GetContext(ctx, r.db.ext, &arena, query, team)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no arena for team: %s", team)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get arena by team: %w", err)
	}

	return &arena, nil
}

// ListMissingDaylight returns up to limit arenas that have no per-arena
// daylight record yet (anti-join on arena id).
func (r *ArenaRepository) ListMissingDaylight(ctx context.Context, limit int) ([]models.Arena, error) {
	query := `
		SELECT id, arena_name, team, city, latitude, longitude
		FROM arenas
		WHERE id NOT IN (SELECT arena_id FROM daylight_info)
		LIMIT ?
	`

	var arenas []models.Arena
	if err := sqlx.SelectContext(ctx, r.db.ext, &arenas, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list arenas missing daylight: %w", err)
	}
	return arenas, nil
}

// Count returns the total number of arenas.
func (r *ArenaRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, r.db.ext, &count, `SELECT COUNT(*) FROM arenas`); err != nil {
		return 0, fmt.Errorf("failed to count arenas: %w", err)
	}
	return count, nil
}

// SeedFrom copies the arena table from a secondary store file into this
// database. The copy runs once: when the destination already has rows the
// call is a no-op. Returns the number of arenas copied.
func (r *ArenaRepository) SeedFrom(ctx context.Context, path string) (int, error) {
	count, err := r.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Debug().Int("existing", count).Msg("Arena table already seeded, skipping copy")
		return 0, nil
	}

	src, err := sqlx.ConnectContext(ctx, "sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return 0, fmt.Errorf("failed to open arena seed store %s: %w", path, err)
	}
	defer src.Close()

	var arenas []models.Arena
	query := `SELECT id, arena_name, team, city, latitude, longitude FROM arenas ORDER BY id`
	if err := sqlx.SelectContext(ctx, src, &arenas, query); err != nil {
		return 0, fmt.Errorf("failed to read arena seed store: %w", err)
	}

	copied := 0
	for i := range arenas {
		if err := r.Upsert(ctx, &arenas[i]); err != nil {
			return copied, err
		}
		copied++
	}

	log.Info().Int("count", copied).Str("source", path).Msg("Arena table seeded")
	return copied, nil
}
