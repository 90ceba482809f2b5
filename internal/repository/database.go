package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// schema bootstraps the collector tables. Identities are external ids
// enforced with PRIMARY KEY / UNIQUE constraints so re-ingesting a seen
// identity is a constraint-guarded no-op. No foreign keys: a stat may
// reference a stub game that is only completed later.
const schema = `
CREATE TABLE IF NOT EXISTS players (
	player_id  INTEGER PRIMARY KEY,
	first_name TEXT,
	last_name  TEXT,
	position   TEXT,
	team_id    INTEGER
);

CREATE TABLE IF NOT EXISTS games (
	game_id         INTEGER PRIMARY KEY,
	date            TEXT,
	time            TEXT,
	home_team_id    INTEGER,
	visitor_team_id INTEGER,
	season          INTEGER
);

CREATE TABLE IF NOT EXISTS game_stats (
	stat_id   INTEGER PRIMARY KEY,
	player_id INTEGER,
	game_id   INTEGER,
	pts       INTEGER,
	reb       INTEGER,
	ast       INTEGER
);

CREATE TABLE IF NOT EXISTS arenas (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	arena_name TEXT UNIQUE,
	team       TEXT,
	city       TEXT,
	latitude   REAL,
	longitude  REAL
);

CREATE TABLE IF NOT EXISTS daylight_info (
	arena_id INTEGER PRIMARY KEY,
	sunrise  TEXT,
	sunset   TEXT
);

CREATE TABLE IF NOT EXISTS game_daylight_info (
	game_id    INTEGER PRIMARY KEY,
	sunrise    TEXT,
	sunset     TEXT,
	date       TEXT,
	team       TEXT,
	arena_name TEXT,
	latitude   REAL,
	longitude  REAL
);
`

// Database holds the SQLite handle and provides access to repositories.
type Database struct {
	conn *sqlx.DB
	ext  sqlx.ExtContext

	// Repositories
	Players  *PlayerRepository
	Games    *GameRepository
	Stats    *StatRepository
	Arenas   *ArenaRepository
	Daylight *DaylightRepository
}

// Open opens (creating if needed) the SQLite store at path, bootstraps the
// schema and initializes repositories.
func Open(ctx context.Context, path string) (*Database, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	conn, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	// Single local file, single writer. Concurrent external writers are
	// out of scope for this store.
	conn.SetMaxOpenConns(1)

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	log.Info().Str("path", path).Msg("Database opened")

	db := &Database{conn: conn, ext: conn}
	db.initRepos()
	return db, nil
}

func (db *Database) initRepos() {
	db.Players = &PlayerRepository{db: db}
	db.Games = &GameRepository{db: db}
	db.Stats = &StatRepository{db: db}
	db.Arenas = &ArenaRepository{db: db}
	db.Daylight = &DaylightRepository{db: db}
}

// Close closes the database handle.
func (db *Database) Close() {
	if db.conn != nil {
		if err := db.conn.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
			return
		}
		log.Debug().Msg("Database closed")
	}
}

// Health checks that the store is reachable.
func (db *Database) Health(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// WithTx runs fn against a transaction-scoped view of the database so a
// whole ingestion batch commits (or rolls back) as one unit.
func (db *Database) WithTx(ctx context.Context, fn func(*Database) error) error {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txdb := &Database{conn: db.conn, ext: tx}
	txdb.initRepos()

	if err := fn(txdb); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Warn().Err(rbErr).Msg("Rollback failed")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
